package model

import (
	"time"

	"github.com/trknhr/tonecheck/internal/bayes"
	"github.com/trknhr/tonecheck/internal/vectorizer"
)

// Artifacts is the frozen output of one training run: the vectorizer state
// (vocabulary, idf, tokenizer config) and the classifier state (classes,
// priors, smoothed likelihoods). It is produced once and loaded read-only.
type Artifacts struct {
	ID          string           `json:"id"`
	CreatedAt   time.Time        `json:"created_at"`
	DatasetHash string           `json:"dataset_hash,omitempty"`
	NumExamples int              `json:"num_examples"`
	Vectorizer  vectorizer.State `json:"vectorizer"`
	Classifier  bayes.State      `json:"classifier"`
	Report      *Report          `json:"report,omitempty"`
}
