package vectorizer

import (
	"math"
	"slices"

	"github.com/trknhr/tonecheck/internal/errs"
)

// State is the frozen, serializable form of a fitted Vectorizer.
// Vocabulary[i] is the token of column i and IDF[i] its weight.
type State struct {
	Config       Config    `json:"config"`
	Vocabulary   []string  `json:"vocabulary"`
	IDF          []float64 `json:"idf"`
	NumDocuments int       `json:"num_documents"`
}

func (v *Vectorizer) State() (State, error) {
	if v.vocab == nil {
		return State{}, errs.NotReady("vectorizer is not fitted")
	}
	return State{
		Config:       v.cfg,
		Vocabulary:   v.vocab.Tokens(),
		IDF:          slices.Clone(v.idf),
		NumDocuments: v.nDocs,
	}, nil
}

// FromState restores a fitted Vectorizer. Inconsistent state is reported as
// an internal error since it can only come from a corrupt artifact.
func FromState(s State) (*Vectorizer, error) {
	if len(s.Vocabulary) == 0 {
		return nil, errs.Internal("vectorizer artifact has an empty vocabulary")
	}
	if !s.Config.Norm.valid() {
		return nil, errs.Internal("vectorizer artifact has unknown norm %q", s.Config.Norm)
	}
	if len(s.IDF) != len(s.Vocabulary) {
		return nil, errs.Internal("vectorizer artifact has %d idf weights for %d tokens", len(s.IDF), len(s.Vocabulary))
	}
	for i, w := range s.IDF {
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return nil, errs.Internal("vectorizer artifact has invalid idf %v for token %q", w, s.Vocabulary[i])
		}
	}
	vocab, err := NewVocabulary(s.Vocabulary)
	if err != nil {
		return nil, errs.Internal("vectorizer artifact: %v", err)
	}

	v := New(s.Config)
	v.vocab = vocab
	v.idf = slices.Clone(s.IDF)
	v.nDocs = s.NumDocuments
	return v, nil
}
