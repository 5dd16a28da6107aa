package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/trknhr/tonecheck/internal/bayes"
	"github.com/trknhr/tonecheck/internal/dataset"
	"github.com/trknhr/tonecheck/internal/errs"
	"github.com/trknhr/tonecheck/internal/logger"
	"github.com/trknhr/tonecheck/internal/vectorizer"
)

type TrainConfig struct {
	Vectorizer vectorizer.Config
	Classifier bayes.Config
}

func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Vectorizer: vectorizer.DefaultConfig(),
		Classifier: bayes.DefaultConfig(),
	}
}

// Train fits the vectorizer on the example texts, then the classifier on the
// resulting vectors. Nothing is returned unless both stages succeed.
func Train(examples []dataset.Example, cfg TrainConfig) (*Artifacts, error) {
	if len(examples) == 0 {
		return nil, errs.Input("no training examples")
	}
	texts := dataset.Texts(examples)
	labels := dataset.Labels(examples)

	vec := vectorizer.New(cfg.Vectorizer)
	docs, err := vec.FitTransform(texts)
	if err != nil {
		return nil, err
	}

	clf := bayes.New(cfg.Classifier)
	if err := clf.Fit(docs, labels); err != nil {
		return nil, err
	}

	vecState, err := vec.State()
	if err != nil {
		return nil, err
	}
	clfState, err := clf.State()
	if err != nil {
		return nil, err
	}

	a := &Artifacts{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		DatasetHash: dataset.Fingerprint(examples),
		NumExamples: len(examples),
		Vectorizer:  vecState,
		Classifier:  clfState,
	}
	logger.Info("model trained",
		"id", a.ID,
		"examples", a.NumExamples,
		"features", vec.Dim(),
		"classes", clf.Classes(),
	)
	return a, nil
}
