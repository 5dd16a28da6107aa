package model

import (
	"time"

	"github.com/trknhr/tonecheck/internal/bayes"
	"github.com/trknhr/tonecheck/internal/errs"
	"github.com/trknhr/tonecheck/internal/vectorizer"
	"gonum.org/v1/gonum/floats"
)

// Pipeline chains a fitted Vectorizer and Classifier. It holds no mutable
// state and is safe for concurrent use.
type Pipeline struct {
	ID         string
	CreatedAt  time.Time
	Vectorizer *vectorizer.Vectorizer
	Classifier *bayes.Classifier
}

// NewPipeline restores both stages from a, rejecting artifacts whose
// vocabulary size differs from the classifier's feature count.
func NewPipeline(a *Artifacts) (*Pipeline, error) {
	if a == nil {
		return nil, errs.NotReady("no artifacts")
	}
	vec, err := vectorizer.FromState(a.Vectorizer)
	if err != nil {
		return nil, err
	}
	clf, err := bayes.FromState(a.Classifier)
	if err != nil {
		return nil, err
	}
	if vec.Dim() != clf.NumFeatures() {
		return nil, errs.Internal("vectorizer has %d features but classifier was trained on %d", vec.Dim(), clf.NumFeatures())
	}
	return &Pipeline{ID: a.ID, CreatedAt: a.CreatedAt, Vectorizer: vec, Classifier: clf}, nil
}

// Result of running one text through the pipeline. Probabilities are
// aligned with Classifier.Classes().
type Result struct {
	Label         string
	Confidence    float64
	Probabilities []float64
}

func (p *Pipeline) Predict(text string) (Result, error) {
	x, err := p.Vectorizer.Transform(text)
	if err != nil {
		return Result{}, err
	}
	label, err := p.Classifier.Predict(x)
	if err != nil {
		return Result{}, err
	}
	proba, err := p.Classifier.PredictProba(x)
	if err != nil {
		return Result{}, err
	}
	return Result{Label: label, Confidence: floats.Max(proba), Probabilities: proba}, nil
}

// PredictLabel satisfies Predictor.
func (p *Pipeline) PredictLabel(text string) (string, error) {
	r, err := p.Predict(text)
	return r.Label, err
}

func (p *Pipeline) Classes() []string {
	return p.Classifier.Classes()
}
