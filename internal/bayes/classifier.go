// Package bayes implements a multinomial naive Bayes classifier over the
// sparse vectors produced by the vectorizer package.
package bayes

import (
	"math"
	"slices"

	"github.com/samber/lo"
	"github.com/trknhr/tonecheck/internal/errs"
	"github.com/trknhr/tonecheck/internal/vectorizer"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultAlpha is additive (Laplace) smoothing.
	DefaultAlpha = 1.0
	// minAlpha keeps log-likelihoods finite when smoothing is switched off.
	minAlpha = 1e-10
)

type Config struct {
	Alpha float64 `json:"alpha"`
	// UniformPrior ignores class frequencies and gives every class the same prior.
	UniformPrior bool `json:"uniform_prior,omitempty"`
}

func DefaultConfig() Config {
	return Config{Alpha: DefaultAlpha}
}

// Classifier is immutable after Fit; Predict and PredictProba are safe for
// concurrent use.
type Classifier struct {
	cfg Config

	// classes are sorted; every other per-class slice is aligned with them.
	classes        []string
	classCount     []float64
	classLogPrior  []float64
	featureCount   [][]float64
	featureLogProb [][]float64
	nFeatures      int
}

func New(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

func (c *Classifier) Config() Config {
	return c.cfg
}

func (c *Classifier) Fitted() bool {
	return len(c.classes) > 0
}

// Classes returns the class labels in the order used by PredictProba.
func (c *Classifier) Classes() []string {
	return slices.Clone(c.classes)
}

// NumFeatures is the dimensionality the classifier was trained on.
func (c *Classifier) NumFeatures() int {
	return c.nFeatures
}

// Fit learns class priors and smoothed per-class token likelihoods.
func (c *Classifier) Fit(docs []vectorizer.Vector, labels []string) error {
	if len(docs) != len(labels) {
		return errs.Input("got %d documents but %d labels", len(docs), len(labels))
	}
	if len(docs) == 0 {
		return errs.Input("cannot fit classifier without documents")
	}
	if c.cfg.Alpha < 0 {
		return errs.Input("smoothing alpha must be >= 0, got %v", c.cfg.Alpha)
	}
	if i := slices.Index(labels, ""); i >= 0 {
		return errs.Input("document %d has an empty label", i)
	}

	classes := lo.Uniq(labels)
	if len(classes) < 2 {
		return errs.Input("need at least 2 distinct labels, got %d", len(classes))
	}
	slices.Sort(classes)
	classIndex := make(map[string]int, len(classes))
	for i, cl := range classes {
		classIndex[cl] = i
	}

	nFeatures := docs[0].Dim
	if nFeatures <= 0 {
		return errs.Input("documents have no features")
	}

	classCount := make([]float64, len(classes))
	featureCount := make([][]float64, len(classes))
	for i := range featureCount {
		featureCount[i] = make([]float64, nFeatures)
	}

	for d, doc := range docs {
		if doc.Dim != nFeatures {
			return errs.Input("document %d has dimension %d, expected %d", d, doc.Dim, nFeatures)
		}
		ci := classIndex[labels[d]]
		classCount[ci]++
		for k, j := range doc.Indices {
			w := doc.Values[k]
			if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
				return errs.Input("document %d has invalid weight %v at feature %d", d, w, j)
			}
			featureCount[ci][j] += w
		}
	}

	c.classes = classes
	c.classCount = classCount
	c.featureCount = featureCount
	c.nFeatures = nFeatures
	c.updateLogProbs()
	return nil
}

func (c *Classifier) effectiveAlpha() float64 {
	return max(c.cfg.Alpha, minAlpha)
}

func (c *Classifier) updateLogProbs() {
	alpha := c.effectiveAlpha()
	nDocs := floats.Sum(c.classCount)

	c.classLogPrior = make([]float64, len(c.classes))
	c.featureLogProb = make([][]float64, len(c.classes))
	for i := range c.classes {
		if c.cfg.UniformPrior {
			c.classLogPrior[i] = -math.Log(float64(len(c.classes)))
		} else {
			c.classLogPrior[i] = math.Log(c.classCount[i] / nDocs)
		}

		denom := math.Log(floats.Sum(c.featureCount[i]) + alpha*float64(c.nFeatures))
		logProb := make([]float64, c.nFeatures)
		for j, fc := range c.featureCount[i] {
			logProb[j] = math.Log(fc+alpha) - denom
		}
		c.featureLogProb[i] = logProb
	}
}

// jointLogLikelihood returns log P(c) + sum_j x_j log P(j|c) for every class.
func (c *Classifier) jointLogLikelihood(v vectorizer.Vector) ([]float64, error) {
	if !c.Fitted() {
		return nil, errs.NotReady("classifier is not fitted")
	}
	if v.Dim != c.nFeatures {
		return nil, errs.Input("vector has dimension %d, classifier expects %d", v.Dim, c.nFeatures)
	}
	if len(v.Indices) != len(v.Values) {
		return nil, errs.Input("vector has %d indices but %d values", len(v.Indices), len(v.Values))
	}

	jll := slices.Clone(c.classLogPrior)
	for i := range c.classes {
		logProb := c.featureLogProb[i]
		for k, j := range v.Indices {
			if j < 0 || j >= c.nFeatures {
				return nil, errs.Input("feature index %d out of range [0, %d)", j, c.nFeatures)
			}
			jll[i] += v.Values[k] * logProb[j]
		}
	}
	return jll, nil
}

// Predict returns the most likely class. Equal scores resolve to the class
// that sorts first.
func (c *Classifier) Predict(v vectorizer.Vector) (string, error) {
	jll, err := c.jointLogLikelihood(v)
	if err != nil {
		return "", err
	}
	return c.classes[floats.MaxIdx(jll)], nil
}

// PredictProba returns the posterior distribution over Classes().
func (c *Classifier) PredictProba(v vectorizer.Vector) ([]float64, error) {
	jll, err := c.jointLogLikelihood(v)
	if err != nil {
		return nil, err
	}
	logNorm := floats.LogSumExp(jll)
	if math.IsNaN(logNorm) || math.IsInf(logNorm, 0) {
		return nil, errs.Internal("posterior normalization is not finite")
	}
	proba := make([]float64, len(jll))
	for i, s := range jll {
		proba[i] = math.Exp(s - logNorm)
	}
	return proba, nil
}

// PredictLogProba returns the log posterior distribution over Classes().
func (c *Classifier) PredictLogProba(v vectorizer.Vector) ([]float64, error) {
	jll, err := c.jointLogLikelihood(v)
	if err != nil {
		return nil, err
	}
	logNorm := floats.LogSumExp(jll)
	floats.AddConst(-logNorm, jll)
	return jll, nil
}
