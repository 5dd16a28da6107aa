package bayes

import (
	"math"
	"slices"

	"github.com/trknhr/tonecheck/internal/errs"
	"gonum.org/v1/gonum/floats"
)

// logSumTolerance bounds how far a stored log-distribution may drift from
// summing to one.
const logSumTolerance = 1e-6

// State is the frozen, serializable form of a fitted Classifier. Feature
// counts are kept alongside the log-probabilities so the artifact can be
// inspected and the likelihoods re-derived.
type State struct {
	Config         Config      `json:"config"`
	Classes        []string    `json:"classes"`
	ClassCount     []float64   `json:"class_count"`
	ClassLogPrior  []float64   `json:"class_log_prior"`
	FeatureCount   [][]float64 `json:"feature_count"`
	FeatureLogProb [][]float64 `json:"feature_log_prob"`
	NumFeatures    int         `json:"num_features"`
}

func (c *Classifier) State() (State, error) {
	if !c.Fitted() {
		return State{}, errs.NotReady("classifier is not fitted")
	}
	return State{
		Config:         c.cfg,
		Classes:        slices.Clone(c.classes),
		ClassCount:     slices.Clone(c.classCount),
		ClassLogPrior:  slices.Clone(c.classLogPrior),
		FeatureCount:   cloneMatrix(c.featureCount),
		FeatureLogProb: cloneMatrix(c.featureLogProb),
		NumFeatures:    c.nFeatures,
	}, nil
}

// FromState restores a fitted Classifier. Any inconsistency is an internal
// error: it can only come from a corrupt artifact.
func FromState(s State) (*Classifier, error) {
	nc := len(s.Classes)
	if nc < 2 {
		return nil, errs.Internal("classifier artifact has %d classes", nc)
	}
	if !slices.IsSorted(s.Classes) || len(slices.Compact(slices.Clone(s.Classes))) != nc {
		return nil, errs.Internal("classifier artifact classes are not sorted and unique")
	}
	if s.NumFeatures <= 0 {
		return nil, errs.Internal("classifier artifact has %d features", s.NumFeatures)
	}
	if len(s.ClassCount) != nc || len(s.ClassLogPrior) != nc ||
		len(s.FeatureCount) != nc || len(s.FeatureLogProb) != nc {
		return nil, errs.Internal("classifier artifact per-class tables do not match %d classes", nc)
	}
	for i := range s.Classes {
		if len(s.FeatureCount[i]) != s.NumFeatures || len(s.FeatureLogProb[i]) != s.NumFeatures {
			return nil, errs.Internal("classifier artifact class %q does not have %d features", s.Classes[i], s.NumFeatures)
		}
		if !finite(s.ClassLogPrior[i]) || s.ClassLogPrior[i] > 0 {
			return nil, errs.Internal("classifier artifact class %q has invalid prior", s.Classes[i])
		}
		for _, lp := range s.FeatureLogProb[i] {
			if !finite(lp) || lp > 0 {
				return nil, errs.Internal("classifier artifact class %q has invalid likelihood", s.Classes[i])
			}
		}
		if !sumsToOne(s.FeatureLogProb[i]) {
			return nil, errs.Internal("classifier artifact class %q likelihoods are not normalised", s.Classes[i])
		}
	}
	if !sumsToOne(s.ClassLogPrior) {
		return nil, errs.Internal("classifier artifact priors do not sum to one")
	}

	return &Classifier{
		cfg:            s.Config,
		classes:        slices.Clone(s.Classes),
		classCount:     slices.Clone(s.ClassCount),
		classLogPrior:  slices.Clone(s.ClassLogPrior),
		featureCount:   cloneMatrix(s.FeatureCount),
		featureLogProb: cloneMatrix(s.FeatureLogProb),
		nFeatures:      s.NumFeatures,
	}, nil
}

// sumsToOne reports whether exp(logp) is a probability distribution.
func sumsToOne(logp []float64) bool {
	return math.Abs(floats.LogSumExp(logp)) <= logSumTolerance
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func cloneMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = slices.Clone(row)
	}
	return out
}
