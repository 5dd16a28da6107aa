package bayes_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trknhr/tonecheck/internal/bayes"
	"github.com/trknhr/tonecheck/internal/errs"
	"github.com/trknhr/tonecheck/internal/vectorizer"
)

func vec(dense ...float64) vectorizer.Vector {
	v := vectorizer.Vector{Dim: len(dense)}
	for i, w := range dense {
		if w != 0 {
			v.Indices = append(v.Indices, i)
			v.Values = append(v.Values, w)
		}
	}
	return v
}

func feedbackModel(t *testing.T) (*vectorizer.Vectorizer, *bayes.Classifier) {
	t.Helper()
	corpus := []string{"great product", "terrible service", "great support"}
	labels := []string{"positive", "negative", "positive"}

	v := vectorizer.New(vectorizer.DefaultConfig())
	docs, err := v.FitTransform(corpus)
	require.NoError(t, err)

	c := bayes.New(bayes.DefaultConfig())
	require.NoError(t, c.Fit(docs, labels))
	return v, c
}

func TestFit_SortsClasses(t *testing.T) {
	_, c := feedbackModel(t)
	assert.Equal(t, []string{"negative", "positive"}, c.Classes())
	assert.Equal(t, 5, c.NumFeatures())
}

func TestFit_PriorsAndLikelihoods(t *testing.T) {
	_, c := feedbackModel(t)
	s, err := c.State()
	require.NoError(t, err)

	assert.InDelta(t, math.Log(1.0/3.0), s.ClassLogPrior[0], 1e-12)
	assert.InDelta(t, math.Log(2.0/3.0), s.ClassLogPrior[1], 1e-12)

	var priorSum float64
	for _, lp := range s.ClassLogPrior {
		priorSum += math.Exp(lp)
	}
	assert.InDelta(t, 1.0, priorSum, 1e-12)

	for i, row := range s.FeatureLogProb {
		var sum float64
		for _, lp := range row {
			assert.Less(t, lp, 0.0)
			sum += math.Exp(lp)
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "class %s likelihoods must sum to 1", s.Classes[i])
	}
}

func TestFit_InputErrors(t *testing.T) {
	two := []vectorizer.Vector{vec(1, 0), vec(0, 1)}

	tests := []struct {
		name   string
		cfg    bayes.Config
		docs   []vectorizer.Vector
		labels []string
	}{
		{"length mismatch", bayes.DefaultConfig(), two, []string{"a"}},
		{"no documents", bayes.DefaultConfig(), nil, nil},
		{"single class", bayes.DefaultConfig(), two, []string{"a", "a"}},
		{"empty label", bayes.DefaultConfig(), two, []string{"a", ""}},
		{"negative alpha", bayes.Config{Alpha: -1}, two, []string{"a", "b"}},
		{"mixed dimensions", bayes.DefaultConfig(), []vectorizer.Vector{vec(1, 0), vec(0, 1, 0)}, []string{"a", "b"}},
		{"negative weight", bayes.DefaultConfig(), []vectorizer.Vector{vec(1, 0), vec(0, -1)}, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := bayes.New(tt.cfg)
			err := c.Fit(tt.docs, tt.labels)
			assert.True(t, errors.Is(err, errs.ErrInput), "got %v", err)
			assert.False(t, c.Fitted())
		})
	}
}

func TestPredict_KnownToken(t *testing.T) {
	v, c := feedbackModel(t)

	x, err := v.Transform("great")
	require.NoError(t, err)

	label, err := c.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, "positive", label)

	proba, err := c.PredictProba(x)
	require.NoError(t, err)
	assert.Greater(t, proba[1], 0.5)

	x, err = v.Transform("terrible")
	require.NoError(t, err)
	label, err = c.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, "negative", label)
}

func TestPredict_UnknownTokensFallBackToPrior(t *testing.T) {
	v, c := feedbackModel(t)

	x, err := v.Transform("completely unrelated words")
	require.NoError(t, err)
	require.Zero(t, x.NNZ())

	label, err := c.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, "positive", label)

	proba, err := c.PredictProba(x)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, proba[1], 1e-12)
}

func TestPredict_TieGoesToFirstClass(t *testing.T) {
	c := bayes.New(bayes.DefaultConfig())
	require.NoError(t, c.Fit([]vectorizer.Vector{vec(1, 0), vec(0, 1)}, []string{"zeta", "alpha"}))

	for i := 0; i < 10; i++ {
		label, err := c.Predict(vectorizer.Vector{Dim: 2})
		require.NoError(t, err)
		assert.Equal(t, "alpha", label)
	}

	proba, err := c.PredictProba(vectorizer.Vector{Dim: 2})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, proba[0], 1e-12)
	assert.InDelta(t, 0.5, proba[1], 1e-12)
}

func TestPredictProba_IsDistribution(t *testing.T) {
	c := bayes.New(bayes.Config{Alpha: 0.5})
	docs := []vectorizer.Vector{
		vec(3, 0, 1, 0), vec(2, 1, 0, 0), vec(0, 0, 4, 1), vec(0, 5, 0, 2), vec(1, 1, 1, 1),
	}
	require.NoError(t, c.Fit(docs, []string{"pos", "pos", "neg", "neutral", "neutral"}))

	inputs := []vectorizer.Vector{
		vec(0, 0, 0, 0), vec(1, 0, 0, 0), vec(0, 0, 0, 1), vec(500, 0, 0, 0), vec(1000, 1000, 0, 1000),
	}
	for _, x := range inputs {
		proba, err := c.PredictProba(x)
		require.NoError(t, err)
		require.Len(t, proba, 3)

		var sum float64
		for _, p := range proba {
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-6)

		logProba, err := c.PredictLogProba(x)
		require.NoError(t, err)
		for i := range proba {
			assert.InDelta(t, proba[i], math.Exp(logProba[i]), 1e-9)
		}
	}
}

func TestPredict_ArgmaxMatchesProba(t *testing.T) {
	v, c := feedbackModel(t)
	classes := c.Classes()

	for _, text := range []string{"great", "terrible service", "great support but terrible product", ""} {
		x, err := v.Transform(text)
		require.NoError(t, err)
		label, err := c.Predict(x)
		require.NoError(t, err)
		proba, err := c.PredictProba(x)
		require.NoError(t, err)

		best := 0
		for i := range proba {
			if proba[i] > proba[best] {
				best = i
			}
		}
		assert.Equal(t, classes[best], label, text)
	}
}

func TestPredict_DimensionMismatch(t *testing.T) {
	_, c := feedbackModel(t)

	_, err := c.Predict(vec(1, 0, 0))
	assert.True(t, errors.Is(err, errs.ErrInput), "got %v", err)

	_, err = c.PredictProba(vectorizer.Vector{Dim: 6})
	assert.True(t, errors.Is(err, errs.ErrInput), "got %v", err)
}

func TestPredict_NotFitted(t *testing.T) {
	_, err := bayes.New(bayes.DefaultConfig()).Predict(vec(1))
	assert.True(t, errors.Is(err, errs.ErrNotReady))
}

func TestUniformPrior(t *testing.T) {
	c := bayes.New(bayes.Config{Alpha: 1, UniformPrior: true})
	docs := []vectorizer.Vector{vec(1, 0), vec(1, 0), vec(0, 1)}
	require.NoError(t, c.Fit(docs, []string{"a", "a", "b"}))

	proba, err := c.PredictProba(vectorizer.Vector{Dim: 2})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, proba[0], 1e-12)
}

func TestZeroAlphaIsClamped(t *testing.T) {
	c := bayes.New(bayes.Config{Alpha: 0})
	require.NoError(t, c.Fit([]vectorizer.Vector{vec(1, 0), vec(0, 1)}, []string{"a", "b"}))

	proba, err := c.PredictProba(vec(1, 0))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, proba[0], 1e-6)
	assert.False(t, math.IsNaN(proba[1]))
}

func TestState_RoundTrip(t *testing.T) {
	v, c := feedbackModel(t)
	s, err := c.State()
	require.NoError(t, err)

	restored, err := bayes.FromState(s)
	require.NoError(t, err)
	assert.Equal(t, c.Classes(), restored.Classes())

	x, _ := v.Transform("great support")
	want, _ := c.PredictProba(x)
	got, err := restored.PredictProba(x)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFromState_RejectsCorruptState(t *testing.T) {
	_, c := feedbackModel(t)
	good, err := c.State()
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(s *bayes.State)
	}{
		{"one class", func(s *bayes.State) { s.Classes = s.Classes[:1] }},
		{"unsorted classes", func(s *bayes.State) { s.Classes = []string{"positive", "negative"} }},
		{"short likelihood row", func(s *bayes.State) { s.FeatureLogProb[0] = s.FeatureLogProb[0][:2] }},
		{"positive log prob", func(s *bayes.State) { s.FeatureLogProb[1][0] = 0.5 }},
		{"nan prior", func(s *bayes.State) { s.ClassLogPrior[0] = math.NaN() }},
		{"zero features", func(s *bayes.State) { s.NumFeatures = 0 }},
		{"priors not summing to one", func(s *bayes.State) { s.ClassLogPrior = []float64{-0.1, -0.1} }},
		{"unnormalised likelihoods", func(s *bayes.State) { s.FeatureLogProb[0][0] -= 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := c.State()
			require.NoError(t, err)
			tt.mutate(&s)
			_, err = bayes.FromState(s)
			assert.True(t, errors.Is(err, errs.ErrInternal), "got %v", err)
		})
	}

	// the original must be untouched by mutations of exported copies
	again, err := c.State()
	require.NoError(t, err)
	assert.Equal(t, good, again)
}
