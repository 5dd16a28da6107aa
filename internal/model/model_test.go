package model_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trknhr/tonecheck/internal/dataset"
	"github.com/trknhr/tonecheck/internal/errs"
	"github.com/trknhr/tonecheck/internal/model"
)

var feedback = []dataset.Example{
	{Text: "great product, love it", Label: "positive"},
	{Text: "excellent support and great service", Label: "positive"},
	{Text: "terrible service, very slow", Label: "negative"},
	{Text: "awful experience, terrible product", Label: "negative"},
	{Text: "it arrived on tuesday", Label: "neutral"},
	{Text: "the box was blue", Label: "neutral"},
}

func trained(t *testing.T) *model.Artifacts {
	t.Helper()
	a, err := model.Train(feedback, model.DefaultTrainConfig())
	require.NoError(t, err)
	return a
}

func TestTrain(t *testing.T) {
	a := trained(t)

	assert.NotEmpty(t, a.ID)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, dataset.Fingerprint(feedback), a.DatasetHash)
	assert.Equal(t, 6, a.NumExamples)
	assert.Equal(t, []string{"negative", "neutral", "positive"}, a.Classifier.Classes)
	assert.Equal(t, len(a.Vectorizer.Vocabulary), a.Classifier.NumFeatures)

	other := trained(t)
	assert.NotEqual(t, a.ID, other.ID)
}

func TestTrain_InputErrors(t *testing.T) {
	_, err := model.Train(nil, model.DefaultTrainConfig())
	assert.True(t, errors.Is(err, errs.ErrInput))

	_, err = model.Train([]dataset.Example{{Text: "great", Label: "positive"}, {Text: "fine", Label: "positive"}}, model.DefaultTrainConfig())
	assert.True(t, errors.Is(err, errs.ErrInput), "single class: %v", err)
}

func TestPipeline_Predict(t *testing.T) {
	p, err := model.NewPipeline(trained(t))
	require.NoError(t, err)

	res, err := p.Predict("great product")
	require.NoError(t, err)
	assert.Equal(t, "positive", res.Label)
	assert.Len(t, res.Probabilities, 3)
	assert.Equal(t, res.Probabilities[2], res.Confidence)

	var sum float64
	for _, pr := range res.Probabilities {
		sum += pr
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	label, err := p.PredictLabel("terrible and slow")
	require.NoError(t, err)
	assert.Equal(t, "negative", label)
}

func TestNewPipeline_RejectsMismatchedArtifacts(t *testing.T) {
	a := trained(t)
	a.Vectorizer.Vocabulary = a.Vectorizer.Vocabulary[:3]
	a.Vectorizer.IDF = a.Vectorizer.IDF[:3]

	_, err := model.NewPipeline(a)
	assert.True(t, errors.Is(err, errs.ErrInternal), "got %v", err)

	_, err = model.NewPipeline(nil)
	assert.True(t, errors.Is(err, errs.ErrNotReady))
}

type stubPredictor map[string]string

func (s stubPredictor) PredictLabel(text string) (string, error) {
	if label, ok := s[text]; ok {
		return label, nil
	}
	return "", errs.Internal("unexpected text %q", text)
}

func TestEvaluate(t *testing.T) {
	examples := []dataset.Example{
		{Text: "a", Label: "pos"},
		{Text: "b", Label: "pos"},
		{Text: "c", Label: "neg"},
		{Text: "d", Label: "neg"},
	}
	p := stubPredictor{"a": "pos", "b": "neg", "c": "neg", "d": "neg"}

	r, err := model.Evaluate(context.Background(), p, examples)
	require.NoError(t, err)

	assert.Equal(t, 4, r.Total)
	assert.Equal(t, 3, r.Correct)
	assert.InDelta(t, 0.75, r.Accuracy, 1e-12)
	require.Len(t, r.Classes, 2)

	neg := r.Classes[0]
	assert.Equal(t, "neg", neg.Label)
	assert.InDelta(t, 2.0/3.0, neg.Precision, 1e-12)
	assert.InDelta(t, 1.0, neg.Recall, 1e-12)
	assert.InDelta(t, 0.8, neg.F1, 1e-12)
	assert.Equal(t, 2, neg.Support)

	pos := r.Classes[1]
	assert.InDelta(t, 1.0, pos.Precision, 1e-12)
	assert.InDelta(t, 0.5, pos.Recall, 1e-12)

	assert.InDelta(t, (2.0/3.0+1.0)/2, r.MacroAvg.Precision, 1e-12)
	assert.Equal(t, []model.Miss{{Text: "b", Expected: "pos", Predicted: "neg"}}, r.Misses)
}

func TestEvaluate_Errors(t *testing.T) {
	_, err := model.Evaluate(context.Background(), stubPredictor{}, nil)
	assert.True(t, errors.Is(err, errs.ErrInput))

	_, err = model.Evaluate(context.Background(), stubPredictor{}, []dataset.Example{{Text: "x", Label: "pos"}})
	assert.True(t, errors.Is(err, errs.ErrInternal))
}

func TestScore_UnseenPredictedLabel(t *testing.T) {
	r := model.Score([]string{"pos", "pos"}, []string{"pos", "other"}, nil)
	require.Len(t, r.Classes, 2)
	assert.Equal(t, "other", r.Classes[0].Label)
	assert.Zero(t, r.Classes[0].Support)
	assert.Zero(t, r.Classes[0].Precision)
	assert.Nil(t, r.Misses)
}

func TestReport_Render(t *testing.T) {
	r := model.Score([]string{"pos", "neg"}, []string{"pos", "pos"}, []dataset.Example{{Text: "ok"}, {Text: "bad"}})

	var buf bytes.Buffer
	r.Render(&buf)
	out := buf.String()
	assert.Contains(t, out, "Accuracy: 0.5000 (1/2)")
	assert.Contains(t, out, "Precision")
	assert.Contains(t, out, "macro avg")
	assert.Contains(t, out, "weighted avg")

	buf.Reset()
	r.RenderMisses(&buf, 5)
	assert.Contains(t, buf.String(), `"bad"`)
}
