package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trknhr/tonecheck/internal/errs"
	"github.com/trknhr/tonecheck/internal/sentiment"
)

type stubClassifier struct{}

func (stubClassifier) Classify(text string) (sentiment.Prediction, error) {
	if text == "broken" {
		return sentiment.Prediction{}, errs.NotReady("Model not loaded")
	}
	return sentiment.Prediction{
		Text:          text,
		Label:         "positive",
		Confidence:    0.8,
		Probabilities: map[string]float64{"negative": 0.2, "positive": 0.8},
	}, nil
}

func (stubClassifier) Health() sentiment.Health {
	return sentiment.Health{Ready: true, Classes: []string{"negative", "positive"}}
}

func typeText(m *tuiModel, text string) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return cmd
}

func TestTui_ClassifiesWhileTyping(t *testing.T) {
	m := NewTuiModel(stubClassifier{}, "")

	cmd := typeText(m, "great")
	require.NotNil(t, cmd)
	assert.Equal(t, "great", m.lastInput)

	msg := classifyCmd(m.svc, "great")()
	m.Update(msg)
	require.NotNil(t, m.result)
	assert.Equal(t, "positive", m.result.Label)
	assert.Len(t, m.list.Items(), 2)
	assert.Contains(t, m.View(), "positive")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	p, ok := m.Final()
	assert.True(t, ok)
	assert.Equal(t, "great", p.Text)
}

func TestTui_EnterWaitsForPendingPrediction(t *testing.T) {
	m := NewTuiModel(stubClassifier{}, "")
	typeText(m, "great")
	m.Update(classifyCmd(m.svc, "great")())
	require.NotNil(t, m.result)

	typeText(m, " product")
	assert.Equal(t, "great product", m.lastInput)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	_, ok := m.Final()
	assert.False(t, ok, "result for the older text must not be accepted")
	assert.Contains(t, m.View(), "classifying")

	m.Update(predictionMsg{text: "great", prediction: sentiment.Prediction{Text: "great"}})
	_, ok = m.Final()
	assert.False(t, ok)

	_, cmd = m.Update(classifyCmd(m.svc, "great product")())
	require.NotNil(t, cmd)
	p, ok := m.Final()
	require.True(t, ok)
	assert.Equal(t, "great product", p.Text)
}

func TestTui_DiscardsStalePredictions(t *testing.T) {
	m := NewTuiModel(stubClassifier{}, "")
	typeText(m, "great")

	m.Update(predictionMsg{text: "gre", prediction: sentiment.Prediction{Label: "negative"}})
	assert.Nil(t, m.result)
}

func TestTui_ShowsErrors(t *testing.T) {
	m := NewTuiModel(stubClassifier{}, "")
	typeText(m, "broken")

	m.Update(classifyCmd(m.svc, "broken")())
	assert.True(t, errors.Is(m.err, errs.ErrNotReady))
	assert.Contains(t, m.View(), "Model not loaded")

	_, ok := m.Final()
	assert.False(t, ok)
}

func TestTui_EscQuitsWithoutResult(t *testing.T) {
	m := NewTuiModel(stubClassifier{}, "")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok := m.Final()
	assert.False(t, ok)
}
