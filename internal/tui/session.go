package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/trknhr/tonecheck/internal/errs"
	"github.com/trknhr/tonecheck/internal/sentiment"
)

// Classifier is the part of sentiment.Service the UI needs.
type Classifier interface {
	Classify(text string) (sentiment.Prediction, error)
	Health() sentiment.Health
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type tuiModel struct {
	input     textinput.Model
	list      list.Model
	bar       progress.Model
	svc       Classifier
	lastInput string
	// resultFor is the input the current result or err belongs to.
	resultFor string
	result    *sentiment.Prediction
	err       error
	// accepting is set when Enter arrives before lastInput is classified.
	accepting bool
	final     *sentiment.Prediction
}

// compactDelegate renders items in a single-line compact form.
type compactDelegate struct{}

func (d compactDelegate) Height() int                               { return 1 }
func (d compactDelegate) Spacing() int                              { return 0 }
func (d compactDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d compactDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(classItem)
	if !ok {
		return
	}
	str := fmt.Sprintf("%-12s %6.2f%%", i.label, i.proba*100)
	if i.top {
		str = labelStyle.Render("> " + str)
	} else {
		str = "  " + str
	}
	fmt.Fprint(w, str)
}

type classItem struct {
	label string
	proba float64
	top   bool
}

func (i classItem) Title() string       { return i.label }
func (i classItem) Description() string { return "" }
func (i classItem) FilterValue() string { return i.label }

func NewTuiModel(svc Classifier, initialInput string) *tuiModel {
	input := textinput.New()
	input.Placeholder = "Type some feedback..."
	input.SetValue(initialInput)
	input.Focus()

	l := list.New([]list.Item{}, &compactDelegate{}, 40, 6)
	l.SetShowPagination(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return &tuiModel{
		input: input,
		list:  l,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithoutPercentage()),
		svc:   svc,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if text := strings.TrimSpace(m.input.Value()); text != "" {
		m.lastInput = text
		cmds = append(cmds, classifyCmd(m.svc, text))
	}
	return tea.Batch(cmds...)
}

type predictionMsg struct {
	text       string
	prediction sentiment.Prediction
	err        error
}

func classifyCmd(svc Classifier, text string) tea.Cmd {
	return func() tea.Msg {
		p, err := svc.Classify(text)
		return predictionMsg{text, p, err}
	}
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(40, max(10, msg.Width-20))
		m.list.SetSize(msg.Width, min(6, max(1, msg.Height-8)))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.lastInput != "" && m.resultFor != m.lastInput {
				m.accepting = true
				return m, nil
			}
			return m.accept()

		default:
			m.accepting = false
			m.input, _ = m.input.Update(msg)
		}

	case predictionMsg:
		if msg.text != m.lastInput {
			// discard outdated predictions
			return m, nil
		}
		m.resultFor = msg.text
		if msg.err != nil {
			m.err = msg.err
			m.result = nil
			m.accepting = false
			m.list.SetItems([]list.Item{})
			return m, nil
		}
		m.err = nil
		m.result = &msg.prediction
		m.list.SetItems(classItems(msg.prediction, m.svc.Health().Classes))
		if m.accepting {
			return m.accept()
		}
	}

	text := strings.TrimSpace(m.input.Value())
	if text != m.lastInput {
		m.lastInput = text
		if text != "" {
			cmds = append(cmds, classifyCmd(m.svc, text))
		} else {
			m.result = nil
			m.err = nil
			m.list.SetItems([]list.Item{})
		}
	}

	return m, tea.Batch(cmds...)
}

// accept quits, keeping the result if it belongs to the current input.
func (m *tuiModel) accept() (tea.Model, tea.Cmd) {
	if m.result != nil && m.resultFor == m.lastInput {
		final := *m.result
		m.final = &final
	}
	return m, tea.Quit
}

// classItems lists classes in training order, marking the predicted one.
func classItems(p sentiment.Prediction, classes []string) []list.Item {
	items := make([]list.Item, 0, len(classes))
	for _, c := range classes {
		items = append(items, classItem{label: c, proba: p.Probabilities[c], top: c == p.Label})
	}
	return items
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("tonecheck") + "\n\n")
	b.WriteString(m.input.View() + "\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errStyle.Render(errs.Detail(m.err)) + "\n")
	case m.result != nil:
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(m.result.Label), m.bar.ViewAs(m.result.Confidence))
		b.WriteString(m.list.View() + "\n")
	default:
		b.WriteString(dimStyle.Render("waiting for input") + "\n")
	}

	if m.accepting {
		b.WriteString(dimStyle.Render("classifying...") + "\n")
	}
	b.WriteString(dimStyle.Render("(enter = accept, esc = quit)"))
	return b.String()
}

// Final returns the prediction accepted with Enter, if any.
func (m *tuiModel) Final() (sentiment.Prediction, bool) {
	if m.final == nil {
		return sentiment.Prediction{}, false
	}
	return *m.final, true
}

// Run starts the interactive classifier and returns the accepted prediction.
func Run(svc Classifier, initialInput string) (sentiment.Prediction, bool, error) {
	m := NewTuiModel(svc, initialInput)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return sentiment.Prediction{}, false, err
	}
	p, ok := m.Final()
	return p, ok, nil
}
