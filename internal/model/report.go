package model

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

type ClassMetrics struct {
	Label     string  `json:"label"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

type Miss struct {
	Text      string `json:"text"`
	Expected  string `json:"expected"`
	Predicted string `json:"predicted"`
}

// Report is the held-out evaluation of a trained model.
type Report struct {
	Total       int            `json:"total"`
	Correct     int            `json:"correct"`
	Accuracy    float64        `json:"accuracy"`
	Classes     []ClassMetrics `json:"classes"`
	MacroAvg    ClassMetrics   `json:"macro_avg"`
	WeightedAvg ClassMetrics   `json:"weighted_avg"`
	Misses      []Miss         `json:"-"`
}

// Render writes the per-class table followed by the averages.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintf(w, "Accuracy: %.4f (%d/%d)\n\n", r.Accuracy, r.Correct, r.Total)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Class", "Precision", "Recall", "F1", "Support"})
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("\t")

	for _, m := range r.Classes {
		table.Append(row(m))
	}
	table.Append([]string{"", "", "", "", ""})
	table.Append(row(r.MacroAvg))
	table.Append(row(r.WeightedAvg))
	table.Render()
}

// RenderMisses lists up to limit misclassified examples.
func (r *Report) RenderMisses(w io.Writer, limit int) {
	for i, m := range r.Misses {
		if i >= limit {
			fmt.Fprintf(w, "... and %d more\n", len(r.Misses)-limit)
			return
		}
		fmt.Fprintf(w, "🔴 Missed | %q | expected: %s | got: %s\n", m.Text, m.Expected, m.Predicted)
	}
}

func row(m ClassMetrics) []string {
	return []string{
		m.Label,
		fmt.Sprintf("%.2f", m.Precision),
		fmt.Sprintf("%.2f", m.Recall),
		fmt.Sprintf("%.2f", m.F1),
		fmt.Sprintf("%d", m.Support),
	}
}
