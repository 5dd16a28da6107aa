package model

import (
	"context"
	"runtime"
	"slices"

	"github.com/samber/lo"
	"github.com/trknhr/tonecheck/internal/dataset"
	"github.com/trknhr/tonecheck/internal/errs"
	"golang.org/x/sync/errgroup"
)

// Predictor is anything that maps a text to a single label.
type Predictor interface {
	PredictLabel(text string) (string, error)
}

// Evaluate predicts every held-out example and scores the predictions
// against the true labels.
func Evaluate(ctx context.Context, p Predictor, examples []dataset.Example) (*Report, error) {
	if len(examples) == 0 {
		return nil, errs.Input("no evaluation examples")
	}

	predicted := make([]string, len(examples))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, ex := range examples {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			label, err := p.PredictLabel(ex.Text)
			if err != nil {
				return err
			}
			predicted[i] = label
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Score(dataset.Labels(examples), predicted, examples), nil
}

// Score builds a classification report from aligned true and predicted
// labels. examples, when non-nil, supplies the texts listed as misses.
func Score(truth, predicted []string, examples []dataset.Example) *Report {
	labels := lo.Uniq(append(slices.Clone(truth), predicted...))
	slices.Sort(labels)

	tp := make(map[string]int, len(labels))
	fp := make(map[string]int, len(labels))
	fn := make(map[string]int, len(labels))

	r := &Report{Total: len(truth)}
	for i, want := range truth {
		got := predicted[i]
		if got == want {
			r.Correct++
			tp[want]++
			continue
		}
		fp[got]++
		fn[want]++
		if examples != nil {
			r.Misses = append(r.Misses, Miss{Text: examples[i].Text, Expected: want, Predicted: got})
		}
	}
	if r.Total > 0 {
		r.Accuracy = float64(r.Correct) / float64(r.Total)
	}

	var macro, weighted ClassMetrics
	for _, label := range labels {
		m := ClassMetrics{
			Label:     label,
			Precision: ratio(tp[label], tp[label]+fp[label]),
			Recall:    ratio(tp[label], tp[label]+fn[label]),
			Support:   tp[label] + fn[label],
		}
		m.F1 = f1(m.Precision, m.Recall)
		r.Classes = append(r.Classes, m)

		macro.Precision += m.Precision
		macro.Recall += m.Recall
		macro.F1 += m.F1
		w := float64(m.Support)
		weighted.Precision += m.Precision * w
		weighted.Recall += m.Recall * w
		weighted.F1 += m.F1 * w
	}

	if n := float64(len(labels)); n > 0 {
		r.MacroAvg = ClassMetrics{Label: "macro avg", Precision: macro.Precision / n, Recall: macro.Recall / n, F1: macro.F1 / n, Support: r.Total}
	}
	if t := float64(r.Total); t > 0 {
		r.WeightedAvg = ClassMetrics{Label: "weighted avg", Precision: weighted.Precision / t, Recall: weighted.Recall / t, F1: weighted.F1 / t, Support: r.Total}
	}
	return r
}

// ratio scores an empty denominator as 0.
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func f1(p, r float64) float64 {
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}
