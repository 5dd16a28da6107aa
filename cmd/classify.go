package cmd

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"github.com/trknhr/tonecheck/internal/config"
	"github.com/trknhr/tonecheck/internal/sentiment"
)

func newClassifyCmd(db *sql.DB, cfg *config.Cfg) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "classify <text>",
		Short: "Classify a single piece of feedback",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := loadService(cmd.Context(), db, cfg)
			if err := requireReady(svc); err != nil {
				return err
			}

			p, err := svc.Classify(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			printPrediction(p, svc.Health().Classes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the prediction as JSON")
	return cmd
}

func labelColor(label string) color.Style {
	switch strings.ToLower(label) {
	case "positive":
		return color.New(color.FgGreen, color.OpBold)
	case "negative":
		return color.New(color.FgRed, color.OpBold)
	default:
		return color.New(color.FgYellow, color.OpBold)
	}
}

func printPrediction(p sentiment.Prediction, classes []string) {
	fmt.Printf("%s (%.1f%%)\n", labelColor(p.Label).Render(p.Label), p.Confidence*100)
	for _, c := range classes {
		fmt.Printf("  %-12s %6.2f%%\n", c, p.Probabilities[c]*100)
	}
}
