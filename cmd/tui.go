package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trknhr/tonecheck/internal/config"
	"github.com/trknhr/tonecheck/internal/tui"
)

func newTuiCmd(db *sql.DB, cfg *config.Cfg) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "tui [text]",
		Short: "Classify feedback interactively as you type",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := loadService(cmd.Context(), db, cfg)
			if err := requireReady(svc); err != nil {
				return err
			}

			p, ok, err := tui.Run(svc, strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("failed to run TUI: %w", err)
			}
			if !ok {
				return nil
			}
			if outFile != "" {
				f, err := os.Create(outFile)
				if err != nil {
					return err
				}
				defer f.Close()
				_, err = fmt.Fprintf(f, "%s\t%.4f\t%s\n", p.Label, p.Confidence, p.Text)
				return err
			}
			printPrediction(p, svc.Health().Classes)
			return nil
		},
	}

	cmd.Flags().StringVar(&outFile, "out-file", "", "write the accepted prediction to file instead of stdout (script-friendly)")
	return cmd
}
