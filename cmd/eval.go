package cmd

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/trknhr/tonecheck/internal/config"
	"github.com/trknhr/tonecheck/internal/model"
)

func newEvalCmd(db *sql.DB, cfg *config.Cfg) *cobra.Command {
	var (
		data       datasetFlags
		showMisses int
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate the stored model against a labeled dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := data.loader()
			if err != nil {
				return err
			}
			examples, err := loader.Load()
			if err != nil {
				return fmt.Errorf("failed to load evaluation cases: %w", err)
			}
			fmt.Printf("📊 Loaded %d evaluation cases\n", len(examples))

			a, err := newArtifactStore(db, cfg).LoadLatest(cmd.Context())
			if err != nil {
				return err
			}
			p, err := model.NewPipeline(a)
			if err != nil {
				return err
			}

			report, err := model.Evaluate(cmd.Context(), p, examples)
			if err != nil {
				return err
			}
			fmt.Printf("🔎 Evaluation result (model %s)\n", a.ID)
			report.Render(os.Stdout)
			if showMisses > 0 && len(report.Misses) > 0 {
				fmt.Println()
				report.RenderMisses(os.Stdout, showMisses)
			}
			return nil
		},
	}

	data.register(cmd)
	cmd.Flags().IntVar(&showMisses, "show-misses", 10, "print up to N misclassified examples")
	return cmd
}
