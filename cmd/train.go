package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"github.com/trknhr/tonecheck/internal/bayes"
	"github.com/trknhr/tonecheck/internal/config"
	"github.com/trknhr/tonecheck/internal/dataset"
	"github.com/trknhr/tonecheck/internal/errs"
	"github.com/trknhr/tonecheck/internal/logger"
	"github.com/trknhr/tonecheck/internal/model"
	"github.com/trknhr/tonecheck/internal/store"
	"github.com/trknhr/tonecheck/internal/vectorizer"
	"github.com/trknhr/tonecheck/internal/worker"
)

type datasetFlags struct {
	path        string
	format      string
	textColumn  string
	labelColumn string
}

func (f *datasetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "data", "d", "", "labeled dataset (csv, tsv or jsonl)")
	cmd.Flags().StringVar(&f.format, "format", "", "dataset format; detected when empty")
	cmd.Flags().StringVar(&f.textColumn, "text-column", "text", "csv column holding the feedback text")
	cmd.Flags().StringVar(&f.labelColumn, "label-column", "sentiment", "csv column holding the label")
	_ = cmd.MarkFlagRequired("data")
}

func (f *datasetFlags) loader() (dataset.Loader, error) {
	return dataset.NewLoader(f.path, dataset.Options{
		Format:      dataset.Format(f.format),
		TextColumn:  f.textColumn,
		LabelColumn: f.labelColumn,
	})
}

func newTrainCmd(db *sql.DB, cfg *config.Cfg) *cobra.Command {
	var (
		data       datasetFlags
		force      bool
		showMisses int
		sublinear  bool
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a model from a labeled dataset and store it",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := data.loader()
			if err != nil {
				return err
			}

			trainCfg := model.TrainConfig{
				Vectorizer: vectorizer.Config{
					MaxFeatures:    cfg.MaxFeatures,
					MinTokenLength: cfg.MinTokenLength,
					SublinearTF:    sublinear,
					Norm:           vectorizer.NormL2,
				},
				Classifier: bayes.Config{Alpha: cfg.Alpha},
			}
			artifacts := newArtifactStore(db, cfg)

			train := func(ctx context.Context, examples []dataset.Example) error {
				a, err := trainAndEvaluate(ctx, examples, trainCfg, cfg.TestSize, uint64(cfg.SplitSeed))
				if err != nil {
					return err
				}
				if err := artifacts.Save(ctx, a); err != nil {
					return err
				}
				printTrainSummary(a, examples)
				if a.Report != nil && showMisses > 0 {
					fmt.Println()
					a.Report.RenderMisses(os.Stdout, showMisses)
				}
				return nil
			}

			if !force {
				usable, err := hasUsableModel(cmd.Context(), artifacts)
				if err != nil {
					return err
				}
				if !usable {
					logger.Info("no usable model in artifact store, training regardless of dataset state", "backend", cfg.ArtifactBackend)
					force = true
				}
			}

			trained, err := worker.RunTrainWorker(cmd.Context(), store.NewMetaStore(db), loader, train, force)
			if err != nil {
				return err
			}
			if !trained {
				color.Yellow.Printf("dataset %s unchanged since last training; use --force to retrain\n", loader.Path())
			}
			return nil
		},
	}

	data.register(cmd)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "retrain even if the dataset is unchanged")
	cmd.Flags().IntVar(&showMisses, "show-misses", 0, "print up to N misclassified held-out examples")
	cmd.Flags().BoolVar(&sublinear, "sublinear-tf", false, "use 1+ln(tf) term frequency")
	cmd.Flags().IntVar(&cfg.MaxFeatures, "max-features", cfg.MaxFeatures, "vocabulary size cap (0 = unlimited)")
	cmd.Flags().Float64Var(&cfg.Alpha, "alpha", cfg.Alpha, "Laplace smoothing")
	cmd.Flags().Float64Var(&cfg.TestSize, "test-size", cfg.TestSize, "held-out fraction (0 disables evaluation)")
	cmd.Flags().IntVar(&cfg.SplitSeed, "seed", cfg.SplitSeed, "shuffle seed for the held-out split")

	return cmd
}

// hasUsableModel reports whether the store holds a model that loads. The
// dataset metadata is shared by all backends, so an unchanged dataset says
// nothing about this store.
func hasUsableModel(ctx context.Context, artifacts store.ArtifactStore) (bool, error) {
	a, err := artifacts.LoadLatest(ctx)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, errs.ErrInternal) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if _, err := model.NewPipeline(a); err != nil {
		return false, nil
	}
	return true, nil
}

// trainAndEvaluate fits on the training split and, when there is a held-out
// split, attaches its report to the artifacts.
func trainAndEvaluate(ctx context.Context, examples []dataset.Example, cfg model.TrainConfig, testSize float64, seed uint64) (*model.Artifacts, error) {
	trainSet, testSet, err := dataset.Split(examples, testSize, seed)
	if err != nil {
		return nil, err
	}
	logger.Info("dataset split", "train", len(trainSet), "test", len(testSet))

	a, err := model.Train(trainSet, cfg)
	if err != nil {
		return nil, err
	}
	a.DatasetHash = dataset.Fingerprint(examples)
	if len(testSet) == 0 {
		return a, nil
	}

	p, err := model.NewPipeline(a)
	if err != nil {
		return nil, err
	}
	a.Report, err = model.Evaluate(ctx, p, testSet)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func printTrainSummary(a *model.Artifacts, examples []dataset.Example) {
	counts := dataset.LabelCounts(examples)
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	color.Green.Printf("✅ Trained model %s\n", a.ID)
	fmt.Printf("   examples: %d, features: %d\n", len(examples), len(a.Vectorizer.Vocabulary))
	for _, l := range labels {
		fmt.Printf("   %-12s %d\n", l, counts[l])
	}
	if a.Report != nil {
		fmt.Println()
		a.Report.Render(os.Stdout)
	}
}
