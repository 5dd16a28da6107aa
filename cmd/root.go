package cmd

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trknhr/tonecheck/internal/config"
	"github.com/trknhr/tonecheck/internal/logger"
	"github.com/trknhr/tonecheck/internal/sentiment"
	"github.com/trknhr/tonecheck/internal/store"
)

func NewRootCmd(db *sql.DB, cfg *config.Cfg) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tonecheck",
		Short:         "Sentiment classification for customer feedback",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return logger.Init(cfg.LogFile, cfg.LogLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&cfg.ArtifactBackend, "backend", cfg.ArtifactBackend, "artifact backend (sqlite, file)")
	cmd.PersistentFlags().StringVar(&cfg.ModelDir, "model-dir", cfg.ModelDir, "model directory for the file backend")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error, none)")

	cmd.AddCommand(
		newTrainCmd(db, cfg),
		newServeCmd(db, cfg),
		newClassifyCmd(db, cfg),
		newEvalCmd(db, cfg),
		newTuiCmd(db, cfg),
	)
	return cmd
}

func Execute(db *sql.DB, cfg *config.Cfg) error {
	cmd := NewRootCmd(db, cfg)
	return cmd.Execute()
}

func newArtifactStore(db *sql.DB, cfg *config.Cfg) store.ArtifactStore {
	if cfg.ArtifactBackend == config.BackendFile {
		return store.NewFileArtifactStore(cfg.ModelDir)
	}
	return store.NewSQLArtifactStore(db)
}

// loadService returns a service in whatever state the stored model allows.
func loadService(ctx context.Context, db *sql.DB, cfg *config.Cfg) *sentiment.Service {
	svc := sentiment.NewService(sentiment.Options{MaxTextLength: cfg.MaxTextLength})
	svc.Load(ctx, newArtifactStore(db, cfg))
	return svc
}

// requireReady is for one-shot commands, which have nothing to do without a model.
func requireReady(svc *sentiment.Service) error {
	if !svc.Ready() {
		return fmt.Errorf("no usable model found; run `tonecheck train --data <file>` first")
	}
	return nil
}
