package cmd_test

import (
	"database/sql"

	"github.com/trknhr/tonecheck/cmd"
	"github.com/trknhr/tonecheck/internal/config"
	"github.com/trknhr/tonecheck/internal/store"
)

func runWith(db *sql.DB, cfg *config.Cfg, args ...string) error {
	root := cmd.NewRootCmd(db, cfg)
	root.SetArgs(args)
	return root.Execute()
}

func newStore(db *sql.DB, cfg *config.Cfg) store.ArtifactStore {
	if cfg.ArtifactBackend == config.BackendFile {
		return store.NewFileArtifactStore(cfg.ModelDir)
	}
	return store.NewSQLArtifactStore(db)
}
