package store

import (
	"database/sql"
	"fmt"

	_ "github.com/tursodatabase/go-libsql"
)

func Migrate(db *sql.DB) error {
	schema := []string{
		// models: one row per training run, newest wins
		`CREATE TABLE IF NOT EXISTS models (
			id           TEXT PRIMARY KEY,
			dataset_hash TEXT NOT NULL DEFAULT '',
			num_examples INTEGER NOT NULL DEFAULT 0,
			vectorizer   TEXT NOT NULL,
			classifier   TEXT NOT NULL,
			report       TEXT,
			created_at   TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_models_created_at ON models(created_at);`,
		// meta: last processed mtime and fingerprint of each dataset
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			mtime INTEGER NOT NULL,
			hash TEXT NOT NULL DEFAULT ''
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration statement: %w", err)
		}
	}

	return nil
}
