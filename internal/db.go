package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trknhr/tonecheck/internal/store"
	_ "github.com/tursodatabase/go-libsql"
)

// OpenDB opens (creating if needed) the libsql database at dbPath and
// applies migrations.
func OpenDB(dbPath string) (*sql.DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create db dir: %w", err)
		}
		dbPath = "file:" + dbPath
	}

	db, err := sql.Open("libsql", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := store.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
