package store

//go:generate mockgen -destination=mock_meta_store.go -package=store github.com/trknhr/tonecheck/internal/store MetaStore

import (
	"database/sql"
	"errors"
	"fmt"
)

// DatasetMeta is what was last trained from a dataset.
type DatasetMeta struct {
	Key   string
	Path  string
	Mtime int64
	Hash  string
}

type MetaStore interface {
	GetLastProcessed(key string) (DatasetMeta, error)
	UpdateMetadata(key, path string, mtime int64, hash string) error
}

type SQLMetaStore struct {
	db *sql.DB
}

func NewMetaStore(db *sql.DB) *SQLMetaStore {
	return &SQLMetaStore{db: db}
}

// GetLastProcessed returns the zero DatasetMeta for a dataset never trained on.
func (m *SQLMetaStore) GetLastProcessed(key string) (DatasetMeta, error) {
	meta := DatasetMeta{Key: key}
	err := m.db.QueryRow(`SELECT path, mtime, hash FROM meta WHERE key = ?`, key).
		Scan(&meta.Path, &meta.Mtime, &meta.Hash)
	if errors.Is(err, sql.ErrNoRows) {
		return DatasetMeta{Key: key}, nil
	}
	if err != nil {
		return DatasetMeta{}, fmt.Errorf("failed to read meta for %s: %w", key, err)
	}
	return meta, nil
}

func (m *SQLMetaStore) UpdateMetadata(key, path string, mtime int64, hash string) error {
	_, err := m.db.Exec(`
        INSERT INTO meta (key, path, mtime, hash)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET
            path = excluded.path,
            mtime = excluded.mtime,
            hash = excluded.hash`,
		key, path, mtime, hash)
	if err != nil {
		return fmt.Errorf("failed to update meta: %w", err)
	}
	return nil
}
