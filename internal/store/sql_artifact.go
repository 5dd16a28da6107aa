package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/trknhr/tonecheck/internal/errs"
	"github.com/trknhr/tonecheck/internal/logger"
	"github.com/trknhr/tonecheck/internal/model"
)

// createdAtLayout is fixed width so created_at sorts chronologically as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLArtifactStore struct {
	db *sql.DB
}

func NewSQLArtifactStore(db *sql.DB) *SQLArtifactStore {
	return &SQLArtifactStore{db: db}
}

func (s *SQLArtifactStore) Save(ctx context.Context, a *model.Artifacts) error {
	vec, err := json.Marshal(a.Vectorizer)
	if err != nil {
		return fmt.Errorf("encode vectorizer: %w", err)
	}
	clf, err := json.Marshal(a.Classifier)
	if err != nil {
		return fmt.Errorf("encode classifier: %w", err)
	}
	var report sql.NullString
	if a.Report != nil {
		b, err := json.Marshal(a.Report)
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		report = sql.NullString{String: string(b), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO models (id, dataset_hash, num_examples, vectorizer, classifier, report, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.DatasetHash, a.NumExamples, string(vec), string(clf), report, a.CreatedAt.UTC().Format(createdAtLayout))
	if err != nil {
		return fmt.Errorf("failed to save model %s: %w", a.ID, err)
	}
	logger.Debug("model saved", "id", a.ID, "backend", "sqlite")
	return nil
}

func (s *SQLArtifactStore) LoadLatest(ctx context.Context) (*model.Artifacts, error) {
	var (
		a         model.Artifacts
		vec, clf  string
		report    sql.NullString
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, dataset_hash, num_examples, vectorizer, classifier, report, created_at
		FROM models ORDER BY created_at DESC LIMIT 1`).
		Scan(&a.ID, &a.DatasetHash, &a.NumExamples, &vec, &clf, &report, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest model: %w", err)
	}

	if a.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, errs.Internal("model %s has invalid created_at %q", a.ID, createdAt)
	}
	if err := json.Unmarshal([]byte(vec), &a.Vectorizer); err != nil {
		return nil, errs.Internal("decode vectorizer of model %s: %v", a.ID, err)
	}
	if err := json.Unmarshal([]byte(clf), &a.Classifier); err != nil {
		return nil, errs.Internal("decode classifier of model %s: %v", a.ID, err)
	}
	if report.Valid {
		a.Report = &model.Report{}
		if err := json.Unmarshal([]byte(report.String), a.Report); err != nil {
			return nil, errs.Internal("decode report of model %s: %v", a.ID, err)
		}
	}
	return &a, nil
}
