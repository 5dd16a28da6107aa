package store

//go:generate mockgen -destination=mock_artifact_store.go -package=store github.com/trknhr/tonecheck/internal/store ArtifactStore

import (
	"context"
	"errors"

	"github.com/trknhr/tonecheck/internal/model"
)

// ErrNotFound is returned by LoadLatest when nothing has been saved yet.
var ErrNotFound = errors.New("no trained model found")

type ArtifactStore interface {
	Save(ctx context.Context, a *model.Artifacts) error
	LoadLatest(ctx context.Context) (*model.Artifacts, error)
}
