package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/trknhr/tonecheck/internal/errs"
	"github.com/trknhr/tonecheck/internal/logger"
	"github.com/trknhr/tonecheck/internal/model"
	"github.com/trknhr/tonecheck/internal/vectorizer"
)

const (
	VectorizerFile = "tfidf_vectorizer.json"
	ClassifierFile = "sentiment_model.json"
)

// FileArtifactStore keeps a single model as two JSON documents in dir.
// Saving replaces the previous model.
type FileArtifactStore struct {
	dir string
}

func NewFileArtifactStore(dir string) *FileArtifactStore {
	return &FileArtifactStore{dir: dir}
}

func (s *FileArtifactStore) Dir() string { return s.dir }

type vectorizerDoc struct {
	ID    string           `json:"id"`
	State vectorizer.State `json:"state"`
}

// classifierDoc carries everything except the vectorizer state.
type classifierDoc struct {
	model.Artifacts
	Vectorizer *struct{} `json:"vectorizer,omitempty"`
}

func (s *FileArtifactStore) Save(ctx context.Context, a *model.Artifacts) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	vec, err := json.Marshal(vectorizerDoc{ID: a.ID, State: a.Vectorizer})
	if err != nil {
		return fmt.Errorf("encode vectorizer: %w", err)
	}
	clf, err := json.Marshal(classifierDoc{Artifacts: *a})
	if err != nil {
		return fmt.Errorf("encode classifier: %w", err)
	}

	// both files carry the model id; a load racing a save fails on the
	// mismatch instead of mixing two models
	if err := writeAtomic(filepath.Join(s.dir, VectorizerFile), vec); err != nil {
		return err
	}
	if err := writeAtomic(filepath.Join(s.dir, ClassifierFile), clf); err != nil {
		return err
	}
	logger.Debug("model saved", "id", a.ID, "backend", "file", "dir", s.dir)
	return nil
}

func (s *FileArtifactStore) LoadLatest(ctx context.Context) (*model.Artifacts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clfBytes, err := os.ReadFile(filepath.Join(s.dir, ClassifierFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read classifier: %w", err)
	}
	vecBytes, err := os.ReadFile(filepath.Join(s.dir, VectorizerFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read vectorizer: %w", err)
	}

	var doc classifierDoc
	if err := json.Unmarshal(clfBytes, &doc); err != nil {
		return nil, errs.Internal("decode %s: %v", ClassifierFile, err)
	}
	a := doc.Artifacts

	var vec vectorizerDoc
	if err := json.Unmarshal(vecBytes, &vec); err != nil {
		return nil, errs.Internal("decode %s: %v", VectorizerFile, err)
	}
	if vec.ID != a.ID {
		return nil, errs.Internal("%s belongs to model %q, %s to %q", VectorizerFile, vec.ID, ClassifierFile, a.ID)
	}
	a.Vectorizer = vec.State
	return &a, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
