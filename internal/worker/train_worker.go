package worker

import (
	"context"

	"github.com/trknhr/tonecheck/internal/dataset"
	"github.com/trknhr/tonecheck/internal/logger"
	"github.com/trknhr/tonecheck/internal/store"
)

// TrainFunc fits and persists a model from examples.
type TrainFunc func(ctx context.Context, examples []dataset.Example) error

// RunTrainWorker retrains from the dataset behind loader unless it is
// unchanged since the last run. It reports whether training happened.
func RunTrainWorker(ctx context.Context, meta store.MetaStore, loader dataset.Loader, train TrainFunc, force bool) (bool, error) {
	// Retrieve last processed mtime (to detect if update is needed)
	last, err := meta.GetLastProcessed(loader.Key())
	if err != nil {
		return false, err
	}

	currentMtime, err := loader.GetCurrentMtime()
	if err != nil {
		return false, err
	}

	// Skip if dataset file hasn't changed
	if !force && last.Hash != "" && currentMtime <= last.Mtime {
		logger.Debug("dataset not modified since last training", "key", loader.Key())
		return false, nil
	}

	examples, err := loader.Load()
	if err != nil {
		return false, err
	}
	fingerprint := dataset.Fingerprint(examples)

	// touched but identical content
	if !force && fingerprint == last.Hash {
		logger.Debug("dataset content unchanged", "key", loader.Key())
		return false, meta.UpdateMetadata(loader.Key(), loader.Path(), currentMtime, fingerprint)
	}

	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := train(ctx, examples); err != nil {
		return false, err
	}

	return true, meta.UpdateMetadata(loader.Key(), loader.Path(), currentMtime, fingerprint)
}
