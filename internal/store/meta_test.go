package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trknhr/tonecheck/internal/store"
)

func TestMetaStore_UpdateAndGet(t *testing.T) {
	meta := store.NewMetaStore(setupTestDB(t))

	got, err := meta.GetLastProcessed("csv:/data/feedback.csv")
	require.NoError(t, err)
	assert.Equal(t, store.DatasetMeta{Key: "csv:/data/feedback.csv"}, got)

	require.NoError(t, meta.UpdateMetadata("csv:/data/feedback.csv", "/data/feedback.csv", 100, "abc"))
	require.NoError(t, meta.UpdateMetadata("csv:/data/feedback.csv", "/data/feedback.csv", 200, "def"))

	got, err = meta.GetLastProcessed("csv:/data/feedback.csv")
	require.NoError(t, err)
	assert.Equal(t, store.DatasetMeta{
		Key:   "csv:/data/feedback.csv",
		Path:  "/data/feedback.csv",
		Mtime: 200,
		Hash:  "def",
	}, got)
}
