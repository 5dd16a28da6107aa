package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trknhr/tonecheck/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TONECHECK_DB_PATH", "/tmp/tonecheck-test.db")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/tonecheck-test.db", cfg.DBPath)
	assert.Equal(t, config.BackendSQLite, cfg.ArtifactBackend)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, 5000, cfg.MaxFeatures)
	assert.Equal(t, 2, cfg.MinTokenLength)
	assert.InDelta(t, 1.0, cfg.Alpha, 1e-12)
	assert.InDelta(t, 0.2, cfg.TestSize, 1e-12)
	assert.Equal(t, 42, cfg.SplitSeed)
	assert.Equal(t, "0.0.0.0:5000", cfg.ListenAddr())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TONECHECK_DB_PATH", "/tmp/x.db")
	t.Setenv("TONECHECK_ARTIFACT_BACKEND", "file")
	t.Setenv("PORT", "8081")
	t.Setenv("MAX_FEATURES", "100")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.BackendFile, cfg.ArtifactBackend)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, 100, cfg.MaxFeatures)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	t.Setenv("TONECHECK_DB_PATH", "/tmp/x.db")
	t.Setenv("TONECHECK_ARTIFACT_BACKEND", "s3")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate_TestSize(t *testing.T) {
	t.Setenv("TONECHECK_DB_PATH", "/tmp/x.db")
	cfg, err := config.Load()
	require.NoError(t, err)

	cfg.TestSize = 1.0
	assert.Error(t, cfg.Validate())

	cfg.TestSize = 0
	assert.NoError(t, cfg.Validate())
}
