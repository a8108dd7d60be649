package runnersettings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	t.Parallel()
	s, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, defaultConcurrency, s.Runner.Concurrency)
	assert.Equal(t, defaultStorageRoot, s.Runner.StorageRoot)
}

func TestLoadFillsUnsetFieldsWithDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "runner.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
runner {
  concurrency  = 8
  storage_root = "/data/xent"
}
`), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, s.Runner.Concurrency)
	assert.Equal(t, "/data/xent", s.Runner.StorageRoot)
	assert.Equal(t, defaultMaxRetries, s.Runner.MaxRetries)
	assert.Equal(t, defaultPerUnitTimeoutMs, s.Runner.PerUnitTimeoutMs)
}

func TestLoadRejectsInvalidHCL(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "runner.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`not valid hcl {{{`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
