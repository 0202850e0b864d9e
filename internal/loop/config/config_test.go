package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTuning(t *testing.T) {
	tuning := DefaultTuning()
	require.NoError(t, tuning.Validate())
	assert.Equal(t, time.Second/60, tuning.FrameTime())
	assert.Equal(t, time.Second, tuning.SpawnInterval())
}

func TestLoadTuningOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	require.NoError(t, os.WriteFile(path, []byte("frame_rate = 30\nspawn_interval_ms = 500\n"), 0o600))

	tuning, err := LoadTuning(path)
	require.NoError(t, err)
	assert.Equal(t, 30, tuning.FrameRate)
	assert.Equal(t, 500*time.Millisecond, tuning.SpawnInterval())
	assert.Equal(t, DefaultTuning().MaxTermWidth, tuning.MaxTermWidth)
}

func TestLoadTuningMissingFile(t *testing.T) {
	tuning, err := LoadTuning(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), tuning)

	tuning, err = LoadTuning("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), tuning)
}

func TestLoadTuningRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	require.NoError(t, os.WriteFile(path, []byte("frame_rate = 0\n"), 0o600))

	tuning, err := LoadTuning(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultTuning(), tuning)
}

func TestLoadTuningMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	require.NoError(t, os.WriteFile(path, []byte("frame_rate = \"fast\"\n"), 0o600))

	_, err := LoadTuning(path)
	assert.Error(t, err)
}
