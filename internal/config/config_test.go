package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTrack(), cfg.TrackFor(1))
}

func TestLoadParsesTracksAndAudio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stems.yaml")
	yamlContent := `
devices:
  audio: "Scarlett"
  monitorch: "1-2"
  midiin: "0"
tracks:
  1:
    arm: true
    monitor: true
    level: 0.8
    pan: -0.5
audio:
  - file: "click.wav"
    monitor: true
    level: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Scarlett", cfg.Devices.Audio)

	tr1 := cfg.TrackFor(1)
	assert.True(t, tr1.Arm)
	assert.True(t, tr1.Monitor)
	assert.Equal(t, float32(0.8), tr1.Level)
	assert.Equal(t, float32(-0.5), tr1.Pan)

	assert.Equal(t, DefaultTrack(), cfg.TrackFor(2), "unlisted track should use defaults")

	require.Len(t, cfg.Audio, 1)
	assert.Equal(t, "click.wav", cfg.Audio[0].File)
}

func TestLoadRejectsAudioEntryMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stems.yaml")
	require.NoError(t, os.WriteFile(path, []byte("audio:\n  - monitor: true\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
