package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "smart-dashcam/motorcycle-accident-driving-datasets", cfg.DatasetID)
	assert.Equal(t, "train.tar", cfg.ArchiveName)
	assert.Equal(t, "videos", cfg.VideoDir)
	assert.Equal(t, "llama3.2-vision:11b", cfg.Model)
	assert.Equal(t, "nomic-embed-text", cfg.EmbedModel)
	assert.Equal(t, 11434, cfg.OllamaPort)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("VISION_DATASET_ID", "acme/other-dataset")
	t.Setenv("VISION_MODEL", "qwen2.5vl:7b")
	t.Setenv("HF_TOKEN", "hf_secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "acme/other-dataset", cfg.DatasetID)
	assert.Equal(t, "qwen2.5vl:7b", cfg.Model)
	assert.Equal(t, "hf_secret", cfg.HFToken)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "debug"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "WARN"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: ""}).SlogLevel())
}
