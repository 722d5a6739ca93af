package config

import (
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries every tunable the pipeline reads from the environment.
// Command line flags on the individual commands override the per-run
// parameters; everything here can be substituted without editing source.
type Config struct {
	// Hugging Face hub access
	HFToken     string `env:"HF_TOKEN"`
	DatasetID   string `env:"VISION_DATASET_ID"   envDefault:"smart-dashcam/motorcycle-accident-driving-datasets"`
	ArchiveName string `env:"VISION_ARCHIVE_NAME" envDefault:"train.tar"`
	VideoDir    string `env:"VISION_VIDEO_DIR"    envDefault:"videos"`
	CacheDir    string `env:"VISION_CACHE_DIR"`

	// Ollama models
	Model      string `env:"VISION_MODEL"       envDefault:"llama3.2-vision:11b"`
	EmbedModel string `env:"VISION_EMBED_MODEL" envDefault:"nomic-embed-text"`

	// Agent provider endpoint, split the way the provider wants it
	OllamaBaseURL string `env:"VISION_OLLAMA_BASE_URL" envDefault:"http://localhost"`
	OllamaPort    int    `env:"VISION_OLLAMA_PORT"     envDefault:"11434"`

	// Optional summary archive; empty disables it
	DatabaseURL string `env:"DATABASE_URL"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (optional, same as a missing variable) and the process
// environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SlogLevel maps the configured level name onto slog's levels.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
