// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr string `env:"THEBES_LISTEN_ADDR" envDefault:"0.0.0.0:5000"`
	DBPath     string `env:"THEBES_DB_PATH" envDefault:"tasteofthebes.db"`
	LogLevel   string `env:"THEBES_LOG_LEVEL" envDefault:"info"`

	EnrichmentURL      string        `env:"THEBES_ENRICHMENT_URL"`
	EnrichmentAPIKey   string        `env:"THEBES_ENRICHMENT_API_KEY"`
	EnrichmentLocality string        `env:"THEBES_ENRICHMENT_LOCALITY" envDefault:"luxor+الاقصر+egypt"`
	EnrichmentTimeout  time.Duration `env:"THEBES_ENRICHMENT_TIMEOUT" envDefault:"10s"`
}

// HasEnrichment reports whether an enrichment provider is configured. Without
// one every new restaurant is stored with unknown enrichment fields.
func (c *Config) HasEnrichment() bool {
	return c.EnrichmentURL != ""
}

// SlogLevel maps LogLevel to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads configuration from environment variables, after loading an
// optional .env file from the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.EnrichmentTimeout <= 0 {
		return nil, fmt.Errorf("THEBES_ENRICHMENT_TIMEOUT must be positive, got %s", cfg.EnrichmentTimeout)
	}

	return cfg, nil
}
