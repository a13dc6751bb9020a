package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every THEBES_ env var that Load() reads.
var allConfigKeys = []string{
	"THEBES_LISTEN_ADDR",
	"THEBES_DB_PATH",
	"THEBES_LOG_LEVEL",
	"THEBES_ENRICHMENT_URL",
	"THEBES_ENRICHMENT_API_KEY",
	"THEBES_ENRICHMENT_LOCALITY",
	"THEBES_ENRICHMENT_TIMEOUT",
}

// isolateConfigEnv saves and unsets all THEBES_ env vars so tests don't
// inherit values from the host environment.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("THEBES_LISTEN_ADDR", "127.0.0.1:9090")
	t.Setenv("THEBES_DB_PATH", "/tmp/test.db")
	t.Setenv("THEBES_LOG_LEVEL", "debug")
	t.Setenv("THEBES_ENRICHMENT_URL", "https://serpapi.com/search")
	t.Setenv("THEBES_ENRICHMENT_API_KEY", "secret")
	t.Setenv("THEBES_ENRICHMENT_LOCALITY", "aswan+egypt")
	t.Setenv("THEBES_ENRICHMENT_TIMEOUT", "3s")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "https://serpapi.com/search", cfg.EnrichmentURL)
	assert.Equal(t, "secret", cfg.EnrichmentAPIKey)
	assert.Equal(t, "aswan+egypt", cfg.EnrichmentLocality)
	assert.Equal(t, 3*time.Second, cfg.EnrichmentTimeout)
	assert.True(t, cfg.HasEnrichment())
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:5000", cfg.ListenAddr)
	assert.Equal(t, "tasteofthebes.db", cfg.DBPath)
	assert.Equal(t, "luxor+الاقصر+egypt", cfg.EnrichmentLocality)
	assert.Equal(t, 10*time.Second, cfg.EnrichmentTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.False(t, cfg.HasEnrichment())
}

func TestLoad_InvalidTimeout(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not a duration", value: "soon"},
		{name: "zero", value: "0s"},
		{name: "negative", value: "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigEnv(t)
			t.Setenv("THEBES_ENRICHMENT_TIMEOUT", tt.value)

			cfg, err := Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "INFO", want: slog.LevelInfo},
		{level: "warn", want: slog.LevelWarn},
		{level: "warning", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
		{level: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.level}
			assert.Equal(t, tt.want, cfg.SlogLevel())
		})
	}
}
