package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "dedux.db", cfg.Storage.DSN)
	assert.Equal(t, "json", cfg.Storage.Codec)
	assert.Equal(t, "count", cfg.Storage.Key)
	assert.False(t, cfg.Storage.Tiered)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dedux.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
  format: json
storage:
  backend: file
  dir: /tmp/counter
  codec: yaml
  tiered: true
`), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/counter", cfg.Storage.Dir)
	assert.Equal(t, "yaml", cfg.Storage.Codec)
	assert.True(t, cfg.Storage.Tiered)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DEDUX_STORAGE_BACKEND", "redis")
	t.Setenv("DEDUX_STORAGE_REDIS_ADDR", "cache:6379")
	t.Setenv("DEDUX_LOG_LEVEL", "error")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "cache:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"backend", func(c *Config) { c.Storage.Backend = "etcd" }},
		{"codec", func(c *Config) { c.Storage.Codec = "xml" }},
		{"level", func(c *Config) { c.Log.Level = "loud" }},
		{"format", func(c *Config) { c.Log.Format = "xml" }},
		{"empty key", func(c *Config) { c.Storage.Key = "" }},
		{"sqlite without dsn", func(c *Config) { c.Storage.DSN = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Log:     LogConfig{Level: "info", Format: "text"},
				Storage: StorageConfig{Backend: "sqlite", DSN: "x.db", Codec: "json", Key: "count"},
			}
			require.NoError(t, Validate(&cfg))

			tt.mutate(&cfg)
			assert.Error(t, Validate(&cfg))
		})
	}
}
