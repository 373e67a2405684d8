package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrinalgaur2005/hintr-active-jobs/queue"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"REDIS_CONNECTION_STRING", "ACTIVE_JOBS_STRATEGY", "FUNCTIONS_CUSTOMHANDLER_PORT",
		"LISTEN_ADDR", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingConnectionString(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	require.ErrorIs(t, err, queue.ErrMissingConnectionString)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_CONNECTION_STRING", "redis://localhost:6379/0")
	t.Setenv("ACTIVE_JOBS_STRATEGY", "simple")
	t.Setenv("FUNCTIONS_CUSTOMHANDLER_PORT", "7071")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, queue.StrategySimple, cfg.CountingStrategy())
	assert.Equal(t, ":7071", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTP.AllowedOrigins)

	t.Setenv("LISTEN_ADDR", "127.0.0.1:9000")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_CONNECTION_STRING", "redis://localhost:6379")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, queue.StrategyComposite, cfg.CountingStrategy())

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
redis:
  url: redis://cache:6379/2
  connect_timeout: 3
  read_timeout: 4
http:
  addr: ":9090"
  allowed_origins: ["https://ops.example.com"]
strategy: simple
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://ops.example.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, queue.StrategySimple, cfg.CountingStrategy())

	opts := cfg.RedisOptions()
	assert.Equal(t, "redis://cache:6379/2", opts.URL)
	assert.Equal(t, 3*time.Second, opts.ConnectTimeout)
	assert.Equal(t, 4*time.Second, opts.ReadTimeout)
	assert.Zero(t, opts.WriteTimeout)

	t.Setenv("REDIS_CONNECTION_STRING", "redis://override:6379")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "redis://override:6379", cfg.Redis.URL)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")

	_, err = Load(writeFile(t, "redis: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config yaml")

	t.Setenv("REDIS_CONNECTION_STRING", "redis://localhost:6379")

	t.Setenv("ACTIVE_JOBS_STRATEGY", "lua")
	_, err = Load("")
	require.ErrorIs(t, err, queue.ErrInvalidStrategy)

	t.Setenv("ACTIVE_JOBS_STRATEGY", "")
	t.Setenv("LOG_LEVEL", "loud")
	_, err = Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}
