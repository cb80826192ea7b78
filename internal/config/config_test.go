package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/katalvlaran/spacegrid/escape"
	"github.com/katalvlaran/spacegrid/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spacegrid.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())
	assert.Equal(t, config.BackendMemory, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL.Duration)
	assert.Equal(t, int(escape.Width64), cfg.Escape.MaxWidth)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[server]
addr = "127.0.0.1:9000"
read_timeout = "2s"

[cache]
backend = "file"
dir = "/tmp/spacegrid-test"
ttl = "90m"

[escape]
max_width = 16
route_workers = 2
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout.Duration)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout.Duration, "untouched keys keep defaults")
	assert.Equal(t, config.BackendFile, cfg.Cache.Backend)
	assert.Equal(t, 90*time.Minute, cfg.Cache.TTL.Duration)
	assert.Equal(t, 16, cfg.Escape.MaxWidth)
	assert.Equal(t, 2, cfg.Escape.RouteWorkers)

	dir, err := cfg.Cache.CacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/spacegrid-test", dir)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, "[log]\nlevel = \n"))
	assert.Error(t, err, "syntax error")

	_, err = config.Load(writeConfig(t, "[server]\nread_timeout = \"soon\"\n"))
	assert.Error(t, err, "bad duration")

	_, err = config.Load(writeConfig(t, "[cache]\nbackend = \"memory\"\nsize = 10\n"))
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), "cache.size")
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "loud"
	cfg.Server.Addr = ""
	cfg.Cache.Backend = "tape"
	cfg.Cache.TTL.Duration = -time.Second
	cfg.Escape.MaxWidth = 12
	cfg.Escape.RouteWorkers = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.Len(t, multierr.Errors(err), 6)
	for _, want := range []string{"log.level", "server.addr", "cache.backend", "cache.ttl", "escape.max_width", "escape.route_workers"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidate_Redis(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Backend = config.BackendRedis
	cfg.Cache.RedisAddr = ""
	cfg.Cache.RedisDB = -1
	assert.Len(t, multierr.Errors(cfg.Validate()), 2)

	cfg.Escape.MaxWidth = 264
	assert.Len(t, multierr.Errors(cfg.Validate()), 3, "widths wrapping around uint8 are rejected")
}

func TestEscapeOptions(t *testing.T) {
	opts := config.EscapeConfig{MaxWidth: 8, RouteWorkers: 3}.Options()
	o := escape.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	assert.Equal(t, escape.Width8, o.MaxWidth)
	assert.Equal(t, 3, o.RouteWorkers)
}

func TestCacheDir_XDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/var/cache/test")
	dir, err := config.CacheConfig{}.CacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/var/cache/test", "spacegrid"), dir)
}

func TestDuration_Text(t *testing.T) {
	var d config.Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Duration)
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))

	assert.ErrorIs(t, d.UnmarshalText([]byte("later")), config.ErrInvalid)
}
