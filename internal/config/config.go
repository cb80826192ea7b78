// Package config loads the spacegrid TOML configuration.
//
// A missing file is not an error: Load("") returns Default(). Keys present
// in the file override the defaults, unknown keys are rejected, and every
// validation problem is reported at once.
//
//	[log]
//	level = "info"
//
//	[server]
//	addr          = ":8080"
//	read_timeout  = "10s"
//	write_timeout = "30s"
//
//	[cache]
//	backend    = "memory"   # none | memory | file | redis
//	ttl        = "1h"
//	dir        = ""         # file backend, defaults to $XDG_CACHE_HOME/spacegrid
//	redis_addr = "localhost:6379"
//	redis_db   = 0
//
//	[escape]
//	max_width     = 64      # 8 | 16 | 32 | 64
//	route_workers = 8
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"go.uber.org/multierr"

	"github.com/katalvlaran/spacegrid/escape"
)

const appName = "spacegrid"

// Cache backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

var backends = []string{BackendNone, BackendMemory, BackendFile, BackendRedis}

// ErrInvalid is wrapped by every validation problem.
var ErrInvalid = errors.New("config: invalid value")

// Config is the full spacegrid configuration.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Escape EscapeConfig `toml:"escape"`
}

// LogConfig selects the log level: debug, info, warn, error or fatal.
type LogConfig struct {
	Level string `toml:"level"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// CacheConfig selects and configures the result cache backend.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	TTL       Duration `toml:"ttl"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
}

// EscapeConfig tunes the propagator.
type EscapeConfig struct {
	MaxWidth     int `toml:"max_width"`
	RouteWorkers int `toml:"route_workers"`
}

// Duration is a time.Duration written as a string ("5s", "1h30m") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: duration %q", ErrInvalid, text)
	}
	d.Duration = v
	return nil
}

// MarshalText renders the duration in Go syntax.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
		},
		Cache: CacheConfig{
			Backend:   BackendMemory,
			TTL:       Duration{time.Hour},
			RedisAddr: "localhost:6379",
		},
		Escape: EscapeConfig{
			MaxWidth:     int(escape.Width64),
			RouteWorkers: escape.DefaultOptions().RouteWorkers,
		},
	}
}

// Load reads path on top of Default and validates the result.
// An empty path returns Default unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid value, combined with multierr.
func (c Config) Validate() error {
	var err error
	if _, perr := log.ParseLevel(c.Log.Level); perr != nil {
		err = multierr.Append(err, fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level))
	}

	if c.Server.Addr == "" {
		err = multierr.Append(err, fmt.Errorf("%w: server.addr is empty", ErrInvalid))
	}
	if c.Server.ReadTimeout.Duration < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: server.read_timeout %v", ErrInvalid, c.Server.ReadTimeout))
	}
	if c.Server.WriteTimeout.Duration < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: server.write_timeout %v", ErrInvalid, c.Server.WriteTimeout))
	}

	if !slices.Contains(backends, c.Cache.Backend) {
		err = multierr.Append(err, fmt.Errorf("%w: cache.backend %q, want one of %s",
			ErrInvalid, c.Cache.Backend, strings.Join(backends, ", ")))
	}
	if c.Cache.TTL.Duration < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: cache.ttl %v", ErrInvalid, c.Cache.TTL))
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		err = multierr.Append(err, fmt.Errorf("%w: cache.redis_addr is empty", ErrInvalid))
	}
	if c.Cache.RedisDB < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: cache.redis_db %d", ErrInvalid, c.Cache.RedisDB))
	}

	if w := c.Escape.MaxWidth; w < 0 || w > int(escape.Width64) || !escape.Width(w).Valid() {
		err = multierr.Append(err, fmt.Errorf("%w: escape.max_width %d, want 8, 16, 32 or 64", ErrInvalid, c.Escape.MaxWidth))
	}
	if c.Escape.RouteWorkers < 1 {
		err = multierr.Append(err, fmt.Errorf("%w: escape.route_workers %d", ErrInvalid, c.Escape.RouteWorkers))
	}
	return err
}

// LogLevel returns the parsed log level, or info if it does not parse.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Options converts the [escape] section into propagator options.
func (e EscapeConfig) Options() []escape.Option {
	return []escape.Option{
		escape.WithMaxWidth(escape.Width(e.MaxWidth)),
		escape.WithRouteWorkers(e.RouteWorkers),
	}
}

// CacheDir returns the file cache directory: the configured one, else
// $XDG_CACHE_HOME/spacegrid, else ~/.cache/spacegrid.
func (c CacheConfig) CacheDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
