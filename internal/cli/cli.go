// Package cli implements the spacegrid command-line interface.
//
// # Commands
//
//   - solve: compute and print the distance and direction maps of a grid file
//   - route: print the escape route from one cell
//   - serve: run the HTTP service
//   - cache: inspect or clear the file result cache
//
// # Logging
//
// All commands log through charmbracelet/log at the level set in the
// configuration file; --verbose (-v) forces debug. The logger travels in
// the command's context.Context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/spacegrid/internal/buildinfo"
	"github.com/katalvlaran/spacegrid/internal/cache"
	"github.com/katalvlaran/spacegrid/internal/config"
)

// redisPrefix namespaces spacegrid keys in a shared Redis.
const redisPrefix = "spacegrid:"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	config     config.Config
}

// New returns a CLI logging to w at level until a configuration is loaded.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with every subcommand registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "spacegrid",
		Short:        "Spacegrid finds escape routes to the nearest station",
		Long:         `Spacegrid computes, for every cell of a grid of relays, stations and singularities, the fewest relay hops to the nearest station and the route that achieves it.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg

			level := cfg.LogLevel()
			if c.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a TOML configuration file")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.routeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// newResults opens the configured cache backend. noCache forces NullCache.
func (c *CLI) newResults(ctx context.Context, noCache bool) (*cache.Results, error) {
	backend, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return cache.NewResults(backend, c.config.Cache.TTL.Duration, c.config.Escape.Options()...), nil
}

func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.config.Cache
	if noCache {
		return cache.NewNullCache(), nil
	}
	logger := loggerFromContext(ctx)
	logger.Debug("opening result cache", "backend", cfg.Backend)

	switch cfg.Backend {
	case config.BackendMemory:
		return cache.NewMemoryCache(), nil
	case config.BackendFile:
		dir, err := cfg.CacheDir()
		if err != nil {
			logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisDB, redisPrefix)
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		return cache.NewNullCache(), nil
	}
}
