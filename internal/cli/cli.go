// Package cli implements the tabs command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/tabs/pkg/baseline"
	"github.com/matzehuels/tabs/pkg/buildinfo"
	"github.com/matzehuels/tabs/pkg/cache"
	"github.com/matzehuels/tabs/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tabs"

	// redisPrefix namespaces page cache keys in a shared redis.
	redisPrefix = "tabs:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	v *viper.Viper
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		v:      newViper(),
	}
}

// SetLogLevel updates the logger's level. At debug level cache and HTTP
// events are logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := &logHooks{logger: c.Logger}
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "tabs",
		Short: "tabs keeps tabs on upstream releases",
		Long: `tabs fetches the releases page of every package in a package list, extracts
the latest version with a CSS selector, and reports what changed since the
last recorded baseline.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.initConfig(cmd.Root().PersistentFlags()); err != nil {
				return err
			}
			runID := uuid.NewString()
			ctx := withRunID(cmd.Context(), runID)
			ctx = withLogger(ctx, c.Logger.With("run", runID[:8]))
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	registerConfigFlags(root.PersistentFlags())

	// Register all subcommands
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.selectorsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Backends
// =============================================================================

// openCache returns the page cache selected by cfg. A file cache that cannot
// be created degrades to no caching.
func openCache(ctx context.Context, cfg config, logger *log.Logger) (cache.Cache, error) {
	switch cfg.Cache {
	case cacheRedis:
		return cache.NewRedisCache(ctx, cfg.RedisURL, redisPrefix)
	case cacheFile:
		dir, err := cacheDir()
		if err != nil {
			logger.Warn("cache directory unavailable, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			logger.Warn("cache directory unavailable, caching disabled", "dir", dir, "err", err)
			return cache.NewNullCache(), nil
		}
		return fc, nil
	}
	return cache.NewNullCache(), nil
}

// openBaseline returns the writable baseline store selected by cfg and a
// function releasing it.
func openBaseline(ctx context.Context, cfg config) (baseline.Store, func(), error) {
	if cfg.MongoURI == "" {
		return baseline.NewFileStore(cfg.Baseline), func() {}, nil
	}
	store, client, err := baseline.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	if err != nil {
		return nil, nil, err
	}
	if id, ok := runIDFromContext(ctx); ok {
		store.RunID = id
	}
	return store, func() { _ = client.Disconnect(context.Background()) }, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/tabs/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
