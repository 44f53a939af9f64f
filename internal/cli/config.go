package cli

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/tabs/pkg/errors"
	"github.com/matzehuels/tabs/pkg/tracker"
)

// envPrefix namespaces every environment override (TABS_PACKAGES, ...).
const envPrefix = "TABS"

// Cache backends accepted by --cache.
const (
	cacheNone  = "none"
	cacheFile  = "file"
	cacheRedis = "redis"
)

// config is the resolved run configuration. Values come from, in order of
// precedence: command-line flags, TABS_* environment variables, the tabs.yaml
// config file, and flag defaults.
type config struct {
	Packages string
	Baseline string
	Rules    string

	Workers  int
	Attempts int
	Delay    time.Duration
	Timeout  time.Duration

	Cache    string
	CacheTTL time.Duration
	RedisURL string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// registerConfigFlags adds the shared run flags to fs.
func registerConfigFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default ./tabs.yaml)")
	fs.String("packages", "tabs.json", "package list (.json, .toml, .yaml)")
	fs.String("baseline", "versions.txt", "baseline file of name=version lines")
	fs.String("rules", "", "TOML file of extra selector rules")
	fs.Int("workers", 0, "max packages resolved at once (0 = all)")
	fs.Int("attempts", tracker.DefaultAttempts, "attempts per package")
	fs.Duration("delay", tracker.DefaultDelay, "wait between attempts")
	fs.Duration("timeout", 30*time.Second, "per-request timeout")
	fs.String("cache", cacheNone, "page cache backend: none, file, redis")
	fs.Duration("cache-ttl", time.Hour, "page cache lifetime")
	fs.String("redis-url", "redis://localhost:6379/0", "redis URL for --cache redis")
	fs.String("mongo-uri", "", "store the baseline in MongoDB instead of --baseline")
	fs.String("mongo-database", "tabs", "MongoDB database")
	fs.String("mongo-collection", "versions", "MongoDB collection")
}

// newViper returns a viper instance reading TABS_* variables, with
// dashes in keys mapped to underscores (cache-ttl -> TABS_CACHE_TTL).
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// initConfig binds fs and reads the config file. An explicit --config must
// exist; the implicit ./tabs.yaml (or .yml) is optional. It is looked up by
// full name so the tabs.json package list is never read as config.
func (c *CLI) initConfig(fs *pflag.FlagSet) error {
	if err := c.v.BindPFlags(fs); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "bind flags")
	}

	path := c.v.GetString("config")
	if path == "" {
		for _, name := range []string{appName + ".yaml", appName + ".yml"} {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
	}
	if path == "" {
		return nil
	}

	c.v.SetConfigFile(path)
	if err := c.v.ReadInConfig(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config file")
	}
	return nil
}

// loadConfig snapshots the bound values.
func (c *CLI) loadConfig() (config, error) {
	cfg := config{
		Packages:        c.v.GetString("packages"),
		Baseline:        c.v.GetString("baseline"),
		Rules:           c.v.GetString("rules"),
		Workers:         c.v.GetInt("workers"),
		Attempts:        c.v.GetInt("attempts"),
		Delay:           c.v.GetDuration("delay"),
		Timeout:         c.v.GetDuration("timeout"),
		Cache:           strings.ToLower(c.v.GetString("cache")),
		CacheTTL:        c.v.GetDuration("cache-ttl"),
		RedisURL:        c.v.GetString("redis-url"),
		MongoURI:        c.v.GetString("mongo-uri"),
		MongoDatabase:   c.v.GetString("mongo-database"),
		MongoCollection: c.v.GetString("mongo-collection"),
	}

	switch cfg.Cache {
	case cacheNone, cacheFile, cacheRedis:
	default:
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", cfg.Cache)
	}
	if cfg.Workers < 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "workers must not be negative")
	}
	if cfg.Attempts < 1 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "attempts must be at least 1")
	}
	return cfg, nil
}
