// Package blog parses blog command configuration and launches the server.
package blog

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/louisbranch/blogger/internal/platform/cmd"
	"github.com/louisbranch/blogger/internal/platform/logging"
	"github.com/louisbranch/blogger/internal/platform/timeouts"
	blogservice "github.com/louisbranch/blogger/internal/services/blog"
)

// Config holds blog command configuration.
type Config struct {
	HTTPAddr        string        `toml:"http_addr" env:"BLOGGER_HTTP_ADDR"`
	DBDriver        string        `toml:"db_driver" env:"BLOGGER_DB_DRIVER"`
	DBPath          string        `toml:"db_path" env:"BLOGGER_DB_PATH"`
	DatabaseURL     string        `toml:"database_url" env:"BLOGGER_DATABASE_URL"`
	LogLevel        string        `toml:"log_level" env:"BLOGGER_LOG_LEVEL"`
	LogFormat       string        `toml:"log_format" env:"BLOGGER_LOG_FORMAT"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"BLOGGER_SHUTDOWN_TIMEOUT"`
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:        "localhost:8000",
		DBDriver:        blogservice.DriverSQLite,
		DBPath:          "data/blog.db",
		LogLevel:        "info",
		LogFormat:       logging.FormatJSON,
		ShutdownTimeout: timeouts.Shutdown,
	}
}

// ParseConfig layers defaults, the optional config file, the environment and
// flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	cfg := DefaultConfig()
	if err := entrypoint.ParseConfig(&cfg, args, lookup); err != nil {
		return Config{}, err
	}
	fs.String("config", "", "Path to a TOML config file")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "Post store driver (sqlite or postgres)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "PostgreSQL connection URL")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (json or console)")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown limit")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run opens the post store and serves the blog until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: entrypoint.ServiceBlog})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	options := entrypoint.RunOptions{ShutdownTimeout: cfg.ShutdownTimeout, Logger: logger}
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceBlog, options, func(ctx context.Context) error {
		openCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOpen)
		store, err := blogservice.OpenStore(openCtx, blogservice.StoreConfig{
			Driver:      cfg.DBDriver,
			SQLitePath:  cfg.DBPath,
			DatabaseURL: cfg.DatabaseURL,
		})
		cancel()
		if err != nil {
			return fmt.Errorf("open post store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn().Err(err).Msg("close post store")
			}
		}()
		logger.Info().Str("driver", cfg.DBDriver).Msg("post store ready")

		server, err := blogservice.NewServer(blogservice.Config{
			HTTPAddr:        cfg.HTTPAddr,
			Store:           store,
			Logger:          logger,
			ShutdownTimeout: cfg.ShutdownTimeout,
		})
		if err != nil {
			return fmt.Errorf("init blog server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve blog: %w", err)
		}
		return nil
	})
}
