// Package cmd holds the startup plumbing shared by every blogger command.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/blogger/internal/platform/config"
	"github.com/louisbranch/blogger/internal/platform/otel"
	"github.com/rs/zerolog"
)

const defaultOTelShutdownTimeout = 5 * time.Second

// Service identifiers used for telemetry resources and log fields.
const (
	ServiceBlog = "blog"
	ServiceSeed = "seed"
)

// ConfigFileEnv names the environment variable pointing at a TOML config file.
const ConfigFileEnv = "BLOGGER_CONFIG"

// RunOptions controls shared entrypoint behavior for service commands.
type RunOptions struct {
	// ShutdownTimeout bounds the telemetry flush on exit.
	ShutdownTimeout time.Duration
	// Logger receives telemetry shutdown failures. Zero value discards them.
	Logger zerolog.Logger
}

// ParseConfig layers the optional config file and the environment onto cfg.
//
// cfg should already hold defaults. The file is taken from a -config flag in
// args, falling back to BLOGGER_CONFIG.
func ParseConfig[T any](cfg *T, args []string, lookup func(string) (string, bool), opts ...config.FileOption) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	path := config.PathFromArgs(args)
	if path == "" && lookup != nil {
		if value, ok := lookup(ConfigFileEnv); ok {
			path = value
		}
	}
	if err := config.LoadFile(path, cfg, opts...); err != nil {
		return err
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry configures tracing and executes a service run loop.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	return RunWithTelemetryAndOptions(ctx, service, RunOptions{Logger: zerolog.Nop()}, run)
}

// RunWithTelemetryAndOptions configures tracing and executes a service run loop.
func RunWithTelemetryAndOptions(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		shutdownTimeout := options.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = defaultOTelShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			options.Logger.Warn().Err(err).Str("service", service).Msg("otel shutdown")
		}
	}()
	return run(ctx)
}
