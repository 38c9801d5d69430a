// Package seed parses seed command flags and fills a post store with sample
// posts whose creation dates are spread over the past weeks.
package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sync"
	"time"

	entrypoint "github.com/louisbranch/blogger/internal/platform/cmd"
	"github.com/louisbranch/blogger/internal/platform/config"
	"github.com/louisbranch/blogger/internal/platform/timeouts"
	blogservice "github.com/louisbranch/blogger/internal/services/blog"
	"github.com/louisbranch/blogger/internal/services/blog/storage"
)

// Config holds seed command configuration.
type Config struct {
	DBDriver    string `toml:"db_driver" env:"BLOGGER_DB_DRIVER"`
	DBPath      string `toml:"db_path" env:"BLOGGER_DB_PATH"`
	DatabaseURL string `toml:"database_url" env:"BLOGGER_DATABASE_URL"`
	List        bool   `toml:"-"`
}

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// SamplePost is one fixture post, created Age before the seed run.
type SamplePost struct {
	Title       string
	Description string
	Age         time.Duration
}

const day = 24 * time.Hour

// SamplePosts are inserted in order; ages are relative to the run time.
var SamplePosts = []SamplePost{
	{Title: "Test Post 1", Description: "The newest post, written today.", Age: 0},
	{Title: "Test Post 2", Description: "An older post from ten days ago.", Age: 10 * day},
	{Title: "Test Post 3", Description: "A post from five days ago, listed between the other two.", Age: 5 * day},
	{Title: "Welcome", Description: "This blog keeps short plain-text posts. Use New post to write one.", Age: 21 * day},
	{Title: "Bem-vindo", Description: "Use ?lang=pt-BR para ler a interface em português.", Age: 20 * day},
}

// serverKeys are blog server settings accepted, and ignored, in a shared
// config file.
var serverKeys = []string{"http_addr", "log_level", "log_format", "shutdown_timeout"}

// ParseConfig layers the optional config file, the environment and flags
// into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	cfg := Config{DBDriver: blogservice.DriverSQLite, DBPath: "data/blog.db"}
	if err := entrypoint.ParseConfig(&cfg, args, lookup, config.AllowKeys(serverKeys...)); err != nil {
		return Config{}, err
	}
	fs.String("config", "", "Path to a TOML config file")
	fs.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "Post store driver (sqlite or postgres)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "PostgreSQL connection URL")
	fs.BoolVar(&cfg.List, "list", false, "list sample posts without writing them")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the seed command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if cfg.List {
		for _, sample := range SamplePosts {
			fmt.Fprintf(out, "%s (%d days ago)\n", sample.Title, int(sample.Age/day))
		}
		return nil
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		clock := &backdatedClock{}
		openCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOpen)
		store, err := blogservice.OpenStore(openCtx, blogservice.StoreConfig{
			Driver:      cfg.DBDriver,
			SQLitePath:  cfg.DBPath,
			DatabaseURL: cfg.DatabaseURL,
			Clock:       clock.Now,
		})
		cancel()
		if err != nil {
			return fmt.Errorf("open post store: %w", err)
		}
		seedErr := seedPosts(ctx, store, clock, time.Now(), SamplePosts, out)
		return errors.Join(seedErr, store.Close())
	})
}

// seedPosts creates samples in store, stamping each one Age before now.
func seedPosts(ctx context.Context, store storage.PostStore, clock *backdatedClock, now time.Time, samples []SamplePost, out io.Writer) error {
	for _, sample := range samples {
		clock.Set(now.Add(-sample.Age))
		post, err := store.CreatePost(ctx, storage.PostInput{Title: sample.Title, Description: sample.Description})
		if err != nil {
			return fmt.Errorf("seed %q: %w", sample.Title, err)
		}
		fmt.Fprintf(out, "created post %d: %s\n", post.ID, post.Title)
	}
	return nil
}

// backdatedClock returns whatever time was last set.
type backdatedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *backdatedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *backdatedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}
