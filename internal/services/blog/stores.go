package blog

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/blogger/internal/services/blog/storage"
	"github.com/louisbranch/blogger/internal/services/blog/storage/postgres"
	"github.com/louisbranch/blogger/internal/services/blog/storage/sqlite"
)

// Supported store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// StoreConfig selects and locates the post store.
type StoreConfig struct {
	Driver      string
	SQLitePath  string
	DatabaseURL string
	// Clock stamps new posts; nil uses time.Now.
	Clock storage.Clock
}

// Store is a post store that owns resources.
type Store interface {
	storage.PostStore
	Close() error
}

// OpenStore opens the store named by cfg.Driver, applying its schema.
func OpenStore(ctx context.Context, cfg StoreConfig) (Store, error) {
	switch driver := strings.ToLower(strings.TrimSpace(cfg.Driver)); driver {
	case "", DriverSQLite:
		var opts []sqlite.Option
		if cfg.Clock != nil {
			opts = append(opts, sqlite.WithClock(cfg.Clock))
		}
		store, err := sqlite.Open(ctx, cfg.SQLitePath, opts...)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	case DriverPostgres:
		var opts []postgres.Option
		if cfg.Clock != nil {
			opts = append(opts, postgres.WithClock(cfg.Clock))
		}
		store, err := postgres.Open(ctx, cfg.DatabaseURL, opts...)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
