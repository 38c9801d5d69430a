// Package postgres provides a PostgreSQL-backed post store.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/louisbranch/blogger/internal/services/blog/storage"
)

//go:embed schema.sql
var schema string

const checkViolation = "23514"

// Store persists posts in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
	now  storage.Clock
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to stamp new posts.
func WithClock(clock storage.Clock) Option {
	return func(s *Store) {
		if clock != nil {
			s.now = clock
		}
	}
}

// Open connects to databaseURL and ensures the posts schema exists.
func Open(ctx context.Context, databaseURL string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("database url is required")
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	store := &Store{pool: pool, now: time.Now}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// Close releases pooled connections.
func (s *Store) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("storage is not configured")
	}
	return s.pool.Ping(ctx)
}

// ListRecentPosts returns up to limit posts, newest first.
func (s *Store) ListRecentPosts(ctx context.Context, limit int) ([]storage.Post, error) {
	if s == nil || s.pool == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, title, description, created_at
		   FROM posts
		  ORDER BY created_at DESC, id DESC
		  LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (storage.Post, error) {
		return scanPost(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// GetPost returns one post by id.
func (s *Store) GetPost(ctx context.Context, id int64) (storage.Post, error) {
	if s == nil || s.pool == nil {
		return storage.Post{}, fmt.Errorf("storage is not configured")
	}
	row := s.pool.QueryRow(ctx,
		`SELECT id, title, description, created_at FROM posts WHERE id = $1`,
		id,
	)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.Post{}, storage.ErrNotFound
		}
		return storage.Post{}, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

// CreatePost inserts a post stamped with the store clock.
func (s *Store) CreatePost(ctx context.Context, input storage.PostInput) (storage.Post, error) {
	if s == nil || s.pool == nil {
		return storage.Post{}, fmt.Errorf("storage is not configured")
	}
	input, err := storage.NormalizeInput(input)
	if err != nil {
		return storage.Post{}, err
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO posts (title, description, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id, title, description, created_at`,
		input.Title,
		input.Description,
		s.now().UTC().Truncate(time.Microsecond),
	)
	post, err := scanPost(row)
	if err != nil {
		if isCheckViolation(err) {
			return storage.Post{}, fmt.Errorf("%w: %v", storage.ErrInvalidPost, err)
		}
		return storage.Post{}, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// UpdatePost replaces the title and description of an existing post.
func (s *Store) UpdatePost(ctx context.Context, id int64, input storage.PostInput) (storage.Post, error) {
	if s == nil || s.pool == nil {
		return storage.Post{}, fmt.Errorf("storage is not configured")
	}
	input, err := storage.NormalizeInput(input)
	if err != nil {
		return storage.Post{}, err
	}

	row := s.pool.QueryRow(ctx,
		`UPDATE posts
		    SET title = $1, description = $2
		  WHERE id = $3
		 RETURNING id, title, description, created_at`,
		input.Title,
		input.Description,
		id,
	)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.Post{}, storage.ErrNotFound
		}
		if isCheckViolation(err) {
			return storage.Post{}, fmt.Errorf("%w: %v", storage.ErrInvalidPost, err)
		}
		return storage.Post{}, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

// DeletePost removes a post.
func (s *Store) DeletePost(ctx context.Context, id int64) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("storage is not configured")
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanPost(row pgx.Row) (storage.Post, error) {
	var post storage.Post
	if err := row.Scan(&post.ID, &post.Title, &post.Description, &post.CreatedAt); err != nil {
		return storage.Post{}, err
	}
	post.CreatedAt = post.CreatedAt.UTC()
	return post, nil
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == checkViolation
}

var _ storage.PostStore = (*Store)(nil)
