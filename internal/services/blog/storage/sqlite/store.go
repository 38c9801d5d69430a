// Package sqlite provides the SQLite-backed post store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/blogger/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/blogger/internal/services/blog/storage"
	"github.com/louisbranch/blogger/internal/services/blog/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists posts in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   storage.Clock
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

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite post store at path, creating parent directories, and
// applies embedded migrations.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return s.sqlDB.PingContext(ctx)
}

// ListRecentPosts returns up to limit posts, newest first.
func (s *Store) ListRecentPosts(ctx context.Context, limit int) ([]storage.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, title, description, created_at
		   FROM posts
		  ORDER BY created_at DESC, id DESC
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]storage.Post, 0, limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// GetPost returns one post by id.
func (s *Store) GetPost(ctx context.Context, id int64) (storage.Post, error) {
	if err := ctx.Err(); err != nil {
		return storage.Post{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Post{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, title, description, created_at FROM posts WHERE id = ?`,
		id,
	)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Post{}, storage.ErrNotFound
		}
		return storage.Post{}, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

// CreatePost inserts a post stamped with the store clock.
func (s *Store) CreatePost(ctx context.Context, input storage.PostInput) (storage.Post, error) {
	if err := ctx.Err(); err != nil {
		return storage.Post{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Post{}, fmt.Errorf("storage is not configured")
	}
	input, err := storage.NormalizeInput(input)
	if err != nil {
		return storage.Post{}, err
	}

	createdAt := toMillis(s.now())
	row := s.sqlDB.QueryRowContext(
		ctx,
		`INSERT INTO posts (title, description, created_at)
		 VALUES (?, ?, ?)
		 RETURNING id, title, description, created_at`,
		input.Title,
		input.Description,
		createdAt,
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
	if err := ctx.Err(); err != nil {
		return storage.Post{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Post{}, fmt.Errorf("storage is not configured")
	}
	input, err := storage.NormalizeInput(input)
	if err != nil {
		return storage.Post{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`UPDATE posts
		    SET title = ?, description = ?
		  WHERE id = ?
		 RETURNING id, title, description, created_at`,
		input.Title,
		input.Description,
		id,
	)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (storage.Post, error) {
	var post storage.Post
	var createdAt int64
	if err := row.Scan(&post.ID, &post.Title, &post.Description, &createdAt); err != nil {
		return storage.Post{}, err
	}
	post.CreatedAt = fromMillis(createdAt)
	return post, nil
}

func isCheckViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_CHECK
	}
	return strings.Contains(strings.ToLower(err.Error()), "check constraint failed")
}

var _ storage.PostStore = (*Store)(nil)
