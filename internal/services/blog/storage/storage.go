// Package storage defines persistence contracts for blog posts.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// TitleMaxLength is the maximum number of characters in a post title.
	TitleMaxLength = 50
	// DescriptionMaxLength is the maximum number of characters in a post body.
	DescriptionMaxLength = 200
)

var (
	// ErrNotFound indicates a requested post is missing.
	ErrNotFound = errors.New("post not found")
	// ErrInvalidPost indicates post fields violate the length or presence rules.
	ErrInvalidPost = errors.New("invalid post")
)

// Post is one persisted blog entry. CreatedAt is set once by the store.
type Post struct {
	ID          int64
	Title       string
	Description string
	CreatedAt   time.Time
}

// PostInput carries the user-editable fields of a post.
type PostInput struct {
	Title       string
	Description string
}

// Clock supplies creation timestamps.
type Clock func() time.Time

// PostStore persists blog posts.
type PostStore interface {
	ListRecentPosts(ctx context.Context, limit int) ([]Post, error)
	GetPost(ctx context.Context, id int64) (Post, error)
	CreatePost(ctx context.Context, input PostInput) (Post, error)
	UpdatePost(ctx context.Context, id int64, input PostInput) (Post, error)
	DeletePost(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// NormalizeInput trims input and enforces the persisted field rules.
// Lengths are counted in characters, not bytes.
func NormalizeInput(input PostInput) (PostInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)

	if err := checkField("title", input.Title, TitleMaxLength); err != nil {
		return PostInput{}, err
	}
	if err := checkField("description", input.Description, DescriptionMaxLength); err != nil {
		return PostInput{}, err
	}
	return input, nil
}

func checkField(name, value string, max int) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidPost, name)
	}
	if n := utf8.RuneCountInString(value); n > max {
		return fmt.Errorf("%w: %s has %d characters, max %d", ErrInvalidPost, name, n, max)
	}
	return nil
}
