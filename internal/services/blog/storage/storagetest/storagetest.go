// Package storagetest holds the behavioural suite every post store backend
// runs against itself.
package storagetest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/blogger/internal/services/blog/storage"
)

// Opener returns an empty store whose new posts are stamped by clock.
type Opener func(t *testing.T, clock storage.Clock) storage.PostStore

// Clock is a settable clock for deterministic creation timestamps.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock frozen at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current frozen time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to value.
func (c *Clock) Set(value time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = value
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var baseTime = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

// Run exercises the PostStore contract. Subtests run sequentially so that
// backends sharing one database can reset it in open.
func Run(t *testing.T, open Opener) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, store storage.PostStore, clock *Clock)
	}{
		{"CreateThenGet", testCreateThenGet},
		{"GetMissing", testGetMissing},
		{"ListOrdersNewestFirst", testListOrdersNewestFirst},
		{"ListBreaksTiesByID", testListBreaksTiesByID},
		{"ListCapsAtLimit", testListCapsAtLimit},
		{"ListRejectsNonPositiveLimit", testListRejectsNonPositiveLimit},
		{"ListEmpty", testListEmpty},
		{"UpdateKeepsCreatedAt", testUpdateKeepsCreatedAt},
		{"UpdateMissing", testUpdateMissing},
		{"DeleteRemoves", testDeleteRemoves},
		{"DeleteMissing", testDeleteMissing},
		{"RejectsInvalidInput", testRejectsInvalidInput},
		{"CountsCharactersNotBytes", testCountsCharactersNotBytes},
		{"Ping", testPing},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			clock := NewClock(baseTime)
			store := open(t, clock.Now)
			tc.fn(t, store, clock)
		})
	}
}

func mustCreate(t *testing.T, store storage.PostStore, title, description string) storage.Post {
	t.Helper()
	post, err := store.CreatePost(context.Background(), storage.PostInput{Title: title, Description: description})
	if err != nil {
		t.Fatalf("create post %q: %v", title, err)
	}
	return post
}

func titles(posts []storage.Post) []string {
	out := make([]string, 0, len(posts))
	for _, post := range posts {
		out = append(out, post.Title)
	}
	return out
}

func testCreateThenGet(t *testing.T, store storage.PostStore, _ *Clock) {
	created := mustCreate(t, store, "  Test Post 1 ", "Post 1 description")
	if created.ID <= 0 {
		t.Fatalf("id = %d, want positive", created.ID)
	}
	if created.Title != "Test Post 1" {
		t.Fatalf("title = %q, want %q", created.Title, "Test Post 1")
	}
	if !created.CreatedAt.Equal(baseTime) {
		t.Fatalf("created_at = %v, want %v", created.CreatedAt, baseTime)
	}

	got, err := store.GetPost(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.ID != created.ID || got.Title != created.Title || got.Description != created.Description {
		t.Fatalf("got %+v, want %+v", got, created)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, created.CreatedAt)
	}
}

func testGetMissing(t *testing.T, store storage.PostStore, _ *Clock) {
	_, err := store.GetPost(context.Background(), 4242)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want %v", err, storage.ErrNotFound)
	}
}

func testListOrdersNewestFirst(t *testing.T, store storage.PostStore, clock *Clock) {
	clock.Set(baseTime)
	mustCreate(t, store, "Test Post 1", "Post 1 description")
	clock.Set(baseTime.AddDate(0, 0, -10))
	mustCreate(t, store, "Test Post 2", "Post 2 description")
	clock.Set(baseTime.AddDate(0, 0, -5))
	mustCreate(t, store, "Test Post 3", "Post 3 description")

	posts, err := store.ListRecentPosts(context.Background(), 10)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	got := strings.Join(titles(posts), ",")
	want := "Test Post 1,Test Post 3,Test Post 2"
	if got != want {
		t.Fatalf("order = %q, want %q", got, want)
	}
}

func testListBreaksTiesByID(t *testing.T, store storage.PostStore, _ *Clock) {
	mustCreate(t, store, "first", "same instant")
	mustCreate(t, store, "second", "same instant")

	posts, err := store.ListRecentPosts(context.Background(), 10)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if got := strings.Join(titles(posts), ","); got != "second,first" {
		t.Fatalf("order = %q, want %q", got, "second,first")
	}
}

func testListCapsAtLimit(t *testing.T, store storage.PostStore, clock *Clock) {
	for i := 0; i < 12; i++ {
		clock.Advance(time.Minute)
		mustCreate(t, store, "post "+string(rune('a'+i)), "body")
	}

	posts, err := store.ListRecentPosts(context.Background(), 10)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 10 {
		t.Fatalf("len = %d, want 10", len(posts))
	}
	if posts[0].Title != "post l" {
		t.Fatalf("newest = %q, want %q", posts[0].Title, "post l")
	}
	if posts[9].Title != "post c" {
		t.Fatalf("oldest shown = %q, want %q", posts[9].Title, "post c")
	}
}

func testListRejectsNonPositiveLimit(t *testing.T, store storage.PostStore, _ *Clock) {
	if _, err := store.ListRecentPosts(context.Background(), 0); err == nil {
		t.Fatal("expected error for zero limit")
	}
}

func testListEmpty(t *testing.T, store storage.PostStore, _ *Clock) {
	posts, err := store.ListRecentPosts(context.Background(), 10)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("len = %d, want 0", len(posts))
	}
}

func testUpdateKeepsCreatedAt(t *testing.T, store storage.PostStore, clock *Clock) {
	created := mustCreate(t, store, "Test Post 1", "Post 1 description")
	clock.Advance(72 * time.Hour)

	updated, err := store.UpdatePost(context.Background(), created.ID, storage.PostInput{
		Title:       "Test Post 1 updated",
		Description: "Post 1 description updated",
	})
	if err != nil {
		t.Fatalf("update post: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("id = %d, want %d", updated.ID, created.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at = %v, want %v", updated.CreatedAt, created.CreatedAt)
	}

	got, err := store.GetPost(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Title != "Test Post 1 updated" || got.Description != "Post 1 description updated" {
		t.Fatalf("got %+v after update", got)
	}

	posts, err := store.ListRecentPosts(context.Background(), 10)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("len = %d, want 1", len(posts))
	}
}

func testUpdateMissing(t *testing.T, store storage.PostStore, _ *Clock) {
	_, err := store.UpdatePost(context.Background(), 4242, storage.PostInput{Title: "x", Description: "y"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want %v", err, storage.ErrNotFound)
	}
}

func testDeleteRemoves(t *testing.T, store storage.PostStore, _ *Clock) {
	created := mustCreate(t, store, "doomed", "body")
	if err := store.DeletePost(context.Background(), created.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if _, err := store.GetPost(context.Background(), created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get after delete err = %v, want %v", err, storage.ErrNotFound)
	}
	if err := store.DeletePost(context.Background(), created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("second delete err = %v, want %v", err, storage.ErrNotFound)
	}
}

func testDeleteMissing(t *testing.T, store storage.PostStore, _ *Clock) {
	if err := store.DeletePost(context.Background(), 4242); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want %v", err, storage.ErrNotFound)
	}
}

func testRejectsInvalidInput(t *testing.T, store storage.PostStore, _ *Clock) {
	inputs := []storage.PostInput{
		{Title: "", Description: "body"},
		{Title: "title", Description: "  "},
		{Title: strings.Repeat("t", storage.TitleMaxLength+1), Description: "body"},
		{Title: "title", Description: strings.Repeat("d", storage.DescriptionMaxLength+1)},
	}
	for _, input := range inputs {
		if _, err := store.CreatePost(context.Background(), input); !errors.Is(err, storage.ErrInvalidPost) {
			t.Fatalf("create %+v err = %v, want %v", input, err, storage.ErrInvalidPost)
		}
	}

	posts, err := store.ListRecentPosts(context.Background(), 10)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("len = %d, want 0 after rejected creates", len(posts))
	}

	created := mustCreate(t, store, "valid", "body")
	_, err = store.UpdatePost(context.Background(), created.ID, storage.PostInput{Title: "", Description: "body"})
	if !errors.Is(err, storage.ErrInvalidPost) {
		t.Fatalf("update err = %v, want %v", err, storage.ErrInvalidPost)
	}
}

func testCountsCharactersNotBytes(t *testing.T, store storage.PostStore, _ *Clock) {
	title := strings.Repeat("ç", storage.TitleMaxLength)
	created := mustCreate(t, store, title, "acentuação")
	got, err := store.GetPost(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Title != title {
		t.Fatalf("title = %q, want %q", got.Title, title)
	}
}

func testPing(t *testing.T, store storage.PostStore, _ *Clock) {
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
