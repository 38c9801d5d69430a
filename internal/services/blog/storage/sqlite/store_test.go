package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/louisbranch/blogger/internal/services/blog/storage"
	"github.com/louisbranch/blogger/internal/services/blog/storage/storagetest"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestOpenCreatesParentDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "data", "blog.db")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "blog.db")
	first, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	created, err := first.CreatePost(context.Background(), storage.PostInput{Title: "kept", Description: "across reopen"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	second, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })

	got, err := second.GetPost(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get post after reopen: %v", err)
	}
	if got.Title != "kept" {
		t.Fatalf("title = %q, want %q", got.Title, "kept")
	}
}

func TestCheckConstraintRejectsBypassedValidation(t *testing.T) {
	t.Parallel()

	store := openTempStore(t, nil)
	_, err := store.sqlDB.Exec(`INSERT INTO posts (title, description, created_at) VALUES ('', 'body', 0)`)
	if err == nil {
		t.Fatal("expected check constraint failure for empty title")
	}
	if !isCheckViolation(err) {
		t.Fatalf("expected check violation, got %v", err)
	}
}

func TestDeletedIDsAreNotReused(t *testing.T) {
	t.Parallel()

	store := openTempStore(t, nil)
	first, err := store.CreatePost(context.Background(), storage.PostInput{Title: "one", Description: "body"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if err := store.DeletePost(context.Background(), first.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	second, err := store.CreatePost(context.Background(), storage.PostInput{Title: "two", Description: "body"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("id %d reused after delete", second.ID)
	}
}

func TestStoreContract(t *testing.T) {
	t.Parallel()

	storagetest.Run(t, func(t *testing.T, clock storage.Clock) storage.PostStore {
		return openTempStore(t, clock)
	})
}

func openTempStore(t *testing.T, clock storage.Clock) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blog.db")
	store, err := Open(context.Background(), path, WithClock(clock))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
