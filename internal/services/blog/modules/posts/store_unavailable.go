package posts

import (
	"context"

	apperrors "github.com/louisbranch/blogger/internal/services/blog/platform/errors"
	"github.com/louisbranch/blogger/internal/services/blog/storage"
)

// unavailableStore stands in for a missing store so the module still mounts
// and answers with 503 pages.
type unavailableStore struct{}

var _ storage.PostStore = unavailableStore{}

var errStoreUnavailable = apperrors.EK(apperrors.KindUnavailable, "posts.error.store_unavailable", "post store is not configured")

func (unavailableStore) ListRecentPosts(context.Context, int) ([]storage.Post, error) {
	return nil, errStoreUnavailable
}

func (unavailableStore) GetPost(context.Context, int64) (storage.Post, error) {
	return storage.Post{}, errStoreUnavailable
}

func (unavailableStore) CreatePost(context.Context, storage.PostInput) (storage.Post, error) {
	return storage.Post{}, errStoreUnavailable
}

func (unavailableStore) UpdatePost(context.Context, int64, storage.PostInput) (storage.Post, error) {
	return storage.Post{}, errStoreUnavailable
}

func (unavailableStore) DeletePost(context.Context, int64) error {
	return errStoreUnavailable
}

func (unavailableStore) Ping(context.Context) error {
	return errStoreUnavailable
}
