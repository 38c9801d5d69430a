package posts

import (
	"context"
	"errors"

	"github.com/louisbranch/blogger/internal/services/blog/form"
	"github.com/louisbranch/blogger/internal/services/blog/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RecentLimit caps the list and feed views.
const RecentLimit = 10

const tracerName = "github.com/louisbranch/blogger/internal/services/blog/modules/posts"

type service struct {
	store  storage.PostStore
	tracer trace.Tracer
}

func newService(store storage.PostStore) service {
	if store == nil {
		store = unavailableStore{}
	}
	return service{store: store, tracer: otel.Tracer(tracerName)}
}

func (s service) listRecent(ctx context.Context) ([]storage.Post, error) {
	ctx, span := s.tracer.Start(ctx, "posts.list")
	defer span.End()

	posts, err := s.store.ListRecentPosts(ctx, RecentLimit)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("posts.count", len(posts)))
	return posts, nil
}

func (s service) get(ctx context.Context, id int64) (storage.Post, error) {
	ctx, span := s.tracer.Start(ctx, "posts.get", trace.WithAttributes(attribute.Int64("post.id", id)))
	defer span.End()

	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		recordError(span, err)
		return storage.Post{}, err
	}
	return post, nil
}

// create validates f and persists it. A non-nil form.Errors means the input
// was rejected and nothing was stored.
func (s service) create(ctx context.Context, f form.PostForm) (storage.Post, form.Errors, error) {
	ctx, span := s.tracer.Start(ctx, "posts.create")
	defer span.End()

	input, errs := form.Validate(f)
	if errs != nil {
		span.SetAttributes(attribute.Bool("form.invalid", true))
		return storage.Post{}, errs, nil
	}
	post, err := s.store.CreatePost(ctx, input)
	if err != nil {
		recordError(span, err)
		return storage.Post{}, nil, err
	}
	span.SetAttributes(attribute.Int64("post.id", post.ID))
	return post, nil, nil
}

// update validates f and replaces the post's fields. A missing post wins
// over invalid input.
func (s service) update(ctx context.Context, id int64, f form.PostForm) (storage.Post, form.Errors, error) {
	ctx, span := s.tracer.Start(ctx, "posts.update", trace.WithAttributes(attribute.Int64("post.id", id)))
	defer span.End()

	if _, err := s.store.GetPost(ctx, id); err != nil {
		recordError(span, err)
		return storage.Post{}, nil, err
	}
	input, errs := form.Validate(f)
	if errs != nil {
		span.SetAttributes(attribute.Bool("form.invalid", true))
		return storage.Post{}, errs, nil
	}
	post, err := s.store.UpdatePost(ctx, id, input)
	if err != nil {
		recordError(span, err)
		return storage.Post{}, nil, err
	}
	return post, nil, nil
}

func (s service) delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "posts.delete", trace.WithAttributes(attribute.Int64("post.id", id)))
	defer span.End()

	if err := s.store.DeletePost(ctx, id); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	span.SetStatus(codes.Error, err.Error())
}
