package posts

import (
	"net/http"
	"time"

	"github.com/louisbranch/blogger/internal/services/blog/module"
	"github.com/louisbranch/blogger/internal/services/blog/platform/httpx"
	"github.com/louisbranch/blogger/internal/services/blog/platform/weberror"
	"github.com/louisbranch/blogger/internal/services/blog/routepath"
	"github.com/louisbranch/blogger/internal/services/blog/storage"
)

// Module provides the post list, detail, form and feed routes.
type Module struct {
	store storage.PostStore
	now   func() time.Time
}

// New returns a posts module with no store (degraded mode).
func New() Module {
	return Module{}
}

// NewWithStore returns a posts module backed by store.
func NewWithStore(store storage.PostStore) Module {
	return Module{store: store}
}

// WithNow returns a copy of m whose list page measures post age against now.
func (m Module) WithNow(now func() time.Time) Module {
	m.now = now
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "posts" }

// Mount wires post route handlers under the blog prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.store), m.now)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.BlogPrefix, Handler: httpx.AppendSlash(mux, http.HandlerFunc(weberror.WriteNotFound))(mux)}, nil
}
