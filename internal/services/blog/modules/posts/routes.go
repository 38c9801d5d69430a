package posts

import (
	"net/http"

	"github.com/louisbranch/blogger/internal/services/blog/platform/httpx"
	"github.com/louisbranch/blogger/internal/services/blog/platform/weberror"
	"github.com/louisbranch/blogger/internal/services/blog/routepath"
)

const (
	allowRead = "GET, HEAD"
	allowForm = "GET, HEAD, POST"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.BlogPattern, h.handleList)
	mux.HandleFunc(routepath.BlogPattern, httpx.MethodNotAllowed(allowRead))
	mux.HandleFunc(http.MethodGet+" "+routepath.BlogFeedPattern, h.handleFeed)
	mux.HandleFunc(routepath.BlogFeedPattern, httpx.MethodNotAllowed(allowRead))
	mux.HandleFunc(http.MethodGet+" "+routepath.BlogCreatePattern, h.handleCreateForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.BlogCreatePattern, h.handleCreate)
	mux.HandleFunc(routepath.BlogCreatePattern, httpx.MethodNotAllowed(allowForm))
	// Method-less so the fixed create and feed paths above stay more specific.
	mux.HandleFunc(routepath.PostPattern, h.handleDetailRoute)
	mux.HandleFunc(http.MethodGet+" "+routepath.PostUpdatePattern, h.withPostID(h.handleUpdateForm))
	mux.HandleFunc(http.MethodPost+" "+routepath.PostUpdatePattern, h.withPostID(h.handleUpdate))
	mux.HandleFunc(routepath.PostUpdatePattern, httpx.MethodNotAllowed(allowForm))
	mux.HandleFunc(http.MethodGet+" "+routepath.PostDeletePattern, h.withPostID(h.handleDeleteConfirm))
	mux.HandleFunc(http.MethodPost+" "+routepath.PostDeletePattern, h.withPostID(h.handleDelete))
	mux.HandleFunc(routepath.PostDeletePattern, httpx.MethodNotAllowed(allowForm))
	mux.HandleFunc(routepath.BlogPrefix, weberror.WriteNotFound)
}
