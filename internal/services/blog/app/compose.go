// Package app composes blog modules into the root HTTP handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/louisbranch/blogger/internal/services/blog/module"
	"github.com/louisbranch/blogger/internal/services/blog/platform/httpx"
	"github.com/louisbranch/blogger/internal/services/blog/platform/weberror"
	"github.com/louisbranch/blogger/internal/services/blog/routepath"
)

// Compose mounts modules on a root mux that redirects "/" to the post list,
// appends missing trailing slashes to module roots and renders the 404 page
// for everything unclaimed.
func Compose(modules []module.Module) (http.Handler, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)

	for _, feature := range modules {
		if feature == nil {
			return nil, fmt.Errorf("module is nil")
		}
		mount, err := feature.Mount()
		if err != nil {
			return nil, fmt.Errorf("mount module %q: %w", feature.ID(), err)
		}
		prefix := strings.TrimSpace(mount.Prefix)
		if !strings.HasPrefix(prefix, "/") || prefix == routepath.Root {
			return nil, fmt.Errorf("mount module %q: invalid prefix %q", feature.ID(), mount.Prefix)
		}
		if mount.Handler == nil {
			return nil, fmt.Errorf("mount module %q: handler is required", feature.ID())
		}
		if previous, ok := seen[prefix]; ok {
			return nil, fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
		}
		seen[prefix] = feature.ID()
		root.Handle(prefix, mount.Handler)
	}

	root.HandleFunc(http.MethodGet+" "+routepath.RootPattern, func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteRedirect(w, r, routepath.Blog)
	})
	root.HandleFunc(routepath.RootPattern, httpx.MethodNotAllowed("GET, HEAD"))
	root.HandleFunc(routepath.Root, weberror.WriteNotFound)
	return httpx.AppendSlash(root, http.HandlerFunc(weberror.WriteNotFound))(root), nil
}
