// Package modules lists the feature modules composed into the blog.
package modules

import (
	"github.com/louisbranch/blogger/internal/services/blog/module"
	"github.com/louisbranch/blogger/internal/services/blog/modules/health"
	"github.com/louisbranch/blogger/internal/services/blog/modules/posts"
	"github.com/louisbranch/blogger/internal/services/blog/storage"
)

// Default returns the blog modules backed by store. A nil store mounts the
// posts module in degraded mode.
func Default(store storage.PostStore) []module.Module {
	if store == nil {
		return []module.Module{posts.New(), health.New(nil)}
	}
	return []module.Module{posts.NewWithStore(store), health.New(store)}
}
