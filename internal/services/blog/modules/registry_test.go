package modules

import (
	"context"
	"testing"

	"github.com/louisbranch/blogger/internal/services/blog/storage"
)

type stubStore struct{ storage.PostStore }

func (stubStore) Ping(context.Context) error { return nil }

func TestDefaultModulesHaveUniquePrefixes(t *testing.T) {
	t.Parallel()

	for _, store := range []storage.PostStore{nil, stubStore{}} {
		mods := Default(store)
		if len(mods) != 2 {
			t.Fatalf("module count = %d, want 2", len(mods))
		}
		if got := mods[0].ID(); got != "posts" {
			t.Fatalf("module[0] id = %q, want posts", got)
		}
		if got := mods[1].ID(); got != "health" {
			t.Fatalf("module[1] id = %q, want health", got)
		}
		seen := map[string]string{}
		for _, mod := range mods {
			mount, err := mod.Mount()
			if err != nil {
				t.Fatalf("mount %q: %v", mod.ID(), err)
			}
			if owner, ok := seen[mount.Prefix]; ok {
				t.Fatalf("prefix %q mounted by %q and %q", mount.Prefix, owner, mod.ID())
			}
			seen[mount.Prefix] = mod.ID()
		}
	}
}
