package modules

import (
	"github.com/penwright/blog/internal/services/blog/modules/admin"
	"github.com/penwright/blog/internal/services/blog/modules/public"
)

// DefaultPublicModules returns the reader-facing modules.
func DefaultPublicModules(deps Dependencies) []Module {
	var reader public.PostReader
	if deps.Posts != nil {
		reader = deps.Posts
	}
	return []Module{
		public.NewWithReader(reader, deps.Renderer, deps.Base),
	}
}

// DefaultAdminModules returns the post management modules.
func DefaultAdminModules(deps Dependencies) []Module {
	return []Module{
		admin.NewWithStore(deps.Posts, deps.Renderer, deps.Base),
	}
}
