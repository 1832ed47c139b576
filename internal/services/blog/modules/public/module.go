package public

import (
	"net/http"

	"github.com/penwright/blog/internal/services/blog/module"
	"github.com/penwright/blog/internal/services/blog/platform/modulehandler"
	"github.com/penwright/blog/internal/services/blog/postview"
	"github.com/penwright/blog/internal/services/blog/routepath"
)

// Module provides the public reading routes.
type Module struct {
	posts    PostReader
	renderer postview.Renderer
	base     modulehandler.Base
}

// New returns a public module with unavailable dependencies (degraded mode).
func New() Module {
	return Module{}
}

// NewWithReader returns a public module reading posts from posts.
func NewWithReader(posts PostReader, renderer postview.Renderer, base modulehandler.Base) Module {
	return Module{posts: posts, renderer: renderer, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "public" }

// Mount wires public route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.posts, m.renderer), m.base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
