package admin

import (
	"net/http"

	"github.com/penwright/blog/internal/services/blog/module"
	"github.com/penwright/blog/internal/services/blog/platform/modulehandler"
	"github.com/penwright/blog/internal/services/blog/postview"
	"github.com/penwright/blog/internal/services/blog/routepath"
)

// Module provides the post management routes under /backend/.
type Module struct {
	posts    PostStore
	renderer postview.Renderer
	base     modulehandler.Base
}

// New returns an admin module with unavailable dependencies (degraded mode).
func New() Module {
	return Module{}
}

// NewWithStore returns an admin module managing posts in posts.
func NewWithStore(posts PostStore, renderer postview.Renderer, base modulehandler.Base) Module {
	return Module{posts: posts, renderer: renderer, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "admin" }

// Mount wires admin route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.posts, m.renderer), m.base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.BackendPrefix, Handler: mux}, nil
}
