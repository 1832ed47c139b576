package admin

import (
	"net/http"

	"github.com/penwright/blog/internal/services/blog/platform/httpx"
	"github.com/penwright/blog/internal/services/blog/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Backend, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.BackendRootPattern, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.BackendPostPattern, h.handlePost)
	mux.HandleFunc(http.MethodGet+" "+routepath.BackendCreatePost, h.handleCreateForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.BackendCreatePost, h.handleCreate)
	mux.HandleFunc(http.MethodGet+" "+routepath.BackendEditPostPattern, h.handleEditForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.BackendEditPostPattern, h.handleEdit)
	mux.HandleFunc(http.MethodGet+" "+routepath.BackendDeletePostPattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.BackendDeletePostPattern, h.handleDelete)
	mux.HandleFunc(http.MethodGet+" "+routepath.BackendRestPattern, h.WriteNotFound)
	mux.HandleFunc(http.MethodPost+" "+routepath.BackendRestPattern, h.WriteNotFound)
}
