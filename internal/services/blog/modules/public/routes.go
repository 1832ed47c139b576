package public

import (
	"net/http"

	"github.com/penwright/blog/internal/services/blog/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.RootPattern, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.About, h.handleStatic("about-page", "blog.page.about", "blog.about.body"))
	mux.HandleFunc(http.MethodGet+" "+routepath.Categories, h.handleStatic("categories-page", "blog.page.categories", "blog.categories.body"))
	mux.HandleFunc(http.MethodGet+" "+routepath.Contact, h.handleStatic("contact-page", "blog.page.contact", "blog.contact.body"))
	mux.HandleFunc(http.MethodGet+" "+routepath.PostPattern, h.handlePost)
	mux.HandleFunc(http.MethodGet+" "+routepath.PublicRestPattern, h.WriteNotFound)
}
