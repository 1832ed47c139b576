package public

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/penwright/blog/internal/services/blog/platform/modulehandler"
	"github.com/penwright/blog/internal/services/blog/platform/pagerender"
	"github.com/penwright/blog/internal/services/blog/routepath"
	"github.com/penwright/blog/internal/services/blog/templates"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.listPosts(r.Context(), h.Now())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WritePage(w, r, pagerender.ModulePage{
		TitleKey: "blog.page.index",
		Fragment: func(page templates.PageContext) templ.Component {
			return templates.PostList(page, posts)
		},
	})
}

func (h handlers) handlePost(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.getPost(r.Context(), r.PathValue(routepath.PostIDParam), h.Now())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WritePage(w, r, pagerender.ModulePage{
		Title:    view.Title,
		TitleKey: "blog.page.post",
		Fragment: func(page templates.PageContext) templ.Component {
			return templates.PostDetail(page, view)
		},
	})
}

func (h handlers) handleStatic(id string, titleKey string, bodyKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.WritePage(w, r, pagerender.ModulePage{
			TitleKey: titleKey,
			Fragment: func(page templates.PageContext) templ.Component {
				return templates.StaticPage(page, id, bodyKey)
			},
		})
	}
}
