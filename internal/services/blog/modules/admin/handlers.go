package admin

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/penwright/blog/internal/post"
	apperrors "github.com/penwright/blog/internal/services/blog/platform/errors"
	"github.com/penwright/blog/internal/services/blog/platform/httpx"
	"github.com/penwright/blog/internal/services/blog/platform/modulehandler"
	"github.com/penwright/blog/internal/services/blog/platform/pagerender"
	"github.com/penwright/blog/internal/services/blog/postview"
	"github.com/penwright/blog/internal/services/blog/routepath"
	"github.com/penwright/blog/internal/services/blog/templates"
)

// maxFormBytes bounds the editor form body.
const maxFormBytes = 1 << 20

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
		TitleKey: "admin.page.list",
		Fragment: func(page templates.PageContext) templ.Component {
			return templates.AdminPostList(page, posts)
		},
	})
}

func (h handlers) handlePost(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostID(r.PathValue(routepath.PostIDParam))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	view, err := h.service.previewPost(r.Context(), id, h.Now())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WritePage(w, r, pagerender.ModulePage{
		TitleKey: "admin.page.post",
		Fragment: func(page templates.PageContext) templ.Component {
			return templates.AdminPostDetail(page, view)
		},
	})
}

func (h handlers) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	h.writeForm(w, r, http.StatusOK, postview.Form(routepath.BackendCreatePost, 0, post.Input{}, nil))
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := h.readForm(w, r)
	if !ok {
		return
	}
	if _, err := h.service.createPost(r.Context(), in); err != nil {
		if isValidation(err) {
			h.writeForm(w, r, http.StatusBadRequest, postview.Form(routepath.BackendCreatePost, 0, in, err))
			return
		}
		h.WriteError(w, r, postview.AppError(err))
		return
	}
	httpx.WriteRedirect(w, r, routepath.Backend)
}

func (h handlers) handleEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostID(r.PathValue(routepath.PostIDParam))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	p, err := h.service.getPost(r.Context(), id)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeForm(w, r, http.StatusOK, postview.Form(routepath.BackendEditPost(id), id, p.Input(), nil))
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostID(r.PathValue(routepath.PostIDParam))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	in, ok := h.readForm(w, r)
	if !ok {
		return
	}
	if _, err := h.service.replacePost(r.Context(), id, in); err != nil {
		if isValidation(err) {
			h.writeForm(w, r, http.StatusBadRequest, postview.Form(routepath.BackendEditPost(id), id, in, err))
			return
		}
		h.WriteError(w, r, postview.AppError(err))
		return
	}
	httpx.WriteRedirect(w, r, routepath.BackendPost(id))
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostID(r.PathValue(routepath.PostIDParam))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if err := h.service.deletePost(r.Context(), id); err != nil {
		h.WriteError(w, r, err)
		return
	}
	httpx.WriteRedirect(w, r, routepath.Backend)
}

func (h handlers) readForm(w http.ResponseWriter, r *http.Request) (post.Input, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "core.error.invalid_input", "parse form: "+err.Error()))
		return post.Input{}, false
	}
	return post.InputFromForm(r.PostForm), true
}

func (h handlers) writeForm(w http.ResponseWriter, r *http.Request, status int, view templates.PostFormView) {
	titleKey := "admin.page.create"
	if view.Editing() {
		titleKey = "admin.page.edit"
	}
	h.WritePage(w, r, pagerender.ModulePage{
		TitleKey:   titleKey,
		StatusCode: status,
		Fragment: func(page templates.PageContext) templ.Component {
			return templates.PostForm(page, view)
		},
	})
}

func isValidation(err error) bool {
	var invalid *post.ValidationError
	return errors.As(err, &invalid)
}
