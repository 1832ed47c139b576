// Package weberror renders shared error responses for blog modules.
package weberror

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	apperrors "github.com/penwright/blog/internal/services/blog/platform/errors"
	blogi18n "github.com/penwright/blog/internal/services/blog/platform/i18n"
	"github.com/penwright/blog/internal/services/blog/platform/pagerender"
	"github.com/penwright/blog/internal/services/blog/templates"
	"golang.org/x/text/message"
)

// ShouldRenderAppError reports whether status should use the error page.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc templates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteAppError writes the error page for statusCode. text is already
// localized; empty selects the status default.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, text string) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	err := pagerender.WriteModulePage(w, r, pagerender.ModulePage{
		StatusCode: statusCode,
		TitleKey:   "core.error.title",
		Fragment: func(page templates.PageContext) templ.Component {
			return templates.ErrorState(statusCode, text, page.Loc)
		},
	})
	if err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteModuleError writes a module-safe localized error response. Not found
// and server failures get the error page; other statuses get plain text.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	tag, _ := blogi18n.ResolveTag(r)
	text := PublicMessage(message.NewPrinter(tag), err)
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, text)
		return
	}
	http.Error(w, text, statusCode)
}
