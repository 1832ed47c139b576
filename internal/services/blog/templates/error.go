package templates

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/penwright/blog/internal/services/blog/routepath"
)

// ErrorState renders the error page body for statusCode. message is an
// already localized, user-safe text; empty selects a status default.
func ErrorState(statusCode int, message string, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if message == "" {
			message = ErrorPageTitle(statusCode, loc)
		}
		h := &htmlWriter{w: w}
		h.raw("<section id=\"app-error-state\"")
		h.attr("data-status", strconv.Itoa(statusCode))
		h.raw("><h1>")
		h.text(message)
		h.raw("</h1><p><a")
		h.attr("href", routepath.Root)
		h.raw(">")
		h.text(T(loc, "core.error.back_home"))
		h.raw("</a></p></section>")
		return h.err
	})
}

// ErrorPageTitle returns the localized default heading for statusCode.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	switch statusCode {
	case http.StatusNotFound:
		return T(loc, "core.error.page_not_found")
	case http.StatusServiceUnavailable:
		return T(loc, "core.error.unavailable")
	case http.StatusForbidden:
		return T(loc, "core.error.forbidden")
	case http.StatusBadRequest:
		return T(loc, "core.error.invalid_input")
	default:
		return T(loc, "core.error.unknown")
	}
}
