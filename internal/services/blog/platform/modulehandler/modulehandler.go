// Package modulehandler provides a composable base for blog module handlers.
//
// Modules embed Base for page rendering, error responses and failure logging
// so each handler stays a short sequence of service call then render.
package modulehandler

import (
	"log"
	"net/http"
	"time"

	apperrors "github.com/penwright/blog/internal/services/blog/platform/errors"
	"github.com/penwright/blog/internal/services/blog/platform/httpx"
	"github.com/penwright/blog/internal/services/blog/platform/pagerender"
	"github.com/penwright/blog/internal/services/blog/platform/weberror"
)

// Base carries the shared handler dependencies.
type Base struct {
	logger  *log.Logger
	nowFunc func() time.Time
}

// NewBase builds a handler base. A nil logger uses the standard logger.
func NewBase(logger *log.Logger) Base {
	return Base{logger: logger, nowFunc: time.Now}
}

// NewTestBase builds a handler base with a fixed clock and a logger that
// writes to the standard logger.
func NewTestBase(now time.Time) Base {
	return Base{nowFunc: func() time.Time { return now }}
}

// Now returns the handler clock's current time.
func (b Base) Now() time.Time {
	if b.nowFunc == nil {
		return time.Now()
	}
	return b.nowFunc()
}

// Logger returns the handler logger.
func (b Base) Logger() *log.Logger {
	if b.logger == nil {
		return log.Default()
	}
	return b.logger
}

// WriteError logs server-side failures and renders a localized error
// response for err.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if status := apperrors.HTTPStatus(err); status >= http.StatusInternalServerError {
		method, path := "", ""
		if r != nil && r.URL != nil {
			method, path = r.Method, r.URL.Path
		}
		b.Logger().Printf("request failed method=%s path=%s status=%d request_id=%s err=%v", method, path, status, httpx.RequestIDOf(r), err)
	}
	weberror.WriteModuleError(w, r, err)
}

// WriteNotFound renders the 404 page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, "")
}

// WritePage renders a full page, falling back to an error response when
// rendering fails.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page pagerender.ModulePage) {
	if err := pagerender.WriteModulePage(w, r, page); err != nil {
		b.WriteError(w, r, err)
	}
}
