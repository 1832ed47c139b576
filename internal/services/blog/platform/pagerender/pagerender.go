// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/penwright/blog/internal/services/blog/platform/httpx"
	blogi18n "github.com/penwright/blog/internal/services/blog/platform/i18n"
	"github.com/penwright/blog/internal/services/blog/templates"
)

// ModulePage describes a full-page module response.
type ModulePage struct {
	// Title is used verbatim when set; otherwise TitleKey is localized.
	Title      string
	TitleKey   string
	StatusCode int
	Fragment   func(page templates.PageContext) templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// ResolvePage builds the layout context for r, persisting an explicit
// language choice on w.
func ResolvePage(w http.ResponseWriter, r *http.Request) templates.PageContext {
	loc, lang := blogi18n.ResolveLocalizer(w, r)
	page := templates.PageContext{Lang: lang, Loc: loc}
	if r != nil && r.URL != nil {
		page.CurrentPath = r.URL.Path
		page.CurrentQuery = r.URL.RawQuery
	}
	return page
}

// WriteModulePage renders page.Fragment inside the site layout. Nothing is
// written when rendering fails, so callers can still write an error response.
func WriteModulePage(w http.ResponseWriter, r *http.Request, page ModulePage) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}

	ctxPage := ResolvePage(w, r)
	ctxPage.Title = strings.TrimSpace(page.Title)
	if ctxPage.Title == "" && page.TitleKey != "" {
		ctxPage.Title = templates.T(ctxPage.Loc, page.TitleKey)
	}
	var fragment templ.Component = emptyComponent{}
	if page.Fragment != nil {
		if built := page.Fragment(ctxPage); built != nil {
			fragment = built
		}
	}

	var buf bytes.Buffer
	ctx := templ.WithChildren(httpx.RequestContext(r), fragment)
	if err := templates.Layout(ctxPage).Render(ctx, &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}
