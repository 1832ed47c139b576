package pagerender

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/penwright/blog/internal/services/blog/templates"
)

func textComponent(value string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, value)
		return err
	})
}

func TestWriteModulePageRendersFullPageWithLayout(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	rr := httptest.NewRecorder()

	var seen templates.PageContext
	err := WriteModulePage(rr, req, ModulePage{
		TitleKey:   "blog.page.about",
		StatusCode: http.StatusAccepted,
		Fragment: func(page templates.PageContext) templ.Component {
			seen = page
			return textComponent(`<section id="fragment-root">ok</section>`)
		},
	})
	if err != nil {
		t.Fatalf("WriteModulePage() error = %v", err)
	}
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusAccepted)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q, want %q", got, "text/html; charset=utf-8")
	}
	body := rr.Body.String()
	for _, marker := range []string{"<!doctype html>", `id="fragment-root"`, "<title>About | Penwright</title>"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q: %q", marker, body)
		}
	}
	if seen.Title != "About" || seen.CurrentPath != "/about" || seen.Lang != "en-US" {
		t.Fatalf("page context = %+v", seen)
	}
}

func TestWriteModulePageDefaultsStatusAndPrefersExplicitTitle(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/7?lang=pt-BR", nil)
	rr := httptest.NewRecorder()
	if err := WriteModulePage(rr, req, ModulePage{Title: "Hi <b>", TitleKey: "blog.page.post"}); err != nil {
		t.Fatalf("WriteModulePage() error = %v", err)
	}
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<title>Hi &lt;b&gt; | Penwright</title>") {
		t.Fatalf("unexpected title in %q", body)
	}
	if !strings.Contains(body, `lang="pt-BR"`) {
		t.Fatalf("expected pt-BR document in %q", body)
	}
	if len(rr.Result().Cookies()) != 1 {
		t.Fatal("expected language cookie for explicit choice")
	}
}

func TestWriteModulePageWritesNothingOnRenderError(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	err := WriteModulePage(rr, httptest.NewRequest(http.MethodGet, "/", nil), ModulePage{
		Fragment: func(templates.PageContext) templ.Component {
			return templ.ComponentFunc(func(context.Context, io.Writer) error {
				return errors.New("boom")
			})
		},
	})
	if err == nil {
		t.Fatal("expected render error")
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("body = %q, want empty", rr.Body.String())
	}
}
