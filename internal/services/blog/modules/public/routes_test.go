package public

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/penwright/blog/internal/markup"
	"github.com/penwright/blog/internal/post"
	"github.com/penwright/blog/internal/services/blog/platform/modulehandler"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestMux(reader PostReader) *http.ServeMux {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(reader, markup.NewRenderer()), modulehandler.NewTestBase(testNow)))
	return mux
}

func serve(t *testing.T, mux http.Handler, method string, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func samplePosts() []post.Post {
	return []post.Post{
		{ID: 1, Title: "Hi &lt;b&gt;", Category: "tech", SnippetDescription: "first one", FirstPartContent: "# Hello", CreatedAt: testNow.Add(-2 * time.Hour)},
		{ID: 2, Title: "Two", Category: "life &amp; misc", SnippetDescription: "second", FirstPartContent: "para one", SecondPartContent: strPtr("para *two*")},
	}
}

func TestRegisterRoutesHandlesNilMux(t *testing.T) {
	t.Parallel()

	registerRoutes(nil, newHandlers(newService(nil, nil), modulehandler.NewTestBase(testNow)))
}

func TestIndexListsPosts(t *testing.T) {
	t.Parallel()

	rr := serve(t, newTestMux(fakeReader{posts: samplePosts()}), http.MethodGet, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if rr.Header().Get("Content-Type") != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q", rr.Header().Get("Content-Type"))
	}
	body := rr.Body.String()
	for _, marker := range []string{`id="post-list"`, `href="/1"`, `href="/2"`, "Hi &lt;b&gt;", "Category: life &amp; misc", "Published 2 hours ago"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q: %q", marker, body)
		}
	}
	if strings.Contains(body, "&amp;lt;") {
		t.Fatalf("stored escaping leaked into output: %q", body)
	}
}

func TestIndexStoreFailureRendersUnavailable(t *testing.T) {
	t.Parallel()

	reader := fakeReader{listErr: &post.StoreError{Op: "list", Err: errors.New("timeout")}}
	rr := serve(t, newTestMux(reader), http.MethodGet, "/")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	if !strings.Contains(rr.Body.String(), "An error occurred") {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestPostDetailRendersMarkdown(t *testing.T) {
	t.Parallel()

	rr := serve(t, newTestMux(fakeReader{posts: samplePosts()}), http.MethodGet, "/1")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, marker := range []string{"<h1>Hello</h1>", `<h1 class="post-title">Hi &lt;b&gt;</h1>`, "<title>Hi &lt;b&gt; | Penwright</title>", "Category: tech"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q: %q", marker, body)
		}
	}
}

func TestPostDetailJoinsBothParts(t *testing.T) {
	t.Parallel()

	body := serve(t, newTestMux(fakeReader{posts: samplePosts()}), http.MethodGet, "/2").Body.String()
	first := strings.Index(body, "<p>para one</p>")
	second := strings.Index(body, "<p>para <em>two</em></p>")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("expected both parts in order: %q", body)
	}
}

func TestPostDetailMissingRendersNotFound(t *testing.T) {
	t.Parallel()

	rr := serve(t, newTestMux(fakeReader{posts: samplePosts()}), http.MethodGet, "/3")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), "Post not found") {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestPostDetailInvalidIDSkipsStore(t *testing.T) {
	t.Parallel()

	var gets []int64
	mux := newTestMux(fakeReader{posts: samplePosts(), gets: &gets})
	for _, target := range []string{"/abc", "/0", "/-1"} {
		rr := serve(t, mux, http.MethodGet, target)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s status = %d, want %d", target, rr.Code, http.StatusNotFound)
		}
	}
	if len(gets) != 0 {
		t.Fatalf("store queried for invalid ids: %v", gets)
	}
}

func TestPostDetailStoreFailureRendersUnavailable(t *testing.T) {
	t.Parallel()

	reader := fakeReader{getErr: &post.StoreError{Op: "get", Err: errors.New("refused")}}
	rr := serve(t, newTestMux(reader), http.MethodGet, "/1")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "An error occurred") || strings.Contains(body, "refused") {
		t.Fatalf("body = %q", body)
	}
}

func TestStaticPages(t *testing.T) {
	t.Parallel()

	mux := newTestMux(fakeReader{})
	tests := map[string]string{
		"/about":      "about-page",
		"/categories": "categories-page",
		"/contact":    "contact-page",
	}
	for target, marker := range tests {
		rr := serve(t, mux, http.MethodGet, target)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status = %d, want %d", target, rr.Code, http.StatusOK)
		}
		if !strings.Contains(rr.Body.String(), `id="`+marker+`"`) {
			t.Fatalf("%s body missing %q", target, marker)
		}
	}
}

func TestUnknownNestedPathRendersNotFound(t *testing.T) {
	t.Parallel()

	rr := serve(t, newTestMux(fakeReader{}), http.MethodGet, "/1/extra")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), "Page not found") {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestPublicRoutesRejectPost(t *testing.T) {
	t.Parallel()

	rr := serve(t, newTestMux(fakeReader{}), http.MethodPost, "/about")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
	if got := rr.Header().Get("Allow"); got != "GET, HEAD" {
		t.Fatalf("Allow = %q, want %q", got, "GET, HEAD")
	}
}

func TestDegradedModuleReportsUnavailable(t *testing.T) {
	t.Parallel()

	mount, err := New().Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "/" {
		t.Fatalf("Prefix = %q", mount.Prefix)
	}
	rr := serve(t, mount.Handler, http.MethodGet, "/")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}
