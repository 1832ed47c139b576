package blog

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/penwright/blog/internal/markup"
	"github.com/penwright/blog/internal/post"
	"github.com/penwright/blog/internal/storage/sqlite"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func newSQLiteHandler(t *testing.T) http.Handler {
	t.Helper()
	client, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "blog.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	handler, err := NewHandler(Config{
		Posts:    post.NewRepository(client, 0),
		Renderer: markup.NewRenderer(),
		Health:   client,
		Logger:   log.New(&bytes.Buffer{}, "", 0),
	})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return handler
}

func serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func postForm(target string, values url.Values, origin string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "http://blog.example.test"+target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func TestNewServerRequiresAddress(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(Config{Renderer: markup.NewRenderer()}); err == nil {
		t.Fatal("expected missing address error")
	}
}

func TestNewHandlerRequiresRenderer(t *testing.T) {
	t.Parallel()

	if _, err := NewHandler(Config{}); err == nil {
		t.Fatal("expected missing renderer error")
	}
}

func TestListenAndServeRejectsNilServer(t *testing.T) {
	t.Parallel()

	var server *Server
	if err := server.ListenAndServe(context.Background()); err == nil {
		t.Fatal("expected nil server error")
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	server, err := NewServer(Config{
		HTTPAddr: "127.0.0.1:0",
		Renderer: markup.NewRenderer(),
		Logger:   log.New(&bytes.Buffer{}, "", 0),
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := server.ListenAndServe(ctx); err != nil {
		t.Fatalf("ListenAndServe() error = %v", err)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pinger     Pinger
		wantStatus int
		wantBody   string
	}{
		{name: "no store", wantStatus: http.StatusOK, wantBody: `"status":"ok"`},
		{name: "healthy store", pinger: stubPinger{}, wantStatus: http.StatusOK, wantBody: `"status":"ok"`},
		{name: "failing store", pinger: stubPinger{err: errors.New("down")}, wantStatus: http.StatusServiceUnavailable, wantBody: `"status":"unavailable"`},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			handler, err := NewHandler(Config{
				Renderer: markup.NewRenderer(),
				Health:   tc.pinger,
				Logger:   log.New(&bytes.Buffer{}, "", 0),
			})
			if err != nil {
				t.Fatalf("NewHandler() error = %v", err)
			}
			rr := serve(handler, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			if !strings.Contains(rr.Body.String(), tc.wantBody) {
				t.Fatalf("body = %q", rr.Body.String())
			}
		})
	}
}

func TestServesStylesheet(t *testing.T) {
	t.Parallel()

	handler, err := NewHandler(Config{Renderer: markup.NewRenderer()})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	rr := serve(handler, httptest.NewRequest(http.MethodGet, "/static/blog.css", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Fatalf("content type = %q", ct)
	}
}

func TestResponsesCarryRequestID(t *testing.T) {
	t.Parallel()

	handler, err := NewHandler(Config{Renderer: markup.NewRenderer()})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	rr := serve(handler, httptest.NewRequest(http.MethodGet, "/about", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header")
	}
}

func TestDegradedModeWithoutStore(t *testing.T) {
	t.Parallel()

	handler, err := NewHandler(Config{Renderer: markup.NewRenderer(), Logger: log.New(&bytes.Buffer{}, "", 0)})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	rr := serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	if !strings.Contains(rr.Body.String(), "An error occurred") {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestPostLifecycleAgainstSQLite(t *testing.T) {
	t.Parallel()

	handler := newSQLiteHandler(t)
	origin := "http://blog.example.test"

	first := url.Values{
		"title":                 {"Hi <b>"},
		"category":              {"tech"},
		"snippet_description":   {"d"},
		"first_part_of_content": {"# Hello"},
	}
	rr := serve(handler, postForm("/backend/create-post", first, origin))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("create status = %d, want %d; body %q", rr.Code, http.StatusSeeOther, rr.Body.String())
	}
	if got := rr.Header().Get("Location"); got != "/backend" {
		t.Fatalf("create location = %q, want %q", got, "/backend")
	}

	rr = serve(handler, httptest.NewRequest(http.MethodGet, "/1", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("detail status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<h1>Hello</h1>") {
		t.Fatalf("detail body missing rendered markdown: %q", body)
	}
	if !strings.Contains(body, "Hi &lt;b&gt;") {
		t.Fatalf("detail body missing escaped title: %q", body)
	}
	if strings.Contains(body, "Hi <b>") {
		t.Fatalf("detail body leaked raw title markup: %q", body)
	}

	second := url.Values{
		"title":                  {"Second"},
		"category":               {"life"},
		"snippet_description":    {"two parts"},
		"first_part_of_content":  {"Part one"},
		"second_part_of_content": {"Part two"},
	}
	rr = serve(handler, postForm("/backend/create-post", second, origin))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("second create status = %d", rr.Code)
	}

	rr = serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d", rr.Code)
	}
	list := rr.Body.String()
	if !strings.Contains(list, `href="/1"`) || !strings.Contains(list, `href="/2"`) {
		t.Fatalf("list missing post links: %q", list)
	}
	if strings.Index(list, `href="/1"`) > strings.Index(list, `href="/2"`) {
		t.Fatal("posts not listed in id order")
	}

	edit := url.Values{
		"title":                 {"Second, edited"},
		"category":              {"life"},
		"snippet_description":   {"one part now"},
		"first_part_of_content": {"Only part"},
	}
	rr = serve(handler, postForm("/backend/post/2/edit-post", edit, origin))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("edit status = %d", rr.Code)
	}
	if got := rr.Header().Get("Location"); got != "/backend/post/2" {
		t.Fatalf("edit location = %q", got)
	}
	rr = serve(handler, httptest.NewRequest(http.MethodGet, "/2", nil))
	if !strings.Contains(rr.Body.String(), "Second, edited") || strings.Contains(rr.Body.String(), "Part two") {
		t.Fatalf("edited post body = %q", rr.Body.String())
	}

	rr = serve(handler, httptest.NewRequest(http.MethodGet, "/3", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing post status = %d, want %d", rr.Code, http.StatusNotFound)
	}

	rr = serve(handler, postForm("/backend/post/2/delete-post", url.Values{}, origin))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("delete status = %d", rr.Code)
	}
	rr = serve(handler, httptest.NewRequest(http.MethodGet, "/2", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("deleted post status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestCrossOriginAdminMutationIsRejected(t *testing.T) {
	t.Parallel()

	handler := newSQLiteHandler(t)
	values := url.Values{
		"title":                 {"x"},
		"category":              {"x"},
		"snippet_description":   {"x"},
		"first_part_of_content": {"x"},
	}
	rr := serve(handler, postForm("/backend/create-post", values, "http://evil.example.test"))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
	rr = serve(handler, httptest.NewRequest(http.MethodGet, "/1", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("rejected create still stored a post: status %d", rr.Code)
	}
}

func TestInvalidSubmissionRerendersForm(t *testing.T) {
	t.Parallel()

	handler := newSQLiteHandler(t)
	values := url.Values{"title": {"Only a title"}}
	rr := serve(handler, postForm("/backend/create-post", values, "http://blog.example.test"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rr.Body.String(), `id="post-form"`) || !strings.Contains(rr.Body.String(), "Only a title") {
		t.Fatalf("body = %q", rr.Body.String())
	}
}
