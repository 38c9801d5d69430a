package blog

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/blogger/internal/services/blog/storage"
	"github.com/rs/zerolog"
)

func openTestStore(t *testing.T) Store {
	t.Helper()
	store, err := OpenStore(context.Background(), StoreConfig{
		Driver:     DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "blog.db"),
	})
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestHandler(t *testing.T, store storage.PostStore, logs *bytes.Buffer) http.Handler {
	t.Helper()
	logger := zerolog.Nop()
	if logs != nil {
		logger = zerolog.New(logs)
	}
	h, err := NewHandler(Config{HTTPAddr: "127.0.0.1:0", Store: store, Logger: logger})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return h
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandlerCreateListDetailRoundTrip(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, openTestStore(t), nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, formRequest("/blog/create/", url.Values{"title": {"Test Post 1"}, "description": {"Hello from SQLite"}}))
	if rr.Code != http.StatusFound {
		t.Fatalf("create status = %d, want %d: %s", rr.Code, http.StatusFound, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/blog/", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `href="/blog/1/"`) {
		t.Fatalf("list status = %d, body = %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/blog/1/", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Hello from SQLite") {
		t.Fatalf("detail status = %d, body = %s", rr.Code, rr.Body.String())
	}
}

func TestHandlerRedirectsRootAndAppendsSlash(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, openTestStore(t), nil)
	tests := []struct {
		path     string
		status   int
		location string
	}{
		{path: "/", status: http.StatusFound, location: "/blog/"},
		{path: "/blog", status: http.StatusMovedPermanently, location: "/blog/"},
		{path: "/blog/create", status: http.StatusMovedPermanently, location: "/blog/create/"},
	}
	for _, tc := range tests {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rr.Code != tc.status {
			t.Fatalf("GET %s status = %d, want %d", tc.path, rr.Code, tc.status)
		}
		if got := rr.Header().Get("Location"); got != tc.location {
			t.Fatalf("GET %s Location = %q, want %q", tc.path, got, tc.location)
		}
	}
}

func TestHandlerLocalizesFromQueryAndPersistsCookie(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, openTestStore(t), nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/blog/?lang=pt-BR", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), `<html lang="pt-BR"`) {
		t.Fatalf("page not rendered in pt-BR: %s", rr.Body.String())
	}
	var found bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == "blog_lang" && c.Value == "pt-BR" {
			found = true
		}
	}
	if !found {
		t.Fatalf("language cookie not set")
	}
}

func TestHandlerRejectsCrossOriginPost(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	h := newTestHandler(t, store, nil)
	req := formRequest("/blog/create/", url.Values{"title": {"t"}, "description": {"d"}})
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
	posts, err := store.ListRecentPosts(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentPosts() error = %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("cross-origin post created %d posts", len(posts))
	}
}

func TestHandlerEchoesRequestIDAndLogsAccess(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	h := newTestHandler(t, openTestStore(t), &logs)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("healthz status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("X-Request-ID = %q, want req-123", got)
	}
	line := logs.String()
	for _, want := range []string{`"request_id":"req-123"`, `"path":"/healthz"`, `"status":200`} {
		if !strings.Contains(line, want) {
			t.Fatalf("access log missing %s: %s", want, line)
		}
	}
}

func TestHandlerWithoutStoreIsDegraded(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil, nil)
	for path, want := range map[string]int{"/blog/": http.StatusServiceUnavailable, "/healthz": http.StatusServiceUnavailable} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != want {
			t.Fatalf("GET %s status = %d, want %d", path, rr.Code, want)
		}
	}
}

func TestNewServerRequiresAddress(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(Config{HTTPAddr: "  "}); err == nil {
		t.Fatalf("expected error for empty address")
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	srv, err := NewServer(Config{HTTPAddr: "127.0.0.1:0", Store: openTestStore(t), Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Serve did not return after cancel")
	}
}

func TestOpenStoreRejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := OpenStore(context.Background(), StoreConfig{Driver: "mysql"})
	if err == nil || !strings.Contains(err.Error(), "unknown store driver") {
		t.Fatalf("OpenStore() error = %v, want unknown driver", err)
	}
}
