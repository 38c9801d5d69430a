package posts

import (
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFeedListsRecentPosts(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.seed(t, "Older", "older body", baseTime.Add(-time.Hour))
	store.seed(t, "Newer", "newer & better", baseTime)

	rr := doGet(t, newTestHandler(t, store), "/blog/feed/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); got != feedContentType {
		t.Fatalf("Content-Type = %q, want %q", got, feedContentType)
	}
	if rr.Header().Get("ETag") == "" {
		t.Fatalf("missing ETag")
	}
	if got := rr.Header().Get("Last-Modified"); got != baseTime.Format(http.TimeFormat) {
		t.Fatalf("Last-Modified = %q, want %q", got, baseTime.Format(http.TimeFormat))
	}

	var feed atomFeed
	if err := xml.Unmarshal(rr.Body.Bytes(), &feed); err != nil {
		t.Fatalf("unmarshal feed: %v\n%s", err, rr.Body.String())
	}
	if feed.Title != "Blog: recent posts" {
		t.Fatalf("feed title = %q", feed.Title)
	}
	if feed.Updated != "2026-03-14T09:30:00Z" {
		t.Fatalf("feed updated = %q", feed.Updated)
	}
	if len(feed.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(feed.Entries))
	}
	first := feed.Entries[0]
	if first.Title != "Newer" || first.Summary != "newer & better" {
		t.Fatalf("first entry = %+v", first)
	}
	if first.Link.Href != "http://example.com/blog/2/" {
		t.Fatalf("first entry link = %q", first.Link.Href)
	}
}

func TestFeedHonoursIfNoneMatch(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.seed(t, "Only", "post", baseTime)
	h := newTestHandler(t, store)

	etag := doGet(t, h, "/blog/feed/").Header().Get("ETag")
	req := httptest.NewRequest(http.MethodGet, "/blog/feed/", nil)
	req.Header.Set("If-None-Match", etag)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotModified {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotModified)
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("304 wrote a body")
	}

	store.seed(t, "Another", "post", baseTime.Add(time.Minute))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status after new post = %d, want %d", rr.Code, http.StatusOK)
	}
	if rr.Header().Get("ETag") == etag {
		t.Fatalf("ETag did not change after a new post")
	}
}

func TestFeedEmptyStore(t *testing.T) {
	t.Parallel()

	rr := doGet(t, newTestHandler(t, newFakeStore()), "/blog/feed/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if rr.Header().Get("Last-Modified") != "" {
		t.Fatalf("empty feed sent Last-Modified")
	}
	var feed atomFeed
	if err := xml.Unmarshal(rr.Body.Bytes(), &feed); err != nil {
		t.Fatalf("unmarshal feed: %v", err)
	}
	if len(feed.Entries) != 0 || feed.Updated != "1970-01-01T00:00:00Z" {
		t.Fatalf("feed = %+v, want empty with epoch updated", feed)
	}
}

func TestRenderFeedIsMinified(t *testing.T) {
	t.Parallel()

	body, err := renderFeed(atomFeed{ID: "id", Title: "t", Updated: "u", Entries: []atomEntry{{ID: "e", Title: "x"}}})
	if err != nil {
		t.Fatalf("renderFeed() error = %v", err)
	}
	if strings.Contains(string(body), "\n") {
		t.Fatalf("feed not minified: %q", body)
	}
}

func TestFeedETagIsStableAndQuoted(t *testing.T) {
	t.Parallel()

	a := feedETag([]byte("feed"))
	if a != feedETag([]byte("feed")) {
		t.Fatalf("ETag not stable")
	}
	if a == feedETag([]byte("feed2")) {
		t.Fatalf("ETag collision for different bodies")
	}
	if !strings.HasPrefix(a, `"`) || !strings.HasSuffix(a, `"`) {
		t.Fatalf("ETag %q not quoted", a)
	}
}
