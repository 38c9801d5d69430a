package posts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/blogger/internal/services/blog/storage"
	"golang.org/x/net/html"
)

var baseTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// fakeStore is an in-memory PostStore.
type fakeStore struct {
	mu     sync.Mutex
	posts  map[int64]storage.Post
	nextID int64
	now    time.Time
	err    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{posts: map[int64]storage.Post{}, now: baseTime}
}

func (s *fakeStore) setNow(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = t
}

func (s *fakeStore) ListRecentPosts(_ context.Context, limit int) ([]storage.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]storage.Post, 0, len(s.posts))
	for _, post := range s.posts {
		out = append(out, post)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) GetPost(_ context.Context, id int64) (storage.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return storage.Post{}, s.err
	}
	post, ok := s.posts[id]
	if !ok {
		return storage.Post{}, storage.ErrNotFound
	}
	return post, nil
}

func (s *fakeStore) CreatePost(_ context.Context, input storage.PostInput) (storage.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return storage.Post{}, s.err
	}
	input, err := storage.NormalizeInput(input)
	if err != nil {
		return storage.Post{}, err
	}
	s.nextID++
	post := storage.Post{ID: s.nextID, Title: input.Title, Description: input.Description, CreatedAt: s.now}
	s.posts[post.ID] = post
	return post, nil
}

func (s *fakeStore) UpdatePost(_ context.Context, id int64, input storage.PostInput) (storage.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return storage.Post{}, s.err
	}
	input, err := storage.NormalizeInput(input)
	if err != nil {
		return storage.Post{}, err
	}
	post, ok := s.posts[id]
	if !ok {
		return storage.Post{}, storage.ErrNotFound
	}
	post.Title = input.Title
	post.Description = input.Description
	s.posts[id] = post
	return post, nil
}

func (s *fakeStore) DeletePost(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.posts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *fakeStore) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

func (s *fakeStore) seed(t *testing.T, title, description string, createdAt time.Time) storage.Post {
	t.Helper()
	s.setNow(createdAt)
	post, err := s.CreatePost(context.Background(), storage.PostInput{Title: title, Description: description})
	if err != nil {
		t.Fatalf("seed %q: %v", title, err)
	}
	return post
}

func mountHandler(t *testing.T, m Module) http.Handler {
	t.Helper()
	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return mount.Handler
}

func newTestHandler(t *testing.T, store *fakeStore) http.Handler {
	t.Helper()
	return mountHandler(t, NewWithStore(store).WithNow(func() time.Time { return baseTime.Add(time.Hour) }))
}

func doGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func doPost(t *testing.T, h http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func postValues(title, description string) url.Values {
	return url.Values{"title": {title}, "description": {description}}
}

// page wraps a parsed HTML response for structural assertions.
type page struct {
	root *html.Node
}

func parsePage(t *testing.T, rr *httptest.ResponseRecorder) page {
	t.Helper()
	root, err := html.Parse(strings.NewReader(rr.Body.String()))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return page{root: root}
}

func (p page) findAll(match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(p.root)
	return out
}

func (p page) elements(tag string) []*html.Node {
	return p.findAll(func(n *html.Node) bool { return n.Data == tag })
}

func (p page) forms() []*html.Node {
	return p.elements("form")
}

func (p page) byName(tag, name string) *html.Node {
	nodes := p.findAll(func(n *html.Node) bool { return n.Data == tag && attr(n, "name") == name })
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

func (p page) byClass(tag, class string) []*html.Node {
	return p.findAll(func(n *html.Node) bool {
		if n.Data != tag {
			return false
		}
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	})
}

func attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// listedTitles returns the linked titles of the recent posts list in order.
func (p page) listedTitles() []string {
	lists := p.byClass("ul", "tivix-list")
	if len(lists) == 0 {
		return nil
	}
	var titles []string
	for li := lists[0].FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "a" {
				titles = append(titles, textOf(c))
				break
			}
		}
	}
	return titles
}
