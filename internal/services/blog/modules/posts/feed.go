package posts

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/louisbranch/blogger/internal/services/blog/i18n"
	"github.com/louisbranch/blogger/internal/services/blog/platform/weberror"
	"github.com/louisbranch/blogger/internal/services/blog/routepath"
	"github.com/louisbranch/blogger/internal/services/blog/storage"
	"github.com/tdewolff/minify/v2"
	minifyxml "github.com/tdewolff/minify/v2/xml"
)

const feedContentType = "application/atom+xml; charset=utf-8"

type atomFeed struct {
	XMLName xml.Name    `xml:"http://www.w3.org/2005/Atom feed"`
	ID      string      `xml:"id"`
	Title   string      `xml:"title"`
	Updated string      `xml:"updated"`
	Author  atomAuthor  `xml:"author"`
	Links   []atomLink  `xml:"link"`
	Entries []atomEntry `xml:"entry"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
	Type string `xml:"type,attr,omitempty"`
}

type atomEntry struct {
	ID        string   `xml:"id"`
	Title     string   `xml:"title"`
	Updated   string   `xml:"updated"`
	Published string   `xml:"published"`
	Link      atomLink `xml:"link"`
	Summary   string   `xml:"summary"`
}

func (h handlers) handleFeed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.listRecent(r.Context())
	if err != nil {
		weberror.WriteError(w, r, err)
		return
	}
	loc := i18n.FromContext(r.Context())
	updated := feedUpdated(posts)
	body, err := renderFeed(atomFeed{
		ID:      absoluteURL(r, routepath.Blog),
		Title:   loc.T("posts.feed.title"),
		Updated: formatAtomTime(updated),
		Author:  atomAuthor{Name: loc.T("core.brand")},
		Links: []atomLink{
			{Href: absoluteURL(r, routepath.BlogFeed), Rel: "self", Type: "application/atom+xml"},
			{Href: absoluteURL(r, routepath.Blog), Rel: "alternate", Type: "text/html"},
		},
		Entries: feedEntries(r, posts),
	})
	if err != nil {
		weberror.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", feedContentType)
	w.Header().Set("ETag", feedETag(body))
	// ServeContent answers If-None-Match with 304 against the ETag above.
	http.ServeContent(w, r, "", updated, bytes.NewReader(body))
}

func feedEntries(r *http.Request, posts []storage.Post) []atomEntry {
	entries := make([]atomEntry, 0, len(posts))
	for _, post := range posts {
		link := absoluteURL(r, routepath.Post(post.ID))
		created := formatAtomTime(post.CreatedAt)
		entries = append(entries, atomEntry{
			ID:        link,
			Title:     post.Title,
			Updated:   created,
			Published: created,
			Link:      atomLink{Href: link, Rel: "alternate", Type: "text/html"},
			Summary:   post.Description,
		})
	}
	return entries
}

// renderFeed marshals feed and minifies the document.
func renderFeed(feed atomFeed) ([]byte, error) {
	var raw bytes.Buffer
	raw.WriteString(xml.Header)
	if err := xml.NewEncoder(&raw).Encode(feed); err != nil {
		return nil, fmt.Errorf("encode feed: %w", err)
	}
	var out bytes.Buffer
	if err := minifyxml.Minify(minify.New(), &out, &raw, nil); err != nil {
		return nil, fmt.Errorf("minify feed: %w", err)
	}
	return out.Bytes(), nil
}

// feedETag is a strong validator over the rendered bytes.
func feedETag(body []byte) string {
	var sum [8]byte
	binary.BigEndian.PutUint64(sum[:], xxhash.Sum64(body))
	return `"` + base64.StdEncoding.EncodeToString(sum[:]) + `"`
}

// feedUpdated is the newest creation time, or the Unix epoch for an empty feed.
func feedUpdated(posts []storage.Post) time.Time {
	var newest time.Time
	for _, post := range posts {
		if post.CreatedAt.After(newest) {
			newest = post.CreatedAt
		}
	}
	if newest.IsZero() {
		return time.Unix(0, 0).UTC()
	}
	return newest.UTC()
}

func formatAtomTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func absoluteURL(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: r.Host, Path: path}
	return u.String()
}
