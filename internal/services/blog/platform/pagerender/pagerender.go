// Package pagerender centralizes full-page rendering for blog modules.
package pagerender

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/blogger/internal/services/blog/i18n"
	"github.com/louisbranch/blogger/internal/services/blog/templates"
)

// Page describes one full-page response.
type Page struct {
	Title      string
	StatusCode int
	Body       templ.Component
}

// WritePage renders page inside the shared layout. Output is buffered; on a
// render error nothing is written and the caller decides the response.
func WritePage(w http.ResponseWriter, r *http.Request, page Page) error {
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	body := page.Body
	if body == nil {
		body = templ.NopComponent
	}

	loc := i18n.FromContext(r.Context())
	layout := templates.Layout(templates.LayoutOptions{
		Title:     page.Title,
		Loc:       loc,
		Languages: i18n.LanguageOptions(loc, r.URL.Path, r.URL.RawQuery),
	})

	var buf bytes.Buffer
	if err := layout.Render(templ.WithChildren(r.Context(), body), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if r.Method == http.MethodHead {
		return nil
	}
	_, err := w.Write(buf.Bytes())
	return err
}
