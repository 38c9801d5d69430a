// Package i18n resolves the request language and carries a message printer
// through the request context.
package i18n

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/louisbranch/blogger/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the reader's language preference.
	LangCookieName = "blog_lang"
)

// Localizer translates catalog keys for one language.
type Localizer struct {
	Tag     language.Tag
	printer *message.Printer
}

// NewLocalizer returns a localizer for tag using the embedded catalog.
func NewLocalizer(tag language.Tag) Localizer {
	return Localizer{Tag: tag, printer: catalog.Default().Printer(tag)}
}

// T formats the message stored under key.
func (l Localizer) T(key string, args ...any) string {
	if l.printer == nil {
		return NewLocalizer(catalog.Default().DefaultTag()).T(key, args...)
	}
	return l.printer.Sprintf(key, args...)
}

// Lang returns the BCP 47 identifier, suitable for the html lang attribute.
func (l Localizer) Lang() string {
	return l.Tag.String()
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

type contextKey struct{}

// WithLocalizer stores loc on ctx.
func WithLocalizer(ctx context.Context, loc Localizer) context.Context {
	return context.WithValue(ctx, contextKey{}, loc)
}

// FromContext returns the request localizer, or the default language.
func FromContext(ctx context.Context) Localizer {
	if ctx != nil {
		if loc, ok := ctx.Value(contextKey{}).(Localizer); ok {
			return loc
		}
	}
	return NewLocalizer(catalog.Default().DefaultTag())
}

// ResolveTag determines the best language for the request from the lang
// query parameter, the preference cookie, then Accept-Language.
// The bool reports whether the query parameter should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	bundle := catalog.Default()
	if r == nil {
		return bundle.DefaultTag(), false
	}

	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if tag, ok := bundle.Parse(value); ok {
			return tag, true
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := bundle.Parse(cookie.Value); ok {
			return tag, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return bundle.Match(tags...), false
		}
	}

	return bundle.DefaultTag(), false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware resolves the request language and attaches its Localizer.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag, persist := ResolveTag(r)
		if persist {
			SetLanguageCookie(w, tag)
		}
		w.Header().Add("Vary", "Accept-Language, Cookie")
		next.ServeHTTP(w, r.WithContext(WithLocalizer(r.Context(), NewLocalizer(tag))))
	})
}

// LanguageOptions lists supported languages for the switcher on the page at
// path with query rawQuery.
func LanguageOptions(loc Localizer, path, rawQuery string) []LanguageOption {
	tags := catalog.Default().Tags()
	options := make([]LanguageOption, 0, len(tags))
	for _, tag := range tags {
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  loc.T(labelKey(tag)),
			URL:    LanguageURL(path, rawQuery, tag.String()),
			Active: tag == loc.Tag,
		})
	}
	return options
}

// LanguageURL returns path with the language param set to tag.
func LanguageURL(path, rawQuery, tag string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}

func labelKey(tag language.Tag) string {
	return "core.lang." + strings.ReplaceAll(strings.ToLower(tag.String()), "-", "_")
}
