// Package templates holds the templ components behind every blog page.
package templates

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate

import "time"

// Localizer provides translated strings for blog components.
type Localizer interface {
	T(key string, args ...any) string
	Lang() string
}

// T returns a translated string or the key itself when loc is nil.
func T(loc Localizer, key string, args ...any) string {
	if loc == nil {
		return key
	}
	return loc.T(key, args...)
}

func langOf(loc Localizer) string {
	if loc == nil {
		return "en-US"
	}
	return loc.Lang()
}

// datetime formats t for a <time datetime> attribute.
func datetime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
