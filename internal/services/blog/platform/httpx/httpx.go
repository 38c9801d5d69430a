// Package httpx provides HTTP middleware helpers used by blog modules.
package httpx

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the request correlation id.
const RequestIDHeader = "X-Request-ID"

// Middleware wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middleware in declaration order.
func Chain(handler http.Handler, middleware ...Middleware) http.Handler {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	wrapped := handler
	for idx := len(middleware) - 1; idx >= 0; idx-- {
		if middleware[idx] == nil {
			continue
		}
		wrapped = middleware[idx](wrapped)
	}
	return wrapped
}

// MethodNotAllowed writes a 405 response with an Allow header.
func MethodNotAllowed(allow string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", strings.TrimSpace(allow))
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// RequestID injects and echoes a request id for correlation.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
			if requestID == "" {
				requestID = uuid.NewString()
				r.Header.Set(RequestIDHeader, requestID)
			}
			w.Header().Set(RequestIDHeader, requestID)
			next.ServeHTTP(w, r)
		})
	}
}

// Logger attaches base, tagged with the request id, to the request context.
// Handlers read it back with zerolog.Ctx.
func Logger(base zerolog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := base.With().Str("request_id", r.Header.Get(RequestIDHeader)).Logger()
			next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
		})
	}
}

// AccessLog writes one event per request once the response is complete.
func AccessLog() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			logger := zerolog.Ctx(r.Context())
			event := logger.Info()
			if status >= http.StatusInternalServerError {
				event = logger.Error()
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", rec.bytes).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

// RecoverPanic converts panics into HTTP 500 responses.
func RecoverPanic() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}
				zerolog.Ctx(r.Context()).Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", recovered).
					Str("stack", strings.TrimSpace(string(debug.Stack()))).
					Msg("panic recovered")
				w.WriteHeader(http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// AppendSlash permanently redirects GET and HEAD requests for a path without
// a trailing slash when the slashed path is an exact route of mux. Other
// methods on such a path go to notFound, so mux never issues its own redirect.
func AppendSlash(mux *http.ServeMux, notFound http.Handler) Middleware {
	if notFound == nil {
		notFound = http.NotFoundHandler()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "" || strings.HasSuffix(path, "/") {
				next.ServeHTTP(w, r)
				return
			}
			if own := routePattern(mux, r, path); own != "" &&
				!strings.HasSuffix(own, "/") && !strings.HasSuffix(own, "{$}") {
				next.ServeHTTP(w, r)
				return
			}
			slashed := path + "/"
			pattern := routePattern(mux, r, slashed)
			if pattern == "" || (strings.HasSuffix(pattern, "/") && strings.Count(pattern, "/") != strings.Count(slashed, "/")) {
				next.ServeHTTP(w, r)
				return
			}
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				notFound.ServeHTTP(w, r)
				return
			}
			if r.URL.RawQuery != "" {
				slashed += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, slashed, http.StatusMovedPermanently)
		})
	}
}

// routePattern returns the path part of the mux pattern serving path for r's
// method. A path the mux would redirect reports the pattern of the
// redirect target, which always ends in "/" or "{$}".
func routePattern(mux *http.ServeMux, r *http.Request, path string) string {
	candidate := r.Clone(r.Context())
	candidate.URL.Path = path
	candidate.URL.RawPath = ""
	_, pattern := mux.Handler(candidate)
	if idx := strings.IndexByte(pattern, ' '); idx >= 0 {
		pattern = pattern[idx+1:]
	}
	if idx := strings.IndexByte(pattern, '/'); idx > 0 {
		pattern = pattern[idx:]
	}
	return pattern
}

// WriteRedirect writes a 302 redirect to location.
func WriteRedirect(w http.ResponseWriter, r *http.Request, location string) {
	if r == nil {
		w.Header().Set("Location", location)
		w.WriteHeader(http.StatusFound)
		return
	}
	http.Redirect(w, r, location, http.StatusFound)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
