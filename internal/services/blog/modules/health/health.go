// Package health exposes the liveness probe backed by a store ping.
package health

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/louisbranch/blogger/internal/platform/timeouts"
	"github.com/louisbranch/blogger/internal/services/blog/module"
	"github.com/louisbranch/blogger/internal/services/blog/platform/httpx"
	"github.com/louisbranch/blogger/internal/services/blog/routepath"
	"github.com/rs/zerolog"
)

var errNoPinger = errors.New("health: no store configured")

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Module serves the health probe.
type Module struct {
	pinger Pinger
}

// New returns a health module probing pinger. A nil pinger always reports
// unavailable.
func New(pinger Pinger) Module {
	return Module{pinger: pinger}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "health" }

// Mount wires the health route.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.HealthPattern, m.handleHealth)
	mux.HandleFunc(routepath.HealthPattern, httpx.MethodNotAllowed("GET, HEAD"))
	return module.Mount{Prefix: routepath.Health, Handler: mux}, nil
}

func (m Module) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := m.ping(r.Context()); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("health probe failed")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, "unavailable\n")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok\n")
}

func (m Module) ping(ctx context.Context) error {
	if m.pinger == nil {
		return errNoPinger
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.HealthProbe)
	defer cancel()
	return m.pinger.Ping(ctx)
}
