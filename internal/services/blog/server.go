package blog

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/blogger/internal/platform/timeouts"
	"github.com/louisbranch/blogger/internal/services/blog/app"
	"github.com/louisbranch/blogger/internal/services/blog/i18n"
	"github.com/louisbranch/blogger/internal/services/blog/modules"
	"github.com/louisbranch/blogger/internal/services/blog/platform/httpx"
	"github.com/louisbranch/blogger/internal/services/blog/storage"
	"github.com/rs/zerolog"
)

// Config defines startup inputs for the blog service.
type Config struct {
	HTTPAddr string
	Store    storage.PostStore
	Logger   zerolog.Logger
	// ShutdownTimeout bounds graceful shutdown; zero uses timeouts.Shutdown.
	ShutdownTimeout time.Duration
}

// Server hosts the blog HTTP surface and lifecycle.
type Server struct {
	httpAddr        string
	httpServer      *http.Server
	logger          zerolog.Logger
	shutdownTimeout time.Duration
}

// NewHandler builds the root handler with the shared middleware stack.
func NewHandler(cfg Config) (http.Handler, error) {
	h, err := app.Compose(modules.Default(cfg.Store))
	if err != nil {
		return nil, err
	}
	csrf := http.NewCrossOriginProtection()
	return httpx.Chain(h,
		httpx.RequestID(),
		httpx.Logger(cfg.Logger),
		httpx.AccessLog(),
		httpx.RecoverPanic(),
		i18n.Middleware,
		csrf.Handler,
	), nil
}

// NewServer validates config and constructs a blog server.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose blog handler: %w", err)
	}
	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = timeouts.Shutdown
	}
	return &Server{
		httpAddr:        httpAddr,
		logger:          cfg.Logger,
		shutdownTimeout: shutdownTimeout,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			ReadTimeout:       timeouts.Read,
			WriteTimeout:      timeouts.Write,
			IdleTimeout:       timeouts.Idle,
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("blog server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	listener, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpAddr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if s == nil {
		return errors.New("blog server is nil")
	}
	s.logger.Info().Str("addr", listener.Addr().String()).Msg("blog listening")

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown blog http server: %w", err)
		}
		s.logger.Info().Msg("blog stopped")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve blog http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
