// Package server exposes read-only scheduler telemetry over HTTP for
// dashboards and log tooling. The scheduler core stays single-threaded:
// the driver publishes a snapshot after each cycle and handlers only ever
// read the latest published copy.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rota-robotics/rota/pkg/domain"
)

// Server is the telemetry HTTP server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	startTime time.Time
	last      atomic.Pointer[domain.Snapshot]
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithMetricsHandler mounts a metrics handler (e.g. promhttp.Handler()) at
// /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.router.Method(http.MethodGet, "/metrics", h)
	}
}

// New creates the server. Pass the logger of the embedding application;
// the server labels its own entries.
func New(logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		logger:    logger.With("component", "telemetry"),
		startTime: time.Now(),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/api/v1/subsystems", s.handleSubsystems)
	s.router = r

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish stores the snapshot for subsequent reads. Call it from the
// driver after each cycle.
func (s *Server) Publish(snap *domain.Snapshot) {
	s.last.Store(snap)
}

// Handler returns the HTTP handler, for mounting or for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("telemetry server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) snapshot() *domain.Snapshot {
	if snap := s.last.Load(); snap != nil {
		return snap
	}
	return &domain.Snapshot{}
}
