package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/poiesic/courserec/recommend"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Catalog answers recommendation queries. *courserec.Catalog implements it.
type Catalog interface {
	Recommend(ctx context.Context, query string, limit int) (recommend.Result, error)
	Ready() bool
}

// Server serves recommendations over HTTP.
type Server struct {
	catalog      Catalog
	logger       *slog.Logger
	registry     *prometheus.Registry
	metrics      *Metrics
	defaultLimit int
	rateLimit    int
	rateWindow   time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration

	handler http.Handler
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMetrics exposes reg on /metrics and records request metrics in m.
// m must be registered with reg. Its exact match and containment metrics
// stay at zero unless m is also attached to the catalog with
// courserec.WithMonitor.
// Default is a private registry holding only the per-request metrics.
func WithMetrics(reg *prometheus.Registry, m *Metrics) Option {
	return func(s *Server) error {
		if reg == nil || m == nil {
			return ErrRegistryRequired
		}
		s.registry = reg
		s.metrics = m
		return nil
	}
}

// WithDefaultLimit sets the limit used when a request has none.
// Default is recommend.DefaultLimit.
func WithDefaultLimit(limit int) Option {
	return func(s *Server) error {
		s.defaultLimit = max(limit, 0)
		return nil
	}
}

// WithRateLimit allows requests requests per window from each client IP.
// A non-positive requests disables rate limiting.
// Default is 100 per minute.
func WithRateLimit(requests int, window time.Duration) Option {
	return func(s *Server) error {
		s.rateLimit = requests
		s.rateWindow = window
		return nil
	}
}

// WithTimeouts sets the read and write timeouts of the HTTP server.
// Default is 10s for both.
func WithTimeouts(read, write time.Duration) Option {
	return func(s *Server) error {
		s.readTimeout = read
		s.writeTimeout = write
		return nil
	}
}

// New creates a server for catalog.
func New(catalog Catalog, opts ...Option) (*Server, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}

	s := &Server{
		catalog:      catalog,
		logger:       slog.Default(),
		defaultLimit: recommend.DefaultLimit,
		rateLimit:    100,
		rateWindow:   time.Minute,
		readTimeout:  10 * time.Second,
		writeTimeout: 10 * time.Second,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
		metrics, err := newRequestMetrics(s.registry)
		if err != nil {
			return nil, err
		}
		s.metrics = metrics
	}

	s.handler = s.routes()
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		if s.rateLimit > 0 {
			r.Use(httprate.LimitByIP(s.rateLimit, s.rateWindow))
		}
		r.Get("/recommendations", s.handleRecommendations)
	})

	return r
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
