// Package http serves the period statistics as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"statistik/internal/catalog"
	"statistik/internal/log"
	"statistik/internal/middleware/ratelimit"
	"statistik/internal/middleware/security"
	"statistik/internal/middleware/trace"
	"statistik/internal/period"
	"statistik/internal/stats"
)

// StatsProvider is what the handlers need from the stats service.
type StatsProvider interface {
	Stats(ctx context.Context, sel period.Selection) (stats.Result, error)
	Catalog() *catalog.Catalog
	Now() time.Time
}

// ReadyFunc reports whether the backing source is reachable.
type ReadyFunc func(ctx context.Context) error

// Config holds the server settings.
type Config struct {
	Addr           string
	RateLimitRPS   float64
	RateLimitBurst int
	Ready          ReadyFunc
	Logger         *log.Logger
}

type Server struct {
	http.Server
	provider StatsProvider
	ready    ReadyFunc
	logger   *log.Logger
	limiter  *ratelimit.Limiter

	shutdownOnce sync.Once
}

// NewServer wires the router and middleware, returning a ready-to-run server.
func NewServer(cfg Config, provider StatsProvider) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	s := &Server{
		provider: provider,
		ready:    cfg.Ready,
		logger:   logger,
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
		}),
	}

	tracer := trace.NewMiddleware(logger, security.ExtractClientIP)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	detector := security.NewDetector(logger)

	router := chi.NewRouter()
	router.Use(tracer.Middleware)
	router.Use(middleware.Recoverer)
	router.Use(headers.Middleware)
	router.Use(detector.Middleware)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.Get("/healthz", s.handleHealth)
	router.Get("/readyz", s.handleReady)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.limiter.Middleware(security.ExtractClientIP))
		r.Get("/stats", s.handleStats)
		r.Get("/periods/years", s.handleYears)
		r.Get("/categories", s.handleCategories)
	})

	s.Server = http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Shutdown stops the limiter and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
