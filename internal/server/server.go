package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"log/slog"

	"github.com/me/kborch/internal/config"
	"github.com/me/kborch/internal/job"
	"github.com/me/kborch/internal/oracle"
	"github.com/me/kborch/internal/scheduler"
	"github.com/me/kborch/internal/store"
)

// Server is the kborch REST API server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.Config
	startTime time.Time
	oracle    oracle.Source
	scheduler *scheduler.Scheduler
	registry  *job.Registry
	store     store.Store
	promReg   *prometheus.Registry // optional; enables /metrics
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithPrometheusRegistry exposes the given registry at /metrics.
func WithPrometheusRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.promReg = reg
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.Config, src oracle.Source, sched *scheduler.Scheduler, reg *job.Registry, st store.Store, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		oracle:    src,
		scheduler: sched,
		registry:  reg,
		store:     st,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	if s.promReg != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.promReg, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", s.handleDiscovery)
		r.Get("/health", s.handleHealth)
		r.Get("/jobs", s.handleListJobs)

		r.Post("/iterations", s.handleRunIteration)

		r.Route("/runs", func(r chi.Router) {
			r.Get("/", s.handleListRuns)
			r.Post("/", s.handleCreateRun)
			r.Get("/{id}", s.handleGetRun)
		})
	})
}
