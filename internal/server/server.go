package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/config"
	"github.com/aristath/finsight/internal/database"
	"github.com/aristath/finsight/internal/modules/companies"
	"github.com/aristath/finsight/internal/modules/insights"
	"github.com/aristath/finsight/internal/modules/kpi"
	"github.com/aristath/finsight/internal/modules/ratios"
	"github.com/aristath/finsight/internal/modules/valuation"
)

// Handlers bundles the per-module HTTP handlers mounted by the server
type Handlers struct {
	Companies *companies.Handlers
	KPI       *kpi.Handlers
	Ratios    *ratios.Handlers
	Insights  *insights.Handlers
	Valuation *valuation.Handlers
}

// Config holds server configuration
type Config struct {
	Port     int
	Log      zerolog.Logger
	DB       *database.DB
	Config   *config.Config
	Handlers Handlers
	DevMode  bool
}

// Server represents the HTTP server
type Server struct {
	router   *chi.Mux
	server   *http.Server
	log      zerolog.Logger
	db       *database.DB
	cfg      *config.Config
	handlers Handlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "server").Logger(),
		db:       cfg.DB,
		cfg:      cfg.Config,
		handlers: cfg.Handlers,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/health", s.handleHealth)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		// System
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.handleSystemStatus)
		})

		// Companies and their per-company analysis surfaces
		r.Route("/companies", func(r chi.Router) {
			r.Get("/", s.handlers.Companies.HandleList)

			r.Route("/{companyID}", func(r chi.Router) {
				r.Get("/kpis", s.handlers.KPI.HandleHistory)
				r.Post("/kpis", s.handlers.KPI.HandleUpsert)
				r.Get("/ratios", s.handlers.Ratios.HandleHistory)
				r.Get("/insights/{period}", s.handlers.Insights.HandleGet)
			})
		})

		// Feed ingestion
		r.Post("/ingest", s.handlers.KPI.HandleIngest)

		// Valuation
		r.Route("/valuation", func(r chi.Router) {
			r.Post("/run", s.handlers.Valuation.HandleRun)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
