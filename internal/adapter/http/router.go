package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/goprovision/internal/adapter/http/handler"
	"github.com/iho/goprovision/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	CalculationHandler *handler.CalculationHandler
	RunHandler         *handler.RunHandler
	HealthHandler      *handler.HealthHandler
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Recoverer)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Calculations
		r.Route("/calculations", func(r chi.Router) {
			r.Post("/staging", cfg.CalculationHandler.Stage)
			r.Post("/ecl", cfg.CalculationHandler.CalculateECL)
			r.Post("/local-impairment", cfg.CalculationHandler.CalculateImpairment)
		})

		// Runs
		r.Route("/runs", func(r chi.Router) {
			r.Get("/{id}", cfg.RunHandler.Get)
			r.Get("/{id}/progress", cfg.RunHandler.Progress)
		})
	})

	return r
}
