package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/vincent/forexledger/internal/adapter/http/handler"
	"github.com/vincent/forexledger/internal/adapter/http/middleware"
	"github.com/vincent/forexledger/internal/infrastructure/auth"
	"github.com/vincent/forexledger/internal/infrastructure/metrics"
	"github.com/vincent/forexledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	BookHandler      *handler.BookHandler
	EntryHandler     *handler.EntryHandler
	RateHandler      *handler.RateHandler
	AuthHandler      *handler.AuthHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	JWTManager       *auth.JWTManager
	AuthEnabled      bool
	Logger           zerolog.Logger
	Metrics          *metrics.Metrics
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Authentication endpoints stay outside the auth gate.
		if cfg.AuthHandler != nil {
			r.Route("/auth", func(r chi.Router) {
				r.Post("/register", cfg.AuthHandler.Register)
				r.Post("/login", cfg.AuthHandler.Login)

				if cfg.AuthEnabled && cfg.JWTManager != nil {
					r.With(middleware.AuthMiddleware(cfg.JWTManager)).Get("/me", cfg.AuthHandler.Me)
				}
			})
		}

		r.Group(func(r chi.Router) {
			// Idempotency middleware for mutating requests
			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
				r.Use(idempotencyMiddleware.Wrap)
			}

			if cfg.AuthEnabled && cfg.JWTManager != nil {
				r.Use(middleware.AuthMiddleware(cfg.JWTManager))
			} else if cfg.JWTManager != nil {
				r.Use(middleware.OptionalAuth(cfg.JWTManager))
			}

			// Books
			r.Route("/books", func(r chi.Router) {
				r.Post("/", cfg.BookHandler.Create)
				r.Get("/", cfg.BookHandler.List)
				r.Get("/{id}", cfg.BookHandler.Get)
				r.Get("/{id}/entries", cfg.EntryHandler.ListByBook)
			})

			// Entries
			r.Route("/entries", func(r chi.Router) {
				r.Post("/", cfg.EntryHandler.Create)
			})

			// Exchange rates
			r.Route("/rates", func(r chi.Router) {
				r.Get("/{bank}", cfg.RateHandler.ListByBank)
				r.Post("/{bank}/refresh", cfg.RateHandler.Refresh)
			})
		})
	})

	return r
}
