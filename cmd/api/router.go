package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xavierca1/vida-ativa-leads/internal/infra/http/handlers"
	"github.com/xavierca1/vida-ativa-leads/internal/infra/http/middleware"
)

func newRouter(
	leadHandler *handlers.LeadHandler,
	healthHandler *handlers.HealthHandler,
	allowedOrigins []string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	useMiddlewares(r, allowedOrigins, logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", healthHandler.Root)
		r.Get("/health", healthHandler.Handle)

		r.Route("/leads", func(r chi.Router) {
			r.Post("/", leadHandler.Create)
			r.Get("/", leadHandler.List)
			r.Get("/stats", leadHandler.Stats)
			r.Get("/{id}", leadHandler.Get)
			r.Delete("/{id}", leadHandler.Delete)
			r.Put("/{id}/whatsapp-joined", leadHandler.MarkWhatsAppJoined)
			r.Put("/{id}/ebook-sent", leadHandler.MarkEbookSent)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// useMiddlewares installs the shared stack. Metrics and the request logger sit
// outside Recoverer so a recovered panic is still counted and logged as a 500.
func useMiddlewares(r chi.Router, allowedOrigins []string, logger *zap.Logger) {
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.Recoverer(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))
}
