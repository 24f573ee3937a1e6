// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/pralina/internal/config"
	"github.com/tomtom215/pralina/internal/middleware"
)

// NewRouter builds the chi router with the full middleware stack and all
// API routes.
func NewRouter(h *Handlers, cfg *config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware, order matters: the request ID must exist before
	// anything logs, and recovery wraps everything below it.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		if cfg.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		}

		r.Get("/health", h.HealthHandler)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProductsHandler)
			r.Get("/recent", h.ListRecentProductsHandler)
			r.Get("/{slug}", h.GetProductHandler)
		})
		r.Get("/categories", h.ListCategoriesHandler)

		r.Post("/interactions", h.CreateInteractionHandler)

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/methods", h.RecommendMethodsHandler)
			r.Get("/user/{userID}", h.RecommendHandler)
		})
	})

	// Prometheus scrape endpoint, outside the API middleware stack.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
