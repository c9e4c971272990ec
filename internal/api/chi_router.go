// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/villarank/villarank/internal/authz"
	"github.com/villarank/villarank/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler so the internal/middleware helpers
// plug into r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router assembles the HTTP surface from the handler, the middleware
// factory, authentication, and the authorization enforcer.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	authMW        *AuthMiddleware
	authzMW       *authz.Middleware
}

// NewRouter creates a router. authMW and authzMW may be nil only in
// tests exercising unauthenticated routes.
func NewRouter(handler *Handler, chiMW *ChiMiddleware, authMW *AuthMiddleware, authzMW *authz.Middleware) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
		authMW:        authMW,
		authzMW:       authzMW,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(RequestIDWithLogging())      // X-Request-ID header plus logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// ========================
	// Health Endpoints
	// ========================
	// Permissive rate limiting so monitors can poll frequently.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Authentication Endpoints
	// ========================
	// Strict rate limiting: these are the brute-force surface.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitAuth())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Post("/register", router.handler.Register)
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", router.handler.Login)
	})

	// ========================
	// Authenticated API Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(router.handler.perfMon.Middleware)
		r.Use(router.authMW.Authenticate)

		r.Get("/profile", router.handler.Profile)
		r.Put("/profile", router.handler.ProfileUpdate)

		r.Post("/search", router.handler.Search)
		r.Post("/search/detailed", router.handler.SearchDetailed)

		r.Post("/assistant/recommend", router.handler.AssistantRecommend)

		r.Get("/catalog/stats", router.handler.CatalogStats)

		r.Get("/analytics/prices", router.handler.AnalyticsPrices)
		r.Get("/analytics/locations", router.handler.AnalyticsLocations)

		r.Get("/ws", router.handler.WebSocket)

		// Admin routes additionally pass the casbin enforcer.
		r.Route("/admin", func(r chi.Router) {
			r.Use(router.authzMW.Require)

			r.Post("/catalog/reload", router.handler.AdminCatalogReload)
			r.Get("/performance", router.handler.AdminPerformance)
		})
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
