// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tomtom215/cratedigger/docs" // registers the OpenAPI document
	"github.com/tomtom215/cratedigger/internal/middleware"
)

// Rate limit scopes, used as metric labels.
const (
	scopeRoot  = "root"
	scopeAPIv1 = "api_v1"
)

// Router sets up HTTP routes using Chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	perfMon       *middleware.PerformanceMonitor
}

// NewRouter creates a router for handler. perfMon may be nil.
func NewRouter(handler *Handler, chiMW *ChiMiddleware, perfMon *middleware.PerformanceMonitor) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
		perfMon:       perfMon,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() (http.Handler, error) {
	compress, err := middleware.Compression()
	if err != nil {
		return nil, fmt.Errorf("configure compression: %w", err)
	}

	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(compress)
	r.Use(middleware.PrometheusMetrics)
	if router.perfMon != nil {
		r.Use(router.perfMon.Middleware)
	}

	r.NotFound(bare(func(http.ResponseWriter, *http.Request) (interface{}, *handlerError) {
		return nil, errNotFound("Not Found")
	}))
	r.MethodNotAllowed(bare(func(http.ResponseWriter, *http.Request) (interface{}, *handlerError) {
		return nil, newHandlerError(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method Not Allowed")
	}))

	// ========================
	// Operational Endpoints
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))
	r.Route("/health", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Get("/live", enveloped(router.handler.healthLive))
		r.Get("/ready", enveloped(router.handler.healthReady))
	})

	// ========================
	// Frontend Endpoints
	// ========================
	// Bare JSON bodies, as consumed by the web client.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitByIP(scopeRoot))
		r.Use(APISecurityHeaders())

		r.Get("/", router.handler.Root)
		r.Get("/genres", bare(router.handler.genres))
		router.mountAlbums(r, bare)
	})

	// ========================
	// Versioned API
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitByIP(scopeAPIv1))
		r.Use(APISecurityHeaders())

		r.Get("/genres", enveloped(router.handler.genres))
		router.mountAlbums(r, enveloped)
		r.Get("/stats", enveloped(router.handler.stats))
		r.Route("/health", func(r chi.Router) {
			r.Get("/live", enveloped(router.handler.healthLive))
			r.Get("/ready", enveloped(router.handler.healthReady))
		})
	})

	return r, nil
}

// mountAlbums registers the album routes with the given renderer. Static
// segments take precedence over {id} in chi.
func (router *Router) mountAlbums(r chi.Router, render func(endpoint) http.HandlerFunc) {
	r.Route("/albums", func(r chi.Router) {
		r.Get("/random", render(router.handler.randomAlbums))
		r.Get("/chart", render(router.handler.chartAlbums))
		r.Get("/search", render(router.handler.searchAlbums))
		r.Get("/{id}", render(router.handler.albumByID))
	})
}
