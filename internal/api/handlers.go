// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/cratedigger/internal/config"
	"github.com/tomtom215/cratedigger/internal/discovery"
	"github.com/tomtom215/cratedigger/internal/middleware"
	"github.com/tomtom215/cratedigger/internal/models"
)

// Version is reported by the root and health endpoints.
const Version = "2.0.0"

// AlbumService is the discovery surface the handlers depend on.
// *discovery.Service implements it.
type AlbumService interface {
	ListGenres() []models.Genre
	Discover(ctx context.Context, req discovery.DiscoverRequest) []models.Album
	Search(ctx context.Context, query string, count int) []models.Album
	Chart(ctx context.Context, count int) []models.Album
	AlbumByID(ctx context.Context, id int64) (*models.Album, error)
	UpstreamState() string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, root and genres
//   - handlers_albums.go: album discovery, chart, search and lookup
//   - handlers_health.go: health probes and latency stats
type Handler struct {
	svc       AlbumService
	discovery config.DiscoveryConfig
	perfMon   *middleware.PerformanceMonitor
	startTime time.Time
}

// NewHandler creates a new API handler. perfMon may be nil, in which case
// the stats endpoint reports no samples.
func NewHandler(svc AlbumService, cfg config.DiscoveryConfig, perfMon *middleware.PerformanceMonitor) *Handler {
	return &Handler{
		svc:       svc,
		discovery: cfg,
		perfMon:   perfMon,
		startTime: time.Now(),
	}
}

// welcome is the body of GET /.
type welcome struct {
	Message    string `json:"message"`
	Version    string `json:"version"`
	DataSource string `json:"data_source"`
}

// Root handles GET /
// @Summary Welcome message
// @Description Returns the service banner
// @Tags Core
// @Produce json
// @Success 200 {object} welcome
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, welcome{
		Message:    "Welcome to Crate Digging API",
		Version:    Version,
		DataSource: "Deezer",
	})
}

// genres lists the genres available for filtering. The list is static, so
// clients may cache it.
// @Summary List genres
// @Description Lists the genres accepted by the genres filter of /albums/random
// @Tags Discovery
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.Genre}
// @Router /api/v1/genres [get]
func (h *Handler) genres(w http.ResponseWriter, _ *http.Request) (interface{}, *handlerError) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	return h.svc.ListGenres(), nil
}
