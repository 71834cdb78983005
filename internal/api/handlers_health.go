// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cratedigger/internal/middleware"
	"github.com/tomtom215/cratedigger/internal/models"
)

// upstreamOpen is the breaker state that makes the service not ready.
const upstreamOpen = "open"

// healthLive reports that the process is alive, regardless of dependencies.
// @Summary Liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /api/v1/health/live [get]
func (h *Handler) healthLive(_ http.ResponseWriter, _ *http.Request) (interface{}, *handlerError) {
	return map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, nil
}

// healthReady reports 503 while the Deezer circuit breaker is open, since
// every discovery call would come back empty.
// @Summary Readiness probe
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus}
// @Failure 503 {object} models.APIResponse
// @Router /api/v1/health/ready [get]
func (h *Handler) healthReady(_ http.ResponseWriter, _ *http.Request) (interface{}, *handlerError) {
	state := h.svc.UpstreamState()
	if state == upstreamOpen {
		herr := newHandlerError(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Deezer upstream unavailable")
		herr.err.Details = map[string]interface{}{"upstream_state": state}
		return nil, herr
	}

	status := "ready"
	if state == "half-open" {
		status = "degraded"
	}
	return models.HealthStatus{
		Status:        status,
		Version:       Version,
		UpstreamState: state,
		Uptime:        time.Since(h.startTime).Seconds(),
	}, nil
}

// stats returns rolling latency percentiles per route.
// @Summary Latency stats
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]middleware.EndpointStats}
// @Router /api/v1/stats [get]
func (h *Handler) stats(_ http.ResponseWriter, _ *http.Request) (interface{}, *handlerError) {
	if h.perfMon == nil {
		return []middleware.EndpointStats{}, nil
	}
	return h.perfMon.GetStats(), nil
}
