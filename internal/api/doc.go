// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

/*
Package api provides the HTTP surface of Cratedigger.

Routes are served by go-chi/chi. Two route families share one set of
handlers:

  - Root routes ("/genres", "/albums/random", ...) keep the frontend contract:
    bare JSON bodies, and errors as {"detail": "..."}.
  - /api/v1 routes return the same data wrapped in models.APIResponse.

Endpoints:

	GET /                      welcome message
	GET /genres                genres available for filtering
	GET /albums/random         random playable albums (count, genres, min_tracks)
	GET /albums/chart          current chart albums (count)
	GET /albums/search         album search (q, count)
	GET /albums/{id}           one album by Deezer ID
	GET /health/live           liveness probe
	GET /health/ready          readiness probe (503 while the upstream breaker is open)
	GET /api/v1/stats          rolling per-route latency percentiles
	GET /metrics               Prometheus exposition

Query parameters are bound into request structs and validated with
go-playground/validator through internal/validation. Violations return 422
with code VALIDATION_ERROR.

Middleware stack (outermost first): request ID, real IP, access log,
panic recovery, CORS, gzip, Prometheus, performance monitor, then per-IP
rate limiting on data routes.
*/
package api
