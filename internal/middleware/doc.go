// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

/*
Package middleware provides HTTP middleware components for the API server.

All middleware uses the chi signature func(http.Handler) http.Handler so it
can be mounted with Router.Use.

Key Components:

  - RequestID: request ID propagation and logging context
  - AccessLog: structured zerolog access logging
  - PrometheusMetrics: request counters, latency histograms and in-flight gauge
  - Compression: gzip via klauspost/compress/gzhttp for responses over 1KB
  - PerformanceMonitor: rolling latency percentiles per route

Route labels come from the chi route pattern (for example
"/api/v1/albums/{id}") so album IDs never become metric labels.

See Also:

  - internal/api: router that mounts these middleware
  - internal/metrics: Prometheus metrics definitions
*/
package middleware
