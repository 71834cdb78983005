// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and are
exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:3857/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Upstream (Deezer) Metrics:
  - deezer_requests_total{endpoint,outcome}
  - deezer_request_duration_seconds{endpoint}
  - deezer_retries_total{endpoint}
  - deezer_retries_exhausted_total{endpoint}

Cache Metrics:
  - cache_hits_total, cache_misses_total, cache_evictions_total{cache_type}
  - cache_entries{cache_type}

Circuit Breaker Metrics:
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}

Discovery Metrics:
  - discovery_candidates{mode}
  - discovery_enrichment_total{result}
  - discovery_shortfall_total
  - discovery_duration_seconds{operation}

The endpoint label is always a route pattern or a fixed upstream endpoint name,
never a raw path, to keep label cardinality bounded.
*/
package metrics
