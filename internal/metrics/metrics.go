// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - Deezer upstream calls
// - Cache efficiency
// - Circuit breaker state
// - Discovery pipeline yield

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}, // discovery calls fan out upstream
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Deezer Upstream Metrics
	DeezerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deezer_requests_total",
			Help: "Total number of Deezer API attempts",
		},
		[]string{"endpoint", "outcome"}, // outcome: "success", "api_error", "http_error", "transport_error", "rejected"
	)

	DeezerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deezer_request_duration_seconds",
			Help:    "Duration of Deezer API attempts in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	DeezerRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deezer_retries_total",
			Help: "Total number of Deezer API retries after a failed attempt",
		},
		[]string{"endpoint"},
	)

	DeezerExhausted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deezer_retries_exhausted_total",
			Help: "Total number of Deezer fetches that failed after every retry",
		},
		[]string{"endpoint"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry or capacity)",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Discovery Metrics
	DiscoveryCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_candidates",
			Help:    "Number of deduplicated album candidates gathered per discovery call",
			Buckets: []float64{0, 10, 25, 50, 100, 150, 200},
		},
		[]string{"mode"}, // "mixed", "genre"
	)

	DiscoveryEnriched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_enrichment_total",
			Help: "Total number of album enrichment outcomes",
		},
		[]string{"result"}, // "accepted", "rejected", "filtered"
	)

	DiscoveryShortfall = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_shortfall_total",
			Help: "Total number of discovery calls that returned fewer albums than requested",
		},
	)

	DiscoveryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_duration_seconds",
			Help:    "Duration of discovery, search and chart operations in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"operation"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordDeezerAttempt records a single upstream attempt.
func RecordDeezerAttempt(endpoint, outcome string, duration time.Duration) {
	DeezerRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	DeezerRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordDeezerRetry records a retry scheduled after a failed attempt.
func RecordDeezerRetry(endpoint string) {
	DeezerRetries.WithLabelValues(endpoint).Inc()
}

// RecordDeezerExhausted records a fetch that gave up.
func RecordDeezerExhausted(endpoint string) {
	DeezerExhausted.WithLabelValues(endpoint).Inc()
}

// RecordEnrichment records the outcome of enriching one candidate.
func RecordEnrichment(result string) {
	DiscoveryEnriched.WithLabelValues(result).Inc()
}

// RecordDiscovery records a completed discovery-style operation.
func RecordDiscovery(operation string, requested, returned int, duration time.Duration) {
	DiscoveryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if returned < requested {
		DiscoveryShortfall.Inc()
	}
}
