// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/cratedigger/internal/logging"
)

// Performance monitor defaults.
const (
	DefaultPerformanceWindow = 1000
	DefaultSlowThreshold     = 2 * time.Second
)

// RequestSample is one observed request.
type RequestSample struct {
	Route      string
	Method     string
	Duration   time.Duration
	StatusCode int
	Timestamp  time.Time
}

// EndpointStats contains aggregated latency statistics for one route.
type EndpointStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int64   `json:"request_count"`
	ErrorCount   int64   `json:"error_count"`
	AvgMS        float64 `json:"avg_ms"`
	P50MS        int64   `json:"p50_ms"`
	P95MS        int64   `json:"p95_ms"`
	P99MS        int64   `json:"p99_ms"`
	MinMS        int64   `json:"min_ms"`
	MaxMS        int64   `json:"max_ms"`
}

// PerformanceMonitor keeps a rolling window of request samples. Discovery
// requests fan out to many upstream calls, so per-route percentiles make
// slow genres and cold caches visible without a metrics backend.
type PerformanceMonitor struct {
	mu            sync.RWMutex
	samples       []RequestSample
	next          int
	full          bool
	slowThreshold time.Duration
	now           func() time.Time
}

// NewPerformanceMonitor creates a monitor holding up to window samples.
func NewPerformanceMonitor(window int, slowThreshold time.Duration) *PerformanceMonitor {
	if window <= 0 {
		window = DefaultPerformanceWindow
	}
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowThreshold
	}
	return &PerformanceMonitor{
		samples:       make([]RequestSample, window),
		slowThreshold: slowThreshold,
		now:           time.Now,
	}
}

// RecordRequest adds a sample, overwriting the oldest once the window is full.
func (pm *PerformanceMonitor) RecordRequest(sample RequestSample) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.samples[pm.next] = sample
	pm.next = (pm.next + 1) % len(pm.samples)
	if pm.next == 0 {
		pm.full = true
	}
}

// snapshot returns the samples in insertion order. Caller holds the read lock.
func (pm *PerformanceMonitor) snapshot() []RequestSample {
	if !pm.full {
		out := make([]RequestSample, pm.next)
		copy(out, pm.samples[:pm.next])
		return out
	}
	out := make([]RequestSample, 0, len(pm.samples))
	out = append(out, pm.samples[pm.next:]...)
	return append(out, pm.samples[:pm.next]...)
}

// GetStats returns aggregated statistics per endpoint, busiest first.
func (pm *PerformanceMonitor) GetStats() []EndpointStats {
	pm.mu.RLock()
	samples := pm.snapshot()
	pm.mu.RUnlock()

	grouped := make(map[string][]RequestSample)
	for _, s := range samples {
		key := s.Method + " " + s.Route
		grouped[key] = append(grouped[key], s)
	}

	stats := make([]EndpointStats, 0, len(grouped))
	for endpoint, group := range grouped {
		durations := make([]int64, len(group))
		var sum, errors int64
		for i, s := range group {
			durations[i] = s.Duration.Milliseconds()
			sum += durations[i]
			if s.StatusCode >= http.StatusInternalServerError {
				errors++
			}
		}
		sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

		stats = append(stats, EndpointStats{
			Endpoint:     endpoint,
			RequestCount: int64(len(durations)),
			ErrorCount:   errors,
			AvgMS:        float64(sum) / float64(len(durations)),
			P50MS:        percentile(durations, 0.50),
			P95MS:        percentile(durations, 0.95),
			P99MS:        percentile(durations, 0.99),
			MinMS:        durations[0],
			MaxMS:        durations[len(durations)-1],
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RequestCount != stats[j].RequestCount {
			return stats[i].RequestCount > stats[j].RequestCount
		}
		return stats[i].Endpoint < stats[j].Endpoint
	})
	return stats
}

// GetRecentSamples returns the most recent n samples, oldest first.
func (pm *PerformanceMonitor) GetRecentSamples(n int) []RequestSample {
	pm.mu.RLock()
	samples := pm.snapshot()
	pm.mu.RUnlock()

	if n > len(samples) {
		n = len(samples)
	}
	if n <= 0 {
		return []RequestSample{}
	}
	return samples[len(samples)-n:]
}

// Middleware records a sample for every request and warns on slow ones.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := pm.now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := pm.now().Sub(start)
		route := routePattern(r)

		pm.RecordRequest(RequestSample{
			Route:      route,
			Method:     r.Method,
			Duration:   duration,
			StatusCode: status,
			Timestamp:  start,
		})

		if duration > pm.slowThreshold {
			logging.Ctx(r.Context()).Warn().
				Str("method", r.Method).
				Str("route", route).
				Dur("duration", duration).
				Dur("threshold", pm.slowThreshold).
				Msg("Slow request detected")
		}
	})
}

// percentile calculates the percentile value from a sorted slice
func percentile(sorted []int64, p float64) int64 {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted)-1) * p)
	return sorted[index]
}
