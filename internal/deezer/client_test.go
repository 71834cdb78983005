// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package deezer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/cratedigger/internal/cache"
	"github.com/tomtom215/cratedigger/internal/config"
	"github.com/tomtom215/cratedigger/internal/metrics"
)

// recordingSleeper captures requested backoff durations without sleeping.
type recordingSleeper struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (r *recordingSleeper) sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.sleeps = append(r.sleeps, d)
	r.mu.Unlock()
	return ctx.Err()
}

func (r *recordingSleeper) recorded() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.sleeps...)
}

// testConfig returns a config with limiting disabled and a breaker that
// never trips during ordinary tests.
func testConfig(baseURL string) *config.DeezerConfig {
	return &config.DeezerConfig{
		BaseURL:             baseURL,
		Timeout:             5 * time.Second,
		MaxRetries:          2,
		RetryBackoff:        200 * time.Millisecond,
		RateLimit:           0,
		BreakerMinRequests:  1000,
		BreakerFailureRatio: 1,
		BreakerInterval:     time.Minute,
		BreakerTimeout:      time.Minute,
	}
}

// newTestClient starts a fake Deezer server and a client pointing at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *recordingSleeper) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sleeper := &recordingSleeper{}
	client := NewClient(testConfig(server.URL), cache.New(time.Hour), WithSleep(sleeper.sleep))
	t.Cleanup(client.Close)
	return client, sleeper
}

func TestFetchRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	client, sleeper := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":1}]}`))
	})

	retriesBefore := testutil.ToFloat64(metrics.DeezerRetries.WithLabelValues("/album/{id}"))

	body, ok := client.Fetch(context.Background(), "/album/42", nil)
	if !ok {
		t.Fatal("Fetch() returned absent, want payload after retries")
	}
	if string(body) != `{"data":[{"id":1}]}` {
		t.Errorf("body = %s", body)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server calls = %d, want 3", got)
	}

	sleeps := sleeper.recorded()
	want := []time.Duration{200 * time.Millisecond, 400 * time.Millisecond}
	if len(sleeps) != len(want) {
		t.Fatalf("sleeps = %v, want %v", sleeps, want)
	}
	for i := range want {
		if sleeps[i] != want[i] {
			t.Errorf("sleep[%d] = %v, want %v", i, sleeps[i], want[i])
		}
	}

	if got := testutil.ToFloat64(metrics.DeezerRetries.WithLabelValues("/album/{id}")) - retriesBefore; got != 2 {
		t.Errorf("retries metric delta = %v, want 2", got)
	}
}

func TestFetchErrorPayloadIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	client, sleeper := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"error":{"type":"DataException","message":"no data","code":800}}`))
	})

	if _, ok := client.Fetch(context.Background(), "/album/0", nil); ok {
		t.Error("Fetch() should be absent for an error payload")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server calls = %d, want 1", got)
	}
	if len(sleeper.recorded()) != 0 {
		t.Errorf("sleeps = %v, want none", sleeper.recorded())
	}
}

func TestFetchInvalidJSONIsRetried(t *testing.T) {
	var calls atomic.Int32
	client, sleeper := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})

	exhaustedBefore := testutil.ToFloat64(metrics.DeezerExhausted.WithLabelValues("/search/album"))

	if _, ok := client.Fetch(context.Background(), "/search/album", url.Values{"q": {"x"}}); ok {
		t.Error("Fetch() should be absent for an unparseable body")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server calls = %d, want 3", got)
	}
	if got := len(sleeper.recorded()); got != 2 {
		t.Errorf("sleeps = %d, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.DeezerExhausted.WithLabelValues("/search/album")) - exhaustedBefore; got != 1 {
		t.Errorf("exhausted metric delta = %v, want 1", got)
	}
}

func TestFetchArrayBodyIsSuccess(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"error":"not an object member"}]`))
	})

	if _, ok := client.Fetch(context.Background(), "/anything", nil); !ok {
		t.Error("Fetch() should accept a JSON array body")
	}
}

func TestFetchSendsQueryParams(t *testing.T) {
	var got url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept header = %q", r.Header.Get("Accept"))
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	params := url.Values{}
	params.Set("q", "blue note")
	params.Set("index", "17")
	if _, ok := client.Fetch(context.Background(), "/search/album", params); !ok {
		t.Fatal("Fetch() returned absent")
	}
	if got.Get("q") != "blue note" || got.Get("index") != "17" {
		t.Errorf("query = %v", got)
	}
}

func TestFetchStopsWhenBackoffCancelled(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	client := NewClient(testConfig(server.URL), nil, WithSleep(func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}))
	defer client.Close()

	if _, ok := client.Fetch(ctx, "/album/1", nil); ok {
		t.Error("Fetch() should be absent after cancellation")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server calls = %d, want 1", got)
	}
}

func TestFetchZeroRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.MaxRetries = 0
	client := NewClient(cfg, nil)
	defer client.Close()

	if _, ok := client.Fetch(context.Background(), "/album/1", nil); ok {
		t.Error("Fetch() should be absent")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server calls = %d, want 1", got)
	}
}

func TestBreakerOpensAndRejects(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.MaxRetries = 0
	cfg.BreakerMinRequests = 2
	cfg.BreakerFailureRatio = 0.5
	client := NewClient(cfg, nil)
	defer client.Close()

	ctx := context.Background()
	client.Fetch(ctx, "/album/1", nil)
	client.Fetch(ctx, "/album/2", nil)

	if got := client.BreakerState(); got != "open" {
		t.Fatalf("BreakerState() = %q, want open", got)
	}

	rejectedBefore := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected"))
	if _, ok := client.Fetch(ctx, "/album/3", nil); ok {
		t.Error("Fetch() should be absent while the breaker is open")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("server calls = %d, want 2 (third rejected by breaker)", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected")) - rejectedBefore; got != 1 {
		t.Errorf("rejected metric delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues(breakerName)); got != 2 {
		t.Errorf("breaker state gauge = %v, want 2", got)
	}
}

func TestOpenBreakerSkipsBackoff(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.BreakerMinRequests = 2
	cfg.BreakerFailureRatio = 0.5
	sleeper := &recordingSleeper{}
	client := NewClient(cfg, nil, WithSleep(sleeper.sleep))
	defer client.Close()

	ctx := context.Background()

	// Two failures trip the breaker; the third attempt is rejected.
	if _, ok := client.Fetch(ctx, "/album/1", nil); ok {
		t.Fatal("Fetch() should be absent")
	}
	if got := client.BreakerState(); got != "open" {
		t.Fatalf("BreakerState() = %q, want open", got)
	}
	if got := len(sleeper.recorded()); got != 2 {
		t.Fatalf("sleeps after tripping = %d, want 2", got)
	}

	if _, ok := client.Fetch(ctx, "/album/2", nil); ok {
		t.Error("Fetch() should be absent while the breaker is open")
	}
	if got := sleeper.recorded(); len(got) != 2 {
		t.Errorf("sleeps = %v, want no backoff once the breaker is open", got)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("server calls = %d, want 2", got)
	}
}

func TestErrorPayloadDoesNotTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"code":800}}`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.BreakerMinRequests = 2
	cfg.BreakerFailureRatio = 0.5
	client := NewClient(cfg, nil)
	defer client.Close()

	for i := 0; i < 5; i++ {
		client.Fetch(context.Background(), "/album/1", nil)
	}
	if got := client.BreakerState(); got != "closed" {
		t.Errorf("BreakerState() = %q, want closed", got)
	}
}

func TestRateLimiterWaitHonoursContext(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.RateLimit = 1
	cfg.RateWindow = time.Hour
	client := NewClient(cfg, nil)
	defer client.Close()

	if _, ok := client.Fetch(context.Background(), "/chart/0/albums", nil); !ok {
		t.Fatal("first Fetch() should consume the only token")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, ok := client.Fetch(ctx, "/chart/0/albums", nil); ok {
		t.Error("second Fetch() should be absent while waiting for a token")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server calls = %d, want 1", got)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	client := NewClient(testConfig("http://127.0.0.1:1"), nil)
	client.Close()
	client.Close()
}

func TestEndpointLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/album/302127", "/album/{id}"},
		{"/album/302127/tracks", "/album/{id}/tracks"},
		{"/genre/132/artists", "/genre/{id}/artists"},
		{"/chart/0/albums", "/chart/{id}/albums"},
		{"/search/album", "/search/album"},
		{"/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := endpointLabel(tt.path); got != tt.want {
				t.Errorf("endpointLabel(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestSleepContext(t *testing.T) {
	if err := sleepContext(context.Background(), time.Millisecond); err != nil {
		t.Errorf("sleepContext() = %v, want nil", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepContext(ctx, time.Hour); err == nil {
		t.Error("sleepContext() on cancelled ctx should return an error")
	}
}
