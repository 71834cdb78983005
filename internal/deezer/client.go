// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package deezer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cratedigger/internal/cache"
	"github.com/tomtom215/cratedigger/internal/config"
	"github.com/tomtom215/cratedigger/internal/logging"
	"github.com/tomtom215/cratedigger/internal/metrics"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 8 << 20

// maxErrorBodySize bounds the body snippet attached to status errors.
const maxErrorBodySize = 512

// userAgent identifies the service to Deezer.
const userAgent = "cratedigger/2.0.0"

// Attempt outcomes recorded in deezer_requests_total.
const (
	outcomeSuccess   = "success"
	outcomeAPIError  = "api_error"
	outcomeHTTPError = "http_error"
	outcomeTransport = "transport_error"
	outcomeInvalid   = "invalid_json"
	outcomeRejected  = "rejected"
	outcomeCancelled = "cancelled"
)

var errInvalidJSON = errors.New("response body is not valid JSON")

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Client talks to the Deezer API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[json.RawMessage]
	limiter    *rate.Limiter // nil when outbound limiting is disabled
	maxRetries int
	backoff    time.Duration
	cache      cache.Cacher
	sleep      SleepFunc
	logger     zerolog.Logger
	closeOnce  sync.Once
}

// Option customizes a Client.
type Option func(*Client)

// WithSleep replaces the backoff sleeper.
func WithSleep(fn SleepFunc) Option {
	return func(c *Client) { c.sleep = fn }
}

// NewClient creates a Deezer client. Responses of the typed endpoints are
// memoized in store; a nil store gets a private TTL cache.
func NewClient(cfg *config.DeezerConfig, store cache.Cacher, opts ...Option) *Client {
	if store == nil {
		store = cache.NewCacher(cache.CacheConfig{Type: cache.CacheTypeTTL})
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    newBreaker(breakerName, cfg),
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.RetryBackoff,
		cache:      store,
		sleep:      sleepContext,
		logger:     logging.WithComponent("deezer"),
	}

	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Every(cfg.RateWindow/time.Duration(cfg.RateLimit)), cfg.RateLimit)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases idle connections. It is safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.httpClient.CloseIdleConnections()
	})
}

// BreakerState reports the circuit breaker state: closed, half-open or open.
func (c *Client) BreakerState() string {
	return stateToString(c.breaker.State())
}

// Fetch performs a GET against baseURL+path and returns the raw JSON body.
//
// The second return value is false when the request failed after all
// retries, when the body carried an "error" key, or when ctx was cancelled.
func (c *Client) Fetch(ctx context.Context, path string, params url.Values) (json.RawMessage, bool) {
	endpoint := endpointLabel(path)
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			metrics.RecordDeezerRetry(endpoint)
			if err := c.sleep(ctx, c.backoff*time.Duration(attempt)); err != nil {
				return nil, false
			}
		}

		start := time.Now()
		body, outcome, err := c.attempt(ctx, reqURL)
		metrics.RecordDeezerAttempt(endpoint, outcome, time.Since(start))

		switch outcome {
		case outcomeSuccess:
			return body, true
		case outcomeAPIError:
			c.logger.Debug().Str("endpoint", path).RawJSON("error", apiErrorDetail(body)).Msg("Deezer returned an error payload")
			return nil, false
		case outcomeCancelled:
			return nil, false
		case outcomeRejected:
			// Retrying cannot succeed before the breaker timeout elapses.
			c.logger.Debug().Err(err).Str("endpoint", path).Msg("Deezer request rejected by circuit breaker")
			return nil, false
		}
		lastErr = err
	}

	metrics.RecordDeezerExhausted(endpoint)
	c.logger.Warn().Err(lastErr).Str("endpoint", path).Int("attempts", c.maxRetries+1).Msg("Failed to fetch from Deezer")
	return nil, false
}

// attempt performs a single rate-limited, breaker-guarded request.
func (c *Client) attempt(ctx context.Context, reqURL string) (json.RawMessage, string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, outcomeCancelled, err
		}
	}

	body, err := c.execute(func() (json.RawMessage, error) {
		return c.do(ctx, reqURL)
	})
	if err != nil {
		var statusErr *StatusError
		switch {
		case ctx.Err() != nil:
			return nil, outcomeCancelled, err
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			return nil, outcomeRejected, err
		case errors.As(err, &statusErr):
			return nil, outcomeHTTPError, err
		case errors.Is(err, errInvalidJSON):
			return nil, outcomeInvalid, err
		default:
			return nil, outcomeTransport, err
		}
	}

	if hasErrorKey(body) {
		return body, outcomeAPIError, nil
	}
	return body, outcomeSuccess, nil
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// do issues the HTTP request and returns the body when it is valid JSON.
func (c *Client) do(ctx context.Context, reqURL string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if !json.Valid(body) {
		return nil, errInvalidJSON
	}
	return body, nil
}

// hasErrorKey reports whether body is a JSON object with an "error" member.
func hasErrorKey(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return false
	}
	_, ok := probe["error"]
	return ok
}

// apiErrorDetail extracts the "error" member for logging.
func apiErrorDetail(body []byte) []byte {
	var probe struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err != nil || len(probe.Error) == 0 {
		return []byte("null")
	}
	return probe.Error
}

// sleepContext waits for d, returning early with ctx.Err() when ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// endpointLabel turns a request path into a low-cardinality metric label by
// replacing numeric segments with {id}.
func endpointLabel(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg != "" && isDigits(seg) {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
