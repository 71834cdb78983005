// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Deezer    DeezerConfig    `koanf:"deezer"`
	Cache     CacheConfig     `koanf:"cache"`
	Discovery DiscoveryConfig `koanf:"discovery"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DeezerConfig holds settings for the Deezer catalog client.
//
// Environment Variables:
//   - DEEZER_BASE_URL: API root (default: https://api.deezer.com)
//   - DEEZER_TIMEOUT: per-request HTTP timeout (default: 15s)
//   - DEEZER_MAX_RETRIES: retries after the first attempt (default: 2)
//   - DEEZER_RETRY_BACKOFF: linear backoff step (default: 200ms)
//   - DEEZER_RATE_LIMIT: requests allowed per DEEZER_RATE_WINDOW (default: 50)
//   - DEEZER_RATE_WINDOW: rate limit window (default: 5s)
type DeezerConfig struct {
	BaseURL      string        `koanf:"base_url"`
	Timeout      time.Duration `koanf:"timeout"`
	MaxRetries   int           `koanf:"max_retries"`
	RetryBackoff time.Duration `koanf:"retry_backoff"`
	RateLimit    int           `koanf:"rate_limit"`
	RateWindow   time.Duration `koanf:"rate_window"`

	// Circuit breaker: opens once BreakerMinRequests have been seen in
	// BreakerInterval and the failure ratio reaches BreakerFailureRatio.
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
	BreakerInterval     time.Duration `koanf:"breaker_interval"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`
}

// CacheConfig holds settings for the upstream response cache.
type CacheConfig struct {
	// Type is "ttl" (unbounded) or "lru" (bounded by Capacity).
	Type     string        `koanf:"type"`
	TTL      time.Duration `koanf:"ttl"`
	Capacity int           `koanf:"capacity"`

	// PurgeInterval is how often expired entries are swept. 0 disables the sweep.
	PurgeInterval time.Duration `koanf:"purge_interval"`
}

// DiscoveryConfig tunes the discovery pipeline.
type DiscoveryConfig struct {
	// BatchSize is the number of candidates enriched concurrently.
	BatchSize int `koanf:"batch_size"`
	// MaxRandomCount caps the count accepted by /albums/random.
	MaxRandomCount int `koanf:"max_random_count"`
	// MaxListCount caps the count accepted by /albums/search and /albums/chart.
	MaxListCount int `koanf:"max_list_count"`
}

// SecurityConfig holds CORS and inbound rate limiting settings
type SecurityConfig struct {
	// FrontendURL is an extra allowed CORS origin (FRONTEND_URL).
	FrontendURL       string        `koanf:"frontend_url"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// AllowedOrigins returns the configured CORS origins with FrontendURL appended
// when set.
func (s SecurityConfig) AllowedOrigins() []string {
	origins := make([]string, 0, len(s.CORSOrigins)+1)
	origins = append(origins, s.CORSOrigins...)
	if s.FrontendURL != "" {
		origins = append(origins, s.FrontendURL)
	}
	return origins
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration with the following precedence (highest last):
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
func Load() (*Config, error) {
	return LoadWithKoanf()
}
