// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package config

import (
	"fmt"
	"time"
)

// Validate checks that configuration values are within usable bounds
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDeezer(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateDiscovery(); err != nil {
		return err
	}
	if err := c.validateRateLimits(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

func (c *Config) validateDeezer() error {
	if err := validateHTTPURL(c.Deezer.BaseURL, "DEEZER_BASE_URL"); err != nil {
		return err
	}
	if c.Deezer.Timeout <= 0 {
		return fmt.Errorf("DEEZER_TIMEOUT must be positive")
	}
	if c.Deezer.MaxRetries < 0 || c.Deezer.MaxRetries > 10 {
		return fmt.Errorf("DEEZER_MAX_RETRIES must be between 0 and 10")
	}
	if c.Deezer.RetryBackoff < 0 {
		return fmt.Errorf("DEEZER_RETRY_BACKOFF must not be negative")
	}
	if c.Deezer.RateLimit < 0 {
		return fmt.Errorf("DEEZER_RATE_LIMIT must not be negative (0 disables limiting)")
	}
	if c.Deezer.RateLimit > 0 && c.Deezer.RateWindow <= 0 {
		return fmt.Errorf("DEEZER_RATE_WINDOW must be positive when DEEZER_RATE_LIMIT is set")
	}
	if c.Deezer.BreakerFailureRatio <= 0 || c.Deezer.BreakerFailureRatio > 1 {
		return fmt.Errorf("DEEZER_BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	return nil
}

// validCacheTypes defines the allowed cache implementations
var validCacheTypes = map[string]bool{
	"ttl": true,
	"lru": true,
}

func (c *Config) validateCache() error {
	if !validCacheTypes[c.Cache.Type] {
		return fmt.Errorf("CACHE_TYPE must be one of: ttl, lru")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.Cache.Capacity < 0 {
		return fmt.Errorf("CACHE_CAPACITY must not be negative")
	}
	if c.Cache.PurgeInterval < 0 {
		return fmt.Errorf("CACHE_PURGE_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validateDiscovery() error {
	if c.Discovery.BatchSize < 1 {
		return fmt.Errorf("DISCOVERY_BATCH_SIZE must be at least 1")
	}
	if c.Discovery.MaxRandomCount < 1 {
		return fmt.Errorf("DISCOVERY_MAX_RANDOM_COUNT must be at least 1")
	}
	if c.Discovery.MaxListCount < 1 {
		return fmt.Errorf("DISCOVERY_MAX_LIST_COUNT must be at least 1")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
