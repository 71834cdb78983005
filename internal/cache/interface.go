// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package cache

import "time"

const (
	// DefaultTTL is how long upstream catalog responses stay cached.
	DefaultTTL = 2 * time.Hour

	// DefaultCapacity bounds an LRU cache created without an explicit capacity.
	DefaultCapacity = 10000
)

// Cacher defines the interface for cache implementations.
// Both Cache (TTL-only) and LRUCache (TTL plus size bound) implement it.
type Cacher interface {
	// Get retrieves a value from the cache.
	// Returns the value and true if found and not expired.
	Get(key string) (interface{}, bool)

	// Set stores a value, stamping it with the current time.
	Set(key string, value interface{})

	// Delete removes a value from the cache.
	Delete(key string)

	// Clear removes all entries from the cache.
	Clear()

	// Purge deletes expired entries and returns how many were removed.
	Purge() int

	// Len returns the number of stored entries.
	Len() int

	// GetStats returns cache statistics.
	GetStats() Stats

	// HitRate returns the cache hit rate as a percentage.
	HitRate() float64
}

// CacheType represents the type of cache to create.
type CacheType string

const (
	// CacheTypeTTL is an unbounded cache with lazy TTL expiry.
	CacheTypeTTL CacheType = "ttl"

	// CacheTypeLRU adds least-recently-used eviction at Capacity entries.
	CacheTypeLRU CacheType = "lru"
)

// CacheConfig holds configuration for creating a cache.
type CacheConfig struct {
	// Type specifies the cache implementation (ttl or lru)
	Type CacheType

	// Name labels the cache in Prometheus metrics; empty disables metrics.
	Name string

	// TTL is the time-to-live for cache entries
	TTL time.Duration

	// Capacity is the maximum number of entries (only used for lru)
	Capacity int

	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// NewCacher creates a cache based on the configuration.
//
// Example:
//
//	c := NewCacher(CacheConfig{Type: CacheTypeLRU, Name: "deezer", TTL: 2 * time.Hour, Capacity: 10000})
func NewCacher(cfg CacheConfig) Cacher {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	switch cfg.Type {
	case CacheTypeLRU:
		c := NewLRUCache(cfg.Capacity, cfg.TTL)
		c.name = cfg.Name
		if cfg.Now != nil {
			c.now = cfg.Now
		}
		return c
	default:
		c := New(cfg.TTL)
		c.name = cfg.Name
		if cfg.Now != nil {
			c.now = cfg.Now
		}
		return c
	}
}

// Verify interface implementations at compile time
var (
	_ Cacher = (*Cache)(nil)
	_ Cacher = (*LRUCache)(nil)
)
