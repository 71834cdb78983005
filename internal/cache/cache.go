// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/cratedigger/internal/metrics"
)

// Entry represents a cached item and the moment it was stored.
type Entry struct {
	Data       interface{}
	InsertedAt time.Time
}

// fresh reports whether the entry is still visible at now.
// An entry is visible only while now - InsertedAt < ttl.
func (e Entry) fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.InsertedAt) < ttl
}

// Stats tracks cache performance metrics
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	TotalKeys int64
}

// Cache provides a thread-safe in-memory cache with TTL support.
//
// Expired entries are purged lazily on the next Get for their key, or in bulk
// by Purge. The cache has no size bound; use LRUCache when one
// is needed.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time
	name    string
	stats   Stats
}

// New creates a TTL cache.
//
// Parameters:
//   - ttl: how long an entry stays visible after Set
//
// Example:
//
//	c := cache.New(2 * time.Hour)
//	c.Set("album_302127", details)
//	if data, ok := c.Get("album_302127"); ok {
//	    // Use cached data
//	}
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get retrieves a value from the cache by key.
//
// Behavior:
//   - Returns (nil, false) if key doesn't exist
//   - Returns (nil, false) if the entry is at least ttl old (entry is deleted)
//   - Returns (data, true) otherwise
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if !entry.fresh(c.now(), c.ttl) {
		c.mu.Lock()
		// Another goroutine may have refreshed the key since the read lock was released.
		if current, ok := c.entries[key]; ok && current.InsertedAt.Equal(entry.InsertedAt) {
			delete(c.entries, key)
			c.stats.TotalKeys = int64(len(c.entries))
		}
		c.mu.Unlock()
		c.recordMiss()
		c.recordEviction(1)
		return nil, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores a value, unconditionally replacing any previous entry and
// resetting its age.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = Entry{
		Data:       value,
		InsertedAt: c.now(),
	}
	c.stats.TotalKeys = int64(len(c.entries))
	size := len(c.entries)
	c.mu.Unlock()

	c.reportSize(size)
}

// Delete removes a specific cache entry by key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	c.stats.TotalKeys = int64(len(c.entries))
	size := len(c.entries)
	c.mu.Unlock()

	if existed {
		c.recordEviction(1)
	}
	c.reportSize(size)
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	evictions := int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.stats.TotalKeys = 0
	c.mu.Unlock()

	c.recordEviction(evictions)
	c.reportSize(0)
}

// Purge deletes every expired entry and returns how many were removed.
// Get already hides expired entries; Purge only reclaims their memory.
func (c *Cache) Purge() int {
	c.mu.Lock()
	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if !entry.fresh(now, c.ttl) {
			delete(c.entries, key)
			removed++
		}
	}
	c.stats.TotalKeys = int64(len(c.entries))
	size := len(c.entries)
	c.mu.Unlock()

	c.recordEviction(int64(removed))
	c.reportSize(size)
	return removed
}

// Len returns the number of stored entries, including expired entries that
// have not been looked up yet.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of current cache performance statistics.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// HitRate returns the cache hit rate as a percentage
func (c *Cache) HitRate() float64 {
	return hitRate(c.GetStats())
}

func (c *Cache) recordHit() {
	c.mu.Lock()
	c.stats.Hits++
	c.mu.Unlock()
	if c.name != "" {
		metrics.CacheHits.WithLabelValues(c.name).Inc()
	}
}

func (c *Cache) recordMiss() {
	c.mu.Lock()
	c.stats.Misses++
	c.mu.Unlock()
	if c.name != "" {
		metrics.CacheMisses.WithLabelValues(c.name).Inc()
	}
}

func (c *Cache) recordEviction(n int64) {
	if n == 0 {
		return
	}
	c.mu.Lock()
	c.stats.Evictions += n
	c.mu.Unlock()
	if c.name != "" {
		metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(n))
	}
}

func (c *Cache) reportSize(size int) {
	if c.name != "" {
		metrics.CacheSize.WithLabelValues(c.name).Set(float64(size))
	}
}

func hitRate(stats Stats) float64 {
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}
