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

// lruEntry is a node in the LRU recency list.
type lruEntry struct {
	key   string
	entry Entry
	prev  *lruEntry
	next  *lruEntry
}

// LRUCache implements a thread-safe Least Recently Used cache with TTL support.
// It has the same visibility rules as Cache, and additionally evicts the least
// recently used entry once capacity is reached.
//
// Key features:
//   - O(1) Get, Set, Delete operations
//   - O(1) LRU eviction when capacity is reached
//   - TTL support with lazy expiration
type LRUCache struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	now      func() time.Time
	name     string

	// items maps keys to linked list nodes for O(1) lookup
	items map[string]*lruEntry

	// head and tail are sentinel nodes for the doubly-linked list
	// head.next is the most recently used, tail.prev is the least recently used
	head *lruEntry
	tail *lruEntry

	stats Stats
}

// NewLRUCache creates a new LRU cache with the specified capacity and TTL.
func NewLRUCache(capacity int, ttl time.Duration) *LRUCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &LRUCache{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		items:    make(map[string]*lruEntry, capacity),
		head:     &lruEntry{},
		tail:     &lruEntry{},
	}

	c.head.next = c.tail
	c.tail.prev = c.head

	return c
}

// Get retrieves an entry from the cache.
// Found entries are moved to the front (most recently used).
func (c *LRUCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, exists := c.items[key]
	if !exists {
		c.miss()
		return nil, false
	}

	if !node.entry.fresh(c.now(), c.ttl) {
		c.removeEntry(node)
		c.miss()
		c.evicted(1)
		return nil, false
	}

	c.moveToFront(node)
	c.stats.Hits++
	if c.name != "" {
		metrics.CacheHits.WithLabelValues(c.name).Inc()
	}
	return node.entry.Data, true
}

// Set adds or updates an entry in the cache.
// If the cache is at capacity, the least recently used entry is evicted.
func (c *LRUCache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := Entry{Data: value, InsertedAt: c.now()}

	if node, exists := c.items[key]; exists {
		node.entry = entry
		c.moveToFront(node)
		return
	}

	node := &lruEntry{key: key, entry: entry}
	c.addToFront(node)
	c.items[key] = node

	for len(c.items) > c.capacity {
		c.evictOldest()
	}
	c.sizeChanged()
}

// Delete removes an entry from the cache.
func (c *LRUCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, exists := c.items[key]; exists {
		c.removeEntry(node)
		c.evicted(1)
	}
}

// Clear removes all entries from the cache.
func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evicted(int64(len(c.items)))
	c.items = make(map[string]*lruEntry, c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
	c.sizeChanged()
}

// Purge deletes every expired entry and returns how many were removed.
func (c *LRUCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for node := c.tail.prev; node != c.head; {
		prev := node.prev
		if !node.entry.fresh(now, c.ttl) {
			c.removeEntry(node)
			removed++
		}
		node = prev
	}
	c.evicted(int64(removed))
	return removed
}

// Len returns the current number of entries in the cache.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// GetStats returns cache hit/miss statistics.
func (c *LRUCache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// HitRate returns the cache hit rate as a percentage.
func (c *LRUCache) HitRate() float64 {
	return hitRate(c.GetStats())
}

// Internal methods (must be called with lock held)

func (c *LRUCache) addToFront(node *lruEntry) {
	node.prev = c.head
	node.next = c.head.next
	c.head.next.prev = node
	c.head.next = node
}

func (c *LRUCache) moveToFront(node *lruEntry) {
	node.prev.next = node.next
	node.next.prev = node.prev
	c.addToFront(node)
}

// removeEntry removes a node from both the list and the map.
func (c *LRUCache) removeEntry(node *lruEntry) {
	node.prev.next = node.next
	node.next.prev = node.prev
	delete(c.items, node.key)
	c.sizeChanged()
}

func (c *LRUCache) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.removeEntry(oldest)
	c.evicted(1)
}

func (c *LRUCache) miss() {
	c.stats.Misses++
	if c.name != "" {
		metrics.CacheMisses.WithLabelValues(c.name).Inc()
	}
}

func (c *LRUCache) evicted(n int64) {
	if n == 0 {
		return
	}
	c.stats.Evictions += n
	if c.name != "" {
		metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(n))
	}
}

func (c *LRUCache) sizeChanged() {
	c.stats.TotalKeys = int64(len(c.items))
	if c.name != "" {
		metrics.CacheSize.WithLabelValues(c.name).Set(float64(len(c.items)))
	}
}
