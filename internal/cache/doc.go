// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

/*
Package cache provides thread-safe in-memory caching with TTL support.

It holds upstream catalog responses (genre artists, artist albums, search
pages, album previews and album details) so that repeated discovery calls do
not refetch them from Deezer.

# Expiry Semantics

An entry is visible only while now - InsertedAt < TTL. Expired entries are
removed lazily the next time their key is looked up; nothing sweeps the cache
in the background. Set always overwrites and restamps the entry.

# Implementations

  - Cache: unbounded map, the simplest option.
  - LRUCache: same TTL rules plus a capacity bound with least-recently-used
    eviction, for long-running processes that see many distinct queries.

Use NewCacher to pick one from configuration:

	c := cache.NewCacher(cache.CacheConfig{
	    Type:     cache.CacheTypeLRU,
	    Name:     "deezer",
	    TTL:      2 * time.Hour,
	    Capacity: 10000,
	})

# Testing

CacheConfig.Now injects a clock, which lets tests step across the TTL
boundary without sleeping.

# Metrics

When CacheConfig.Name is set, hits, misses, evictions and size are exported
as cache_*{cache_type=<name>} Prometheus series.
*/
package cache
