// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package services

import (
	"context"
	"time"

	"github.com/tomtom215/cratedigger/internal/logging"
)

// DefaultJanitorInterval is used when a non-positive interval is given.
const DefaultJanitorInterval = 10 * time.Minute

// Purger is implemented by cache.Cacher.
type Purger interface {
	Purge() int
}

// CacheJanitorService sweeps expired entries from a cache on a ticker.
type CacheJanitorService struct {
	name     string
	cache    Purger
	interval time.Duration
}

// NewCacheJanitorService creates a janitor for c. name identifies the cache
// in logs and supervisor events.
func NewCacheJanitorService(name string, c Purger, interval time.Duration) *CacheJanitorService {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}
	return &CacheJanitorService{
		name:     name,
		cache:    c,
		interval: interval,
	}
}

// Serve implements suture.Service. It returns ctx.Err() when canceled.
func (j *CacheJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := j.cache.Purge(); removed > 0 {
				logging.Debug().
					Str("cache", j.name).
					Int("removed", removed).
					Msg("Purged expired cache entries")
			}
		}
	}
}

func (j *CacheJanitorService) String() string {
	return j.name + "-janitor"
}
