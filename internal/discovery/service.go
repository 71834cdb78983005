// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package discovery

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cratedigger/internal/config"
	"github.com/tomtom215/cratedigger/internal/logging"
	"github.com/tomtom215/cratedigger/internal/metrics"
	"github.com/tomtom215/cratedigger/internal/models"
)

// ErrAlbumNotFound is returned by AlbumByID when the album does not exist or
// cannot be served (no preview or no cover).
var ErrAlbumNotFound = errors.New("album not found")

// DefaultBatchSize is the number of albums enriched concurrently.
const DefaultBatchSize = 10

// Candidate targets as multiples of the requested count.
const (
	genreOnlyTargetMult = 4
	searchTargetMult    = 3
	genreTargetMult     = 2
)

// Catalog is the upstream album catalog. Every method degrades to an empty
// result on failure. deezer.Client implements it.
type Catalog interface {
	GenreArtists(ctx context.Context, genreID int) []models.Artist
	ArtistAlbums(ctx context.Context, artistID int64) []models.AlbumStub
	SearchAlbums(ctx context.Context, query string, index, limit int) []models.AlbumStub
	ChartAlbums(ctx context.Context, limit int) []models.AlbumStub
	FirstPreview(ctx context.Context, albumID int64) string
	AlbumDetails(ctx context.Context, albumID int64) (*models.AlbumDetails, bool)
	Close()
}

// breakerReporter is implemented by catalogs guarded by a circuit breaker.
type breakerReporter interface {
	BreakerState() string
}

// DiscoverRequest parameterizes Discover.
type DiscoverRequest struct {
	// Count is the number of albums wanted.
	Count int
	// GenreIDs restricts discovery to these genres when non-empty.
	GenreIDs []int
	// MinTracks drops albums with a known track count below it. 0 disables.
	MinTracks int
}

// Service is the album discovery facade used by the HTTP layer.
type Service struct {
	catalog   Catalog
	enricher  *Enricher
	rnd       *lockedRand
	batchSize int
	closeOnce sync.Once
}

// Option customizes a Service.
type Option func(*Service)

// WithRand sets the random source, for reproducible runs.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rnd = newLockedRand(r) }
}

// NewService creates a discovery service over catalog.
func NewService(catalog Catalog, cfg config.DiscoveryConfig, opts ...Option) *Service {
	batchSize := cfg.BatchSize
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}

	s := &Service{
		catalog:   catalog,
		enricher:  NewEnricher(catalog),
		rnd:       newLockedRand(nil),
		batchSize: batchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListGenres returns the genres available for filtering.
func (s *Service) ListGenres() []models.Genre {
	return Genres()
}

// Discover returns up to req.Count random playable albums.
func (s *Service) Discover(ctx context.Context, req DiscoverRequest) []models.Album {
	start := time.Now()
	if req.Count <= 0 {
		return []models.Album{}
	}

	var candidates []models.AlbumStub
	mode := "mixed"
	if len(req.GenreIDs) > 0 {
		mode = "genre"
		candidates = mergeUnique(s.collectFromGenres(ctx, req.Count*genreOnlyTargetMult, req.GenreIDs))
	} else {
		candidates = mergeUnique(
			s.collectFromSearch(ctx, req.Count*searchTargetMult),
			s.collectFromGenres(ctx, req.Count*genreTargetMult, nil),
		)
	}
	metrics.DiscoveryCandidates.WithLabelValues(mode).Observe(float64(len(candidates)))
	shuffleSlice(s.rnd, candidates)

	var keep func(*models.Album) bool
	if req.MinTracks > 0 {
		keep = func(a *models.Album) bool {
			return a.NbTracks == nil || *a.NbTracks == 0 || *a.NbTracks >= req.MinTracks
		}
	}

	albums := s.enrichBatches(ctx, candidates, req.Count, keep)
	shuffleSlice(s.rnd, albums)
	if len(albums) > req.Count {
		albums = albums[:req.Count]
	}

	metrics.RecordDiscovery("discover", req.Count, len(albums), time.Since(start))
	event := logging.Ctx(ctx).Debug().
		Str("component", "discovery").
		Str("mode", mode).
		Int("requested", req.Count).
		Int("candidates", len(candidates)).
		Int("returned", len(albums)).
		Dur("duration", time.Since(start))
	if len(albums) < req.Count {
		event.Int("shortfall", req.Count-len(albums))
	}
	event.Msg("Discovery complete")

	return albums
}

// Search returns the playable albums among the first count search results,
// in result order.
func (s *Service) Search(ctx context.Context, query string, count int) []models.Album {
	start := time.Now()
	stubs := s.catalog.SearchAlbums(ctx, query, 0, count)
	albums := s.enrichAll(ctx, stubs, count)
	metrics.RecordDiscovery("search", count, len(albums), time.Since(start))
	return albums
}

// Chart returns the playable albums of the current album chart, in chart
// order.
func (s *Service) Chart(ctx context.Context, count int) []models.Album {
	start := time.Now()
	stubs := s.catalog.ChartAlbums(ctx, count)
	albums := s.enrichAll(ctx, stubs, count)
	metrics.RecordDiscovery("chart", count, len(albums), time.Since(start))
	return albums
}

// AlbumByID returns a single enriched album.
func (s *Service) AlbumByID(ctx context.Context, id int64) (*models.Album, error) {
	details, ok := s.catalog.AlbumDetails(ctx, id)
	if !ok || details == nil {
		return nil, ErrAlbumNotFound
	}

	stub := details.Stub()
	if stub.ID == 0 {
		stub.ID = id
	}

	album, ok := s.enricher.Enrich(ctx, stub)
	if !ok {
		return nil, fmt.Errorf("%w: album %d has no playable preview or cover", ErrAlbumNotFound, id)
	}
	return album, nil
}

// UpstreamState reports the catalog circuit breaker state, or "unknown"
// when the catalog has none.
func (s *Service) UpstreamState() string {
	if r, ok := s.catalog.(breakerReporter); ok {
		return r.BreakerState()
	}
	return "unknown"
}

// Close releases the catalog's resources. It is safe to call more than once.
func (s *Service) Close() {
	s.closeOnce.Do(s.catalog.Close)
}

// enrichAll enriches at most limit stubs and keeps the accepted ones in
// input order.
func (s *Service) enrichAll(ctx context.Context, stubs []models.AlbumStub, limit int) []models.Album {
	if len(stubs) > limit {
		stubs = stubs[:limit]
	}
	return s.enrichBatches(ctx, stubs, 0, nil)
}

// enrichBatches enriches candidates batchSize at a time, in order, until
// want albums are accepted (want <= 0 means all). keep, when non-nil,
// filters enriched albums. Cancelling ctx stops new batches.
func (s *Service) enrichBatches(ctx context.Context, candidates []models.AlbumStub, want int, keep func(*models.Album) bool) []models.Album {
	results := make([]models.Album, 0, max(want, 0))

	for i := 0; i < len(candidates); i += s.batchSize {
		if (want > 0 && len(results) >= want) || ctx.Err() != nil {
			break
		}

		batch := candidates[i:min(i+s.batchSize, len(candidates))]
		enriched := make([]*models.Album, len(batch))

		var g errgroup.Group
		for j, stub := range batch {
			g.Go(func() error {
				if album, ok := s.enricher.Enrich(ctx, stub); ok {
					enriched[j] = album
				}
				return nil
			})
		}
		_ = g.Wait()

		for _, album := range enriched {
			if album == nil {
				continue
			}
			if keep != nil && !keep(album) {
				metrics.RecordEnrichment(enrichFiltered)
				continue
			}
			results = append(results, *album)
			if want > 0 && len(results) >= want {
				break
			}
		}
	}
	return results
}
