// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package discovery

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"sync"

	"github.com/tomtom215/cratedigger/internal/config"
	"github.com/tomtom215/cratedigger/internal/models"
)

// fakeCatalog is an in-memory Catalog. Maps are populated before use and
// only read afterwards, so concurrent enrichment needs no locking for them.
type fakeCatalog struct {
	genreArtists map[int][]models.Artist
	artistAlbums map[int64][]models.AlbumStub
	previews     map[int64]string
	details      map[int64]*models.AlbumDetails
	chart        []models.AlbumStub

	// search produces a result page; nil means no results.
	search func(query string, index, limit int) []models.AlbumStub

	mu          sync.Mutex
	searchCalls []searchCall
	genreCalls  []int
	closed      int
}

type searchCall struct {
	query string
	index int
	limit int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		genreArtists: make(map[int][]models.Artist),
		artistAlbums: make(map[int64][]models.AlbumStub),
		previews:     make(map[int64]string),
		details:      make(map[int64]*models.AlbumDetails),
	}
}

func (f *fakeCatalog) GenreArtists(_ context.Context, genreID int) []models.Artist {
	f.mu.Lock()
	f.genreCalls = append(f.genreCalls, genreID)
	f.mu.Unlock()
	return f.genreArtists[genreID]
}

func (f *fakeCatalog) ArtistAlbums(_ context.Context, artistID int64) []models.AlbumStub {
	return f.artistAlbums[artistID]
}

func (f *fakeCatalog) SearchAlbums(_ context.Context, query string, index, limit int) []models.AlbumStub {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, searchCall{query, index, limit})
	f.mu.Unlock()
	if f.search == nil {
		return nil
	}
	return f.search(query, index, limit)
}

func (f *fakeCatalog) ChartAlbums(_ context.Context, limit int) []models.AlbumStub {
	if len(f.chart) > limit {
		return f.chart[:limit]
	}
	return f.chart
}

func (f *fakeCatalog) FirstPreview(_ context.Context, albumID int64) string {
	return f.previews[albumID]
}

func (f *fakeCatalog) AlbumDetails(_ context.Context, albumID int64) (*models.AlbumDetails, bool) {
	d, ok := f.details[albumID]
	return d, ok
}

func (f *fakeCatalog) Close() {
	f.mu.Lock()
	f.closed++
	f.mu.Unlock()
}

func (f *fakeCatalog) searchCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searchCalls)
}

func (f *fakeCatalog) requestedGenres() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.genreCalls...)
}

// addPlayable registers a fully playable album under genre.
func (f *fakeCatalog) addPlayable(id int64, genre models.Genre, nbTracks int) models.AlbumStub {
	stub := models.AlbumStub{
		ID:      id,
		Title:   fmt.Sprintf("Album %d", id),
		Artist:  &models.ArtistRef{Name: fmt.Sprintf("Artist of %d", id)},
		CoverXL: fmt.Sprintf("https://cdn.test/cover/%d.jpg", id),
		Link:    fmt.Sprintf("https://www.deezer.com/album/%d", id),
	}
	tracks := nbTracks
	f.previews[id] = fmt.Sprintf("https://cdn.test/preview/%d.mp3", id)
	f.details[id] = &models.AlbumDetails{
		AlbumStub: models.AlbumStub{
			ID:       id,
			Title:    stub.Title,
			Artist:   stub.Artist,
			CoverXL:  stub.CoverXL,
			Link:     stub.Link,
			NbTracks: &tracks,
		},
		ReleaseDate: "1999-05-01",
		Genres:      models.DeezerList[models.GenreRef]{Data: []models.GenreRef{{ID: genre.ID, Name: genre.Name}}},
	}
	return stub
}

const (
	largeArtistsPerGenre = 20
	largeAlbumsPerArtist = 5
	searchIDBase         = 10_000_000
)

// newLargeCatalog builds a catalog where every genre has 20 artists with 5
// playable albums each, and where every search page is playable and derived
// from the query and index.
func newLargeCatalog() *fakeCatalog {
	f := newFakeCatalog()

	for gi, genre := range genreTable {
		artists := make([]models.Artist, 0, largeArtistsPerGenre)
		for a := 0; a < largeArtistsPerGenre; a++ {
			artistID := int64(gi*1000 + a + 1)
			artists = append(artists, models.Artist{ID: artistID, Name: fmt.Sprintf("Artist %d", artistID)})

			albums := make([]models.AlbumStub, 0, largeAlbumsPerArtist)
			for n := 0; n < largeAlbumsPerArtist; n++ {
				albumID := artistID*100 + int64(n)
				albums = append(albums, f.addPlayable(albumID, genre, 10))
			}
			f.artistAlbums[artistID] = albums
		}
		f.genreArtists[genre.ID] = artists
	}

	// Search pages are generated on demand; register them eagerly for the
	// whole id space a page can reach so reads stay lock free.
	searchGenre := models.Genre{ID: 0, Name: "Search"}
	for _, term := range searchTerms {
		base := searchBase(term)
		for i := 0; i <= maxSearchIndex+searchPageSize; i++ {
			f.addPlayable(base+int64(i), searchGenre, 10)
		}
	}
	f.search = func(query string, index, limit int) []models.AlbumStub {
		base := searchBase(query)
		page := make([]models.AlbumStub, 0, limit)
		for i := 0; i < limit; i++ {
			id := base + int64(index+i)
			if _, ok := f.details[id]; !ok {
				continue // letter fragments hit albums that were never registered
			}
			page = append(page, f.details[id].Stub())
		}
		return page
	}
	return f
}

// searchBase maps a query to a disjoint id range.
func searchBase(query string) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(query))
	return searchIDBase + int64(h.Sum32()%100_000)*1000
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newTestService(catalog Catalog, seed uint64) *Service {
	return NewService(catalog, config.DiscoveryConfig{BatchSize: DefaultBatchSize}, WithRand(seeded(seed)))
}
