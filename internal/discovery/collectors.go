// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package discovery

import (
	"context"

	"github.com/tomtom215/cratedigger/internal/models"
)

// Collector tuning.
const (
	searchTermsPerRun  = 10  // pool words sampled per search run
	randomFragments    = 3   // extra letter fragments per search run
	maxSearchIndex     = 100 // highest random search offset
	searchPageSize     = 50  // albums requested per search page
	artistsPerGenre    = 8   // artists sampled per genre
	genreOvershootMult = 2   // genre collector stops at this multiple of target
)

// albumSet accumulates albums, dropping ids it has already seen.
type albumSet struct {
	seen   map[int64]struct{}
	albums []models.AlbumStub
}

func newAlbumSet(capacity int) *albumSet {
	return &albumSet{
		seen:   make(map[int64]struct{}, capacity),
		albums: make([]models.AlbumStub, 0, capacity),
	}
}

// add inserts a if its id is new and reports whether it did.
func (s *albumSet) add(a models.AlbumStub) bool {
	if _, ok := s.seen[a.ID]; ok {
		return false
	}
	s.seen[a.ID] = struct{}{}
	s.albums = append(s.albums, a)
	return true
}

func (s *albumSet) len() int { return len(s.albums) }

// collectFromSearch gathers up to target unique albums from search pages of
// random words and letter fragments.
func (s *Service) collectFromSearch(ctx context.Context, target int) []models.AlbumStub {
	terms := make([]string, 0, searchTermsPerRun+randomFragments)
	for _, i := range s.rnd.sampleIndexes(len(searchTerms), searchTermsPerRun) {
		terms = append(terms, searchTerms[i])
	}
	for i := 0; i < randomFragments; i++ {
		terms = append(terms, s.rnd.letters(s.rnd.intRange(2, 4)))
	}
	shuffleSlice(s.rnd, terms)

	set := newAlbumSet(target)
	for _, term := range terms {
		if set.len() >= target || ctx.Err() != nil {
			break
		}

		index := s.rnd.intRange(0, maxSearchIndex)
		for _, album := range s.catalog.SearchAlbums(ctx, term, index, searchPageSize) {
			set.add(album)
			if set.len() >= target {
				break
			}
		}
	}
	return set.albums
}

// collectFromGenres picks one random album from each of up to eight random
// artists per genre, walking genreIDs (or every genre) in random order. It
// stops once it holds twice target albums.
func (s *Service) collectFromGenres(ctx context.Context, target int, genreIDs []int) []models.AlbumStub {
	var order []int
	if len(genreIDs) > 0 {
		order = append(order, genreIDs...)
	} else {
		order = allGenreIDs()
	}
	shuffleSlice(s.rnd, order)

	limit := target * genreOvershootMult
	set := newAlbumSet(limit)

	for _, genreID := range order {
		if set.len() >= limit || ctx.Err() != nil {
			break
		}

		artists := s.catalog.GenreArtists(ctx, genreID)
		if len(artists) == 0 {
			continue
		}

		for _, i := range s.rnd.sampleIndexes(len(artists), artistsPerGenre) {
			if set.len() >= limit || ctx.Err() != nil {
				break
			}

			albums := s.catalog.ArtistAlbums(ctx, artists[i].ID)
			if len(albums) == 0 {
				continue
			}
			set.add(albums[s.rnd.intN(len(albums))])
		}
	}
	return set.albums
}

// mergeUnique concatenates lists keeping the first album seen per id.
func mergeUnique(lists ...[]models.AlbumStub) []models.AlbumStub {
	total := 0
	for _, l := range lists {
		total += len(l)
	}

	set := newAlbumSet(total)
	for _, l := range lists {
		for _, a := range l {
			set.add(a)
		}
	}
	return set.albums
}
