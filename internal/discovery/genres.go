// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package discovery

import "github.com/tomtom215/cratedigger/internal/models"

// genreTable is the fixed list of Deezer genres offered for filtering, in
// display order.
var genreTable = []models.Genre{
	{ID: 132, Name: "Pop"},
	{ID: 116, Name: "Hip-Hop"},
	{ID: 152, Name: "Rock"},
	{ID: 113, Name: "Dance"},
	{ID: 165, Name: "R&B"},
	{ID: 85, Name: "Alternative"},
	{ID: 106, Name: "Electronic"},
	{ID: 129, Name: "Jazz"},
	{ID: 84, Name: "Country"},
	{ID: 98, Name: "Reggae"},
	{ID: 173, Name: "Soundtracks"},
	{ID: 464, Name: "Metal"},
	{ID: 466, Name: "Folk"},
	{ID: 169, Name: "Soul & Funk"},
	{ID: 2, Name: "Classical"},
	{ID: 75, Name: "World"},
	{ID: 81, Name: "Indie"},
}

// searchTerms seeds the search collector.
var searchTerms = []string{
	"love", "night", "dream", "sun", "moon", "heart", "life", "time",
	"fire", "water", "sky", "rain", "blue", "red", "gold", "black",
	"white", "dark", "light", "new", "old", "wild", "free", "lost",
	"found", "home", "road", "city", "street", "summer", "winter",
	"spring", "fall", "dance", "soul", "funk", "rock", "jazz", "beat",
	"sound", "rhythm", "melody", "voice", "song", "music", "album",
	"world", "earth", "star", "wave", "electric", "acoustic", "live",
	"remix", "original", "classic", "modern", "future", "past", "now",
}

// Genres returns a copy of the genre table.
func Genres() []models.Genre {
	out := make([]models.Genre, len(genreTable))
	copy(out, genreTable)
	return out
}

// allGenreIDs returns the ids of every genre in table order.
func allGenreIDs() []int {
	ids := make([]int, len(genreTable))
	for i, g := range genreTable {
		ids[i] = g.ID
	}
	return ids
}
