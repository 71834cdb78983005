// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package models

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
)

// UnknownArtist is used when an artist object carries no name.
const UnknownArtist = "Unknown Artist"

// DeezerList is the {"data": [...]} envelope of every Deezer listing.
type DeezerList[T any] struct {
	Data  []T    `json:"data"`
	Total int    `json:"total,omitempty"`
	Next  string `json:"next,omitempty"`
}

// Artist is an entry of /genre/{id}/artists.
type Artist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ArtistRef is the artist field of an album payload. Deezer usually sends
// {"id":..,"name":..} but older payloads carry a bare string or number.
type ArtistRef struct {
	ID   int64
	Name string
}

// Known reports whether the reference resolved to a display name.
func (a *ArtistRef) Known() bool {
	return a != nil && a.Name != ""
}

// UnmarshalJSON accepts an object, a string or a number.
func (a *ArtistRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case 'n': // null
		return nil
	case '{':
		var obj struct {
			ID   int64   `json:"id"`
			Name *string `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		// {} carries nothing usable
		if obj.ID == 0 && obj.Name == nil {
			return nil
		}
		a.ID = obj.ID
		a.Name = UnknownArtist
		if obj.Name != nil && *obj.Name != "" {
			a.Name = *obj.Name
		}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		a.Name = s
		return nil
	case 'f': // false
		return nil
	}

	// Numbers and true: keep the literal text, ignoring zero.
	if f, err := strconv.ParseFloat(string(data), 64); err == nil && f == 0 {
		return nil
	}
	a.Name = string(data)
	return nil
}

// MarshalJSON writes the object form.
func (a ArtistRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int64  `json:"id,omitempty"`
		Name string `json:"name"`
	}{a.ID, a.Name})
}

// AlbumStub is an album summary from search, artist album and chart
// listings.
type AlbumStub struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Artist      *ArtistRef `json:"artist,omitempty"`
	CoverXL     string     `json:"cover_xl,omitempty"`
	CoverBig    string     `json:"cover_big,omitempty"`
	CoverMedium string     `json:"cover_medium,omitempty"`
	Link        string     `json:"link,omitempty"`
	NbTracks    *int       `json:"nb_tracks,omitempty"`
}

// Cover returns the largest available cover, or "".
func (s *AlbumStub) Cover() string {
	switch {
	case s.CoverXL != "":
		return s.CoverXL
	case s.CoverBig != "":
		return s.CoverBig
	default:
		return s.CoverMedium
	}
}

// Track is an entry of /album/{id}/tracks.
type Track struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Preview string `json:"preview"`
}

// GenreRef is a genre attached to an album.
type GenreRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// AlbumDetails is the /album/{id} payload.
type AlbumDetails struct {
	AlbumStub
	ReleaseDate string               `json:"release_date,omitempty"`
	Genres      DeezerList[GenreRef] `json:"genres"`
}

// Stub returns the summary part of the details.
func (d *AlbumDetails) Stub() AlbumStub {
	return d.AlbumStub
}

// Year returns the release year, or "" when the release date is unknown.
func (d *AlbumDetails) Year() string {
	if len(d.ReleaseDate) < 4 {
		return d.ReleaseDate
	}
	return d.ReleaseDate[:4]
}

// PrimaryGenre returns the first attached genre name, or "".
func (d *AlbumDetails) PrimaryGenre() string {
	if len(d.Genres.Data) == 0 {
		return ""
	}
	return d.Genres.Data[0].Name
}
