// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package models

// Album is an enriched album ready to be served.
//
// CoverURL and PreviewURL are always non-empty: albums missing either are
// dropped during enrichment and never reach a client.
//
// Example:
//
//	{
//	  "id": 302127,
//	  "title": "Discovery",
//	  "artist": "Daft Punk",
//	  "cover_url": "https://e-cdns-images.dzcdn.net/images/cover/.../1000x1000.jpg",
//	  "preview_url": "https://cdns-preview-e.dzcdn.net/stream/...mp3",
//	  "year": "2001",
//	  "genre": "Electro",
//	  "deezer_id": 302127,
//	  "deezer_link": "https://www.deezer.com/album/302127",
//	  "nb_tracks": 14
//	}
type Album struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Artist     string  `json:"artist"`
	CoverURL   string  `json:"cover_url"`
	PreviewURL string  `json:"preview_url"`
	Year       *string `json:"year"`
	Genre      *string `json:"genre"`
	DeezerID   int64   `json:"deezer_id"`
	DeezerLink *string `json:"deezer_link"`
	NbTracks   *int    `json:"nb_tracks"`
}

// AlbumCollection is the list response for every album endpoint.
type AlbumCollection struct {
	Albums []Album `json:"albums"`
	Total  int     `json:"total"`
}

// NewAlbumCollection wraps albums, normalizing nil to an empty list so the
// JSON encoding is always an array.
func NewAlbumCollection(albums []Album) AlbumCollection {
	if albums == nil {
		albums = []Album{}
	}
	return AlbumCollection{Albums: albums, Total: len(albums)}
}

// Genre is an entry of the fixed genre table.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
