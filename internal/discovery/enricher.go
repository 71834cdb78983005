// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package discovery

import (
	"context"

	"github.com/tomtom215/cratedigger/internal/metrics"
	"github.com/tomtom215/cratedigger/internal/models"
)

// UnknownAlbum is used when neither details nor stub carry a title.
const UnknownAlbum = "Unknown Album"

// Enrichment outcomes recorded in discovery_enrichment_total.
const (
	enrichAccepted  = "accepted"
	enrichNoID      = "no_id"
	enrichNoPreview = "no_preview"
	enrichNoCover   = "no_cover"
	enrichFiltered  = "filtered"
)

// Enricher turns album stubs into playable albums.
type Enricher struct {
	catalog Catalog
}

// NewEnricher creates an Enricher reading from catalog.
func NewEnricher(catalog Catalog) *Enricher {
	return &Enricher{catalog: catalog}
}

// Enrich looks up the album's preview and details and merges them with the
// stub. It returns false when the album has no id, no playable preview or no
// cover. Details are best effort: when they are missing the stub's fields
// are used.
func (e *Enricher) Enrich(ctx context.Context, stub models.AlbumStub) (*models.Album, bool) {
	if stub.ID <= 0 {
		metrics.RecordEnrichment(enrichNoID)
		return nil, false
	}

	preview := e.catalog.FirstPreview(ctx, stub.ID)
	if preview == "" {
		metrics.RecordEnrichment(enrichNoPreview)
		return nil, false
	}

	details, hasDetails := e.catalog.AlbumDetails(ctx, stub.ID)
	if details == nil {
		hasDetails = false
	}

	cover := ""
	if hasDetails {
		cover = details.Cover()
	}
	if cover == "" {
		cover = stub.Cover()
	}
	if cover == "" {
		metrics.RecordEnrichment(enrichNoCover)
		return nil, false
	}

	album := &models.Album{
		ID:         stub.ID,
		Title:      UnknownAlbum,
		Artist:     models.UnknownArtist,
		CoverURL:   cover,
		PreviewURL: preview,
		DeezerID:   stub.ID,
		NbTracks:   stub.NbTracks,
	}

	switch {
	case hasDetails && details.Artist.Known():
		album.Artist = details.Artist.Name
	case stub.Artist.Known():
		album.Artist = stub.Artist.Name
	}

	switch {
	case hasDetails && details.Title != "":
		album.Title = details.Title
	case stub.Title != "":
		album.Title = stub.Title
	}

	link := stub.Link
	if hasDetails {
		if year := details.Year(); year != "" {
			album.Year = &year
		}
		if genre := details.PrimaryGenre(); genre != "" {
			album.Genre = &genre
		}
		if details.Link != "" {
			link = details.Link
		}
		if details.NbTracks != nil {
			album.NbTracks = details.NbTracks
		}
	}
	if link != "" {
		album.DeezerLink = &link
	}

	metrics.RecordEnrichment(enrichAccepted)
	return album, true
}
