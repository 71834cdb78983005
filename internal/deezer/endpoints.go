// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package deezer

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cratedigger/internal/models"
)

// Listing limits sent to Deezer.
const (
	GenreArtistsLimit = 100
	ArtistAlbumsLimit = 50
	TrackPreviewLimit = 5
)

// GenreArtists returns up to 100 artists of a genre.
func (c *Client) GenreArtists(ctx context.Context, genreID int) []models.Artist {
	return fetchList[models.Artist](ctx, c,
		fmt.Sprintf("genre_artists_%d", genreID),
		fmt.Sprintf("/genre/%d/artists", genreID),
		limitParams(GenreArtistsLimit))
}

// ArtistAlbums returns up to 50 albums of an artist.
func (c *Client) ArtistAlbums(ctx context.Context, artistID int64) []models.AlbumStub {
	return fetchList[models.AlbumStub](ctx, c,
		fmt.Sprintf("artist_albums_%d", artistID),
		fmt.Sprintf("/artist/%d/albums", artistID),
		limitParams(ArtistAlbumsLimit))
}

// SearchAlbums runs a full-text album search starting at index.
func (c *Client) SearchAlbums(ctx context.Context, query string, index, limit int) []models.AlbumStub {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("index", strconv.Itoa(index))

	return fetchList[models.AlbumStub](ctx, c,
		fmt.Sprintf("search_%s_%d_%d", query, index, limit),
		"/search/album",
		params)
}

// ChartAlbums returns the current global album chart.
func (c *Client) ChartAlbums(ctx context.Context, limit int) []models.AlbumStub {
	return fetchList[models.AlbumStub](ctx, c,
		fmt.Sprintf("chart_albums_%d", limit),
		"/chart/0/albums",
		limitParams(limit))
}

// FirstPreview returns the preview URL of the first of the album's first
// five tracks that has one, or "" when none does.
func (c *Client) FirstPreview(ctx context.Context, albumID int64) string {
	key := fmt.Sprintf("album_preview_%d", albumID)
	if cached, ok := c.cache.Get(key); ok {
		if preview, ok := cached.(string); ok {
			return preview
		}
	}

	tracks := decodeList[models.Track](ctx, c, fmt.Sprintf("/album/%d/tracks", albumID), limitParams(TrackPreviewLimit))
	for _, track := range tracks {
		if track.Preview != "" {
			c.cache.Set(key, track.Preview)
			return track.Preview
		}
	}
	return ""
}

// AlbumDetails returns the full album record, or false when Deezer has none.
func (c *Client) AlbumDetails(ctx context.Context, albumID int64) (*models.AlbumDetails, bool) {
	key := fmt.Sprintf("album_%d", albumID)
	if cached, ok := c.cache.Get(key); ok {
		if details, ok := cached.(*models.AlbumDetails); ok {
			return details, true
		}
	}

	body, ok := c.Fetch(ctx, fmt.Sprintf("/album/%d", albumID), nil)
	if !ok {
		return nil, false
	}

	var details models.AlbumDetails
	if err := json.Unmarshal(body, &details); err != nil {
		c.logger.Debug().Err(err).Int64("album_id", albumID).Msg("Failed to decode album details")
		return nil, false
	}

	c.cache.Set(key, &details)
	return &details, true
}

// fetchList returns a cached listing or fetches and caches it. Empty
// listings are not cached so the next call tries again.
func fetchList[T any](ctx context.Context, c *Client, key, path string, params url.Values) []T {
	if cached, ok := c.cache.Get(key); ok {
		if items, ok := cached.([]T); ok {
			return items
		}
	}

	items := decodeList[T](ctx, c, path, params)
	if len(items) > 0 {
		c.cache.Set(key, items)
	}
	return items
}

// decodeList fetches path and decodes its {"data": [...]} envelope.
func decodeList[T any](ctx context.Context, c *Client, path string, params url.Values) []T {
	body, ok := c.Fetch(ctx, path, params)
	if !ok {
		return nil
	}

	var list models.DeezerList[T]
	if err := json.Unmarshal(body, &list); err != nil {
		c.logger.Debug().Err(err).Str("endpoint", path).Msg("Failed to decode listing")
		return nil
	}
	return list.Data
}

func limitParams(limit int) url.Values {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	return params
}
