// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/cratedigger/internal/discovery"
	"github.com/tomtom215/cratedigger/internal/models"
)

// randomAlbums handles /albums/random.
// @Summary Random crate dig
// @Description Samples obscure albums across genres and search terms
// @Tags Discovery
// @Produce json
// @Param count query int false "Number of albums" default(10)
// @Param genres query string false "Comma separated Deezer genre IDs"
// @Param min_tracks query int false "Minimum track count"
// @Success 200 {object} models.APIResponse{data=models.AlbumCollection}
// @Failure 400 {object} models.APIResponse
// @Router /api/v1/albums/random [get]
func (h *Handler) randomAlbums(_ http.ResponseWriter, r *http.Request) (interface{}, *handlerError) {
	req, verr := bindRandomAlbums(r, h.discovery.MaxRandomCount)
	if verr != nil {
		return nil, errValidation(verr)
	}

	albums := h.svc.Discover(r.Context(), discovery.DiscoverRequest{
		Count:     req.Count,
		GenreIDs:  req.GenreIDs(),
		MinTracks: req.MinTracks,
	})
	return models.NewAlbumCollection(albums), nil
}

// chartAlbums handles /albums/chart.
// @Summary Chart albums
// @Tags Discovery
// @Produce json
// @Param count query int false "Number of albums" default(20)
// @Success 200 {object} models.APIResponse{data=models.AlbumCollection}
// @Failure 400 {object} models.APIResponse
// @Router /api/v1/albums/chart [get]
func (h *Handler) chartAlbums(_ http.ResponseWriter, r *http.Request) (interface{}, *handlerError) {
	req, verr := bindChart(r, h.discovery.MaxListCount)
	if verr != nil {
		return nil, errValidation(verr)
	}
	return models.NewAlbumCollection(h.svc.Chart(r.Context(), req.Count)), nil
}

// searchAlbums handles /albums/search.
// @Summary Search albums
// @Tags Discovery
// @Produce json
// @Param q query string true "Search query"
// @Param count query int false "Number of albums" default(20)
// @Success 200 {object} models.APIResponse{data=models.AlbumCollection}
// @Failure 400 {object} models.APIResponse
// @Router /api/v1/albums/search [get]
func (h *Handler) searchAlbums(_ http.ResponseWriter, r *http.Request) (interface{}, *handlerError) {
	req, verr := bindSearch(r, h.discovery.MaxListCount)
	if verr != nil {
		return nil, errValidation(verr)
	}
	return models.NewAlbumCollection(h.svc.Search(r.Context(), req.Query, req.Count)), nil
}

// albumByID handles /albums/{id}.
// @Summary Get album
// @Tags Discovery
// @Produce json
// @Param id path int true "Deezer album ID"
// @Success 200 {object} models.APIResponse{data=models.Album}
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/v1/albums/{id} [get]
func (h *Handler) albumByID(_ http.ResponseWriter, r *http.Request) (interface{}, *handlerError) {
	id, ok := albumIDParam(r)
	if !ok {
		return nil, errBadRequest("Invalid album ID")
	}

	album, err := h.svc.AlbumByID(r.Context(), id)
	switch {
	case errors.Is(err, discovery.ErrAlbumNotFound):
		return nil, errNotFound("Album not found")
	case err != nil:
		return nil, errInternal("Failed to load album")
	}
	return album, nil
}
