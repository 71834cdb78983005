// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cratedigger/internal/validation"
)

// Query defaults.
const (
	DefaultRandomCount = 10
	DefaultListCount   = 20
)

// RandomAlbumsRequest holds the query parameters of /albums/random.
type RandomAlbumsRequest struct {
	Count     int    `query:"count" validate:"min=1"`
	Genres    string `query:"genres" validate:"omitempty,max=512"`
	MinTracks int    `query:"min_tracks" validate:"omitempty,min=1,max=500"`
}

// GenreIDs parses the genres filter. Any non-integer entry drops the whole
// filter, and an empty list means no filter.
func (req *RandomAlbumsRequest) GenreIDs() []int {
	return parseGenreIDs(req.Genres)
}

// ChartRequest holds the query parameters of /albums/chart.
type ChartRequest struct {
	Count int `query:"count" validate:"min=1"`
}

// SearchRequest holds the query parameters of /albums/search.
type SearchRequest struct {
	Query string `query:"q" validate:"required,min=1,max=200"`
	Count int    `query:"count" validate:"min=1"`
}

// bindRandomAlbums binds and validates /albums/random. maxCount is the
// configured upper bound for count.
func bindRandomAlbums(r *http.Request, maxCount int) (*RandomAlbumsRequest, *validation.RequestValidationError) {
	count, verr := queryInt(r, "count", DefaultRandomCount)
	if verr != nil {
		return nil, verr
	}
	minTracks, verr := queryInt(r, "min_tracks", 0)
	if verr != nil {
		return nil, verr
	}

	req := &RandomAlbumsRequest{
		Count:     count,
		Genres:    r.URL.Query().Get("genres"),
		MinTracks: minTracks,
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr
	}
	if verr := validateMaxCount(req.Count, maxCount); verr != nil {
		return nil, verr
	}
	return req, nil
}

// bindChart binds and validates /albums/chart.
func bindChart(r *http.Request, maxCount int) (*ChartRequest, *validation.RequestValidationError) {
	count, verr := queryInt(r, "count", DefaultListCount)
	if verr != nil {
		return nil, verr
	}

	req := &ChartRequest{Count: count}
	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr
	}
	if verr := validateMaxCount(req.Count, maxCount); verr != nil {
		return nil, verr
	}
	return req, nil
}

// bindSearch binds and validates /albums/search.
func bindSearch(r *http.Request, maxCount int) (*SearchRequest, *validation.RequestValidationError) {
	count, verr := queryInt(r, "count", DefaultListCount)
	if verr != nil {
		return nil, verr
	}

	req := &SearchRequest{
		Query: r.URL.Query().Get("q"),
		Count: count,
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr
	}
	if verr := validateMaxCount(req.Count, maxCount); verr != nil {
		return nil, verr
	}
	return req, nil
}

// albumIDParam parses the {id} path parameter.
func albumIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryInt reads an integer query parameter. A missing or empty value yields
// defaultValue; anything else must parse as a base-10 integer.
func queryInt(r *http.Request, key string, defaultValue int) (int, *validation.RequestValidationError) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validation.NewFieldError(key, "int", raw, key+" must be an integer")
	}
	return n, nil
}

func validateMaxCount(count, maxCount int) *validation.RequestValidationError {
	if maxCount <= 0 {
		return nil
	}
	return validation.ValidateVar("count", count, fmt.Sprintf("max=%d", maxCount))
}

// parseGenreIDs parses a comma-separated list of genre IDs. Blank entries are
// skipped; a single non-integer entry invalidates the whole list.
func parseGenreIDs(value string) []int {
	if value == "" {
		return nil
	}

	var result []int
	for _, part := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		num, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil
		}
		result = append(result, num)
	}
	return result
}
