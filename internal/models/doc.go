// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

/*
Package models defines data structures for the Cratedigger application.

Model Categories:

1. Catalog payloads (decoded from the Deezer API):
  - Artist: genre artist listing entry
  - AlbumStub: album summary from search, artist and chart listings
  - ArtistRef: artist field that may be an object, a string or a number
  - Track: album track carrying a 30 second preview URL
  - AlbumDetails: full album record with release date and genres

2. Domain models (served to clients):
  - Album: an enriched album that is guaranteed to carry a cover and a preview
  - AlbumCollection: {albums, total} list response
  - Genre: entry of the fixed genre table

3. API envelope:
  - APIResponse, APIError, Metadata for the /api/v1 routes
  - Error codes (ErrCodeNotFound, ErrCodeValidation, ...)

All JSON encoding uses github.com/goccy/go-json.
*/
package models
