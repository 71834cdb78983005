// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

/*
Package deezer is the client for the public Deezer catalog API.

Client.Fetch performs one logical GET with bounded retries. Every failure
mode collapses into a single absent result so callers never handle errors:

  - Transport errors, non-2xx statuses and unparseable bodies are retried
    up to MaxRetries times with a linear backoff (200ms, 400ms by default).
  - A JSON object carrying an "error" key (Deezer reports "no data" and
    quota errors this way with HTTP 200) is absent immediately, no retry.
  - When retries are exhausted a single warning is logged.

Each attempt waits on an outbound token bucket (golang.org/x/time/rate,
Deezer allows 50 requests per 5 seconds) and runs through a
sony/gobreaker circuit breaker. An open breaker fails the attempt fast.

The typed endpoints (GenreArtists, ArtistAlbums, SearchAlbums,
FirstPreview, AlbumDetails, ChartAlbums) decode the payloads into
internal/models types and memoize non-empty results in a cache.Cacher.

Thread Safety: Client is safe for concurrent use.
*/
package deezer
