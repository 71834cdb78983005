// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package middleware

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// CompressionMinSize is the smallest response body that gets gzipped.
const CompressionMinSize = 1024

// Compression gzips responses larger than CompressionMinSize for clients
// that send Accept-Encoding: gzip.
func Compression() (func(http.Handler) http.Handler, error) {
	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(CompressionMinSize))
	if err != nil {
		return nil, err
	}
	return func(next http.Handler) http.Handler {
		return wrap(next)
	}, nil
}
