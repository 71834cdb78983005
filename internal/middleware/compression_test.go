// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func compressedHandler(t *testing.T, body string) http.Handler {
	t.Helper()
	compress, err := Compression()
	if err != nil {
		t.Fatalf("Compression() error = %v", err)
	}
	return compress(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestCompression_LargeResponse(t *testing.T) {
	body := "[" + strings.Repeat(`{"title":"Kind of Blue","artist":"Miles Davis"},`, 60) + "{}]"
	handler := compressedHandler(t, body)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/albums/random", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", got)
	}

	gz, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("gzip.NewReader() error = %v", err)
	}
	decoded, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("reading gzip body: %v", err)
	}
	if string(decoded) != body {
		t.Error("decompressed body does not match original")
	}
}

func TestCompression_Skipped(t *testing.T) {
	large := strings.Repeat("x", 4*CompressionMinSize)

	tests := []struct {
		name           string
		body           string
		acceptEncoding string
	}{
		{"small response", `{"status":"ok"}`, "gzip"},
		{"client without gzip", large, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := compressedHandler(t, tt.body)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Content-Encoding"); got != "" {
				t.Errorf("Content-Encoding = %q, want none", got)
			}
			if rec.Body.String() != tt.body {
				t.Error("body should pass through unchanged")
			}
		})
	}
}
