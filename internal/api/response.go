// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cratedigger/internal/logging"
	"github.com/tomtom215/cratedigger/internal/models"
)

// endpoint is a handler body shared by the bare and enveloped route families.
// It may set response headers on w but must not write the body.
type endpoint func(w http.ResponseWriter, r *http.Request) (interface{}, *handlerError)

// bareError is the error body of the root routes.
type bareError struct {
	Detail  string                 `json:"detail"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// bare renders an endpoint with plain JSON bodies.
func bare(ep endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, herr := ep(w, r)
		if herr != nil {
			logHandlerError(r, herr)
			respondJSON(w, herr.status, bareError{
				Detail:  herr.err.Message,
				Code:    herr.err.Code,
				Details: herr.err.Details,
			})
			return
		}
		respondJSON(w, http.StatusOK, data)
	}
}

// enveloped renders an endpoint wrapped in models.APIResponse.
func enveloped(ep endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		data, herr := ep(w, r)

		metadata := models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			RequestID:   logging.RequestIDFromContext(r.Context()),
		}

		if herr != nil {
			logHandlerError(r, herr)
			apiErr := herr.err
			respondJSON(w, herr.status, &models.APIResponse{
				Status:   "error",
				Metadata: metadata,
				Error:    &apiErr,
			})
			return
		}

		respondJSON(w, http.StatusOK, &models.APIResponse{
			Status:   "success",
			Data:     data,
			Metadata: metadata,
		})
	}
}

// respondJSON sends a JSON response with proper headers. Responses default to
// no-store since discovery results are random per request.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if w.Header().Get("Cache-Control") == "" {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// logHandlerError logs server-side failures at error and client mistakes at debug.
func logHandlerError(r *http.Request, herr *handlerError) {
	logger := logging.Ctx(r.Context())
	event := logger.Debug()
	if herr.status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("code", herr.err.Code).
		Int("status", herr.status).
		Str("path", sanitizeLogValue(r.URL.Path)).
		Msg(herr.err.Message)
}

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
