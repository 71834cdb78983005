// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

// Package logging provides centralized zerolog-based structured logging.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Warn().Str("endpoint", "/album/302127").Msg("Deezer fetch failed")
//
//	// Context-aware logging picks up request_id and correlation_id
//	logging.Ctx(ctx).Debug().Int("candidates", n).Msg("Discovery candidates collected")
//
// # Configuration
//
// Level, format and caller output come from the logging section of the
// service configuration (LOG_LEVEL, LOG_FORMAT, LOG_CALLER).
//
// # slog Integration
//
// NewSlogLogger returns a *slog.Logger writing through zerolog, used to hook
// the suture supervisor's events into the same output.
package logging
