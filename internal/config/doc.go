// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

/*
Package config provides centralized configuration management.

Configuration is layered with Koanf v2, later sources overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. YAML config file: CONFIG_PATH, else config.yaml / config.yml in the
    working directory, else /etc/cratedigger/config.yaml
 3. Environment variables, mapped to nested keys by envTransformFunc

# Sections

  - server: listen address and HTTP timeouts (HTTP_PORT, HTTP_HOST, ...)
  - deezer: catalog API root, request timeout, retry budget, outbound rate
    limit and circuit breaker thresholds (DEEZER_*)
  - cache: ttl or lru, entry TTL (default 2h) and capacity (CACHE_*)
  - discovery: enrichment batch size and per-endpoint count caps (DISCOVERY_*)
  - security: CORS origins, FRONTEND_URL and per-IP rate limiting
  - logging: LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Comma-separated env values (CORS_ORIGINS) are split into slices.

# Validation

Load returns an error when a value is out of range (port, retry budget,
cache type, batch size, log level) so misconfiguration fails at startup.
*/
package config
