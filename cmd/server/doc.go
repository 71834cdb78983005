// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

/*
Package main is the entry point for the Cratedigger server.

Cratedigger proxies the public Deezer catalog and serves randomized
"crate digging" album discovery: obscure albums sampled across genres and
search terms, filtered by popularity and track count, each with a 30 second
preview.

# Application Architecture

	RootSupervisor ("cratedigger")
	├── CacheSupervisor ("cache-layer")
	│   └── deezer cache janitor (CACHE_PURGE_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog with JSON/console output
 3. Cache: TTL or LRU cache for Deezer responses
 4. Deezer client: rate limited, retried, behind a circuit breaker
 5. Discovery service
 6. HTTP router and server
 7. Supervisor tree

# Configuration

	Priority: Environment variables > Config file > Defaults

Common environment variables:

	HTTP_PORT=8000
	LOG_LEVEL=info              # trace, debug, info, warn, error
	LOG_FORMAT=json             # json or console
	DEEZER_BASE_URL=https://api.deezer.com
	CACHE_TYPE=lru              # ttl or lru
	CACHE_TTL=2h
	CACHE_PURGE_INTERVAL=10m    # 0 disables the janitor
	FRONTEND_URL=https://crates.example.com
	CORS_ORIGINS=http://localhost:5173,https://*.vercel.app
	RATE_LIMIT_REQUESTS=100
	RATE_LIMIT_WINDOW=1m

CONFIG_PATH points at a YAML file using the same keys, nested by section.

# Signal Handling

SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
in-flight requests for HTTP_SHUTDOWN_TIMEOUT before the process exits.
*/
package main
