// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

/*
Package services provides suture.Service wrappers for Cratedigger components.

Each wrapper turns a component's own lifecycle into suture's
Serve(ctx context.Context) error and implements fmt.Stringer so supervisor
events name it.

HTTPServerService runs an HTTPServer (satisfied by *http.Server) and shuts it
down gracefully when its context is canceled.

CacheJanitorService calls Purge on a cache at a fixed interval so expired
Deezer responses do not accumulate between lookups.

	tree.AddCacheService(services.NewCacheJanitorService("deezer-cache", store, cfg.Cache.PurgeInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.ShutdownTimeout))
*/
package services
