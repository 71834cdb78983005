// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

/*
Package supervisor runs the long-lived parts of the server under a suture
supervisor tree.

The tree has two layers below the root:

	cratedigger (root)
	├── cache-layer   background cache maintenance (expired entry sweeps)
	└── api-layer     HTTP server

A service that returns an error is restarted with backoff. Repeated failures
in the cache layer never take down the API layer; the cache itself keeps
answering lookups and only the sweep stops.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddCacheService(services.NewCacheJanitorService("deezer-cache", store, 10*time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	<-errCh

Lifecycle events (restarts, backoff, stop timeouts) are logged through
sutureslog onto the slog logger passed to NewSupervisorTree, which in
production is bridged to zerolog by logging.NewSlogLogger.
*/
package supervisor
