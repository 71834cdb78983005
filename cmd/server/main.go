// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/cratedigger/internal/api"
	"github.com/tomtom215/cratedigger/internal/cache"
	"github.com/tomtom215/cratedigger/internal/config"
	"github.com/tomtom215/cratedigger/internal/deezer"
	"github.com/tomtom215/cratedigger/internal/discovery"
	"github.com/tomtom215/cratedigger/internal/logging"
	"github.com/tomtom215/cratedigger/internal/middleware"
	"github.com/tomtom215/cratedigger/internal/supervisor"
	"github.com/tomtom215/cratedigger/internal/supervisor/services"
)

// app holds the components main wires together.
type app struct {
	cache   cache.Cacher
	service *discovery.Service
	server  *http.Server
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   logging.ServiceName,
	})

	logging.Info().
		Str("version", api.Version).
		Str("deezer", cfg.Deezer.BaseURL).
		Str("cache", cfg.Cache.Type).
		Msg("Starting Cratedigger with supervisor tree")

	a, err := newApp(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer a.service.Close()

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.Cache.PurgeInterval > 0 {
		tree.AddCacheService(services.NewCacheJanitorService("deezer-cache", a.cache, cfg.Cache.PurgeInterval))
		logging.Info().Dur("interval", cfg.Cache.PurgeInterval).Msg("Cache janitor added to supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(a.server, a.server.Addr, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for supervisor to finish...")
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// newApp builds the cache, Deezer client, discovery service and HTTP server
// from cfg. Nothing is started.
func newApp(cfg *config.Config) (*app, error) {
	store := cache.NewCacher(cache.CacheConfig{
		Type:     cache.CacheType(cfg.Cache.Type),
		Name:     "deezer",
		TTL:      cfg.Cache.TTL,
		Capacity: cfg.Cache.Capacity,
	})

	client := deezer.NewClient(&cfg.Deezer, store)
	svc := discovery.NewService(client, cfg.Discovery)

	perfMon := middleware.NewPerformanceMonitor(middleware.DefaultPerformanceWindow, middleware.DefaultSlowThreshold)
	handler := api.NewHandler(svc, cfg.Discovery, perfMon)
	chiMW := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))

	router, err := api.NewRouter(handler, chiMW, perfMon).SetupChi()
	if err != nil {
		svc.Close()
		return nil, fmt.Errorf("build router: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	return &app{cache: store, service: svc, server: server}, nil
}
