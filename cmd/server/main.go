// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/villarank/villarank/internal/analytics"
	"github.com/villarank/villarank/internal/api"
	"github.com/villarank/villarank/internal/assistant"
	"github.com/villarank/villarank/internal/auth"
	"github.com/villarank/villarank/internal/authz"
	"github.com/villarank/villarank/internal/catalog"
	"github.com/villarank/villarank/internal/config"
	"github.com/villarank/villarank/internal/events"
	"github.com/villarank/villarank/internal/logging"
	"github.com/villarank/villarank/internal/recommend"
	"github.com/villarank/villarank/internal/supervisor"
	"github.com/villarank/villarank/internal/supervisor/services"
	ws "github.com/villarank/villarank/internal/websocket"

	_ "github.com/villarank/villarank/docs" // Swagger documentation
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting VillaRank with supervisor tree")
	logging.Info().
		Str("catalog_path", cfg.Catalog.Path).
		Str("db_path", cfg.Database.Path).
		Str("account_store", cfg.Security.AccountStore).
		Bool("nats_enabled", cfg.NATS.Enabled).
		Bool("assistant_enabled", cfg.Assistant.Enabled).
		Msg("Configuration loaded")

	logger := logging.Logger()

	// Load the property catalog. A missing catalog is fatal by default
	// because an empty engine answers every search with nothing; operators
	// can opt into a late-binding catalog via CATALOG_REQUIRED=false.
	loader := catalog.NewLoader(logger)
	properties, loadStats, err := loader.LoadFile(cfg.Catalog.Path)
	if err != nil {
		if cfg.Catalog.Required {
			logging.Fatal().Err(err).Str("path", cfg.Catalog.Path).Msg("Failed to load property catalog")
		}
		logging.Warn().Err(err).Str("path", cfg.Catalog.Path).Msg("Catalog unavailable at startup, serving empty until reload")
		properties = nil
		loadStats = catalog.LoadStats{}
	}

	store := catalog.NewStore(logger)
	catStats := store.Replace(properties, loadStats)
	logging.Info().
		Int("properties", catStats.Properties).
		Int("with_coordinates", catStats.WithCoordinates).
		Int("indexed_locations", catStats.IndexedLocations).
		Int("skipped", catStats.SkippedOnLoad).
		Msg("Property catalog loaded")

	// Scoring engine with its worker pool.
	engine, err := recommend.NewEngine(&recommend.Config{Workers: cfg.Ranking.Workers}, store, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize ranking engine")
	}

	// DuckDB analytics store. An empty path runs in-memory, so this only
	// fails when a configured on-disk database cannot be opened.
	analyticsStore, err := analytics.New(cfg.Database, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize analytics store")
	}
	defer func() {
		if err := analyticsStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing analytics store")
		}
	}()
	if err := analyticsStore.Reload(context.Background(), store.Properties()); err != nil {
		logging.Warn().Err(err).Msg("Initial analytics load failed, aggregates empty until next catalog event")
	}
	logging.Info().Msg("Analytics store initialized")

	tokens, err := auth.NewTokenManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize token manager")
	}

	var repo auth.Repository
	switch cfg.Security.AccountStore {
	case "badger":
		db, err := auth.OpenBadger(cfg.Security.AccountStorePath)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Security.AccountStorePath).Msg("Failed to open account store")
		}
		defer func() {
			if err := db.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing account store")
			}
		}()
		repo = auth.NewBadgerRepository(db)
		logging.Info().Str("path", cfg.Security.AccountStorePath).Msg("Persistent account store enabled")
	default:
		repo = auth.NewMemoryRepository()
		logging.Warn().Msg("Account store is in-memory (ACCOUNT_STORE=memory), accounts are lost on restart")
	}

	accounts := auth.NewService(repo, tokens, config.DefaultPasswordPolicy(), logger)

	enforcer, err := authz.NewEnforcer()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authorization enforcer")
	}
	authzMW := authz.NewMiddleware(enforcer, logger)

	// Assistant client is always constructed; the Enabled flag gates the
	// upstream call so the endpoint degrades instead of 404ing.
	assistantClient := assistant.NewClient(cfg.Assistant, logger)
	if cfg.Assistant.Enabled {
		logging.Info().Str("model", cfg.Assistant.Model).Msg("Conversational assistant enabled")
	} else {
		logging.Info().Msg("Conversational assistant disabled (ASSISTANT_ENABLED=false)")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// WebSocket hub for the live event feed
	wsHub := ws.NewHub()

	// Event bus. The embedded JetStream server keeps single-binary
	// deployments self-contained; an external URL skips it.
	var publisher events.Publisher = events.NewNopPublisher()
	var natsServer *events.EmbeddedServer
	var ingester *events.Ingester
	if cfg.NATS.Enabled {
		natsURL := cfg.NATS.URL
		if cfg.NATS.EmbeddedServer {
			natsServer, err = events.NewEmbeddedServer(cfg.NATS, logger)
			if err != nil {
				logging.Fatal().Err(err).Msg("Failed to start embedded NATS server")
			}
			natsURL = natsServer.ClientURL()
		}

		if err := events.EnsureStream(ctx, natsURL); err != nil {
			logging.Fatal().Err(err).Str("url", natsURL).Msg("Failed to ensure event stream")
		}

		natsPublisher, err := events.NewPublisher(natsURL, logger)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create event publisher")
		}
		defer func() {
			if err := natsPublisher.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event publisher")
			}
		}()
		publisher = natsPublisher

		subscriber, err := events.NewSubscriber(natsURL, logger)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create event subscriber")
		}
		defer func() {
			if err := subscriber.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event subscriber")
			}
		}()
		ingester = events.NewIngester(subscriber, store, analyticsStore, wsHub, logger)
		logging.Info().Str("url", natsURL).Msg("Event bus connected")

		// Mirror the admin reload endpoint: announce the boot catalog so
		// consumers that joined the stream late can converge.
		if err := publisher.PublishCatalogUpdated(events.NewCatalogUpdated("boot", catStats.Properties, catStats.SkippedOnLoad)); err != nil {
			logging.Warn().Err(err).Msg("Failed to publish boot catalog event")
		}
	} else {
		logging.Info().Msg("Event bus disabled (NATS_ENABLED=false), publishing to no-op sink")
	}

	handler := api.NewHandler(api.HandlerDeps{
		Config:    cfg,
		Catalog:   store,
		Loader:    loader,
		Engine:    engine,
		Accounts:  accounts,
		Assistant: assistantClient,
		Analytics: analyticsStore,
		Publisher: publisher,
		WSHub:     wsHub,
	})

	chiMW := api.NewChiMiddlewareFromConfig(&cfg.Security)
	authMW := api.NewAuthMiddleware(tokens)
	router := api.NewRouter(handler, chiMW, authMW, authzMW)

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	// Messaging layer services
	if natsServer != nil {
		tree.AddMessagingService(services.NewNATSServerService(natsServer, 10*time.Second))
	}
	if ingester != nil {
		tree.AddMessagingService(services.NewIngesterService(ingester))
	}
	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	logging.Info().Msg("Messaging services added to supervisor tree")

	// API layer services
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
