// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

/*
Package supervisor provides process supervision for VillaRank using
suture v4.

The package implements a hierarchical supervisor tree that manages the
lifecycle of all long-running services, with Erlang/OTP-style automatic
restart, failure isolation, and graceful shutdown.

# Overview

Services are organized into two layers for failure isolation:

	RootSupervisor ("villarank")
	├── MessagingSupervisor ("messaging-layer")
	│   ├── NATSServerService (if embedded server enabled)
	│   ├── IngesterService (if NATS enabled)
	│   └── WebSocketHubService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

This hierarchy ensures that:
  - A crash in the event ingester doesn't affect in-flight searches
  - The embedded NATS server restarting doesn't drop the HTTP listener
  - Each layer has independent failure counting and backoff

# Service Interface

All services implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Return behavior:
  - Return nil: service stopped cleanly, will not be restarted
  - Return an error: service crashed, will be restarted with backoff
  - Context canceled: shutdown requested, return promptly

# What Is NOT Supervised

The DuckDB analytics mirror and the Badger account store are embedded
libraries, not long-running processes; their connections are owned by
their packages and closed from main. The assistant client is a plain
HTTP client guarded by its own circuit breaker.

# Debugging Shutdown Issues

If services don't stop within the timeout:

	report, _ := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    log.Printf("service didn't stop: %v", svc)
	}
*/
package supervisor
