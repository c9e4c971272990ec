// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package services

import (
	"context"
	"fmt"
	"time"
)

// NATSServer matches *events.EmbeddedServer's lifecycle. The embedded
// server starts during construction, so the wrapper only has to watch
// for shutdown.
type NATSServer interface {
	Running() bool
	Shutdown(ctx context.Context) error
}

// NATSServerService wraps the embedded NATS server as a supervised
// service. It blocks until the context is canceled, then shuts the
// server down with the configured timeout. If the server stops running
// on its own the service returns an error so the supervisor logs the
// failure, though a dead embedded server cannot be restarted in place
// and the process should be restarted.
type NATSServerService struct {
	server          NATSServer
	shutdownTimeout time.Duration
	pollInterval    time.Duration
	name            string
}

// NewNATSServerService creates a new embedded NATS server wrapper.
func NewNATSServerService(server NATSServer, shutdownTimeout time.Duration) *NATSServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &NATSServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		pollInterval:    5 * time.Second,
		name:            "nats-server",
	}
}

// Serve implements suture.Service.
func (n *NATSServerService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(n.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), n.shutdownTimeout)
			defer cancel()
			if err := n.server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("nats server shutdown failed: %w", err)
			}
			return ctx.Err()

		case <-ticker.C:
			if !n.server.Running() {
				return fmt.Errorf("embedded nats server stopped unexpectedly")
			}
		}
	}
}

// String implements fmt.Stringer; suture uses it to identify the
// service in log messages.
func (n *NATSServerService) String() string {
	return n.name
}
