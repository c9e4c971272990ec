// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package events

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/rs/zerolog"

	"github.com/villarank/villarank/internal/config"
)

// EmbeddedServer wraps an in-process NATS server with JetStream so
// single-instance deployments need no external broker.
type EmbeddedServer struct {
	server    *server.Server
	clientURL string
}

// NewEmbeddedServer creates and starts an embedded NATS server
// listening on the host/port from cfg.URL. It blocks until the server
// accepts connections or 30 seconds pass.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEmbeddedServer(cfg config.NATSConfig, logger zerolog.Logger) (*EmbeddedServer, error) {
	host, port := listenAddress(cfg.URL)

	opts := &server.Options{
		ServerName:         "villarank-events",
		Host:               host,
		Port:               port,
		JetStream:          true,
		StoreDir:           cfg.StoreDir,
		JetStreamMaxMemory: cfg.MaxMemory,
		JetStreamMaxStore:  cfg.MaxStore,
		// Events are small digests; a tight payload cap catches bugs.
		MaxPayload: 1 << 20,
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		return nil, fmt.Errorf("create NATS server: %w", err)
	}
	ns.ConfigureLogger()

	go ns.Start()

	if !ns.ReadyForConnections(30 * time.Second) {
		ns.Shutdown()
		return nil, fmt.Errorf("NATS server not ready within timeout")
	}

	logger.Info().
		Str("component", "events").
		Str("client_url", ns.ClientURL()).
		Str("store_dir", cfg.StoreDir).
		Msg("embedded NATS server ready")

	return &EmbeddedServer{server: ns, clientURL: ns.ClientURL()}, nil
}

// ClientURL returns the connection URL for clients.
func (s *EmbeddedServer) ClientURL() string {
	return s.clientURL
}

// Running reports server health.
func (s *EmbeddedServer) Running() bool {
	return s.server.Running()
}

// Shutdown stops the server, waiting for completion or ctx expiry.
func (s *EmbeddedServer) Shutdown(ctx context.Context) error {
	s.server.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.WaitForShutdown()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// listenAddress extracts host and port from a nats:// URL, falling
// back to the default NATS listen address when the URL is unusable.
func listenAddress(rawURL string) (string, int) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "127.0.0.1", 4222
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		return u.Host, 4222
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, 4222
	}
	return host, port
}
