// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package services

import (
	"context"
)

// HubRunner matches *websocket.Hub's Run method without importing the
// websocket package.
type HubRunner interface {
	Run(ctx context.Context) error
}

// WebSocketHubService wraps the WebSocket hub as a supervised service.
// The hub's Run method already follows the suture.Service pattern, so
// the wrapper just delegates and provides a name for logging.
type WebSocketHubService struct {
	hub  HubRunner
	name string
}

// NewWebSocketHubService creates a new WebSocket hub service wrapper.
func NewWebSocketHubService(hub HubRunner) *WebSocketHubService {
	return &WebSocketHubService{
		hub:  hub,
		name: "websocket-hub",
	}
}

// Serve implements suture.Service. Run processes registrations and
// broadcasts until the context is canceled, then closes all clients
// and returns ctx.Err().
func (w *WebSocketHubService) Serve(ctx context.Context) error {
	return w.hub.Run(ctx)
}

// String implements fmt.Stringer; suture uses it to identify the
// service in log messages.
func (w *WebSocketHubService) String() string {
	return w.name
}
