// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package api

import (
	"time"

	"github.com/villarank/villarank/internal/analytics"
	"github.com/villarank/villarank/internal/assistant"
	"github.com/villarank/villarank/internal/auth"
	"github.com/villarank/villarank/internal/catalog"
	"github.com/villarank/villarank/internal/config"
	"github.com/villarank/villarank/internal/events"
	"github.com/villarank/villarank/internal/middleware"
	"github.com/villarank/villarank/internal/recommend"
	ws "github.com/villarank/villarank/internal/websocket"
)

// Handler carries the dependencies shared by all endpoint methods.
//
// The catalog store and ranking engine are required; everything else
// degrades gracefully when nil (analytics endpoints return 503, the
// assistant endpoint reports no recommendation, events become no-ops).
type Handler struct {
	config    *config.Config
	catalog   *catalog.Store
	loader    *catalog.Loader
	engine    *recommend.Engine
	accounts  *auth.Service
	assistant *assistant.Client
	analytics *analytics.Store
	publisher events.Publisher
	wsHub     *ws.Hub
	perfMon   *middleware.PerformanceMonitor
	startTime time.Time
}

// HandlerDeps bundles constructor arguments so call sites stay
// readable as the dependency list grows.
type HandlerDeps struct {
	Config    *config.Config
	Catalog   *catalog.Store
	Loader    *catalog.Loader
	Engine    *recommend.Engine
	Accounts  *auth.Service
	Assistant *assistant.Client
	Analytics *analytics.Store
	Publisher events.Publisher
	WSHub     *ws.Hub
}

// NewHandler creates the API handler.
//
// A nil Publisher is replaced with the no-op publisher so handlers
// never nil-check before emitting events.
func NewHandler(deps HandlerDeps) *Handler {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}

	return &Handler{
		config:    deps.Config,
		catalog:   deps.Catalog,
		loader:    deps.Loader,
		engine:    deps.Engine,
		accounts:  deps.Accounts,
		assistant: deps.Assistant,
		analytics: deps.Analytics,
		publisher: publisher,
		wsHub:     deps.WSHub,
		perfMon:   middleware.NewPerformanceMonitor(1000),
		startTime: time.Now(),
	}
}

// PerformanceMonitor exposes the sliding-window request monitor so the
// router can install it as middleware and the admin endpoint can read
// its stats.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}
