// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

// Package api provides the HTTP surface of VillaRank.
//
// The package wires a Chi router over handler methods split by
// concern:
//
//   - handlers.go: Handler struct and constructor
//   - handlers_helpers.go: shared response/validation helpers
//   - handlers_health.go: liveness and readiness probes
//   - handlers_auth.go: registration, login, profile management
//   - handlers_search.go: catalog ranking endpoints
//   - handlers_assistant.go: natural-language recommendation endpoint
//   - handlers_catalog.go: catalog stats and admin reload
//   - handlers_analytics.go: DuckDB-backed reporting endpoints
//   - handlers_websocket.go: live event feed upgrade
//
// Every endpoint responds with the models.APIResponse envelope.
// Authentication is a bearer JWT validated by the auth middleware;
// admin routes additionally pass through the casbin enforcer.
package api
