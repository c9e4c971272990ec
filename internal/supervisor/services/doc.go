// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

// Package services contains suture.Service wrappers for VillaRank's
// long-running components: the HTTP server, the WebSocket hub, the
// embedded NATS server, and the event ingester.
//
// Each wrapper adapts a component's own lifecycle (blocking
// ListenAndServe, Run(ctx), Start/Shutdown pairs) to suture's
// Serve(ctx) contract, and depends on a small interface rather than
// the concrete type so the wrappers stay testable with fakes.
package services
