// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

// Package events is the NATS JetStream event bus.
//
// The server embeds a nats-server by default so single-instance
// deployments need no external broker; pointing events.url at an
// external cluster and disabling the embedded server works the same
// way. Two topics exist: catalog.updated (ingest statistics after a
// catalog load) and search.completed (a criteria digest plus timing —
// individual rankings are never persisted). The Ingester consumes both
// to refresh the DuckDB mirror and to feed the websocket event feed.
//
// Payloads are aggregate-only. Nothing a single user typed or received
// is written to the stream.
package events
