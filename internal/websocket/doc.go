// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

// Package websocket is the live operational feed.
//
// A single Hub fans event-bus digests (catalog reloads, search
// completions) out to connected clients. Clients only ever send ping
// messages; everything else flows server to client. Send buffers are
// bounded and a client that cannot keep up is disconnected rather than
// allowed to stall the feed.
package websocket
