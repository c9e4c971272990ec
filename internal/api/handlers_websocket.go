// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package api

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/villarank/villarank/internal/logging"
	ws "github.com/villarank/villarank/internal/websocket"
)

// wsUpgrader upgrades authenticated connections onto the event feed.
// Origin checking is deferred to the CORS middleware in front of the
// route; the upgrader accepts what reached it.
var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebSocket upgrades the request onto the live event feed. The auth
// middleware has already validated the token (header or access_token
// query parameter for browser clients).
//
// @Summary Live event feed
// @Tags feed
// @Security BearerAuth
// @Success 101 {string} string "Switching Protocols"
// @Router /api/v1/ws [get]
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		respondError(w, http.StatusServiceUnavailable, codeInternal, "event feed is not enabled", nil)
		return
	}

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		logging.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}
