// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/villarank/villarank/internal/models"
)

// healthStatus is the readiness payload.
type healthStatus struct {
	Status     string            `json:"status"`
	UptimeSecs int64             `json:"uptime_seconds"`
	Checks     map[string]string `json:"checks"`
}

// HealthLive reports process liveness. It carries no dependency
// checks so orchestrators never restart a busy-but-healthy process.
//
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /api/v1/health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "alive"}, 0)
}

// HealthReady reports readiness: the catalog must hold at least one
// property, and the analytics store (when configured) must answer a
// ping. A degraded analytics store does not fail readiness — ranking
// works without it.
//
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /api/v1/health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	ready := true

	if h.catalog == nil || h.catalog.Len() == 0 {
		checks["catalog"] = "empty"
		ready = false
	} else {
		checks["catalog"] = "ok"
	}

	if h.analytics != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.analytics.Ping(ctx); err != nil {
			checks["analytics"] = "degraded"
		} else {
			checks["analytics"] = "ok"
		}
	}

	status := healthStatus{
		Status:     "ready",
		UptimeSecs: int64(time.Since(h.startTime).Seconds()),
		Checks:     checks,
	}

	if !ready {
		status.Status = "not_ready"
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   "error",
			Data:     status,
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error:    &models.APIError{Code: codeCatalogUnavailable, Message: "service is not ready"},
		})
		return
	}
	respondSuccess(w, http.StatusOK, status, 0)
}
