// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package api

import (
	"net/http"

	"github.com/villarank/villarank/internal/events"
	"github.com/villarank/villarank/internal/logging"
)

// CatalogStats returns snapshot statistics for the current catalog.
//
// @Summary Catalog snapshot stats
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Router /api/v1/catalog/stats [get]
func (h *Handler) CatalogStats(w http.ResponseWriter, r *http.Request) {
	stats := h.catalog.Stats()
	respondSuccess(w, http.StatusOK, stats, stats.Properties)
}

// AdminCatalogReload re-ingests the catalog file and swaps the
// snapshot. The analytics mirror follows via the catalog.updated
// event rather than synchronously, so a slow DuckDB reload never
// holds this request open.
//
// @Summary Reload the catalog from disk
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure 500 {object} models.APIResponse
// @Router /api/v1/admin/catalog/reload [post]
func (h *Handler) AdminCatalogReload(w http.ResponseWriter, r *http.Request) {
	properties, loadStats, err := h.loader.LoadFile(h.config.Catalog.Path)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeCatalogUnavailable, "catalog reload failed", err)
		return
	}

	stats := h.catalog.Replace(properties, loadStats)

	event := events.NewCatalogUpdated("admin_reload", stats.Properties, stats.SkippedOnLoad)
	if err := h.publisher.PublishCatalogUpdated(event); err != nil {
		logging.Warn().Err(err).Msg("failed to publish catalog event")
	}

	logging.Info().
		Int("properties", stats.Properties).
		Int("skipped", stats.SkippedOnLoad).
		Msg("catalog reloaded by admin")

	respondSuccess(w, http.StatusOK, stats, stats.Properties)
}

// AdminPerformance returns per-endpoint latency statistics from the
// sliding-window monitor.
//
// @Summary API performance stats
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Router /api/v1/admin/performance [get]
func (h *Handler) AdminPerformance(w http.ResponseWriter, r *http.Request) {
	stats := h.perfMon.GetStats()
	respondSuccess(w, http.StatusOK, map[string]interface{}{"endpoints": stats}, len(stats))
}
