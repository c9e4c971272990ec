// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package api

import (
	"net/http"
)

// AnalyticsPrices returns the per-location price distribution from
// the DuckDB mirror. An optional ?location= filter narrows the result
// to one location (case-insensitive).
//
// @Summary Price distribution by location
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param location query string false "Filter to one location"
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /api/v1/analytics/prices [get]
func (h *Handler) AnalyticsPrices(w http.ResponseWriter, r *http.Request) {
	if h.analytics == nil {
		respondError(w, http.StatusServiceUnavailable, codeInternal, "analytics store is not configured", nil)
		return
	}

	location := r.URL.Query().Get("location")
	rows, err := h.analytics.PriceDistribution(r.Context(), location)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "price distribution query failed", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"locations": rows}, len(rows))
}

// AnalyticsLocations returns property counts, coordinate coverage,
// and property-type distribution.
//
// @Summary Location and property-type coverage
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /api/v1/analytics/locations [get]
func (h *Handler) AnalyticsLocations(w http.ResponseWriter, r *http.Request) {
	if h.analytics == nil {
		respondError(w, http.StatusServiceUnavailable, codeInternal, "analytics store is not configured", nil)
		return
	}

	coverage, err := h.analytics.LocationCoverage(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "location coverage query failed", err)
		return
	}

	types, err := h.analytics.PropertyTypeCounts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "property type query failed", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"locations":      coverage,
		"property_types": types,
	}, len(coverage))
}
