// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/villarank/villarank/internal/auth"
	"github.com/villarank/villarank/internal/events"
	"github.com/villarank/villarank/internal/logging"
	"github.com/villarank/villarank/internal/models"
	"github.com/villarank/villarank/internal/recommend"
)

// Search ranks the catalog against the request criteria and returns
// the top-k matches.
//
// @Summary Search the catalog
// @Tags search
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SearchRequest true "Search criteria"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Router /api/v1/search [post]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	criteria, ok := h.buildCriteria(w, r, h.config.Ranking.DefaultTopK)
	if !ok {
		return
	}

	properties := h.catalog.Properties()
	start := time.Now()
	results, err := h.engine.Rank(r.Context(), criteria, properties)
	if err != nil {
		h.respondRankError(w, err)
		return
	}
	took := time.Since(start)

	h.publishSearchCompleted(events.ModeSearch, criteria, len(results), took)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]interface{}{"results": results},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
			Count:     len(results),
			TookMS:    took.Milliseconds(),
		},
	})
}

// SearchDetailed ranks the catalog and attaches per-criterion score
// breakdowns to each result.
//
// @Summary Search the catalog with score breakdowns
// @Tags search
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SearchRequest true "Search criteria"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Router /api/v1/search/detailed [post]
func (h *Handler) SearchDetailed(w http.ResponseWriter, r *http.Request) {
	criteria, ok := h.buildCriteria(w, r, h.config.Ranking.DefaultDetailedTopK)
	if !ok {
		return
	}

	properties := h.catalog.Properties()
	start := time.Now()
	results, err := h.engine.RankDetailed(r.Context(), criteria, properties)
	if err != nil {
		h.respondRankError(w, err)
		return
	}
	took := time.Since(start)

	h.publishSearchCompleted(events.ModeDetailed, criteria, len(results), took)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   map[string]interface{}{"results": results},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
			Count:     len(results),
			TookMS:    took.Milliseconds(),
		},
	})
}

// buildCriteria decodes and validates the search request, then fills
// omitted budget/group/environment fields from the caller's profile.
// On failure it writes the error response and returns ok=false.
func (h *Handler) buildCriteria(w http.ResponseWriter, r *http.Request, defaultTopK int) (models.SearchCriteria, bool) {
	var req SearchRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "invalid request body", err)
		return models.SearchCriteria{}, false
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return models.SearchCriteria{}, false
	}

	criteria := models.SearchCriteria{
		DesiredLocation:      req.DesiredLocation,
		MinBudget:            req.MinBudget,
		MaxBudget:            req.MaxBudget,
		GroupSize:            req.GroupSize,
		PreferredEnvironment: req.PreferredEnvironment,
		PreferenceText:       req.PreferenceText,
		TopK:                 req.TopK,
	}
	h.mergeProfileDefaults(r, &criteria)

	if criteria.TopK <= 0 {
		criteria.TopK = defaultTopK
	}
	if limit := h.config.Ranking.MaxTopK; limit > 0 && criteria.TopK > limit {
		criteria.TopK = limit
	}

	return criteria, true
}

// mergeProfileDefaults fills omitted criteria fields from the caller's
// stored preferences. The original product pre-filled its search form
// the same way. A missing or unloadable account leaves the request
// untouched.
func (h *Handler) mergeProfileDefaults(r *http.Request, criteria *models.SearchCriteria) {
	claims := auth.GetClaims(r.Context())
	if claims == nil || h.accounts == nil {
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), claims.Subject)
	if err != nil {
		logging.Debug().Err(err).Msg("profile defaults unavailable")
		return
	}

	if criteria.GroupSize == 0 && account.GroupSize > 0 {
		criteria.GroupSize = account.GroupSize
	}
	if criteria.MinBudget == 0 && criteria.MaxBudget == 0 && account.BudgetMax > 0 {
		criteria.MinBudget = account.BudgetMin
		criteria.MaxBudget = account.BudgetMax
	}
	if criteria.PreferredEnvironment == "" && account.PreferredEnvironment != "" {
		criteria.PreferredEnvironment = account.PreferredEnvironment
	}
}

// respondRankError maps engine errors onto API responses.
func (h *Handler) respondRankError(w http.ResponseWriter, err error) {
	var invalid *recommend.InvalidCriteriaError
	switch {
	case errors.As(err, &invalid):
		respondError(w, http.StatusBadRequest, codeValidation, invalid.Error(), nil)
	case errors.Is(err, recommend.ErrInvalidCriteria):
		respondError(w, http.StatusBadRequest, codeValidation, err.Error(), nil)
	default:
		respondError(w, http.StatusInternalServerError, codeInternal, "ranking failed", err)
	}
}

// publishSearchCompleted emits the aggregate search digest. Rankings
// themselves are never persisted or published.
func (h *Handler) publishSearchCompleted(mode string, criteria models.SearchCriteria, results int, took time.Duration) {
	event := events.NewSearchCompleted(mode, criteria.DesiredLocation, criteria.TopK, results, took)
	if err := h.publisher.PublishSearchCompleted(event); err != nil {
		logging.Warn().Err(err).Msg("failed to publish search event")
	}
}
