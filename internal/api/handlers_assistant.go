// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/villarank/villarank/internal/assistant"
	"github.com/villarank/villarank/internal/events"
	"github.com/villarank/villarank/internal/logging"
	"github.com/villarank/villarank/internal/models"
)

// assistantResponse carries at most one recommendation. A null
// recommendation means the assistant could not produce one — that is
// a normal outcome, not an error.
type assistantResponse struct {
	Recommendation *assistant.Recommendation `json:"recommendation"`
}

// AssistantRecommend asks the external assistant for a single pick
// based on free-form text. Every failure of the external service
// (timeout, open breaker, malformed reply, hallucinated property id)
// collapses to "no recommendation"; the endpoint never surfaces the
// upstream's problems as its own.
//
// @Summary Natural-language recommendation
// @Tags assistant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AssistantRequest true "Free-form query"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Router /api/v1/assistant/recommend [post]
func (h *Handler) AssistantRecommend(w http.ResponseWriter, r *http.Request) {
	var req AssistantRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()
	var rec *assistant.Recommendation
	if h.assistant != nil && h.assistant.Enabled() {
		properties := h.catalog.Properties()
		result, err := h.assistant.Recommend(r.Context(), req.Query, properties)
		switch {
		case err == nil:
			rec = result
		case errors.Is(err, assistant.ErrUnavailable):
			// Fail closed: the response below carries no
			// recommendation and the client moves on.
			logging.Debug().Err(err).Msg("assistant produced no recommendation")
		default:
			logging.Warn().Err(err).Msg("unexpected assistant error")
		}
	}
	took := time.Since(start)

	count := 0
	if rec != nil {
		count = 1
	}

	event := events.NewSearchCompleted(events.ModeAssistant, "", 1, count, took)
	if err := h.publisher.PublishSearchCompleted(event); err != nil {
		logging.Warn().Err(err).Msg("failed to publish search event")
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   assistantResponse{Recommendation: rec},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
			Count:     count,
			TookMS:    took.Milliseconds(),
		},
	})
}
