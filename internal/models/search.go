// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package models

import "strings"

// SearchCriteria is what the user asked for. It is assembled from the
// request body (and, for signed-in users, defaults from their account
// profile) before being handed to the ranking engine.
type SearchCriteria struct {
	DesiredLocation      string  `json:"desired_location,omitempty"`
	MinBudget            float64 `json:"min_budget" validate:"gte=0"`
	MaxBudget            float64 `json:"max_budget" validate:"gte=0"`
	GroupSize            int     `json:"group_size" validate:"gte=1"`
	PreferredEnvironment string  `json:"preferred_environment,omitempty"`
	PreferenceText       string  `json:"preference_text,omitempty"`
	TopK                 int     `json:"top_k,omitempty" validate:"omitempty,gte=1,lte=100"`
}

// HasLocation reports whether the user named a desired location.
// The weight policy shifts weight toward location when they did.
func (c *SearchCriteria) HasLocation() bool {
	return strings.TrimSpace(c.DesiredLocation) != ""
}

// Recommendation is one ranked result: the property plus its overall
// score in [0, 1].
type Recommendation struct {
	Property Property `json:"property"`
	Score    float64  `json:"score"`
}

// ScoreBreakdown explains one criterion's contribution to an overall
// score: the raw criterion score, the weight applied to it, and their
// product.
type ScoreBreakdown struct {
	Score         float64 `json:"score"`
	Weight        float64 `json:"weight"`
	WeightedScore float64 `json:"weighted_score"`
}

// DetailedRecommendation is a ranked result with per-criterion
// breakdowns, keyed by criterion name (location, budget, features,
// group_size, environment).
type DetailedRecommendation struct {
	Property   Property                  `json:"property"`
	Score      float64                   `json:"score"`
	Breakdowns map[string]ScoreBreakdown `json:"breakdowns"`
}
