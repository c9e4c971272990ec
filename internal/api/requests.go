// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package api

// RegisterRequest creates a new account. The profile fields are
// optional; when set they seed future searches.
type RegisterRequest struct {
	Name                 string  `json:"name" validate:"required,min=1,max=200"`
	Email                string  `json:"email" validate:"required,email"`
	Password             string  `json:"password" validate:"required"`
	GroupSize            int     `json:"group_size,omitempty" validate:"omitempty,gte=1,lte=50"`
	PreferredEnvironment string  `json:"preferred_environment,omitempty" validate:"omitempty,oneof=mountain lake beach city"`
	BudgetMin            float64 `json:"budget_min,omitempty" validate:"omitempty,gte=0"`
	BudgetMax            float64 `json:"budget_max,omitempty" validate:"omitempty,gte=0"`
}

// LoginRequest exchanges credentials for a session token.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdateRequest partially updates the caller's profile. Nil
// fields keep their stored values, so "set group size to zero" is not
// expressible — by the same token nothing is clobbered accidentally.
type ProfileUpdateRequest struct {
	Name                 *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	GroupSize            *int     `json:"group_size,omitempty" validate:"omitempty,gte=1,lte=50"`
	PreferredEnvironment *string  `json:"preferred_environment,omitempty" validate:"omitempty,oneof=mountain lake beach city"`
	BudgetMin            *float64 `json:"budget_min,omitempty" validate:"omitempty,gte=0"`
	BudgetMax            *float64 `json:"budget_max,omitempty" validate:"omitempty,gte=0"`
}

// SearchRequest ranks the catalog. Budget, group size, and environment
// fall back to the caller's profile when omitted, mirroring how the
// original search form was pre-filled from the account.
type SearchRequest struct {
	DesiredLocation      string  `json:"desired_location,omitempty" validate:"omitempty,max=200"`
	MinBudget            float64 `json:"min_budget,omitempty" validate:"omitempty,gte=0"`
	MaxBudget            float64 `json:"max_budget,omitempty" validate:"omitempty,gte=0"`
	GroupSize            int     `json:"group_size,omitempty" validate:"omitempty,gte=1,lte=50"`
	PreferredEnvironment string  `json:"preferred_environment,omitempty" validate:"omitempty,oneof=mountain lake beach city"`
	PreferenceText       string  `json:"preference_text,omitempty" validate:"omitempty,max=2000"`
	TopK                 int     `json:"top_k,omitempty" validate:"omitempty,gte=1"`
}

// AssistantRequest asks the external assistant for a single pick.
type AssistantRequest struct {
	Query string `json:"query" validate:"required,min=1,max=2000"`
}
