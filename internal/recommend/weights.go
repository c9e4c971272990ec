// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package recommend

// Weights defines the relative contribution of each criterion to the
// overall score. Both built-in profiles sum to exactly 1.0.
type Weights struct {
	// Location is the weight for location proximity.
	Location float64 `json:"location"`

	// Budget is the weight for price fit.
	Budget float64 `json:"budget"`

	// Features is the weight for preference-text matching.
	Features float64 `json:"features"`

	// GroupSize is the weight for sleeping-capacity fit.
	GroupSize float64 `json:"group_size"`

	// Environment is the weight for environment matching.
	Environment float64 `json:"environment"`
}

// WeightsFor returns the weight profile for a search. When the user
// named a desired location, weight shifts toward location at the
// expense of budget and features; the other criteria are unchanged.
func WeightsFor(locationSpecified bool) Weights {
	if locationSpecified {
		return Weights{
			Location:    0.40,
			Budget:      0.225,
			Features:    0.175,
			GroupSize:   0.13,
			Environment: 0.07,
		}
	}
	return Weights{
		Location:    0.35,
		Budget:      0.25,
		Features:    0.20,
		GroupSize:   0.13,
		Environment: 0.07,
	}
}

// For returns the weight for the named criterion, zero if unknown.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) For(criterion string) float64 {
	switch criterion {
	case CriterionLocation:
		return w.Location
	case CriterionBudget:
		return w.Budget
	case CriterionFeatures:
		return w.Features
	case CriterionGroupSize:
		return w.GroupSize
	case CriterionEnvironment:
		return w.Environment
	default:
		return 0
	}
}

// ToMap returns the weights as a string-keyed map.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) ToMap() map[string]float64 {
	return map[string]float64{
		CriterionLocation:    w.Location,
		CriterionBudget:      w.Budget,
		CriterionFeatures:    w.Features,
		CriterionGroupSize:   w.GroupSize,
		CriterionEnvironment: w.Environment,
	}
}

// Sum returns the total of all weights.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) Sum() float64 {
	return w.Location + w.Budget + w.Features + w.GroupSize + w.Environment
}
