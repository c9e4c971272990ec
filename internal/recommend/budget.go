// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package recommend

import "github.com/villarank/villarank/internal/models"

// BudgetScorer rates how well a property's nightly price fits the
// requested budget range.
//
// Prices below the minimum score zero: suspiciously cheap listings
// are treated as a mismatch, not a bargain. Prices above the maximum
// decay linearly with the relative overage and hit zero once the
// price exceeds the budget by more than half. Within range, the score
// slides from 1.0 at the minimum to 0.7 at the maximum, mildly
// preferring cheaper stays.
type BudgetScorer struct{}

// NewBudgetScorer returns a budget scorer.
func NewBudgetScorer() *BudgetScorer {
	return &BudgetScorer{}
}

// Name implements Scorer.
func (s *BudgetScorer) Name() string { return CriterionBudget }

// Score implements Scorer.
func (s *BudgetScorer) Score(property models.Property, criteria models.SearchCriteria) float64 {
	price := property.PricePerNight

	if price < criteria.MinBudget {
		return 0.0
	}

	if price > criteria.MaxBudget {
		overage := (price - criteria.MaxBudget) / criteria.MaxBudget
		if overage > 0.5 {
			return 0.0
		}
		return 1.0 - overage
	}

	// In range. A degenerate range (min == max) has no spread to
	// position within, so an exact hit scores full.
	if criteria.MaxBudget == criteria.MinBudget {
		return 1.0
	}
	position := (price - criteria.MinBudget) / (criteria.MaxBudget - criteria.MinBudget)
	return 1.0 - 0.3*position
}
