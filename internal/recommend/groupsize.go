// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package recommend

import "github.com/villarank/villarank/internal/models"

// GroupSizeScorer rates whether a property sleeps the whole group.
//
// Capacity is estimated at two guests per bedroom. A capacity that
// exactly matches the group is ideal; a little headroom is nearly as
// good, while a much larger place scores down gently for the waste.
// Undersized properties fall off fast: a small squeeze may work, a
// large one disqualifies.
type GroupSizeScorer struct{}

// NewGroupSizeScorer returns a group-size scorer.
func NewGroupSizeScorer() *GroupSizeScorer {
	return &GroupSizeScorer{}
}

// Name implements Scorer.
func (s *GroupSizeScorer) Name() string { return CriterionGroupSize }

// Score implements Scorer.
func (s *GroupSizeScorer) Score(property models.Property, criteria models.SearchCriteria) float64 {
	if property.Bedrooms == nil {
		return 0.5
	}

	capacity := *property.Bedrooms * 2
	group := criteria.GroupSize

	if capacity >= group {
		switch {
		case capacity == group:
			return 1.0
		case capacity <= group+2:
			return 0.9
		default:
			excess := float64(capacity-group) / float64(group)
			score := 1.0 - 0.2*excess
			if score < 0.7 {
				score = 0.7
			}
			return score
		}
	}

	shortage := float64(group-capacity) / float64(group)
	switch {
	case shortage <= 0.25:
		return 0.4
	case shortage <= 0.5:
		return 0.2
	default:
		return 0.0
	}
}
