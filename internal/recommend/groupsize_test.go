// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package recommend

import (
	"testing"

	"github.com/villarank/villarank/internal/models"
)

func TestGroupSizeScorer(t *testing.T) {
	t.Parallel()

	scorer := NewGroupSizeScorer()
	if got, want := scorer.Name(), CriterionGroupSize; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}

	tests := []struct {
		name     string
		bedrooms *int
		group    int
		want     float64
	}{
		{"bedrooms unknown", nil, 4, 0.5},
		{"capacity equals group", intPtr(2), 4, 1.0},
		{"one spare bed pair", intPtr(3), 4, 0.9},
		{"exactly group plus two", intPtr(4), 6, 0.9},
		{"moderate excess", intPtr(5), 6, 1.0 - 0.2*(4.0/6.0)}, // excess (10-6)/6
		{"large excess floors at 0.7", intPtr(6), 4, 0.7},
		{"huge excess still 0.7", intPtr(20), 2, 0.7},
		{"small shortage", intPtr(2), 5, 0.4},
		{"quarter shortage boundary", intPtr(3), 8, 0.4},
		{"half shortage", intPtr(1), 4, 0.2},
		{"severe shortage", intPtr(1), 8, 0.0},
		{"solo traveler in a studio pair", intPtr(1), 2, 1.0},
		{"solo traveler", intPtr(1), 1, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			property := models.Property{Bedrooms: tt.bedrooms}
			criteria := models.SearchCriteria{MaxBudget: 100, GroupSize: tt.group, TopK: 5}

			got := scorer.Score(property, criteria)
			if !almostEqual(got, tt.want) {
				t.Errorf("Score(bedrooms=%v, group=%d) = %v, want %v",
					formatBedrooms(tt.bedrooms), tt.group, got, tt.want)
			}
		})
	}
}

func formatBedrooms(b *int) interface{} {
	if b == nil {
		return "nil"
	}
	return *b
}
