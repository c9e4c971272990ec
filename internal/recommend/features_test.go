// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package recommend

import (
	"testing"

	"github.com/villarank/villarank/internal/models"
)

func TestFeaturesScorer(t *testing.T) {
	t.Parallel()

	scorer := NewFeaturesScorer()
	if got, want := scorer.Name(), CriterionFeatures; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}

	property := models.Property{
		Location:     "Whistler",
		PropertyType: "chalet",
		Features:     []string{"hot_tub", "sauna", "fireplace"},
		Tags:         []string{"ski_in_out", "luxury"},
	}

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"no preference text", "", 0.5},
		{"whitespace only", "   \t ", 0.5},
		{"single match", "sauna", 1.0},
		{"all tokens match", "hot_tub sauna fireplace", 1.0},
		{"uppercase tokens match", "SAUNA Fireplace", 1.0},
		{"half the tokens match", "sauna helipad", 0.75},
		{"duplicate tokens count once", "sauna sauna helipad", 0.75},
		{"duplicates of a miss count once", "helipad helipad sauna", 0.75},
		{"one of four", "sauna pool cinema helipad", 0.625},
		{"no tokens match", "helipad", 0.5},
		{"token as substring", "tub", 1.0},
		{"location is not searched", "whistler", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			criteria := models.SearchCriteria{
				PreferenceText: tt.text,
				MaxBudget:      100,
				GroupSize:      2,
				TopK:           5,
			}

			got := scorer.Score(property, criteria)
			if !almostEqual(got, tt.want) {
				t.Errorf("Score(text=%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
