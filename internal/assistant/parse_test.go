// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package assistant

import (
	"testing"
)

// --- Test: extractRecommendation ---

func TestExtractRecommendation(t *testing.T) {
	t.Parallel()

	const clean = `{
		"property_id": "villa-001",
		"location": "Miami",
		"property_type": "villa",
		"price_per_night": 220,
		"bedrooms": 2,
		"features": ["pool", "wifi"],
		"tags": ["beachfront"],
		"reasoning": "Sleeps four by the water within budget."
	}`

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name:    "clean object",
			content: clean,
		},
		{
			name:    "object wrapped in prose",
			content: "Sure! Here is my pick:\n" + clean + "\nEnjoy your trip!",
		},
		{
			name:    "missing reasoning",
			content: `{"property_id": "villa-001", "location": "Miami", "property_type": "villa", "price_per_night": 220, "bedrooms": 2, "features": [], "tags": []}`,
			wantErr: true,
		},
		{
			name:    "no json object at all",
			content: "I could not find a matching property, sorry.",
			wantErr: true,
		},
		{
			name:    "braces but not json",
			content: "try {this} instead",
			wantErr: true,
		},
		{
			name:    "empty property id",
			content: `{"property_id": "", "location": "Miami", "property_type": "villa", "price_per_night": 220, "bedrooms": 2, "features": [], "tags": [], "reasoning": "x"}`,
			wantErr: true,
		},
		{
			name:    "wrong field type",
			content: `{"property_id": "villa-001", "location": "Miami", "property_type": "villa", "price_per_night": "cheap", "bedrooms": 2, "features": [], "tags": [], "reasoning": "x"}`,
			wantErr: true,
		},
		{
			name:    "empty content",
			content: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := extractRecommendation(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Errorf("extractRecommendation() expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("extractRecommendation() error = %v", err)
			}
			if got.PropertyID != "villa-001" {
				t.Errorf("extractRecommendation() property_id = %v, want villa-001", got.PropertyID)
			}
			if got.PricePerNight != 220 {
				t.Errorf("extractRecommendation() price_per_night = %v, want 220", got.PricePerNight)
			}
			if got.Bedrooms != 2 {
				t.Errorf("extractRecommendation() bedrooms = %v, want 2", got.Bedrooms)
			}
			if len(got.Features) != 2 {
				t.Errorf("extractRecommendation() features = %v, want 2 entries", got.Features)
			}
			if got.Reasoning == "" {
				t.Error("extractRecommendation() reasoning is empty")
			}
		})
	}
}
