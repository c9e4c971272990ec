// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package recommend

import (
	"testing"

	"github.com/villarank/villarank/internal/models"
)

// stubGeocoder resolves locations from a fixed table.
type stubGeocoder struct {
	coords map[string][2]float64
}

func (g *stubGeocoder) Lookup(location string) (lat, lng float64, ok bool) {
	c, found := g.coords[normalizeLocation(location)]
	if !found {
		return 0, 0, false
	}
	return c[0], c[1], true
}

// --- Test: text comparison ---

func TestLocationScorer_Text(t *testing.T) {
	t.Parallel()

	scorer := NewLocationScorer(nil)
	if got, want := scorer.Name(), CriterionLocation; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}

	tests := []struct {
		name     string
		desired  string
		location string
		want     float64
	}{
		{"no desired location", "", "Miami", 0.7},
		{"whitespace desired location", "   ", "Miami", 0.7},
		{"exact match", "Paris", "Paris", 1.0},
		{"exact match ignoring case and space", "  MIAMI ", "miami", 1.0},
		{"desired inside actual", "New York", "New York City", 0.9},
		{"actual inside desired", "Greater Lisbon Area", "Lisbon", 0.9},
		{"alias short to long", "nyc", "new york", 0.9},
		{"alias short to expanded", "nyc", "New York City", 0.9},
		{"alias reversed", "new york", "nyc", 0.9},
		{"alias la", "LA", "Los Angeles", 0.9},
		{"alias lake tahoe", "Lake Tahoe", "Tahoe", 0.9},
		{"alias side must be exact", "Atlanta", "Los Angeles", 0.2},
		{"unrelated", "Miami", "Aspen", 0.2},
		{"property location empty", "Miami", "", 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			property := models.Property{Location: tt.location}
			criteria := models.SearchCriteria{DesiredLocation: tt.desired, MaxBudget: 100, GroupSize: 2, TopK: 5}

			got := scorer.Score(property, criteria)
			if !almostEqual(got, tt.want) {
				t.Errorf("Score(desired=%q, location=%q) = %v, want %v",
					tt.desired, tt.location, got, tt.want)
			}
		})
	}
}

// --- Test: distance path ---

func TestLocationScorer_Distance(t *testing.T) {
	t.Parallel()

	// Boulder as origin; offsets in latitude are ~111.19 km/degree.
	geo := &stubGeocoder{coords: map[string][2]float64{
		"boulder":   {40.0150, -105.2705},
		"nearby":    {40.0420, -105.2705}, // ~3 km north
		"day trip":  {40.8650, -105.2705}, // ~95 km north
		"far away":  {45.4150, -105.2705}, // ~600 km north
		"same spot": {40.0150, -105.2705},
	}}
	scorer := NewLocationScorer(geo)

	tests := []struct {
		name     string
		location string
		want     float64
	}{
		{"identical coordinates", "same spot", 1.0},
		{"three km away", "nearby", 1.0},
		{"hundred km away", "day trip", 0.7},
		{"six hundred km away", "far away", 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			property := models.Property{Location: tt.location}
			criteria := models.SearchCriteria{DesiredLocation: "Boulder", MaxBudget: 100, GroupSize: 2, TopK: 5}

			got := scorer.Score(property, criteria)
			if !almostEqual(got, tt.want) {
				t.Errorf("Score(location=%q) = %v, want %v", tt.location, got, tt.want)
			}
		})
	}
}

func TestLocationScorer_RecordCoordinatesWin(t *testing.T) {
	t.Parallel()

	// The geocoder places "Stale Name" far away, but the record's own
	// coordinates are next to the desired location and must be used.
	geo := &stubGeocoder{coords: map[string][2]float64{
		"boulder":    {40.0150, -105.2705},
		"stale name": {52.5200, 13.4050},
	}}
	scorer := NewLocationScorer(geo)

	property := models.Property{
		Location:  "Stale Name",
		Latitude:  floatPtr(40.0200),
		Longitude: floatPtr(-105.2705),
	}
	criteria := models.SearchCriteria{DesiredLocation: "Boulder", MaxBudget: 100, GroupSize: 2, TopK: 5}

	if got := scorer.Score(property, criteria); got != 1.0 {
		t.Errorf("Score() = %v, want 1.0 (record coordinates ignored)", got)
	}
}

func TestLocationScorer_FallsBackToTextWhenUnresolvable(t *testing.T) {
	t.Parallel()

	geo := &stubGeocoder{coords: map[string][2]float64{
		"boulder": {40.0150, -105.2705},
	}}
	scorer := NewLocationScorer(geo)

	// Desired resolves, property does not: text path.
	property := models.Property{Location: "Boulder Creek"}
	criteria := models.SearchCriteria{DesiredLocation: "Boulder", MaxBudget: 100, GroupSize: 2, TopK: 5}

	if got := scorer.Score(property, criteria); !almostEqual(got, 0.9) {
		t.Errorf("Score() = %v, want 0.9 (substring fallback)", got)
	}

	// Desired does not resolve either: still text path.
	criteria.DesiredLocation = "Boulder Creek"
	property.Location = "Boulder Creek"
	if got := scorer.Score(property, criteria); !almostEqual(got, 1.0) {
		t.Errorf("Score() = %v, want 1.0 (exact fallback)", got)
	}
}
