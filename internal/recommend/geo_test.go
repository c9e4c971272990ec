// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package recommend

import (
	"math"
	"testing"

	"github.com/villarank/villarank/internal/models"
)

// --- Test: BuildCoordinateIndex ---

func TestBuildCoordinateIndex_FirstUsableWins(t *testing.T) {
	t.Parallel()

	properties := []models.Property{
		{ID: "p1", Location: "Miami", Latitude: floatPtr(25.76), Longitude: floatPtr(-80.19)},
		{ID: "p2", Location: " miami ", Latitude: floatPtr(99.0), Longitude: floatPtr(0.0)},
		{ID: "p3", Location: "MIAMI", Latitude: floatPtr(1.0), Longitude: floatPtr(1.0)},
	}

	idx := BuildCoordinateIndex(properties, testLogger())

	if got := idx.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}

	lat, lng, ok := idx.Lookup("Miami")
	if !ok {
		t.Fatal("Lookup(Miami) = not found, want found")
	}
	if lat != 25.76 || lng != -80.19 {
		t.Errorf("Lookup(Miami) = (%v, %v), want (25.76, -80.19)", lat, lng)
	}
}

func TestBuildCoordinateIndex_MalformedDoesNotClaimKey(t *testing.T) {
	t.Parallel()

	// The first record for Denver has out-of-range coordinates; the
	// second has usable ones and must fill the slot.
	properties := []models.Property{
		{ID: "bad-lat", Location: "Denver", Latitude: floatPtr(95.0), Longitude: floatPtr(-104.99)},
		{ID: "missing", Location: "Denver"},
		{ID: "good", Location: "Denver", Latitude: floatPtr(39.74), Longitude: floatPtr(-104.99)},
	}

	idx := BuildCoordinateIndex(properties, testLogger())

	lat, lng, ok := idx.Lookup("denver")
	if !ok {
		t.Fatal("Lookup(denver) = not found, want found")
	}
	if lat != 39.74 || lng != -104.99 {
		t.Errorf("Lookup(denver) = (%v, %v), want (39.74, -104.99)", lat, lng)
	}
}

func TestBuildCoordinateIndex_Skips(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		property models.Property
	}{
		{
			name:     "empty location",
			property: models.Property{ID: "p", Latitude: floatPtr(10), Longitude: floatPtr(10)},
		},
		{
			name:     "whitespace location",
			property: models.Property{ID: "p", Location: "   ", Latitude: floatPtr(10), Longitude: floatPtr(10)},
		},
		{
			name:     "missing latitude",
			property: models.Property{ID: "p", Location: "Lyon", Longitude: floatPtr(4.84)},
		},
		{
			name:     "missing longitude",
			property: models.Property{ID: "p", Location: "Lyon", Latitude: floatPtr(45.76)},
		},
		{
			name:     "latitude out of range",
			property: models.Property{ID: "p", Location: "Lyon", Latitude: floatPtr(-90.5), Longitude: floatPtr(4.84)},
		},
		{
			name:     "longitude out of range",
			property: models.Property{ID: "p", Location: "Lyon", Latitude: floatPtr(45.76), Longitude: floatPtr(180.5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			idx := BuildCoordinateIndex([]models.Property{tt.property}, testLogger())
			if got := idx.Len(); got != 0 {
				t.Errorf("Len() = %d, want 0", got)
			}
		})
	}
}

func TestCoordinateIndex_LookupNormalizes(t *testing.T) {
	t.Parallel()

	properties := []models.Property{
		{ID: "p", Location: "Lake Tahoe", Latitude: floatPtr(39.0968), Longitude: floatPtr(-120.0324)},
	}
	idx := BuildCoordinateIndex(properties, testLogger())

	for _, query := range []string{"Lake Tahoe", "lake tahoe", "  LAKE TAHOE  "} {
		if _, _, ok := idx.Lookup(query); !ok {
			t.Errorf("Lookup(%q) = not found, want found", query)
		}
	}

	if _, _, ok := idx.Lookup("Tahoe City"); ok {
		t.Error("Lookup(Tahoe City) = found, want not found")
	}
}

// --- Test: haversine ---

func TestHaversineDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKM                 float64
		tolKM                  float64
	}{
		{
			name: "identical points",
			lat1: 48.8566, lon1: 2.3522, lat2: 48.8566, lon2: 2.3522,
			wantKM: 0, tolKM: 0.001,
		},
		{
			name: "paris to london",
			lat1: 48.8566, lon1: 2.3522, lat2: 51.5074, lon2: -0.1278,
			wantKM: 343.5, tolKM: 2,
		},
		{
			name: "new york to los angeles",
			lat1: 40.7128, lon1: -74.0060, lat2: 34.0522, lon2: -118.2437,
			wantKM: 3936, tolKM: 10,
		},
		{
			name: "across the antimeridian",
			lat1: 0, lon1: 179.5, lat2: 0, lon2: -179.5,
			wantKM: 111.2, tolKM: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := haversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.wantKM) > tt.tolKM {
				t.Errorf("haversineDistance() = %v km, want %v ± %v", got, tt.wantKM, tt.tolKM)
			}
		})
	}
}

// --- Test: distance tiers ---

func TestDistanceScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		km   float64
		want float64
	}{
		{0, 1.0},
		{3, 1.0},
		{5, 1.0},
		{5.1, 0.9},
		{25, 0.9},
		{25.1, 0.7},
		{100, 0.7},
		{100.1, 0.4},
		{500, 0.4},
		{500.1, 0.1},
		{600, 0.1},
		{12000, 0.1},
	}

	for _, tt := range tests {
		if got := distanceScore(tt.km); got != tt.want {
			t.Errorf("distanceScore(%v) = %v, want %v", tt.km, got, tt.want)
		}
	}
}
