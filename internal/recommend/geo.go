// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package recommend

import (
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/villarank/villarank/internal/models"
)

// Geocoder resolves a location name to coordinates. The catalog's
// CoordinateIndex is the production implementation; it only knows
// locations that appear in the catalog itself.
type Geocoder interface {
	Lookup(location string) (lat, lng float64, ok bool)
}

// coordinate is a validated latitude/longitude pair.
type coordinate struct {
	lat float64
	lng float64
}

// CoordinateIndex maps normalized location names to coordinates
// harvested from catalog records. It is built once per catalog
// snapshot and immutable afterwards, so lookups need no locking.
//
// The index is NOT a geocoder: a location absent from the catalog
// cannot be resolved, and searches for such locations fall back to
// name matching.
type CoordinateIndex struct {
	coords map[string]coordinate
}

// BuildCoordinateIndex harvests coordinates from catalog records.
//
// Keys are lowercased, whitespace-trimmed location names. The first
// record that provides usable coordinates for a name wins; later
// records never overwrite it. Coordinates outside [-90, 90] latitude
// or [-180, 180] longitude are treated as absent and logged as a
// warning — the record itself stays in the catalog.
func BuildCoordinateIndex(properties []models.Property, logger zerolog.Logger) *CoordinateIndex {
	idx := &CoordinateIndex{coords: make(map[string]coordinate, len(properties))}

	for i := range properties {
		p := &properties[i]

		key := normalizeLocation(p.Location)
		if key == "" {
			continue
		}
		if _, taken := idx.coords[key]; taken {
			continue
		}
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}

		lat, lng := *p.Latitude, *p.Longitude
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			logger.Warn().
				Str("property_id", p.ID).
				Str("location", p.Location).
				Float64("latitude", lat).
				Float64("longitude", lng).
				Msg("ignoring malformed coordinates")
			continue
		}

		idx.coords[key] = coordinate{lat: lat, lng: lng}
	}

	return idx
}

// Lookup resolves a location name to coordinates. The name is
// normalized the same way index keys are, so callers can pass raw
// user input.
func (idx *CoordinateIndex) Lookup(location string) (lat, lng float64, ok bool) {
	c, ok := idx.coords[normalizeLocation(location)]
	if !ok {
		return 0, 0, false
	}
	return c.lat, c.lng, true
}

// Len returns the number of distinct locations with coordinates.
func (idx *CoordinateIndex) Len() int {
	return len(idx.coords)
}

// normalizeLocation produces the canonical form used for all location
// comparisons: lowercased and whitespace-trimmed.
func normalizeLocation(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

// haversineDistance calculates the great-circle distance between two
// points on Earth using the Haversine formula. Returns distance in
// kilometers.
func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	// Convert to radians
	lat1Rad := lat1 * math.Pi / 180.0
	lon1Rad := lon1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0
	lon2Rad := lon2 * math.Pi / 180.0

	// Haversine formula
	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// distanceScore converts a distance in kilometers to a proximity score.
// Same city scores 1.0, same region degrades gently, different
// continents bottom out at 0.1 rather than 0 — distance alone should
// not eliminate a property.
func distanceScore(km float64) float64 {
	switch {
	case km <= 5:
		return 1.0
	case km <= 25:
		return 0.9
	case km <= 100:
		return 0.7
	case km <= 500:
		return 0.4
	default:
		return 0.1
	}
}
