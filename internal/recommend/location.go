// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package recommend

import (
	"strings"

	"github.com/villarank/villarank/internal/models"
)

// LocationScorer rates how close a property is to the desired
// location.
//
// When both sides resolve to coordinates — the property from its own
// record or the geocoder, the desired location from the geocoder —
// the score comes from great-circle distance tiers. Otherwise it
// falls back to normalized text comparison: exact match, substring
// containment in either direction, then known alias pairs.
type LocationScorer struct {
	geo Geocoder
}

// NewLocationScorer returns a location scorer backed by geo. A nil
// geocoder disables the distance path; scoring then relies on text
// comparison alone.
func NewLocationScorer(geo Geocoder) *LocationScorer {
	return &LocationScorer{geo: geo}
}

// Name implements Scorer.
func (s *LocationScorer) Name() string { return CriterionLocation }

// Score implements Scorer.
func (s *LocationScorer) Score(property models.Property, criteria models.SearchCriteria) float64 {
	if !criteria.HasLocation() {
		return 0.7
	}

	if s.geo != nil {
		desiredLat, desiredLng, desiredOK := s.geo.Lookup(criteria.DesiredLocation)
		actualLat, actualLng, actualOK := s.propertyCoords(property)
		if desiredOK && actualOK {
			distance := haversineDistance(desiredLat, desiredLng, actualLat, actualLng)
			return distanceScore(distance)
		}
	}

	return textSimilarity(
		normalizeLocation(criteria.DesiredLocation),
		normalizeLocation(property.Location),
	)
}

// propertyCoords resolves the property's position, preferring the
// coordinates on the record itself over a geocoder lookup of its
// location name.
func (s *LocationScorer) propertyCoords(property models.Property) (lat, lng float64, ok bool) {
	if property.HasCoordinates() {
		return *property.Latitude, *property.Longitude, true
	}
	if s.geo != nil {
		return s.geo.Lookup(property.Location)
	}
	return 0, 0, false
}

// textSimilarity compares two normalized location strings. The empty
// check comes first: Contains treats "" as a universal substring, and
// a property with no location must not match everything.
func textSimilarity(desired, actual string) float64 {
	if actual == "" {
		return 0.2
	}
	if desired == actual {
		return 1.0
	}
	if strings.Contains(actual, desired) || strings.Contains(desired, actual) {
		return 0.9
	}
	if aliasMatch(desired, actual) {
		return 0.9
	}
	return 0.2
}

// aliasMatch reports whether a and b name the same place through a
// known alias pair. The alias side must match exactly — "atlanta"
// contains "la" but is not Los Angeles — while the expansion side
// may match by containment, so "nyc" still pairs with "new york
// city".
func aliasMatch(a, b string) bool {
	for alias, expansion := range locationAliases {
		if a == alias && textOverlaps(b, expansion) {
			return true
		}
		if b == alias && textOverlaps(a, expansion) {
			return true
		}
	}
	return false
}

func textOverlaps(x, term string) bool {
	return x == term || strings.Contains(x, term) || strings.Contains(term, x)
}
