// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package models

import (
	"strings"
)

// Property is a single rental listing from the catalog.
//
// Bedrooms is a pointer because listings scraped from mixed sources may
// omit it; scorers treat a missing bedroom count as "unknown" rather
// than zero. Latitude/Longitude are likewise optional: most catalog
// rows carry only a location name, and coordinates are resolved
// through the catalog-derived coordinate index.
type Property struct {
	ID            string    `json:"property_id"`
	Location      string    `json:"location"`
	PropertyType  string    `json:"property_type"`
	PricePerNight float64   `json:"price_per_night"`
	Bedrooms      *int      `json:"bedrooms,omitempty"`
	Features      []string  `json:"features,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
}

// HasCoordinates reports whether the record itself carries a usable
// coordinate pair. Out-of-range values are treated as absent.
func (p *Property) HasCoordinates() bool {
	if p.Latitude == nil || p.Longitude == nil {
		return false
	}
	lat, lng := *p.Latitude, *p.Longitude
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// SearchText returns the lowercase concatenation of the property's
// descriptive fields (type, features, tags). Scorers match keyword
// tokens against this haystack.
func (p *Property) SearchText() string {
	parts := make([]string, 0, 2+len(p.Features)+len(p.Tags))
	parts = append(parts, p.PropertyType)
	parts = append(parts, p.Features...)
	parts = append(parts, p.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// DescriptiveText returns the lowercase concatenation of location plus
// the descriptive fields. The environment scorer matches environment
// keywords against this wider haystack.
func (p *Property) DescriptiveText() string {
	parts := make([]string, 0, 3+len(p.Features)+len(p.Tags))
	parts = append(parts, p.Location)
	parts = append(parts, p.PropertyType)
	parts = append(parts, p.Features...)
	parts = append(parts, p.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}
