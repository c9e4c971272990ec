// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package models

// LocationPriceStats is the nightly-price distribution for one location.
type LocationPriceStats struct {
	Location   string  `json:"location"`
	Properties int     `json:"properties"`
	MinPrice   float64 `json:"min_price"`
	AvgPrice   float64 `json:"avg_price"`
	MaxPrice   float64 `json:"max_price"`
}

// LocationCoverage reports how many records a location contributes and
// how many of them carry usable coordinates.
type LocationCoverage struct {
	Location        string `json:"location"`
	Properties      int    `json:"properties"`
	WithCoordinates int    `json:"with_coordinates"`
}

// PropertyTypeStats is the per-type slice of the catalog.
type PropertyTypeStats struct {
	PropertyType string  `json:"property_type"`
	Properties   int     `json:"properties"`
	AvgPrice     float64 `json:"avg_price"`
}
