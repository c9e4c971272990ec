// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package recommend

import (
	"strings"

	"github.com/villarank/villarank/internal/models"
)

// EnvironmentScorer rates how well a property matches the preferred
// environment (mountain, lake, beach, city).
//
// Two signals contribute: a gazetteer hit on the property's location
// and keyword matches in the property's descriptive text. A gazetteer
// hit is the stronger evidence, so when present it carries 70% of the
// blend; otherwise the keyword signal does.
type EnvironmentScorer struct{}

// NewEnvironmentScorer returns an environment scorer.
func NewEnvironmentScorer() *EnvironmentScorer {
	return &EnvironmentScorer{}
}

// Name implements Scorer.
func (s *EnvironmentScorer) Name() string { return CriterionEnvironment }

// Score implements Scorer.
func (s *EnvironmentScorer) Score(property models.Property, criteria models.SearchCriteria) float64 {
	env := strings.ToLower(strings.TrimSpace(criteria.PreferredEnvironment))
	if !knownEnvironment(env) {
		return 0.5
	}

	locationSignal := 0.0
	if _, ok := environmentLocations[env][normalizeLocation(property.Location)]; ok {
		locationSignal = 1.0
	}

	featureSignal := environmentFeatureSignal(env, property.DescriptiveText())

	if locationSignal > 0 {
		return 0.7*locationSignal + 0.3*featureSignal
	}
	return 0.3*locationSignal + 0.7*featureSignal
}

// environmentFeatureSignal counts keyword hits for env in the
// property's descriptive text. One hit is already a decent signal;
// each further hit adds a little, capped at 1.0. No hits at all still
// leaves a weak base rather than zero, since keyword lists are far
// from exhaustive.
func environmentFeatureSignal(env, text string) float64 {
	matches := 0
	for _, keyword := range environmentKeywords[env] {
		if strings.Contains(text, keyword) {
			matches++
		}
	}
	if matches == 0 {
		return 0.3
	}
	signal := 0.6 + 0.1*float64(matches)
	if signal > 1.0 {
		signal = 1.0
	}
	return signal
}
