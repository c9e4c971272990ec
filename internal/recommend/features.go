// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package recommend

import (
	"strings"

	"github.com/villarank/villarank/internal/models"
)

// FeaturesScorer rates a property against free-form preference text
// such as "hot tub and fireplace near skiing".
//
// The text is split on whitespace into a set of distinct tokens, each
// checked as a substring of the property's searchable text (type +
// features + tags). Coverage of the distinct tokens drives the score:
// matching none scores the 0.5 base, matching all of them scores 1.0.
type FeaturesScorer struct{}

// NewFeaturesScorer returns a features scorer.
func NewFeaturesScorer() *FeaturesScorer {
	return &FeaturesScorer{}
}

// Name implements Scorer.
func (s *FeaturesScorer) Name() string { return CriterionFeatures }

// Score implements Scorer.
func (s *FeaturesScorer) Score(property models.Property, criteria models.SearchCriteria) float64 {
	tokens := make(map[string]struct{})
	for _, token := range strings.Fields(strings.ToLower(criteria.PreferenceText)) {
		tokens[token] = struct{}{}
	}
	if len(tokens) == 0 {
		return 0.5
	}

	haystack := property.SearchText()
	matches := 0
	for token := range tokens {
		if strings.Contains(haystack, token) {
			matches++
		}
	}

	score := 0.5 + 0.5*float64(matches)/float64(len(tokens))
	if score > 1.0 {
		score = 1.0
	}
	return score
}
