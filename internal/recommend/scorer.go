// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package recommend

import "github.com/villarank/villarank/internal/models"

// Criterion names. These appear as keys in detailed score breakdowns
// and must stay stable across releases: clients key off them.
const (
	CriterionLocation    = "location"
	CriterionBudget      = "budget"
	CriterionFeatures    = "features"
	CriterionGroupSize   = "group_size"
	CriterionEnvironment = "environment"
)

// Scorer rates one property against one criterion of the search.
//
// Score returns a value in [0, 1]. Implementations must be pure with
// respect to their inputs and safe for concurrent use: the engine
// calls Score from multiple workers against shared scorer instances.
type Scorer interface {
	// Name returns the criterion name, one of the Criterion constants.
	Name() string

	// Score rates the property for this criterion. A missing or
	// unparseable input on either side scores neutral rather than
	// zero, so absent data never disqualifies a property outright.
	Score(property models.Property, criteria models.SearchCriteria) float64
}
