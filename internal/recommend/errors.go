// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package recommend

import (
	"errors"
	"fmt"
)

// ErrInvalidCriteria is returned synchronously by Rank and RankDetailed
// when the search criteria are unusable. Match with errors.Is.
var ErrInvalidCriteria = errors.New("invalid search criteria")

// InvalidCriteriaError carries the offending field alongside
// ErrInvalidCriteria.
type InvalidCriteriaError struct {
	Field  string
	Reason string
}

func (e *InvalidCriteriaError) Error() string {
	return fmt.Sprintf("invalid search criteria: %s: %s", e.Field, e.Reason)
}

func (e *InvalidCriteriaError) Unwrap() error {
	return ErrInvalidCriteria
}
