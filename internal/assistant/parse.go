// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package assistant

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// requiredFields must all be present in the reply object. A reply
// missing any of them yields no recommendation.
var requiredFields = []string{
	"property_id",
	"location",
	"property_type",
	"price_per_night",
	"bedrooms",
	"features",
	"tags",
	"reasoning",
}

// extractRecommendation pulls the JSON object out of the model's reply
// text. Models wrap answers in prose despite instructions, so the
// parser takes everything between the first '{' and the last '}'.
func extractRecommendation(content string) (*Recommendation, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("reply contains no JSON object")
	}
	raw := []byte(content[start : end+1])

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("reply is not valid JSON: %w", err)
	}
	for _, field := range requiredFields {
		if _, ok := fields[field]; !ok {
			return nil, fmt.Errorf("reply is missing required field %q", field)
		}
	}

	var recommendation Recommendation
	if err := json.Unmarshal(raw, &recommendation); err != nil {
		return nil, fmt.Errorf("reply fields have wrong types: %w", err)
	}
	if recommendation.PropertyID == "" {
		return nil, fmt.Errorf("reply has empty property_id")
	}
	return &recommendation, nil
}
