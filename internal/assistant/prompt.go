// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package assistant

import (
	"fmt"
	"strings"

	"github.com/villarank/villarank/internal/models"
)

// systemPrompt frames the task and embeds the catalog digest. The
// required JSON shape is spelled out verbatim; parsing depends on the
// model honoring it.
func systemPrompt(total int, digest string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are a helpful travel advisor specializing in vacation rental recommendations.
You have access to a database of %d available properties.

Based on the user's description, you need to recommend ONE specific property from the available database that best matches their preferences.

You must return a JSON response with the following structure:
{
    "property_id": "ID of the recommended property",
    "location": "City/Location of the property",
    "property_type": "Type of property (house, apartment, villa, etc.)",
    "price_per_night": number,
    "bedrooms": number,
    "features": ["feature1", "feature2", "feature3"],
    "tags": ["tag1", "tag2", "tag3"],
    "reasoning": "Detailed explanation of why this specific property is perfect for the user"
}

Available properties summary:
%s

Important rules:
1. Choose ONE specific property from the available database
2. Match the property_id exactly as shown in the summary
3. Use the actual price_per_night from the property
4. Use the actual features and tags from the property
5. Provide specific reasoning based on the property's actual attributes
6. Return ONLY valid JSON, no additional text`, total, digest)

	return b.String()
}

// userPrompt wraps the raw request with matching guidance.
func userPrompt(query string) string {
	return fmt.Sprintf(`User request: %s

Please analyze this request and recommend the single best property from the available database. Consider:
- Group size and composition (match with bedrooms)
- Location preferences
- Budget constraints (match with price_per_night)
- Feature preferences (match with actual property features)
- Property type preferences

Return only the JSON response.`, query)
}

// catalogDigest renders one line per property, capped at limit entries
// to keep the prompt inside the context budget.
func catalogDigest(properties []models.Property, limit int) string {
	if len(properties) == 0 {
		return "No properties available"
	}
	if limit <= 0 || limit > len(properties) {
		limit = len(properties)
	}

	lines := make([]string, 0, limit+1)
	for i := range properties[:limit] {
		lines = append(lines, digestLine(&properties[i]))
	}
	if len(properties) > limit {
		lines = append(lines, fmt.Sprintf("... and %d more properties", len(properties)-limit))
	}
	return strings.Join(lines, "\n")
}

// digestLine summarizes one property, trimming features and tags to
// the first three of each.
func digestLine(p *models.Property) string {
	bedrooms := "N/A"
	if p.Bedrooms != nil {
		bedrooms = fmt.Sprintf("%d", *p.Bedrooms)
	}
	return fmt.Sprintf("ID: %s, Location: %s, Type: %s, Price: $%g/night, Bedrooms: %s, Features: %s, Tags: %s",
		p.ID, p.Location, p.PropertyType, p.PricePerNight, bedrooms,
		strings.Join(firstN(p.Features, 3), ", "),
		strings.Join(firstN(p.Tags, 3), ", "))
}

func firstN(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
