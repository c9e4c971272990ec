// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package assistant

import (
	"strings"
	"testing"

	"github.com/villarank/villarank/internal/models"
)

func intPtr(v int) *int { return &v }

func digestFixtures() []models.Property {
	return []models.Property{
		{
			ID:            "villa-001",
			Location:      "Miami",
			PropertyType:  "villa",
			PricePerNight: 220,
			Bedrooms:      intPtr(2),
			Features:      []string{"pool", "wifi", "ocean_view", "bbq"},
			Tags:          []string{"beachfront", "family", "luxury", "quiet"},
		},
		{
			ID:            "cabin-002",
			Location:      "Aspen",
			PropertyType:  "cabin",
			PricePerNight: 340.5,
			Bedrooms:      intPtr(4),
			Features:      []string{"fireplace", "hot_tub"},
			Tags:          []string{"ski_in_out"},
		},
		{
			ID:            "loft-003",
			Location:      "New York",
			PropertyType:  "apartment",
			PricePerNight: 150,
		},
	}
}

// --- Test: catalogDigest ---

func TestCatalogDigest(t *testing.T) {
	t.Parallel()

	properties := digestFixtures()

	t.Run("caps at limit with overflow marker", func(t *testing.T) {
		t.Parallel()

		digest := catalogDigest(properties, 2)
		lines := strings.Split(digest, "\n")
		if len(lines) != 3 {
			t.Fatalf("catalogDigest() returned %d lines, want 3: %q", len(lines), digest)
		}
		if !strings.HasPrefix(lines[0], "ID: villa-001,") {
			t.Errorf("first line = %q, want villa-001 digest", lines[0])
		}
		if !strings.HasPrefix(lines[1], "ID: cabin-002,") {
			t.Errorf("second line = %q, want cabin-002 digest", lines[1])
		}
		if lines[2] != "... and 1 more properties" {
			t.Errorf("overflow line = %q", lines[2])
		}
	})

	t.Run("no marker when everything fits", func(t *testing.T) {
		t.Parallel()

		digest := catalogDigest(properties, 50)
		if strings.Contains(digest, "more properties") {
			t.Errorf("catalogDigest() = %q, want no overflow marker", digest)
		}
		if got := len(strings.Split(digest, "\n")); got != 3 {
			t.Errorf("catalogDigest() returned %d lines, want 3", got)
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		t.Parallel()

		if got := catalogDigest(nil, 50); got != "No properties available" {
			t.Errorf("catalogDigest(nil) = %q", got)
		}
	})
}

// --- Test: digestLine ---

func TestDigestLine(t *testing.T) {
	t.Parallel()

	properties := digestFixtures()

	first := digestLine(&properties[0])
	if !strings.Contains(first, "Price: $220/night") {
		t.Errorf("digestLine() = %q, want plain dollar price", first)
	}
	if !strings.Contains(first, "Bedrooms: 2") {
		t.Errorf("digestLine() = %q, want bedroom count", first)
	}
	// Only the first three features and tags make the digest.
	if !strings.Contains(first, "Features: pool, wifi, ocean_view") {
		t.Errorf("digestLine() = %q, want first three features", first)
	}
	if strings.Contains(first, "bbq") {
		t.Errorf("digestLine() = %q, want features trimmed to three", first)
	}
	if strings.Contains(first, "quiet") {
		t.Errorf("digestLine() = %q, want tags trimmed to three", first)
	}

	second := digestLine(&properties[1])
	if !strings.Contains(second, "Price: $340.5/night") {
		t.Errorf("digestLine() = %q, want fractional price preserved", second)
	}

	third := digestLine(&properties[2])
	if !strings.Contains(third, "Bedrooms: N/A") {
		t.Errorf("digestLine() = %q, want N/A for missing bedrooms", third)
	}
}

// --- Test: prompts carry the inputs ---

func TestPrompts(t *testing.T) {
	t.Parallel()

	system := systemPrompt(3, "ID: villa-001, Location: Miami")
	if !strings.Contains(system, "database of 3 available properties") {
		t.Error("systemPrompt() missing property count")
	}
	if !strings.Contains(system, "ID: villa-001, Location: Miami") {
		t.Error("systemPrompt() missing catalog digest")
	}
	if !strings.Contains(system, `"property_id"`) {
		t.Error("systemPrompt() missing response schema")
	}

	user := userPrompt("a quiet beach house for four")
	if !strings.Contains(user, "User request: a quiet beach house for four") {
		t.Error("userPrompt() missing the raw query")
	}
}
