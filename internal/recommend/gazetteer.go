// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package recommend

// Environment names accepted by the environment scorer.
const (
	EnvMountain = "mountain"
	EnvLake     = "lake"
	EnvBeach    = "beach"
	EnvCity     = "city"
)

// ValidEnvironments lists the recognized environment names in a stable
// order for validation messages and API docs.
var ValidEnvironments = []string{EnvMountain, EnvLake, EnvBeach, EnvCity}

// environmentKeywords maps each environment to feature keywords. A
// keyword matches when it appears as a substring of the property's
// descriptive text (location + type + features + tags, lowercased).
var environmentKeywords = map[string][]string{
	EnvMountain: {"mountain_view", "hiking", "ski_in_out", "chalet", "cabin", "mountain"},
	EnvLake:     {"lake_view", "lakeside", "kayaks", "lake", "waterfront"},
	EnvBeach:    {"ocean_view", "beachfront", "ocean", "beach", "coastal"},
	EnvCity:     {"apartment", "condo", "city_center", "urban", "downtown"},
}

// environmentLocations is a fixed gazetteer of destinations strongly
// associated with each environment. Matching is exact against the
// normalized property location — "banff" matches, "banff, canada"
// does not (the keyword signal still catches those).
var environmentLocations = map[string]map[string]struct{}{
	EnvMountain: stringSet(
		"banff", "aspen", "park city", "whistler", "boulder",
		"blue mountains", "chamonix", "zermatt", "st. moritz", "vail",
		"breckenridge", "telluride", "jackson hole", "sun valley",
		"big sky", "steamboat", "keystone",
	),
	EnvLake: stringSet(
		"lake tahoe", "lake como", "lake geneva", "lake louise",
		"lake placid", "lake george", "lake winnipesaukee",
		"lake michigan", "lake superior", "lake huron", "lake erie",
		"lake ontario",
	),
	EnvBeach: stringSet(
		"miami", "san diego", "bali", "cancun", "amalfi", "cape town",
		"maui", "kauai", "oahu", "big island", "tahiti", "bora bora",
		"fiji", "maldives", "santorini", "mykonos", "ibiza", "malibu",
		"santa barbara", "daytona beach", "virginia beach",
		"outer banks", "key west", "panama city beach",
	),
	EnvCity: stringSet(
		"new york", "london", "tokyo", "paris", "berlin", "barcelona",
		"rome", "amsterdam", "prague", "budapest", "vienna",
		"stockholm", "copenhagen", "oslo", "helsinki", "dublin",
		"edinburgh", "glasgow", "manchester", "boston", "chicago",
		"los angeles", "san francisco", "seattle", "denver", "atlanta",
		"houston", "dallas", "phoenix", "las vegas", "orlando",
	),
}

// locationAliases maps common short names to the canonical form used
// in catalog data. Pairs match in either direction, including when the
// expansion appears as a substring ("nyc" matches "new york city").
var locationAliases = map[string]string{
	"nyc":         "new york",
	"la":          "los angeles",
	"sf":          "san francisco",
	"miami beach": "miami",
	"lake tahoe":  "tahoe",
}

// stringSet builds a membership set from its arguments.
func stringSet(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// knownEnvironment reports whether name is a recognized environment.
func knownEnvironment(name string) bool {
	_, ok := environmentKeywords[name]
	return ok
}
