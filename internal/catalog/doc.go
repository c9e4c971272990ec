// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

// Package catalog loads and holds the property catalog.
//
// The catalog is a JSON array of property records read from disk at
// startup and on explicit reload. Records missing a required field
// (id, location, property type, price, features, tags) or carrying a
// negative price are skipped with a warning and counted; one bad
// record never aborts an ingest. A zero price is accepted.
//
// Store keeps the catalog as an immutable snapshot: a property slice
// in file order plus the coordinate index built from it. Replace swaps
// the whole snapshot under a write lock, so readers always see a
// consistent pairing of properties and index. File order is preserved
// end to end because ranking breaks ties by catalog position.
package catalog
