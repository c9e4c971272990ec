// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

// Package analytics maintains a DuckDB mirror of the property catalog
// for SQL reporting.
//
// The mirror is an analytical view, not a source of truth: every
// catalog load rebuilds it wholesale via Reload, and the ranking path
// never reads from it. Queries back the read-only reporting endpoints
// (price distribution, location coverage, property-type counts).
package analytics
