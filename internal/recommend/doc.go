// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

/*
Package recommend implements the weighted multi-criteria ranking engine.

The engine scores every catalog property against the user's search
criteria along five independent criteria, combines the scores with a
weight profile, and returns the top-k properties in descending order
of overall score.

# Criteria

Each criterion is a Scorer: a pure function from (property, criteria)
to a score in [0, 1]. The five built-in scorers are:

  - location: geographic proximity when coordinates resolve through the
    catalog-derived CoordinateIndex, otherwise name similarity
  - budget: fit of the nightly price within the requested range, with a
    graded penalty up to 50% over budget
  - features: overlap between free-text preferences and the property's
    type, features, and tags
  - group_size: sleeping capacity (bedrooms × 2) against the party size
  - environment: gazetteer and keyword evidence that the property
    matches the preferred setting (mountain, lake, beach, city)

Missing inputs score neutrally rather than zero: a property without a
bedroom count gets 0.5 on group_size, a search without preference text
gets 0.5 on features, and so on. Absence of evidence is not evidence
of a mismatch.

# Weights

The weight profile is a pure function of whether the search names a
desired location (see WeightsFor). Both profiles sum to exactly 1.0,
so the overall score stays in [0, 1].

# Ordering

Sorting is stable and descending: properties with equal overall scores
keep their catalog order. Top-k truncation happens after the sort.

# Concurrency

Properties are scored on a bounded worker pool; results are written by
index so the pre-sort order never depends on goroutine scheduling.
Cancellation is checked between records, and a canceled context
returns ctx.Err() without partial results.

This package depends only on internal/models so it can be embedded
anywhere (the HTTP API, the assistant prompt builder, tests) without
dragging infrastructure along.

Richer signals — feature vectors, learned embeddings — slot in as
additional Scorer implementations; the engine itself never needs to
change.
*/
package recommend
