// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

// Package assistant calls an external chat-completions service to turn
// a free-form request into a single property recommendation.
//
// The integration is strictly fail-closed: any error — the feature
// disabled, the rate budget exhausted, the circuit open, an upstream
// failure, a reply that is not the expected JSON object, or a reply
// referencing a property that is not in the catalog — resolves to
// ErrUnavailable and no recommendation. The ranking pipeline never
// depends on this package.
//
// Resilience around the upstream: a token-bucket rate limiter in front
// of a circuit breaker. The breaker counts transport and HTTP-status
// failures; a well-formed HTTP reply whose content cannot be parsed is
// a model-quality problem, not an availability signal, and does not
// trip it.
package assistant
