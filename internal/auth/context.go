// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package auth

import "context"

type contextKey string

const claimsContextKey contextKey = "claims"

// ContextWithClaims returns a context carrying validated token claims.
// The API middleware stores claims here after token validation.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// GetClaims retrieves the Claims from the request context. Returns nil
// when the request was not authenticated.
func GetClaims(ctx context.Context) *Claims {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}
