// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package api

import (
	"net/http"
	"strings"

	"github.com/villarank/villarank/internal/auth"
	"github.com/villarank/villarank/internal/logging"
)

// AuthMiddleware validates bearer tokens and installs the resulting
// claims in the request context for handlers and the authorization
// middleware downstream.
type AuthMiddleware struct {
	tokens *auth.TokenManager
}

// NewAuthMiddleware creates the authentication middleware.
func NewAuthMiddleware(tokens *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate rejects requests without a valid bearer token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, codeAuthentication, "authentication required", nil)
			return
		}

		claims, err := m.tokens.Validate(token)
		if err != nil {
			logging.Debug().Err(err).Msg("token validation failed")
			respondError(w, http.StatusUnauthorized, codeAuthentication, "invalid or expired token", nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.ContextWithClaims(r.Context(), claims)))
	})
}

// bearerToken extracts the token from the Authorization header, or
// from the access_token query parameter as a fallback for websocket
// clients that cannot set headers.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.URL.Query().Get("access_token")
}
