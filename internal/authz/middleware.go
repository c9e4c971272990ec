// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package authz

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/villarank/villarank/internal/auth"
	"github.com/villarank/villarank/internal/models"
)

// Middleware enforces the policy for authenticated requests.
type Middleware struct {
	enforcer *Enforcer
	logger   zerolog.Logger
}

// NewMiddleware creates authorization middleware around an enforcer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMiddleware(enforcer *Enforcer, logger zerolog.Logger) *Middleware {
	return &Middleware{
		enforcer: enforcer,
		logger:   logger.With().Str("component", "authz").Logger(),
	}
}

// Require checks the request path and method against the policy using
// the role carried by the authenticated claims. It must run after the
// authentication middleware.
func (m *Middleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetClaims(r.Context())
		if claims == nil {
			m.deny(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "authentication required")
			return
		}

		allowed, err := m.enforcer.Allow(claims.Role, r.URL.Path, r.Method)
		if err != nil {
			m.logger.Error().
				Err(err).
				Str("path", r.URL.Path).
				Str("method", r.Method).
				Msg("authorization check failed")
			m.deny(w, http.StatusInternalServerError, "INTERNAL_ERROR", "authorization check failed")
			return
		}
		if !allowed {
			m.logger.Warn().
				Str("role", claims.Role).
				Str("path", r.URL.Path).
				Str("method", r.Method).
				Msg("request denied by policy")
			m.deny(w, http.StatusForbidden, "AUTHORIZATION_ERROR", "insufficient permissions")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// deny writes the standard error envelope without pulling in the API
// package.
func (m *Middleware) deny(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    &models.APIError{Code: code, Message: message},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		m.logger.Error().Err(err).Msg("failed to write authorization response")
	}
}
