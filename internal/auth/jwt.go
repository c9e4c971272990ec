// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/villarank/villarank/internal/config"
	"github.com/villarank/villarank/internal/metrics"
	"github.com/villarank/villarank/internal/models"
)

// Claims are the JWT claims issued at login. The registered subject
// claim carries the account id.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates session tokens.
//
// Tokens use HMAC-SHA256 and are stateless: they cannot be revoked
// before expiry, which the configured session timeout bounds.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager from the security config.
func NewTokenManager(cfg *config.SecurityConfig) (*TokenManager, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but was empty")
	}

	return &TokenManager{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.SessionTimeout,
	}, nil
}

// Generate signs a token for the account and returns it with its
// expiry time.
func (m *TokenManager) Generate(account *models.Account) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)

	claims := &Claims{
		Email: account.Email,
		Role:  account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Validate checks a token's signature, algorithm, and time claims and
// returns its claims. The signing method check rejects algorithm
// confusion: only HMAC tokens are accepted.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			metrics.RecordTokenValidation("expired")
		} else {
			metrics.RecordTokenValidation("invalid")
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		metrics.RecordTokenValidation("invalid")
		return nil, fmt.Errorf("invalid token claims")
	}

	metrics.RecordTokenValidation("valid")
	return claims, nil
}
