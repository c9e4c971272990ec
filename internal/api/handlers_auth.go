// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/villarank/villarank/internal/auth"
)

// loginResponse is the login payload: the account plus its session
// token and expiry.
type loginResponse struct {
	Account   interface{} `json:"account"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Register creates a new account.
//
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account details"
// @Success 201 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 409 {object} models.APIResponse
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	account, err := h.accounts.Register(r.Context(), auth.RegisterInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		GroupSize:            req.GroupSize,
		PreferredEnvironment: req.PreferredEnvironment,
		BudgetMin:            req.BudgetMin,
		BudgetMax:            req.BudgetMax,
	})
	if err != nil {
		var weak *auth.WeakPasswordError
		switch {
		case errors.As(err, &weak):
			respondError(w, http.StatusBadRequest, codeWeakPassword, weak.Error(), nil)
		case errors.Is(err, auth.ErrEmailExists):
			respondError(w, http.StatusConflict, codeConflict, "an account with this email already exists", nil)
		default:
			respondError(w, http.StatusInternalServerError, codeInternal, "failed to create account", err)
		}
		return
	}

	respondSuccess(w, http.StatusCreated, account.Sanitized(), 0)
}

// Login authenticates an account and issues a session token.
//
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} models.APIResponse
// @Failure 401 {object} models.APIResponse
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	account, token, expiresAt, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// One message for unknown email and wrong password; the
			// split would hand enumeration to attackers.
			respondError(w, http.StatusUnauthorized, codeAuthentication, "invalid email or password", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternal, "login failed", err)
		return
	}

	respondSuccess(w, http.StatusOK, loginResponse{
		Account:   account.Sanitized(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, 0)
}

// Profile returns the authenticated account.
//
// @Summary Get the current account
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure 401 {object} models.APIResponse
// @Router /api/v1/profile [get]
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetClaims(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, codeAuthentication, "authentication required", nil)
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, auth.ErrAccountNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "account not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to load account", err)
		return
	}

	respondSuccess(w, http.StatusOK, account.Sanitized(), 0)
}

// ProfileUpdate applies a partial update to the caller's preference
// fields.
//
// @Summary Update profile preferences
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProfileUpdateRequest true "Fields to update"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Router /api/v1/profile [put]
func (h *Handler) ProfileUpdate(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetClaims(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, codeAuthentication, "authentication required", nil)
		return
	}

	var req ProfileUpdateRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	account, err := h.accounts.UpdateProfile(r.Context(), claims.Subject, auth.ProfileUpdate{
		Name:                 req.Name,
		GroupSize:            req.GroupSize,
		PreferredEnvironment: req.PreferredEnvironment,
		BudgetMin:            req.BudgetMin,
		BudgetMax:            req.BudgetMax,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrAccountNotFound):
			respondError(w, http.StatusNotFound, codeNotFound, "account not found", nil)
		case errors.Is(err, auth.ErrInvalidProfile):
			respondError(w, http.StatusBadRequest, codeValidation, err.Error(), nil)
		default:
			respondError(w, http.StatusInternalServerError, codeInternal, "failed to update profile", err)
		}
		return
	}

	respondSuccess(w, http.StatusOK, account.Sanitized(), 0)
}
