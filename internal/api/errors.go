// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package api

// API error codes used in APIError.Code. Clients switch on these, so
// they are part of the wire contract and never change meaning.
const (
	codeValidation           = "VALIDATION_ERROR"
	codeAuthentication       = "AUTHENTICATION_ERROR"
	codeAuthorization        = "AUTHORIZATION_ERROR"
	codeNotFound             = "NOT_FOUND"
	codeConflict             = "CONFLICT"
	codeWeakPassword         = "WEAK_PASSWORD"
	codeAssistantUnavailable = "ASSISTANT_UNAVAILABLE"
	codeCatalogUnavailable   = "CATALOG_UNAVAILABLE"
	codeInternal             = "INTERNAL_ERROR"
)
