// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package models

import (
	"time"
)

// Account roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Account is a registered user. PasswordHash is a bcrypt hash and is
// never serialized into API responses.
//
// The preference fields (GroupSize, PreferredEnvironment, BudgetMin,
// BudgetMax) seed search criteria when the corresponding request
// fields are omitted.
type Account struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	PasswordHash         string    `json:"-"`
	Role                 string    `json:"role"`
	GroupSize            int       `json:"group_size,omitempty"`
	PreferredEnvironment string    `json:"preferred_environment,omitempty"`
	BudgetMin            float64   `json:"budget_min,omitempty"`
	BudgetMax            float64   `json:"budget_max,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Sanitized returns a copy safe for API responses. The struct already
// omits the password hash via its JSON tag; this exists so handlers
// never round-trip the stored struct by accident.
func (a *Account) Sanitized() Account {
	clean := *a
	clean.PasswordHash = ""
	return clean
}

// IsAdmin reports whether the account holds the admin role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
