// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package auth

import (
	"context"
	"errors"

	"github.com/villarank/villarank/internal/models"
)

// Storage errors.
var (
	// ErrAccountNotFound is returned when no account matches the query.
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmailExists is returned by Create when the email is taken.
	ErrEmailExists = errors.New("email already registered")
)

// Repository stores accounts. Implementations must treat emails as
// unique keys; callers normalize emails to lowercase before any call.
type Repository interface {
	// Create stores a new account. Returns ErrEmailExists if the
	// email is already registered.
	Create(ctx context.Context, account *models.Account) error

	// FindByEmail returns the account registered under email, or
	// ErrAccountNotFound.
	FindByEmail(ctx context.Context, email string) (*models.Account, error)

	// FindByID returns the account with the given id, or
	// ErrAccountNotFound.
	FindByID(ctx context.Context, id string) (*models.Account, error)

	// Update overwrites an existing account. Returns
	// ErrAccountNotFound if the id is unknown and ErrEmailExists if
	// the email was changed to one another account holds.
	Update(ctx context.Context, account *models.Account) error

	// Count returns the number of stored accounts.
	Count(ctx context.Context) (int, error)
}
