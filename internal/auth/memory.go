// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package auth

import (
	"context"
	"sync"

	"github.com/villarank/villarank/internal/models"
)

// MemoryRepository implements Repository in process memory. Used in
// tests and in ephemeral deployments where account durability is not
// wanted.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]models.Account // id -> account
	emails   map[string]string         // email -> id
}

// NewMemoryRepository creates an empty in-memory account repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		accounts: make(map[string]models.Account),
		emails:   make(map[string]string),
	}
}

// Create implements Repository.
func (r *MemoryRepository) Create(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.emails[account.Email]; taken {
		return ErrEmailExists
	}
	r.accounts[account.ID] = *account
	r.emails[account.Email] = account.ID
	return nil
}

// FindByEmail implements Repository.
func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emails[email]
	if !ok {
		return nil, ErrAccountNotFound
	}
	account := r.accounts[id]
	return &account, nil
}

// FindByID implements Repository.
func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &account, nil
}

// Update implements Repository.
func (r *MemoryRepository) Update(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.accounts[account.ID]
	if !ok {
		return ErrAccountNotFound
	}

	if current.Email != account.Email {
		if _, taken := r.emails[account.Email]; taken {
			return ErrEmailExists
		}
		delete(r.emails, current.Email)
		r.emails[account.Email] = account.ID
	}

	r.accounts[account.ID] = *account
	return nil
}

// Count implements Repository.
func (r *MemoryRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts), nil
}
