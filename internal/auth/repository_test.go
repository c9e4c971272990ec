// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/villarank/villarank/internal/models"
)

// newTestAccount builds a member account with the given id and email.
func newTestAccount(id, email string) *models.Account {
	now := time.Now().UTC()
	return &models.Account{
		ID:           id,
		Name:         "Test Guest",
		Email:        email,
		PasswordHash: "$2a$10$not.a.real.hash.but.shaped.like.one",
		Role:         models.RoleMember,
		GroupSize:    2,
		BudgetMin:    100,
		BudgetMax:    400,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// runRepositoryContract exercises the Repository behavior both
// implementations must share. open returns a fresh, empty repository
// per subtest.
func runRepositoryContract(t *testing.T, open func(t *testing.T) Repository) {
	t.Helper()
	ctx := context.Background()

	t.Run("create and find", func(t *testing.T) {
		t.Parallel()
		repo := open(t)

		want := newTestAccount("acct-1", "ana@example.com")
		if err := repo.Create(ctx, want); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		byEmail, err := repo.FindByEmail(ctx, "ana@example.com")
		if err != nil {
			t.Fatalf("FindByEmail() error = %v", err)
		}
		if byEmail.ID != want.ID {
			t.Errorf("FindByEmail() id = %v, want %v", byEmail.ID, want.ID)
		}
		if byEmail.PasswordHash != want.PasswordHash {
			t.Error("FindByEmail() did not preserve the password hash")
		}

		byID, err := repo.FindByID(ctx, "acct-1")
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if byID.Email != want.Email {
			t.Errorf("FindByID() email = %v, want %v", byID.Email, want.Email)
		}
		if !byID.CreatedAt.Equal(want.CreatedAt) {
			t.Errorf("FindByID() created_at = %v, want %v", byID.CreatedAt, want.CreatedAt)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		t.Parallel()
		repo := open(t)

		if err := repo.Create(ctx, newTestAccount("acct-1", "ana@example.com")); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		err := repo.Create(ctx, newTestAccount("acct-2", "ana@example.com"))
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("Create() error = %v, want ErrEmailExists", err)
		}

		// The losing account must not exist under its id either.
		if _, err := repo.FindByID(ctx, "acct-2"); !errors.Is(err, ErrAccountNotFound) {
			t.Errorf("FindByID() after rejected create error = %v, want ErrAccountNotFound", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()
		repo := open(t)

		_, err := repo.FindByEmail(ctx, "nobody@example.com")
		if !errors.Is(err, ErrAccountNotFound) {
			t.Errorf("FindByEmail() error = %v, want ErrAccountNotFound", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		repo := open(t)

		_, err := repo.FindByID(ctx, "acct-missing")
		if !errors.Is(err, ErrAccountNotFound) {
			t.Errorf("FindByID() error = %v, want ErrAccountNotFound", err)
		}
	})

	t.Run("update profile fields", func(t *testing.T) {
		t.Parallel()
		repo := open(t)

		account := newTestAccount("acct-1", "ana@example.com")
		if err := repo.Create(ctx, account); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		account.Name = "Ana Traveler"
		account.GroupSize = 6
		account.PreferredEnvironment = "beach"
		if err := repo.Update(ctx, account); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		got, err := repo.FindByID(ctx, "acct-1")
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if got.Name != "Ana Traveler" {
			t.Errorf("FindByID() name = %v, want %v", got.Name, "Ana Traveler")
		}
		if got.GroupSize != 6 {
			t.Errorf("FindByID() group_size = %v, want 6", got.GroupSize)
		}
		if got.PreferredEnvironment != "beach" {
			t.Errorf("FindByID() preferred_environment = %v, want beach", got.PreferredEnvironment)
		}
	})

	t.Run("update email rewrites lookup", func(t *testing.T) {
		t.Parallel()
		repo := open(t)

		account := newTestAccount("acct-1", "old@example.com")
		if err := repo.Create(ctx, account); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		account.Email = "new@example.com"
		if err := repo.Update(ctx, account); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		got, err := repo.FindByEmail(ctx, "new@example.com")
		if err != nil {
			t.Fatalf("FindByEmail(new) error = %v", err)
		}
		if got.ID != "acct-1" {
			t.Errorf("FindByEmail(new) id = %v, want acct-1", got.ID)
		}

		if _, err := repo.FindByEmail(ctx, "old@example.com"); !errors.Is(err, ErrAccountNotFound) {
			t.Errorf("FindByEmail(old) error = %v, want ErrAccountNotFound", err)
		}
	})

	t.Run("update email conflict", func(t *testing.T) {
		t.Parallel()
		repo := open(t)

		if err := repo.Create(ctx, newTestAccount("acct-1", "ana@example.com")); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		second := newTestAccount("acct-2", "ben@example.com")
		if err := repo.Create(ctx, second); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		second.Email = "ana@example.com"
		if err := repo.Update(ctx, second); !errors.Is(err, ErrEmailExists) {
			t.Errorf("Update() error = %v, want ErrEmailExists", err)
		}

		// Both original lookups must still work after the rejected update.
		if got, err := repo.FindByEmail(ctx, "ben@example.com"); err != nil || got.ID != "acct-2" {
			t.Errorf("FindByEmail(ben) = %v, %v, want acct-2", got, err)
		}
		if got, err := repo.FindByEmail(ctx, "ana@example.com"); err != nil || got.ID != "acct-1" {
			t.Errorf("FindByEmail(ana) = %v, %v, want acct-1", got, err)
		}
	})

	t.Run("update unknown account", func(t *testing.T) {
		t.Parallel()
		repo := open(t)

		err := repo.Update(ctx, newTestAccount("acct-ghost", "ghost@example.com"))
		if !errors.Is(err, ErrAccountNotFound) {
			t.Errorf("Update() error = %v, want ErrAccountNotFound", err)
		}
	})

	t.Run("count", func(t *testing.T) {
		t.Parallel()
		repo := open(t)

		for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
			got, err := repo.Count(ctx)
			if err != nil {
				t.Fatalf("Count() error = %v", err)
			}
			if got != i {
				t.Errorf("Count() = %v, want %v", got, i)
			}
			if err := repo.Create(ctx, newTestAccount("acct-"+email, email)); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
		}

		got, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if got != 3 {
			t.Errorf("Count() = %v, want 3", got)
		}
	})
}

// --- Test: contract over both implementations ---

func TestMemoryRepository_Contract(t *testing.T) {
	t.Parallel()
	runRepositoryContract(t, func(t *testing.T) Repository {
		t.Helper()
		return NewMemoryRepository()
	})
}

func TestBadgerRepository_Contract(t *testing.T) {
	t.Parallel()
	runRepositoryContract(t, func(t *testing.T) Repository {
		t.Helper()
		return openTestBadger(t)
	})
}
