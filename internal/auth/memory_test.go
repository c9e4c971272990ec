// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package auth

import (
	"context"
	"testing"
)

// --- Test: returned accounts are copies ---

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepository()

	account := newTestAccount("acct-1", "ana@example.com")
	if err := repo.Create(ctx, account); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Mutating what the caller passed in or got back must not leak
	// into the stored account.
	account.Name = "mutated after create"

	first, err := repo.FindByID(ctx, "acct-1")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if first.Name != "Test Guest" {
		t.Errorf("FindByID() name = %v, want the value at create time", first.Name)
	}

	first.GroupSize = 99

	second, err := repo.FindByID(ctx, "acct-1")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if second.GroupSize != 2 {
		t.Errorf("FindByID() group_size = %v, want 2", second.GroupSize)
	}
}
