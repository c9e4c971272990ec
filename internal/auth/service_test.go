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

	"github.com/rs/zerolog"

	"github.com/villarank/villarank/internal/config"
	"github.com/villarank/villarank/internal/models"
)

// validTestPassword satisfies the default password policy.
const validTestPassword = "Tr0pical!Villa"

func newTestService(t *testing.T) *Service {
	t.Helper()

	tokens, err := NewTokenManager(&config.SecurityConfig{
		JWTSecret:      "service_test_secret_key_that_is_long_enough_12345",
		SessionTimeout: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}
	return NewService(NewMemoryRepository(), tokens, config.DefaultPasswordPolicy(), zerolog.Nop())
}

func registerInput(email string) RegisterInput {
	return RegisterInput{
		Name:                 "Ana",
		Email:                email,
		Password:             validTestPassword,
		GroupSize:            4,
		PreferredEnvironment: "Beach",
		BudgetMin:            100,
		BudgetMax:            400,
	}
}

// --- Test: Register ---

func TestService_Register_FirstAccountIsAdmin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t)

	first, err := svc.Register(ctx, registerInput("  Ana@Example.COM  "))
	if err != nil {
		t.Fatalf("Register() first error = %v", err)
	}
	if first.Role != models.RoleAdmin {
		t.Errorf("Register() first role = %v, want %v", first.Role, models.RoleAdmin)
	}
	if first.Email != "ana@example.com" {
		t.Errorf("Register() email = %v, want normalized ana@example.com", first.Email)
	}
	if first.PreferredEnvironment != "beach" {
		t.Errorf("Register() preferred_environment = %v, want beach", first.PreferredEnvironment)
	}
	if first.ID == "" {
		t.Error("Register() returned empty account id")
	}
	if first.PasswordHash == "" || first.PasswordHash == validTestPassword {
		t.Error("Register() must store a hash, not the raw password")
	}

	second, err := svc.Register(ctx, registerInput("ben@example.com"))
	if err != nil {
		t.Fatalf("Register() second error = %v", err)
	}
	if second.Role != models.RoleMember {
		t.Errorf("Register() second role = %v, want %v", second.Role, models.RoleMember)
	}
}

func TestService_Register_WeakPassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name     string
		password string
	}{
		{
			name:     "too short",
			password: "Ab1!",
		},
		{
			name:     "no uppercase",
			password: "alllowercase123!",
		},
		{
			name:     "no digit or special",
			password: "JustLettersHere",
		},
		{
			name:     "common password",
			password: "Password1!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(t)
			in := registerInput("ana@example.com")
			in.Password = tt.password

			_, err := svc.Register(ctx, in)
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("Register() error = %v, want wrapped ErrWeakPassword", err)
			}

			var weak *WeakPasswordError
			if !errors.As(err, &weak) {
				t.Fatalf("Register() error = %T, want *WeakPasswordError", err)
			}
			if len(weak.Issues) == 0 {
				t.Error("WeakPasswordError carries no issues")
			}
		})
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.Register(ctx, registerInput("ana@example.com")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Same address in different casing is still the same account.
	_, err := svc.Register(ctx, registerInput("ANA@example.com"))
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("Register() error = %v, want ErrEmailExists", err)
	}
}

// --- Test: Login ---

func TestService_Login(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t)

	registered, err := svc.Register(ctx, registerInput("ana@example.com"))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	account, token, expiresAt, err := svc.Login(ctx, "Ana@Example.com", validTestPassword)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if account.ID != registered.ID {
		t.Errorf("Login() account id = %v, want %v", account.ID, registered.ID)
	}
	if token == "" {
		t.Fatal("Login() returned empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("Login() expiresAt = %v, want a future time", expiresAt)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Subject != registered.ID {
		t.Errorf("ValidateToken() subject = %v, want %v", claims.Subject, registered.ID)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("ValidateToken() role = %v, want %v", claims.Role, models.RoleAdmin)
	}
}

func TestService_Login_BadCredentials(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.Register(ctx, registerInput("ana@example.com")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Wrong password and unknown email must be indistinguishable.
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{
			name:     "wrong password",
			email:    "ana@example.com",
			password: "Wr0ng!Password",
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: validTestPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, _, err := svc.Login(ctx, tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

// --- Test: UpdateProfile ---

func TestService_UpdateProfile_PartialMerge(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t)

	account, err := svc.Register(ctx, registerInput("ana@example.com"))
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	groupSize := 6
	updated, err := svc.UpdateProfile(ctx, account.ID, ProfileUpdate{GroupSize: &groupSize})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	if updated.GroupSize != 6 {
		t.Errorf("UpdateProfile() group_size = %v, want 6", updated.GroupSize)
	}
	if updated.Name != account.Name {
		t.Errorf("UpdateProfile() name = %v, want unchanged %v", updated.Name, account.Name)
	}
	if updated.PreferredEnvironment != account.PreferredEnvironment {
		t.Errorf("UpdateProfile() preferred_environment = %v, want unchanged %v",
			updated.PreferredEnvironment, account.PreferredEnvironment)
	}
	if updated.BudgetMin != account.BudgetMin || updated.BudgetMax != account.BudgetMax {
		t.Errorf("UpdateProfile() budget = [%v, %v], want unchanged [%v, %v]",
			updated.BudgetMin, updated.BudgetMax, account.BudgetMin, account.BudgetMax)
	}
	if updated.UpdatedAt.Before(account.UpdatedAt) {
		t.Errorf("UpdateProfile() updated_at = %v, want >= %v", updated.UpdatedAt, account.UpdatedAt)
	}

	// The merge must be persisted, not just returned.
	stored, err := svc.GetAccount(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetAccount() error = %v", err)
	}
	if stored.GroupSize != 6 {
		t.Errorf("GetAccount() group_size = %v, want 6", stored.GroupSize)
	}
}

func TestService_UpdateProfile_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	floatPtr := func(v float64) *float64 { return &v }
	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name    string
		update  ProfileUpdate
		wantErr bool
	}{
		{
			name:    "min above max",
			update:  ProfileUpdate{BudgetMin: floatPtr(500), BudgetMax: floatPtr(300)},
			wantErr: true,
		},
		{
			name:    "negative budget",
			update:  ProfileUpdate{BudgetMin: floatPtr(-5)},
			wantErr: true,
		},
		{
			name:    "negative group size",
			update:  ProfileUpdate{GroupSize: intPtr(-2)},
			wantErr: true,
		},
		{
			name:    "min without max",
			update:  ProfileUpdate{BudgetMin: floatPtr(500), BudgetMax: floatPtr(0)},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestService(t)
			account, err := svc.Register(ctx, registerInput("ana@example.com"))
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}

			_, err = svc.UpdateProfile(ctx, account.ID, tt.update)
			if tt.wantErr && err == nil {
				t.Error("UpdateProfile() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("UpdateProfile() unexpected error = %v", err)
			}
		})
	}
}

func TestService_UpdateProfile_UnknownAccount(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	name := "Ghost"
	_, err := svc.UpdateProfile(context.Background(), "acct-missing", ProfileUpdate{Name: &name})
	if !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("UpdateProfile() error = %v, want ErrAccountNotFound", err)
	}
}

// --- Test: NormalizeEmail ---

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
		want  string
	}{
		{
			name:  "already normal",
			email: "ana@example.com",
			want:  "ana@example.com",
		},
		{
			name:  "mixed case and padding",
			email: "  Ana@Example.COM  ",
			want:  "ana@example.com",
		},
		{
			name:  "empty",
			email: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeEmail(tt.email); got != tt.want {
				t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.email, got, tt.want)
			}
		})
	}
}
