// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/villarank/villarank/internal/config"
	"github.com/villarank/villarank/internal/metrics"
	"github.com/villarank/villarank/internal/models"
)

// Service errors.
var (
	// ErrInvalidCredentials is returned on login when the email is
	// unknown or the password does not match. Callers must not
	// distinguish the two cases.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWeakPassword is returned on registration when the password
	// fails policy.
	ErrWeakPassword = errors.New("password does not meet policy")

	// ErrInvalidProfile is returned when a profile update produces an
	// impossible preference combination.
	ErrInvalidProfile = errors.New("invalid profile")
)

// WeakPasswordError carries the individual policy violations.
type WeakPasswordError struct {
	Issues []string
}

func (e *WeakPasswordError) Error() string {
	return fmt.Sprintf("password does not meet policy: %s", strings.Join(e.Issues, "; "))
}

func (e *WeakPasswordError) Unwrap() error { return ErrWeakPassword }

// RegisterInput is what a new account is created from.
type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	GroupSize            int
	PreferredEnvironment string
	BudgetMin            float64
	BudgetMax            float64
}

// ProfileUpdate is a partial update of the searchable profile fields.
// Nil fields keep their current values.
type ProfileUpdate struct {
	Name                 *string
	GroupSize            *int
	PreferredEnvironment *string
	BudgetMin            *float64
	BudgetMax            *float64
}

// Service implements registration, login, and profile management.
type Service struct {
	repo   Repository
	tokens *TokenManager
	policy config.PasswordPolicy
	logger zerolog.Logger
}

// NewService wires an account service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(repo Repository, tokens *TokenManager, policy config.PasswordPolicy, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		policy: policy,
		logger: logger.With().Str("component", "auth").Logger(),
	}
}

// Register creates a new account. The first account ever created gets
// the admin role; everyone after is a member.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Account, error) {
	email := NormalizeEmail(in.Email)

	if result := s.policy.Validate(in.Password, email); !result.Valid {
		metrics.RecordAuthOperation("register", false)
		return nil, &WeakPasswordError{Issues: result.Errors}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		metrics.RecordAuthOperation("register", false)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := models.RoleMember
	count, err := s.repo.Count(ctx)
	if err != nil {
		metrics.RecordAuthOperation("register", false)
		return nil, fmt.Errorf("count accounts: %w", err)
	}
	if count == 0 {
		role = models.RoleAdmin
	}

	now := time.Now().UTC()
	account := &models.Account{
		ID:                   uuid.NewString(),
		Name:                 strings.TrimSpace(in.Name),
		Email:                email,
		PasswordHash:         string(hash),
		Role:                 role,
		GroupSize:            in.GroupSize,
		PreferredEnvironment: strings.ToLower(strings.TrimSpace(in.PreferredEnvironment)),
		BudgetMin:            in.BudgetMin,
		BudgetMax:            in.BudgetMax,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		metrics.RecordAuthOperation("register", false)
		return nil, err
	}

	metrics.RecordAuthOperation("register", true)
	s.logger.Info().
		Str("account_id", account.ID).
		Str("role", account.Role).
		Msg("account registered")

	return account, nil
}

// Login verifies credentials and issues a session token. Unknown
// emails and wrong passwords both come back as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Account, string, time.Time, error) {
	account, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			metrics.RecordAuthOperation("login", false)
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		metrics.RecordAuthOperation("login", false)
		return nil, "", time.Time{}, fmt.Errorf("find account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		metrics.RecordAuthOperation("login", false)
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Generate(account)
	if err != nil {
		metrics.RecordAuthOperation("login", false)
		return nil, "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}

	metrics.RecordAuthOperation("login", true)
	s.logger.Info().
		Str("account_id", account.ID).
		Msg("login succeeded")

	return account, token, expiresAt, nil
}

// GetAccount returns the account with the given id.
func (s *Service) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile applies a partial profile update and returns the
// updated account.
func (s *Service) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*models.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		account.Name = strings.TrimSpace(*update.Name)
	}
	if update.GroupSize != nil {
		account.GroupSize = *update.GroupSize
	}
	if update.PreferredEnvironment != nil {
		account.PreferredEnvironment = strings.ToLower(strings.TrimSpace(*update.PreferredEnvironment))
	}
	if update.BudgetMin != nil {
		account.BudgetMin = *update.BudgetMin
	}
	if update.BudgetMax != nil {
		account.BudgetMax = *update.BudgetMax
	}

	if account.BudgetMin < 0 || account.BudgetMax < 0 {
		return nil, fmt.Errorf("%w: budget values must be non-negative", ErrInvalidProfile)
	}
	if account.BudgetMax > 0 && account.BudgetMin > account.BudgetMax {
		return nil, fmt.Errorf("%w: budget minimum %.2f exceeds maximum %.2f", ErrInvalidProfile, account.BudgetMin, account.BudgetMax)
	}
	if account.GroupSize < 0 {
		return nil, fmt.Errorf("%w: group size must be non-negative", ErrInvalidProfile)
	}

	account.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}

	metrics.RecordAuthOperation("profile_update", true)
	return account, nil
}

// ValidateToken parses and verifies a session token.
func (s *Service) ValidateToken(token string) (*Claims, error) {
	return s.tokens.Validate(token)
}

// NormalizeEmail lowercases and trims an email address. All storage
// and lookups use the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
