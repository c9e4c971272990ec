// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

// Package auth implements local email/password accounts.
//
// Accounts live in a Repository (BadgerDB in production, in-memory for
// tests and ephemeral deployments). Registration enforces the password
// policy and email uniqueness; the very first account created becomes
// the admin. Login verifies the bcrypt hash and issues an HS256 JWT
// whose subject is the account id.
//
// The Service is the only entry point handlers should use; the
// repositories and token manager are its wiring.
package auth
