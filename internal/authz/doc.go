// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

// Package authz decides who may call what, using Casbin RBAC.
//
// The model and policy are compiled in: two roles, role:member for
// every registered account and role:admin for operators. role:admin
// inherits everything role:member may do and additionally owns the
// /api/v1/admin subtree. Objects are request paths, actions are HTTP
// methods, and "*" in a policy matches any method.
//
// Enforcer.Allow answers for a bare role name ("admin", "member");
// Middleware wires the decision into the router using the claims the
// authentication middleware stored on the request context.
package authz
