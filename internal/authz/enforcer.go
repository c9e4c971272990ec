// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package authz

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// rbacModel is the compiled-in Casbin model. keyMatch lets policy
// objects end in /* to cover a subtree; an action of "*" covers every
// HTTP method.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// rbacPolicy is the compiled-in policy. Members own the search and
// profile surface; admins inherit it and add the admin subtree.
const rbacPolicy = `
p, role:member, /api/v1/profile, GET
p, role:member, /api/v1/profile, PUT
p, role:member, /api/v1/search, POST
p, role:member, /api/v1/search/detailed, POST
p, role:member, /api/v1/assistant/recommend, POST
p, role:member, /api/v1/catalog/stats, GET
p, role:member, /api/v1/analytics/*, GET
p, role:member, /api/v1/ws, GET

p, role:admin, /api/v1/admin/*, *

g, role:admin, role:member
`

// rolePrefix distinguishes role subjects from (future) per-account
// subjects in the policy namespace.
const rolePrefix = "role:"

// Enforcer wraps the Casbin enforcer behind the one question the API
// layer asks.
type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
}

// NewEnforcer builds an enforcer from the compiled-in model and policy.
func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	if err := loadPolicy(enforcer, rbacPolicy); err != nil {
		return nil, err
	}

	return &Enforcer{enforcer: enforcer}, nil
}

// loadPolicy parses the compiled-in policy lines into the enforcer.
func loadPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		switch {
		case parts[0] == "p" && len(parts) >= 4:
			if _, err := enforcer.AddPolicy(parts[1], parts[2], parts[3]); err != nil {
				return fmt.Errorf("failed to add policy %v: %w", parts[1:], err)
			}
		case parts[0] == "g" && len(parts) >= 3:
			if _, err := enforcer.AddGroupingPolicy(parts[1], parts[2]); err != nil {
				return fmt.Errorf("failed to add grouping policy %v: %w", parts[1:], err)
			}
		default:
			return fmt.Errorf("malformed policy line: %q", line)
		}
	}
	return nil
}

// Allow reports whether the given account role may perform the action
// on the object. role is the bare role string stored on the account
// ("admin", "member"); object is the request path and action the HTTP
// method.
func (e *Enforcer) Allow(role, object, action string) (bool, error) {
	subject := role
	if !strings.HasPrefix(subject, rolePrefix) {
		subject = rolePrefix + subject
	}

	allowed, err := e.enforcer.Enforce(subject, object, action)
	if err != nil {
		return false, fmt.Errorf("enforcement failed: %w", err)
	}
	return allowed, nil
}
