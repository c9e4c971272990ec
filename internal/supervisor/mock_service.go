// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package supervisor

import (
	"context"
	"sync/atomic"
)

// MockService is a controllable suture.Service for tests: it counts
// starts and blocks until its context is canceled.
type MockService struct {
	name       string
	startCount atomic.Int64
}

// NewMockService creates a named mock service.
func NewMockService(name string) *MockService {
	return &MockService{name: name}
}

// Serve implements suture.Service.
func (m *MockService) Serve(ctx context.Context) error {
	m.startCount.Add(1)
	<-ctx.Done()
	return ctx.Err()
}

// StartCount returns how many times Serve has been entered.
func (m *MockService) StartCount() int64 {
	return m.startCount.Load()
}

// String implements fmt.Stringer.
func (m *MockService) String() string {
	return m.name
}
