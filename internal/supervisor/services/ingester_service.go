// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package services

import (
	"context"
	"errors"
)

// IngesterRunner matches *events.Ingester's Run method.
type IngesterRunner interface {
	Run(ctx context.Context) error
}

// IngesterService wraps the event ingester as a supervised service.
// The ingester consumes catalog.updated and search.completed events
// and fans them out to the analytics mirror and the WebSocket feed;
// if its subscription dies, the supervisor restarts it and JetStream
// redelivers from the consumer's last acknowledged position.
type IngesterService struct {
	ingester IngesterRunner
	name     string
}

// NewIngesterService creates a new ingester service wrapper.
func NewIngesterService(ingester IngesterRunner) *IngesterService {
	return &IngesterService{
		ingester: ingester,
		name:     "event-ingester",
	}
}

// Serve implements suture.Service. A context-cancellation return is
// clean shutdown; anything else is a crash worth restarting.
func (s *IngesterService) Serve(ctx context.Context) error {
	err := s.ingester.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return ctx.Err()
}

// String implements fmt.Stringer; suture uses it to identify the
// service in log messages.
func (s *IngesterService) String() string {
	return s.name
}
