// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package recommend

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/villarank/villarank/internal/models"
)

// Config contains all configuration for the ranking engine.
type Config struct {
	// Workers is the number of goroutines scoring properties
	// concurrently. Zero means runtime.NumCPU().
	Workers int `json:"workers"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{Workers: 0}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	return nil
}

// Engine ranks catalog properties against search criteria.
//
// Scoring is embarrassingly parallel across properties, so the engine
// fans records out to a bounded worker pool and writes results back
// by index. Input order is therefore intact when the stable sort
// runs, which is what makes equal-scoring properties keep their
// catalog order in the output.
type Engine struct {
	scorers []Scorer
	workers int
	logger  zerolog.Logger

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Requests int64 `json:"requests"`
	Errors   int64 `json:"errors"`
}

// NewEngine creates a ranking engine. The geocoder feeds the location
// scorer's distance path and may be nil, in which case location
// scoring falls back to text comparison.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, geo Geocoder, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	return &Engine{
		scorers: []Scorer{
			NewLocationScorer(geo),
			NewBudgetScorer(),
			NewFeaturesScorer(),
			NewGroupSizeScorer(),
			NewEnvironmentScorer(),
		},
		workers: workers,
		logger:  logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Stats returns a snapshot of engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests: e.requestCount.Load(),
		Errors:   e.errorCount.Load(),
	}
}

// Rank scores every property against the criteria and returns the top
// TopK, best first. Equal scores keep their input order.
//
//nolint:gocritic // hugeParam: criteria passed by value for immutability
func (e *Engine) Rank(ctx context.Context, criteria models.SearchCriteria, properties []models.Property) ([]models.Recommendation, error) {
	ranked, err := e.rank(ctx, criteria, properties)
	if err != nil {
		return nil, err
	}

	recs := make([]models.Recommendation, len(ranked))
	for i, r := range ranked {
		recs[i] = models.Recommendation{Property: r.property, Score: r.overall}
	}
	return recs, nil
}

// RankDetailed is Rank with a per-criterion breakdown attached to each
// result.
//
//nolint:gocritic // hugeParam: criteria passed by value for immutability
func (e *Engine) RankDetailed(ctx context.Context, criteria models.SearchCriteria, properties []models.Property) ([]models.DetailedRecommendation, error) {
	ranked, err := e.rank(ctx, criteria, properties)
	if err != nil {
		return nil, err
	}

	weights := WeightsFor(criteria.HasLocation())
	recs := make([]models.DetailedRecommendation, len(ranked))
	for i, r := range ranked {
		breakdowns := make(map[string]models.ScoreBreakdown, len(e.scorers))
		for j, scorer := range e.scorers {
			weight := weights.For(scorer.Name())
			breakdowns[scorer.Name()] = models.ScoreBreakdown{
				Score:         r.scores[j],
				Weight:        weight,
				WeightedScore: r.scores[j] * weight,
			}
		}
		recs[i] = models.DetailedRecommendation{
			Property:   r.property,
			Score:      r.overall,
			Breakdowns: breakdowns,
		}
	}
	return recs, nil
}

// rankedProperty carries one scored property through sorting. scores
// is aligned with Engine.scorers.
type rankedProperty struct {
	property models.Property
	overall  float64
	scores   []float64
}

// rank validates, scores, sorts, and truncates.
//
//nolint:gocritic // hugeParam: criteria passed by value for immutability
func (e *Engine) rank(ctx context.Context, criteria models.SearchCriteria, properties []models.Property) ([]rankedProperty, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if err := validateCriteria(criteria); err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	weights := WeightsFor(criteria.HasLocation())

	ranked, err := e.scoreAll(ctx, criteria, properties, weights)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].overall > ranked[j].overall
	})

	if len(ranked) > criteria.TopK {
		ranked = ranked[:criteria.TopK]
	}

	e.logger.Debug().
		Int("candidates", len(properties)).
		Int("returned", len(ranked)).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("ranking complete")

	return ranked, nil
}

// scoreAll scores every property on a bounded worker pool. Results go
// into a preallocated slice by index, never appended, so no ordering
// is lost to goroutine scheduling. Cancellation is honored between
// records: no new record is dispatched once ctx is done, and the
// caller gets ctx.Err().
//
//nolint:gocritic // hugeParam: criteria passed by value for immutability
func (e *Engine) scoreAll(ctx context.Context, criteria models.SearchCriteria, properties []models.Property, weights Weights) ([]rankedProperty, error) {
	ranked := make([]rankedProperty, len(properties))

	workers := e.workers
	if workers > len(properties) {
		workers = len(properties)
	}
	if workers < 1 {
		workers = 1
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				ranked[i] = e.scoreOne(properties[i], criteria, weights)
			}
		}()
	}

feed:
	for i := range properties {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ranked, nil
}

// scoreOne runs every scorer against one property.
//
//nolint:gocritic // hugeParam: criteria passed by value for immutability
func (e *Engine) scoreOne(property models.Property, criteria models.SearchCriteria, weights Weights) rankedProperty {
	scores := make([]float64, len(e.scorers))
	overall := 0.0
	for i, scorer := range e.scorers {
		score := scorer.Score(property, criteria)
		scores[i] = score
		overall += score * weights.For(scorer.Name())
	}
	return rankedProperty{property: property, overall: overall, scores: scores}
}

// validateCriteria rejects criteria no scorer can make sense of.
// Validation is synchronous: it happens before any scoring work is
// scheduled.
//
//nolint:gocritic // hugeParam: criteria passed by value for immutability
func validateCriteria(criteria models.SearchCriteria) error {
	if criteria.MinBudget > criteria.MaxBudget {
		return &InvalidCriteriaError{
			Field:  "min_budget",
			Reason: fmt.Sprintf("minimum %.2f exceeds maximum %.2f", criteria.MinBudget, criteria.MaxBudget),
		}
	}
	if criteria.GroupSize <= 0 {
		return &InvalidCriteriaError{
			Field:  "group_size",
			Reason: fmt.Sprintf("must be positive, got %d", criteria.GroupSize),
		}
	}
	if criteria.TopK <= 0 {
		return &InvalidCriteriaError{
			Field:  "top_k",
			Reason: fmt.Sprintf("must be positive, got %d", criteria.TopK),
		}
	}
	return nil
}
