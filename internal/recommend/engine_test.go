// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package recommend

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/villarank/villarank/internal/models"
)

// testLogger returns a zerolog logger for testing.
func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

// defaultCriteria returns criteria that pass validation, for tests that
// only care about one field.
func defaultCriteria() models.SearchCriteria {
	return models.SearchCriteria{
		MinBudget: 0,
		MaxBudget: 10000,
		GroupSize: 2,
		TopK:      10,
	}
}

func newTestEngine(t *testing.T, geo Geocoder) *Engine {
	t.Helper()
	engine, err := NewEngine(&Config{Workers: 2}, geo, testLogger())
	if err != nil {
		t.Fatalf("NewEngine() error = %v, want nil", err)
	}
	return engine
}

// --- Test: NewEngine ---

func TestNewEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{
			name:    "nil config uses defaults",
			cfg:     nil,
			wantErr: false,
		},
		{
			name:    "valid default config",
			cfg:     DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "explicit worker count",
			cfg:     &Config{Workers: 4},
			wantErr: false,
		},
		{
			name:    "negative workers returns error",
			cfg:     &Config{Workers: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			engine, err := NewEngine(tt.cfg, nil, testLogger())

			if tt.wantErr {
				if err == nil {
					t.Error("NewEngine() = nil error, want error")
				}
				return
			}

			if err != nil {
				t.Fatalf("NewEngine() error = %v, want nil", err)
			}
			if engine == nil {
				t.Fatal("NewEngine() = nil, want non-nil")
			}
			if len(engine.scorers) != 5 {
				t.Errorf("engine.scorers count = %d, want 5", len(engine.scorers))
			}
			if engine.workers < 1 {
				t.Errorf("engine.workers = %d, want >= 1", engine.workers)
			}
		})
	}
}

// --- Test: Rank end to end ---

func TestEngine_Rank_Ordering(t *testing.T) {
	t.Parallel()

	properties := []models.Property{
		{ID: "A", Location: "Miami", PropertyType: "villa", PricePerNight: 150, Bedrooms: intPtr(2)},
		{ID: "B", Location: "Aspen", PropertyType: "chalet", PricePerNight: 900, Bedrooms: intPtr(1)},
		{ID: "C", Location: "Miami", PropertyType: "house", PricePerNight: 200, Bedrooms: intPtr(3)},
	}
	criteria := models.SearchCriteria{
		DesiredLocation:      "Miami",
		MinBudget:            100,
		MaxBudget:            300,
		GroupSize:            4,
		PreferredEnvironment: "beach",
		TopK:                 3,
	}

	engine := newTestEngine(t, BuildCoordinateIndex(properties, testLogger()))

	recs, err := engine.Rank(context.Background(), criteria, properties)
	if err != nil {
		t.Fatalf("Rank() error = %v, want nil", err)
	}

	if len(recs) != 3 {
		t.Fatalf("Rank() returned %d results, want 3", len(recs))
	}

	wantOrder := []string{"A", "C", "B"}
	for i, want := range wantOrder {
		if got := recs[i].Property.ID; got != want {
			t.Errorf("rank %d = %q, want %q", i, got, want)
		}
	}

	for i := 1; i < len(recs); i++ {
		if recs[i].Score > recs[i-1].Score {
			t.Errorf("scores not non-increasing: recs[%d]=%v > recs[%d]=%v",
				i, recs[i].Score, i-1, recs[i-1].Score)
		}
	}

	// The overpriced listing loses on budget outright.
	detailed, err := engine.RankDetailed(context.Background(), criteria, properties)
	if err != nil {
		t.Fatalf("RankDetailed() error = %v, want nil", err)
	}
	last := detailed[len(detailed)-1]
	if last.Property.ID != "B" {
		t.Fatalf("lowest ranked = %q, want B", last.Property.ID)
	}
	if got := last.Breakdowns[CriterionBudget].Score; got != 0 {
		t.Errorf("B budget score = %v, want 0", got)
	}
}

func TestEngine_Rank_TieOrderIsStable(t *testing.T) {
	t.Parallel()

	// Identical records score identically; catalog order must survive.
	properties := make([]models.Property, 6)
	wantOrder := []string{"p0", "p1", "p2", "p3", "p4", "p5"}
	for i := range properties {
		properties[i] = models.Property{
			ID:            wantOrder[i],
			Location:      "Lisbon",
			PropertyType:  "apartment",
			PricePerNight: 120,
			Bedrooms:      intPtr(2),
		}
	}

	engine := newTestEngine(t, nil)

	criteria := defaultCriteria()
	criteria.TopK = len(properties)

	recs, err := engine.Rank(context.Background(), criteria, properties)
	if err != nil {
		t.Fatalf("Rank() error = %v, want nil", err)
	}
	if len(recs) != len(properties) {
		t.Fatalf("Rank() returned %d results, want %d", len(recs), len(properties))
	}
	for i, want := range wantOrder {
		if got := recs[i].Property.ID; got != want {
			t.Errorf("rank %d = %q, want %q (tie order not preserved)", i, got, want)
		}
	}
}

func TestEngine_Rank_TopKTruncation(t *testing.T) {
	t.Parallel()

	properties := []models.Property{
		{ID: "cheap", Location: "Porto", PropertyType: "villa", PricePerNight: 100, Bedrooms: intPtr(1)},
		{ID: "mid", Location: "Porto", PropertyType: "villa", PricePerNight: 200, Bedrooms: intPtr(1)},
		{ID: "dear", Location: "Porto", PropertyType: "villa", PricePerNight: 400, Bedrooms: intPtr(1)},
	}
	criteria := models.SearchCriteria{
		MinBudget: 100,
		MaxBudget: 500,
		GroupSize: 2,
		TopK:      2,
	}

	engine := newTestEngine(t, nil)

	recs, err := engine.Rank(context.Background(), criteria, properties)
	if err != nil {
		t.Fatalf("Rank() error = %v, want nil", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Rank() returned %d results, want 2", len(recs))
	}
	// Budget slides toward the cheap end, so "cheap" leads.
	if recs[0].Property.ID != "cheap" {
		t.Errorf("rank 0 = %q, want cheap", recs[0].Property.ID)
	}
}

func TestEngine_Rank_EmptyCatalog(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, nil)

	recs, err := engine.Rank(context.Background(), defaultCriteria(), nil)
	if err != nil {
		t.Fatalf("Rank() error = %v, want nil", err)
	}
	if len(recs) != 0 {
		t.Errorf("Rank() returned %d results, want 0", len(recs))
	}
}

// --- Test: criteria validation ---

func TestEngine_Rank_InvalidCriteria(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*models.SearchCriteria)
	}{
		{
			name: "min budget above max",
			mutate: func(c *models.SearchCriteria) {
				c.MinBudget = 500
				c.MaxBudget = 100
			},
		},
		{
			name:   "zero group size",
			mutate: func(c *models.SearchCriteria) { c.GroupSize = 0 },
		},
		{
			name:   "negative group size",
			mutate: func(c *models.SearchCriteria) { c.GroupSize = -3 },
		},
		{
			name:   "zero top k",
			mutate: func(c *models.SearchCriteria) { c.TopK = 0 },
		},
		{
			name:   "negative top k",
			mutate: func(c *models.SearchCriteria) { c.TopK = -1 },
		},
	}

	engine := newTestEngine(t, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			criteria := defaultCriteria()
			tt.mutate(&criteria)

			_, err := engine.Rank(context.Background(), criteria, []models.Property{{ID: "x"}})
			if err == nil {
				t.Fatal("Rank() = nil error, want error")
			}
			if !errors.Is(err, ErrInvalidCriteria) {
				t.Errorf("Rank() error = %v, want ErrInvalidCriteria", err)
			}
		})
	}
}

func TestInvalidCriteriaError(t *testing.T) {
	t.Parallel()

	err := &InvalidCriteriaError{Field: "group_size", Reason: "must be positive, got 0"}
	if !errors.Is(err, ErrInvalidCriteria) {
		t.Error("InvalidCriteriaError does not unwrap to ErrInvalidCriteria")
	}
	want := "invalid search criteria: group_size: must be positive, got 0"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

// --- Test: cancellation ---

func TestEngine_Rank_ContextCancelled(t *testing.T) {
	t.Parallel()

	properties := make([]models.Property, 200)
	for i := range properties {
		properties[i] = models.Property{ID: "p", Location: "Rome", PricePerNight: 100, Bedrooms: intPtr(2)}
	}

	engine := newTestEngine(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Rank(ctx, defaultCriteria(), properties)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Rank() error = %v, want context.Canceled", err)
	}
}

// --- Test: RankDetailed ---

func TestEngine_RankDetailed_Breakdowns(t *testing.T) {
	t.Parallel()

	properties := []models.Property{
		{ID: "A", Location: "Banff", PropertyType: "cabin", PricePerNight: 180, Bedrooms: intPtr(2),
			Features: []string{"hot_tub", "fireplace"}, Tags: []string{"mountain_view"}},
		{ID: "B", Location: "Keystone", PropertyType: "condo", PricePerNight: 260, Bedrooms: intPtr(3)},
	}
	criteria := models.SearchCriteria{
		DesiredLocation:      "Banff",
		MinBudget:            150,
		MaxBudget:            400,
		GroupSize:            4,
		PreferredEnvironment: "mountain",
		PreferenceText:       "hot tub fireplace",
		TopK:                 2,
	}

	engine := newTestEngine(t, nil)

	recs, err := engine.RankDetailed(context.Background(), criteria, properties)
	if err != nil {
		t.Fatalf("RankDetailed() error = %v, want nil", err)
	}
	if len(recs) != 2 {
		t.Fatalf("RankDetailed() returned %d results, want 2", len(recs))
	}

	wantCriteria := []string{
		CriterionLocation, CriterionBudget, CriterionFeatures,
		CriterionGroupSize, CriterionEnvironment,
	}
	weights := WeightsFor(true)

	for _, rec := range recs {
		if len(rec.Breakdowns) != len(wantCriteria) {
			t.Errorf("%s: breakdown count = %d, want %d", rec.Property.ID, len(rec.Breakdowns), len(wantCriteria))
		}

		sum := 0.0
		for _, name := range wantCriteria {
			bd, ok := rec.Breakdowns[name]
			if !ok {
				t.Errorf("%s: breakdown missing criterion %q", rec.Property.ID, name)
				continue
			}
			if bd.Score < 0 || bd.Score > 1 {
				t.Errorf("%s/%s: score %v out of [0,1]", rec.Property.ID, name, bd.Score)
			}
			if got, want := bd.Weight, weights.For(name); got != want {
				t.Errorf("%s/%s: weight = %v, want %v", rec.Property.ID, name, got, want)
			}
			if !almostEqual(bd.WeightedScore, bd.Score*bd.Weight) {
				t.Errorf("%s/%s: weighted score = %v, want %v", rec.Property.ID, name, bd.WeightedScore, bd.Score*bd.Weight)
			}
			sum += bd.WeightedScore
		}

		if !almostEqual(sum, rec.Score) {
			t.Errorf("%s: overall = %v, breakdown sum = %v", rec.Property.ID, rec.Score, sum)
		}
	}
}

// --- Test: score bounds ---

func TestEngine_AllScoresWithinBounds(t *testing.T) {
	t.Parallel()

	properties := []models.Property{
		{ID: "bare"},
		{ID: "full", Location: "Lake Tahoe", PropertyType: "cabin", PricePerNight: 320,
			Bedrooms: intPtr(4), Features: []string{"lake_view", "kayaks", "hot_tub"},
			Tags: []string{"waterfront"}, Latitude: floatPtr(39.0968), Longitude: floatPtr(-120.0324)},
		{ID: "pricey", Location: "Monaco", PropertyType: "penthouse", PricePerNight: 9500, Bedrooms: intPtr(6)},
	}
	criteriaSet := []models.SearchCriteria{
		{MinBudget: 0, MaxBudget: 100, GroupSize: 1, TopK: 5},
		{DesiredLocation: "Lake Tahoe", MinBudget: 200, MaxBudget: 400, GroupSize: 8,
			PreferredEnvironment: "lake", PreferenceText: "kayaks waterfront", TopK: 5},
		{DesiredLocation: "nowhere special", MinBudget: 50, MaxBudget: 50, GroupSize: 2,
			PreferredEnvironment: "desert", PreferenceText: "yurt", TopK: 5},
	}

	engine := newTestEngine(t, BuildCoordinateIndex(properties, testLogger()))

	for _, criteria := range criteriaSet {
		recs, err := engine.RankDetailed(context.Background(), criteria, properties)
		if err != nil {
			t.Fatalf("RankDetailed() error = %v, want nil", err)
		}
		for _, rec := range recs {
			if rec.Score < 0 || rec.Score > 1 {
				t.Errorf("%s: overall %v out of [0,1]", rec.Property.ID, rec.Score)
			}
			for name, bd := range rec.Breakdowns {
				if bd.Score < 0 || bd.Score > 1 {
					t.Errorf("%s/%s: score %v out of [0,1]", rec.Property.ID, name, bd.Score)
				}
			}
		}
	}
}

// --- Test: Stats ---

func TestEngine_Stats(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, nil)

	if got := engine.Stats(); got.Requests != 0 || got.Errors != 0 {
		t.Errorf("initial Stats() = %+v, want zeroes", got)
	}

	if _, err := engine.Rank(context.Background(), defaultCriteria(), nil); err != nil {
		t.Fatalf("Rank() error = %v, want nil", err)
	}

	bad := defaultCriteria()
	bad.GroupSize = 0
	if _, err := engine.Rank(context.Background(), bad, nil); err == nil {
		t.Fatal("Rank() = nil error, want error")
	}

	got := engine.Stats()
	if got.Requests != 2 {
		t.Errorf("Stats().Requests = %d, want 2", got.Requests)
	}
	if got.Errors != 1 {
		t.Errorf("Stats().Errors = %d, want 1", got.Errors)
	}
}
