// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package recommend

import "testing"

func TestWeightsFor(t *testing.T) {
	t.Parallel()

	for _, specified := range []bool{true, false} {
		w := WeightsFor(specified)

		if !almostEqual(w.Sum(), 1.0) {
			t.Errorf("WeightsFor(%v).Sum() = %v, want 1.0", specified, w.Sum())
		}

		for name, weight := range w.ToMap() {
			if weight <= 0 || weight >= 1 {
				t.Errorf("WeightsFor(%v)[%s] = %v, want in (0,1)", specified, name, weight)
			}
			if got := w.For(name); got != weight {
				t.Errorf("For(%s) = %v, ToMap()[%s] = %v, want equal", name, got, name, weight)
			}
		}
	}
}

func TestWeightsFor_LocationShift(t *testing.T) {
	t.Parallel()

	with := WeightsFor(true)
	without := WeightsFor(false)

	if with.Location <= without.Location {
		t.Errorf("location weight with=%v, without=%v, want with > without", with.Location, without.Location)
	}
	if with.Budget >= without.Budget {
		t.Errorf("budget weight with=%v, without=%v, want with < without", with.Budget, without.Budget)
	}
	if with.Features >= without.Features {
		t.Errorf("features weight with=%v, without=%v, want with < without", with.Features, without.Features)
	}
	if with.GroupSize != without.GroupSize {
		t.Errorf("group size weight differs: with=%v, without=%v", with.GroupSize, without.GroupSize)
	}
	if with.Environment != without.Environment {
		t.Errorf("environment weight differs: with=%v, without=%v", with.Environment, without.Environment)
	}

	if with.Location != 0.40 {
		t.Errorf("location weight = %v, want 0.40", with.Location)
	}
	if without.Location != 0.35 {
		t.Errorf("location weight = %v, want 0.35", without.Location)
	}
}

func TestWeights_ForUnknown(t *testing.T) {
	t.Parallel()

	if got := WeightsFor(true).For("popularity"); got != 0 {
		t.Errorf("For(popularity) = %v, want 0", got)
	}
}

func TestWeights_ToMapKeys(t *testing.T) {
	t.Parallel()

	m := WeightsFor(false).ToMap()
	if len(m) != 5 {
		t.Fatalf("ToMap() has %d keys, want 5", len(m))
	}
	for _, name := range []string{
		CriterionLocation, CriterionBudget, CriterionFeatures,
		CriterionGroupSize, CriterionEnvironment,
	} {
		if _, ok := m[name]; !ok {
			t.Errorf("ToMap() missing %q", name)
		}
	}
}
