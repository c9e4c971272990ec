// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package events

import (
	"strings"
	"testing"
	"time"
)

// --- Test: constructors ---

func TestNewCatalogUpdated(t *testing.T) {
	t.Parallel()

	event := NewCatalogUpdated(TriggerAdminReload, 120, 3)

	if event.EventID == "" {
		t.Error("NewCatalogUpdated() EventID is empty")
	}
	if event.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", event.SchemaVersion, SchemaVersion)
	}
	if event.Timestamp.Location() != time.UTC {
		t.Errorf("Timestamp location = %v, want UTC", event.Timestamp.Location())
	}
	if event.Trigger != TriggerAdminReload || event.Properties != 120 || event.Skipped != 3 {
		t.Errorf("event = %+v, want admin_reload/120/3", event)
	}

	other := NewCatalogUpdated(TriggerBoot, 1, 0)
	if other.EventID == event.EventID {
		t.Error("two events share an EventID")
	}
}

func TestNewSearchCompleted(t *testing.T) {
	t.Parallel()

	event := NewSearchCompleted(ModeDetailed, "Miami", 5, 5, 1500*time.Millisecond)

	if event.EventID == "" {
		t.Error("NewSearchCompleted() EventID is empty")
	}
	if event.Mode != ModeDetailed || event.Location != "Miami" {
		t.Errorf("event = %+v, want detailed/Miami", event)
	}
	if event.TookMS != 1500 {
		t.Errorf("TookMS = %d, want 1500", event.TookMS)
	}
}

// --- Test: validation ---

func TestCatalogUpdated_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*CatalogUpdated)
		wantErr string
	}{
		{name: "valid", mutate: func(*CatalogUpdated) {}},
		{
			name:    "missing event id",
			mutate:  func(e *CatalogUpdated) { e.EventID = "" },
			wantErr: "event_id",
		},
		{
			name:    "zero timestamp",
			mutate:  func(e *CatalogUpdated) { e.Timestamp = time.Time{} },
			wantErr: "timestamp",
		},
		{
			name:    "missing trigger",
			mutate:  func(e *CatalogUpdated) { e.Trigger = "" },
			wantErr: "trigger",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			event := NewCatalogUpdated(TriggerBoot, 10, 0)
			tt.mutate(event)

			err := event.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

// --- Test: wire roundtrip ---

func TestCatalogUpdated_Roundtrip(t *testing.T) {
	t.Parallel()

	event := NewCatalogUpdated(TriggerBoot, 88, 2)

	data, err := event.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	got, err := UnmarshalCatalogUpdated(data)
	if err != nil {
		t.Fatalf("UnmarshalCatalogUpdated() error = %v", err)
	}
	if got.EventID != event.EventID || got.Properties != 88 || got.Skipped != 2 {
		t.Errorf("roundtrip = %+v, want %+v", got, event)
	}
	if !got.Timestamp.Equal(event.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, event.Timestamp)
	}
}

func TestUnmarshal_Rejects(t *testing.T) {
	t.Parallel()

	if _, err := UnmarshalCatalogUpdated([]byte("not json")); err == nil {
		t.Error("UnmarshalCatalogUpdated(garbage) error = nil, want error")
	}
	// Well-formed JSON that fails validation is rejected too.
	if _, err := UnmarshalSearchCompleted([]byte(`{"event_id":"x","timestamp":"2026-01-01T00:00:00Z"}`)); err == nil {
		t.Error("UnmarshalSearchCompleted(no mode) error = nil, want error")
	}
}

func TestMarshal_RejectsInvalid(t *testing.T) {
	t.Parallel()

	event := NewSearchCompleted("", "", 0, 0, 0)
	if _, err := event.Marshal(); err == nil {
		t.Error("Marshal() of event without mode error = nil, want error")
	}
}
