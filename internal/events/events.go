// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// SchemaVersion is the current event schema version. Increment on
// breaking payload changes.
const SchemaVersion = 1

// Topics the service publishes.
const (
	TopicCatalogUpdated  = "catalog.updated"
	TopicSearchCompleted = "search.completed"
)

// StreamName is the JetStream stream holding all service events.
const StreamName = "VILLARANK_EVENTS"

// StreamSubjects covers every topic the service emits.
var StreamSubjects = []string{"catalog.>", "search.>"}

// Triggers for CatalogUpdated events.
const (
	TriggerBoot        = "boot"
	TriggerAdminReload = "admin_reload"
)

// CatalogUpdated reports the outcome of a catalog load: how it was
// triggered and the ingest statistics.
type CatalogUpdated struct {
	SchemaVersion int       `json:"schema_version,omitempty"`
	EventID       string    `json:"event_id"`
	Timestamp     time.Time `json:"timestamp"`

	Trigger    string `json:"trigger"` // boot, admin_reload
	Properties int    `json:"properties"`
	Skipped    int    `json:"skipped"`
}

// NewCatalogUpdated creates a catalog event with a unique ID, UTC
// timestamp, and current schema version.
func NewCatalogUpdated(trigger string, properties, skipped int) *CatalogUpdated {
	return &CatalogUpdated{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		Timestamp:     time.Now().UTC(),
		Trigger:       trigger,
		Properties:    properties,
		Skipped:       skipped,
	}
}

// Validate checks required fields.
func (e *CatalogUpdated) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("event_id required")
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("timestamp required")
	}
	if e.Trigger == "" {
		return fmt.Errorf("trigger required")
	}
	return nil
}

// Marshal converts the event to JSON after validating it.
func (e *CatalogUpdated) Marshal() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// UnmarshalCatalogUpdated converts JSON bytes to a catalog event.
func UnmarshalCatalogUpdated(data []byte) (*CatalogUpdated, error) {
	var event CatalogUpdated
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	return &event, nil
}

// Search modes for SearchCompleted events.
const (
	ModeSearch    = "search"
	ModeDetailed  = "detailed"
	ModeAssistant = "assistant"
)

// SearchCompleted is the aggregate digest of one completed search. It
// deliberately carries no preference text and no results — only what
// operational dashboards need.
type SearchCompleted struct {
	SchemaVersion int       `json:"schema_version,omitempty"`
	EventID       string    `json:"event_id"`
	Timestamp     time.Time `json:"timestamp"`

	Mode     string `json:"mode"` // search, detailed, assistant
	Location string `json:"location,omitempty"`
	TopK     int    `json:"top_k,omitempty"`
	Results  int    `json:"results"`
	TookMS   int64  `json:"took_ms"`
}

// NewSearchCompleted creates a search digest with a unique ID, UTC
// timestamp, and current schema version.
func NewSearchCompleted(mode, location string, topK, results int, took time.Duration) *SearchCompleted {
	return &SearchCompleted{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		Timestamp:     time.Now().UTC(),
		Mode:          mode,
		Location:      location,
		TopK:          topK,
		Results:       results,
		TookMS:        took.Milliseconds(),
	}
}

// Validate checks required fields.
func (e *SearchCompleted) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("event_id required")
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("timestamp required")
	}
	if e.Mode == "" {
		return fmt.Errorf("mode required")
	}
	return nil
}

// Marshal converts the event to JSON after validating it.
func (e *SearchCompleted) Marshal() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// UnmarshalSearchCompleted converts JSON bytes to a search digest.
func UnmarshalSearchCompleted(data []byte) (*SearchCompleted, error) {
	var event SearchCompleted
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	return &event, nil
}

// FeedMessage is the envelope the ingester broadcasts to websocket
// clients: the topic plus the raw event payload.
type FeedMessage struct {
	Topic string          `json:"topic"`
	Event json.RawMessage `json:"event"`
}
