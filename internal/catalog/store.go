// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package catalog

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/villarank/villarank/internal/metrics"
	"github.com/villarank/villarank/internal/models"
	"github.com/villarank/villarank/internal/recommend"
)

// Stats describes the catalog currently held by a Store.
type Stats struct {
	// Properties is the number of records in the snapshot.
	Properties int `json:"properties"`

	// WithCoordinates counts records carrying usable coordinates.
	WithCoordinates int `json:"with_coordinates"`

	// IndexedLocations is the size of the coordinate index (distinct
	// location names with coordinates).
	IndexedLocations int `json:"indexed_locations"`

	// SkippedOnLoad is the malformed-record count from the ingest
	// that produced this snapshot.
	SkippedOnLoad int `json:"skipped_on_load"`

	// LoadedAt is when the snapshot was installed.
	LoadedAt time.Time `json:"loaded_at"`
}

// Store holds the current catalog snapshot.
//
// A snapshot is the property slice plus the coordinate index built
// from it; the two always swap together. Readers get the live slice,
// not a copy, and must treat it as read-only.
type Store struct {
	mu         sync.RWMutex
	properties []models.Property
	index      *recommend.CoordinateIndex
	stats      Stats

	logger zerolog.Logger
}

// NewStore creates an empty catalog store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		index:  recommend.BuildCoordinateIndex(nil, logger),
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// Replace installs a new snapshot and returns its stats. The input
// slice is owned by the store afterwards.
func (s *Store) Replace(properties []models.Property, loadStats LoadStats) Stats {
	index := recommend.BuildCoordinateIndex(properties, s.logger)

	withCoords := 0
	for i := range properties {
		if properties[i].HasCoordinates() {
			withCoords++
		}
	}

	stats := Stats{
		Properties:       len(properties),
		WithCoordinates:  withCoords,
		IndexedLocations: index.Len(),
		SkippedOnLoad:    loadStats.Skipped,
		LoadedAt:         time.Now().UTC(),
	}

	s.mu.Lock()
	s.properties = properties
	s.index = index
	s.stats = stats
	s.mu.Unlock()

	metrics.RecordCatalogLoad(len(properties), nil)

	s.logger.Info().
		Int("properties", stats.Properties).
		Int("with_coordinates", stats.WithCoordinates).
		Int("indexed_locations", stats.IndexedLocations).
		Msg("catalog snapshot installed")

	return stats
}

// Snapshot returns the current properties and their coordinate index.
// The slice must not be modified.
func (s *Store) Snapshot() ([]models.Property, *recommend.CoordinateIndex) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.properties, s.index
}

// Properties returns the current property slice. It must not be
// modified.
func (s *Store) Properties() []models.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.properties
}

// Len returns the number of properties in the current snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.properties)
}

// Stats returns the stats of the current snapshot.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Lookup resolves a location name against the current snapshot's
// coordinate index. Store therefore satisfies recommend.Geocoder, and
// the engine keeps working across catalog reloads.
func (s *Store) Lookup(location string) (lat, lng float64, ok bool) {
	s.mu.RLock()
	index := s.index
	s.mu.RUnlock()

	return index.Lookup(location)
}
