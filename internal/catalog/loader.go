// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package catalog

import (
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/villarank/villarank/internal/metrics"
	"github.com/villarank/villarank/internal/models"
)

// Skip reasons reported in logs and metrics.
const (
	skipMissingID       = "missing_id"
	skipMissingLocation = "missing_location"
	skipMissingType     = "missing_property_type"
	skipMissingPrice    = "missing_price"
	skipInvalidPrice    = "invalid_price"
	skipMissingFeatures = "missing_features"
	skipMissingTags     = "missing_tags"
)

// LoadStats summarizes one ingest.
type LoadStats struct {
	// Total is the number of records in the source file.
	Total int `json:"total"`

	// Loaded is the number of records accepted.
	Loaded int `json:"loaded"`

	// Skipped is the number of malformed records dropped.
	Skipped int `json:"skipped"`
}

// fileRecord is the on-disk shape of a catalog entry. Coordinates are
// nested in the file but flattened onto models.Property. Price is a
// pointer so an absent field is distinguishable from a free listing,
// and features/tags stay nil when the key is missing entirely.
type fileRecord struct {
	ID            string       `json:"property_id"`
	Location      string       `json:"location"`
	PropertyType  string       `json:"property_type"`
	PricePerNight *float64     `json:"price_per_night"`
	Bedrooms      *int         `json:"bedrooms"`
	Features      []string     `json:"features"`
	Tags          []string     `json:"tags"`
	Coordinates   *coordinates `json:"coordinates"`
}

type coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Loader reads property catalogs from JSON files.
type Loader struct {
	logger zerolog.Logger
}

// NewLoader creates a catalog loader.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// LoadFile reads and parses the catalog at path.
func (l *Loader) LoadFile(path string) ([]models.Property, LoadStats, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("read catalog file: %w", err)
	}

	properties, stats, err := l.Parse(data)
	if err != nil {
		return nil, stats, fmt.Errorf("parse catalog file %s: %w", path, err)
	}

	l.logger.Info().
		Str("path", path).
		Int("total", stats.Total).
		Int("loaded", stats.Loaded).
		Int("skipped", stats.Skipped).
		Msg("catalog loaded")

	return properties, stats, nil
}

// Parse decodes a JSON array of property records. Malformed records
// are skipped with a warning; the returned slice preserves the order
// of the input.
func (l *Loader) Parse(data []byte) ([]models.Property, LoadStats, error) {
	var records []fileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, LoadStats{}, fmt.Errorf("decode property array: %w", err)
	}

	stats := LoadStats{Total: len(records)}
	properties := make([]models.Property, 0, len(records))

	for i, rec := range records {
		if reason := validateRecord(rec); reason != "" {
			stats.Skipped++
			metrics.RecordCatalogSkip(reason)
			l.logger.Warn().
				Int("record", i).
				Str("property_id", rec.ID).
				Str("reason", reason).
				Msg("skipping malformed catalog record")
			continue
		}
		properties = append(properties, toProperty(rec))
	}

	stats.Loaded = len(properties)
	return properties, stats, nil
}

// validateRecord returns a skip reason, or "" for a usable record.
// Every field except coordinates and bedrooms is required; a zero
// price is legal, a negative or absent one is not.
func validateRecord(rec fileRecord) string {
	switch {
	case strings.TrimSpace(rec.ID) == "":
		return skipMissingID
	case strings.TrimSpace(rec.Location) == "":
		return skipMissingLocation
	case strings.TrimSpace(rec.PropertyType) == "":
		return skipMissingType
	case rec.PricePerNight == nil:
		return skipMissingPrice
	case *rec.PricePerNight < 0:
		return skipInvalidPrice
	case rec.Features == nil:
		return skipMissingFeatures
	case rec.Tags == nil:
		return skipMissingTags
	default:
		return ""
	}
}

// toProperty flattens a file record onto the domain type. Out-of-range
// coordinates are carried through; the coordinate index decides what
// counts as usable and warns there.
func toProperty(rec fileRecord) models.Property {
	p := models.Property{
		ID:            rec.ID,
		Location:      rec.Location,
		PropertyType:  rec.PropertyType,
		PricePerNight: *rec.PricePerNight,
		Bedrooms:      rec.Bedrooms,
		Features:      rec.Features,
		Tags:          rec.Tags,
	}
	if rec.Coordinates != nil {
		lat := rec.Coordinates.Lat
		lng := rec.Coordinates.Lng
		p.Latitude = &lat
		p.Longitude = &lng
	}
	return p
}
