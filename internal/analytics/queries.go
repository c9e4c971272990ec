// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/villarank/villarank/internal/metrics"
	"github.com/villarank/villarank/internal/models"
)

// PriceDistribution returns the nightly-price spread per location,
// largest inventories first. A non-empty location narrows the report
// to that location (case-insensitive exact match).
func (s *Store) PriceDistribution(ctx context.Context, location string) ([]models.LocationPriceStats, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `
	SELECT
		location,
		COUNT(*) AS properties,
		MIN(price_per_night) AS min_price,
		AVG(price_per_night) AS avg_price,
		MAX(price_per_night) AS max_price
	FROM properties`
	args := make([]interface{}, 0, 1)
	if location != "" {
		query += " WHERE lower(location) = lower(?)"
		args = append(args, location)
	}
	query += " GROUP BY location ORDER BY properties DESC, location"

	scanStats := func(rows *sql.Rows) (models.LocationPriceStats, error) {
		var ls models.LocationPriceStats
		err := rows.Scan(&ls.Location, &ls.Properties, &ls.MinPrice, &ls.AvgPrice, &ls.MaxPrice)
		return ls, err
	}

	start := time.Now()
	stats, err := queryAndScan(ctx, s.conn, query, args, scanStats)
	metrics.RecordDBQuery("price_distribution", "properties", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query price distribution: %w", err)
	}

	return stats, nil
}

// LocationCoverage returns per-location record counts and how many of
// those records carry usable coordinates.
func (s *Store) LocationCoverage(ctx context.Context) ([]models.LocationCoverage, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	// SUM over integers yields a HUGEINT; cast so Scan sees an int.
	query := `
	SELECT
		location,
		COUNT(*) AS properties,
		CAST(SUM(CASE WHEN has_coords THEN 1 ELSE 0 END) AS INTEGER) AS with_coordinates
	FROM properties
	GROUP BY location
	ORDER BY properties DESC, location`

	scanCoverage := func(rows *sql.Rows) (models.LocationCoverage, error) {
		var lc models.LocationCoverage
		err := rows.Scan(&lc.Location, &lc.Properties, &lc.WithCoordinates)
		return lc, err
	}

	start := time.Now()
	coverage, err := queryAndScan(ctx, s.conn, query, nil, scanCoverage)
	metrics.RecordDBQuery("location_coverage", "properties", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query location coverage: %w", err)
	}

	return coverage, nil
}

// PropertyTypeCounts returns the catalog sliced by property type.
func (s *Store) PropertyTypeCounts(ctx context.Context) ([]models.PropertyTypeStats, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	query := `
	SELECT
		property_type,
		COUNT(*) AS properties,
		AVG(price_per_night) AS avg_price
	FROM properties
	GROUP BY property_type
	ORDER BY properties DESC, property_type`

	scanTypes := func(rows *sql.Rows) (models.PropertyTypeStats, error) {
		var ts models.PropertyTypeStats
		err := rows.Scan(&ts.PropertyType, &ts.Properties, &ts.AvgPrice)
		return ts, err
	}

	start := time.Now()
	types, err := queryAndScan(ctx, s.conn, query, nil, scanTypes)
	metrics.RecordDBQuery("property_type_counts", "properties", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query property type counts: %w", err)
	}

	return types, nil
}

// ensureContext guarantees queries carry a deadline.
func ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}
	return ctx, func() {}
}

// scanFunc scans a single row into a result type.
type scanFunc[T any] func(*sql.Rows) (T, error)

// queryAndScan executes a query and scans all rows with scan.
func queryAndScan[T any](ctx context.Context, db *sql.DB, query string, args []interface{}, scan scanFunc[T]) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(rows)

	var results []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, rows.Err()
}
