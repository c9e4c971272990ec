// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/villarank/villarank/internal/config"
	"github.com/villarank/villarank/internal/metrics"
	"github.com/villarank/villarank/internal/models"
)

// Store wraps the DuckDB connection holding the catalog mirror.
type Store struct {
	conn   *sql.DB
	logger zerolog.Logger
}

// New opens (or creates) the DuckDB database and initializes the
// schema. An empty path opens an in-memory database, which is what the
// tests and ephemeral deployments use.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg config.DatabaseConfig, logger zerolog.Logger) (*Store, error) {
	componentLogger := logger.With().Str("component", "analytics").Logger()

	path := cfg.Path
	if path == "" {
		path = ":memory:"
	} else {
		// Ensure the parent directory exists so first boot does not
		// fail with "No such file or directory".
		dir := filepath.Dir(path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create analytics directory %s: %w", dir, err)
			}
		}
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	// Disable auto-install/auto-load so startup cannot hang fetching
	// extensions in restricted network environments.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&autoinstall_known_extensions=false&autoload_known_extensions=false",
		path, threads)
	if cfg.MaxMemory != "" {
		connStr += "&max_memory=" + cfg.MaxMemory
	}

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open analytics database: %w", err)
	}

	store := &Store{conn: conn, logger: componentLogger}
	store.configurePool()

	if err := store.createSchema(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize analytics schema: %w", err)
	}

	componentLogger.Info().Str("path", path).Msg("analytics store ready")
	return store, nil
}

func (s *Store) configurePool() {
	s.conn.SetMaxOpenConns(runtime.NumCPU())
	s.conn.SetMaxIdleConns(2)
	s.conn.SetConnMaxLifetime(time.Hour)
	s.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// schemaContext bounds schema DDL.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createSchema creates the mirror table and its indexes.
func (s *Store) createSchema() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS properties (
			id TEXT PRIMARY KEY,
			location TEXT NOT NULL,
			property_type TEXT NOT NULL,
			price_per_night DOUBLE NOT NULL,
			bedrooms INTEGER,
			has_coords BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_properties_location ON properties(location)`,
		`CREATE INDEX IF NOT EXISTS idx_properties_type ON properties(property_type)`,
	}

	for _, query := range queries {
		if _, err := s.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

// Reload replaces the mirror with the given catalog snapshot. The swap
// happens inside one transaction so concurrent readers never observe a
// half-loaded table.
func (s *Store) Reload(ctx context.Context, properties []models.Property) error {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	err := s.reload(ctx, properties)
	metrics.RecordDBQuery("reload", "properties", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to reload analytics view: %w", err)
	}

	s.logger.Info().
		Int("properties", len(properties)).
		Dur("took", time.Since(start)).
		Msg("analytics view reloaded")
	return nil
}

func (s *Store) reload(ctx context.Context, properties []models.Property) (err error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error().
					Err(rbErr).
					AnErr("original_error", err).
					Msg("analytics reload rollback failed")
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM properties"); err != nil {
		return fmt.Errorf("failed to clear properties: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO properties
		(id, location, property_type, price_per_night, bedrooms, has_coords)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer closeQuietly(stmt)

	for i := range properties {
		p := &properties[i]
		// Bedrooms is *int on purpose: nil maps to SQL NULL.
		if _, err = stmt.ExecContext(ctx, p.ID, p.Location, p.PropertyType,
			p.PricePerNight, p.Bedrooms, p.HasCoordinates()); err != nil {
			return fmt.Errorf("failed to insert property %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// Ping checks that the DuckDB connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	if s.conn == nil {
		return fmt.Errorf("analytics connection is nil")
	}
	return s.conn.PingContext(ctx)
}

// Close closes the DuckDB connection.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// closeQuietly closes a resource in an error path where Close errors
// are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
