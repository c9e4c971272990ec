// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

// Package logging provides structured logging built on zerolog.
//
// The package maintains a process-wide logger configured once at startup
// via Init. Components derive child loggers with a component field:
//
//	logger := logging.With().Str("component", "ranker").Logger()
//
// Quick start:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("catalog", path).Msg("catalog loaded")
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger behavior.
type Config struct {
	// Level is the minimum level to emit: trace, debug, info, warn, error.
	Level string `koanf:"level" json:"level"`

	// Format selects the output encoding: "json" or "console".
	Format string `koanf:"format" json:"format"`

	// Caller adds file:line of the call site to each event.
	Caller bool `koanf:"caller" json:"caller"`

	// Output overrides the destination (defaults to stderr). Used by tests.
	Output io.Writer `koanf:"-" json:"-"`
}

var (
	mu  sync.RWMutex
	log zerolog.Logger
)

func init() {
	// Usable default before Init runs (tests, early startup paths).
	zerolog.TimeFieldFormat = time.RFC3339
	log = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// Init configures the global logger. Safe to call more than once; the
// last call wins.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	log = ctx.Logger().Level(parseLevel(cfg.Level))
}

// parseLevel maps a level name to a zerolog level, defaulting to info.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// With returns a context for building a child logger with extra fields.
func With() zerolog.Context {
	return Logger().With()
}

// Trace starts a trace-level event.
func Trace() *zerolog.Event { l := Logger(); return l.Trace() }

// Debug starts a debug-level event.
func Debug() *zerolog.Event { l := Logger(); return l.Debug() }

// Info starts an info-level event.
func Info() *zerolog.Event { l := Logger(); return l.Info() }

// Warn starts a warn-level event.
func Warn() *zerolog.Event { l := Logger(); return l.Warn() }

// Error starts an error-level event.
func Error() *zerolog.Event { l := Logger(); return l.Error() }

// Fatal starts a fatal-level event. The event's Msg call exits the process.
func Fatal() *zerolog.Event { l := Logger(); return l.Fatal() }

// NewTestLogger returns a logger writing to w, for assertions in tests.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}
