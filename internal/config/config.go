// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML config file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting (VILLARANK_* prefix)
//
// Configuration Categories:
//
//  1. Core:
//     - Catalog: Property catalog source (JSON file path, reload behavior)
//     - Ranking: Scoring worker pool and result limits
//
//  2. Infrastructure:
//     - Database: DuckDB analytics store (path, memory)
//     - NATS: Embedded JetStream event bus for catalog/search events
//     - Server: HTTP server (port, host, timeouts)
//
//  3. API & Security:
//     - API: Pagination and response limits
//     - Security: JWT auth, account store, rate limiting, CORS
//     - Assistant: External LLM assistant integration (optional)
//
//  4. Observability:
//     - Logging: Log levels and output formats
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("failed to load config:", err)
//	}
//	// cfg.Catalog.Path, cfg.Server.Port, etc. are now populated
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Catalog   CatalogConfig   `koanf:"catalog"`
	Ranking   RankingConfig   `koanf:"ranking"`
	Assistant AssistantConfig `koanf:"assistant"` // Optional: LLM-backed conversational search
	Database  DatabaseConfig  `koanf:"database"`
	NATS      NATSConfig      `koanf:"nats"` // Optional: event bus (embedded by default)
	Server    ServerConfig    `koanf:"server"`
	API       APIConfig       `koanf:"api"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// CatalogConfig holds the property catalog source settings.
//
// Environment Variables:
//   - VILLARANK_CATALOG_PATH: Path to the property catalog JSON file
//   - VILLARANK_CATALOG_REQUIRED: Fail startup when the catalog is missing (default: true)
type CatalogConfig struct {
	Path     string `koanf:"path"`     // Path to the catalog JSON file
	Required bool   `koanf:"required"` // Fail startup if the catalog cannot be loaded
}

// RankingConfig tunes the scoring engine.
//
// Workers bounds the per-request scoring pool; 0 means runtime.NumCPU().
// DefaultTopK / DefaultDetailedTopK apply when a request omits top_k.
type RankingConfig struct {
	Workers             int `koanf:"workers"`
	DefaultTopK         int `koanf:"default_top_k"`
	DefaultDetailedTopK int `koanf:"default_detailed_top_k"`
	MaxTopK             int `koanf:"max_top_k"`
}

// AssistantConfig holds settings for the optional external assistant
// used by the conversational search endpoint. When disabled, the
// endpoint degrades to "no recommendation" responses.
//
// Environment Variables:
//   - VILLARANK_ASSISTANT_ENABLED: Enable the assistant (default: false)
//   - VILLARANK_ASSISTANT_URL: Chat completions endpoint URL
//   - VILLARANK_ASSISTANT_API_KEY: Bearer token for the endpoint
//   - VILLARANK_ASSISTANT_MODEL: Model identifier sent with each request
type AssistantConfig struct {
	Enabled       bool          `koanf:"enabled"`
	URL           string        `koanf:"url"`
	APIKey        string        `koanf:"api_key"`
	Model         string        `koanf:"model"`
	Timeout       time.Duration `koanf:"timeout"`         // Per-request timeout
	Temperature   float64       `koanf:"temperature"`     // Sampling temperature
	MaxTokens     int           `koanf:"max_tokens"`      // Completion token cap
	DigestLimit   int           `koanf:"digest_limit"`    // Max properties included in the prompt digest
	RatePerMinute int           `koanf:"rate_per_minute"` // Outbound request budget (0 = unlimited)
}

// DatabaseConfig holds DuckDB analytics store settings.
// The analytics store mirrors the catalog for SQL reporting; it is not
// the source of truth for rankings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`       // DuckDB file path (empty = in-memory)
	MaxMemory string `koanf:"max_memory"` // DuckDB memory limit, e.g. "2GB"
	Threads   int    `koanf:"threads"`    // 0 = use runtime.NumCPU()
}

// NATSConfig holds event bus settings. The server embeds NATS with
// JetStream by default so deployments need no external broker.
type NATSConfig struct {
	Enabled        bool   `koanf:"enabled"`
	URL            string `koanf:"url"`
	EmbeddedServer bool   `koanf:"embedded_server"`
	StoreDir       string `koanf:"store_dir"`
	MaxMemory      int64  `koanf:"max_memory"`
	MaxStore       int64  `koanf:"max_store"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development" or "production"
}

// APIConfig holds API response limits.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds authentication and abuse-prevention settings.
//
// Environment Variables:
//   - VILLARANK_JWT_SECRET: HMAC signing secret (required in production)
//   - VILLARANK_SESSION_TIMEOUT: Token lifetime (default: 24h)
//   - VILLARANK_ACCOUNT_STORE: "badger" (persistent) or "memory"
//   - VILLARANK_RATE_LIMIT_REQUESTS / VILLARANK_RATE_LIMIT_WINDOW
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	AccountStore      string        `koanf:"account_store"`      // "badger" or "memory"
	AccountStorePath  string        `koanf:"account_store_path"` // Badger directory
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // "json" or "console"
	Caller bool   `koanf:"caller"` // Include caller file:line
}
