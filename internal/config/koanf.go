// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/villarank/config.yaml",
	"/etc/villarank/config.yml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "VILLARANK_CONFIG_PATH"

// envPrefix is stripped from environment variables before mapping.
const envPrefix = "VILLARANK_"

// defaultConfig returns a Config with all defaults applied. Defaults
// load first, then the config file, then environment variables.
func defaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path:     "/data/properties.json",
			Required: true,
		},
		Ranking: RankingConfig{
			Workers:             0, // 0 = runtime.NumCPU()
			DefaultTopK:         10,
			DefaultDetailedTopK: 5,
			MaxTopK:             100,
		},
		Assistant: AssistantConfig{
			Enabled:       false, // Opt-in only; requires URL and API key
			URL:           "",
			APIKey:        "",
			Model:         "gpt-4o-mini",
			Timeout:       30 * time.Second,
			Temperature:   0.3,
			MaxTokens:     500,
			DigestLimit:   50,
			RatePerMinute: 30,
		},
		Database: DatabaseConfig{
			Path:      "/data/villarank.duckdb",
			MaxMemory: "1GB",
			Threads:   0, // 0 = runtime.NumCPU()
		},
		NATS: NATSConfig{
			Enabled:        true,
			URL:            "nats://127.0.0.1:4222",
			EmbeddedServer: true,
			StoreDir:       "/data/nats/jetstream",
			MaxMemory:      1 << 28, // 256MB
			MaxStore:       1 << 30, // 1GB
		},
		Server: ServerConfig{
			Port:        8460,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Security: SecurityConfig{
			JWTSecret:         "",
			SessionTimeout:    24 * time.Hour,
			AccountStore:      "badger",
			AccountStorePath:  "/data/accounts",
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (if found)
//  3. Environment variables: override any setting
//
// Precedence is ENV > file > defaults. The result is validated before
// being returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// VILLARANK_SERVER_PORT -> server.port, VILLARANK_JWT_SECRET ->
	// security.jwt_secret, etc.
	envProvider := env.Provider(envPrefix, ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Comma-separated env values become slices for known slice fields.
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the first file found, or empty string if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices
// when supplied through the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices
// for known slice fields. Env vars arrive as strings but the config
// expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML or defaults): nothing to do.
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc maps VILLARANK_* environment variable names to koanf
// config paths. The prefix is already stripped by the env provider.
//
// Examples:
//   - VILLARANK_SERVER_PORT -> server.port
//   - VILLARANK_CATALOG_PATH -> catalog.path
//   - VILLARANK_JWT_SECRET -> security.jwt_secret
//   - VILLARANK_ASSISTANT_API_KEY -> assistant.api_key
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	envMappings := map[string]string{
		// Catalog mappings
		"catalog_path":     "catalog.path",
		"catalog_required": "catalog.required",

		// Ranking mappings
		"ranking_workers":                "ranking.workers",
		"ranking_default_top_k":          "ranking.default_top_k",
		"ranking_default_detailed_top_k": "ranking.default_detailed_top_k",
		"ranking_max_top_k":              "ranking.max_top_k",

		// Assistant mappings
		"assistant_enabled":     "assistant.enabled",
		"assistant_url":         "assistant.url",
		"assistant_api_key":     "assistant.api_key",
		"assistant_model":       "assistant.model",
		"assistant_timeout":     "assistant.timeout",
		"assistant_temperature": "assistant.temperature",
		"assistant_max_tokens":  "assistant.max_tokens",
		"assistant_digest":      "assistant.digest_limit",
		"assistant_rate":        "assistant.rate_per_minute",

		// Database mappings
		"duckdb_path":       "database.path",
		"duckdb_max_memory": "database.max_memory",
		"duckdb_threads":    "database.threads",

		// NATS mappings
		"nats_enabled":    "nats.enabled",
		"nats_url":        "nats.url",
		"nats_embedded":   "nats.embedded_server",
		"nats_store_dir":  "nats.store_dir",
		"nats_max_memory": "nats.max_memory",
		"nats_max_store":  "nats.max_store",

		// Server mappings
		"http_port":    "server.port",
		"http_host":    "server.host",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		// API mappings
		"api_default_page_size": "api.default_page_size",
		"api_max_page_size":     "api.max_page_size",

		// Security mappings
		"jwt_secret":          "security.jwt_secret",
		"session_timeout":     "security.session_timeout",
		"account_store":       "security.account_store",
		"account_store_path":  "security.account_store_path",
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",
		"cors_origins":        "security.cors_origins",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated environment variables
	// cannot pollute the config.
	return ""
}
