// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateRanking(); err != nil {
		return err
	}

	if err := c.validateAssistant(); err != nil {
		return err
	}

	if err := c.validateNATS(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateCatalog validates catalog source settings.
func (c *Config) validateCatalog() error {
	if c.Catalog.Required && c.Catalog.Path == "" {
		return fmt.Errorf("VILLARANK_CATALOG_PATH is required when VILLARANK_CATALOG_REQUIRED=true")
	}
	return nil
}

// validateRanking validates scoring engine settings.
func (c *Config) validateRanking() error {
	if c.Ranking.Workers < 0 {
		return fmt.Errorf("VILLARANK_RANKING_WORKERS cannot be negative")
	}
	if c.Ranking.DefaultTopK < 1 {
		return fmt.Errorf("VILLARANK_RANKING_DEFAULT_TOP_K must be at least 1")
	}
	if c.Ranking.DefaultDetailedTopK < 1 {
		return fmt.Errorf("VILLARANK_RANKING_DEFAULT_DETAILED_TOP_K must be at least 1")
	}
	if c.Ranking.MaxTopK < c.Ranking.DefaultTopK {
		return fmt.Errorf("VILLARANK_RANKING_MAX_TOP_K must be >= the default top_k")
	}
	return nil
}

// validateAssistant validates assistant settings (only if enabled).
func (c *Config) validateAssistant() error {
	if !c.Assistant.Enabled {
		return nil // Assistant is optional - no validation needed when disabled
	}

	if c.Assistant.URL == "" {
		return fmt.Errorf("VILLARANK_ASSISTANT_URL is required when VILLARANK_ASSISTANT_ENABLED=true")
	}
	if err := validateHTTPURL(c.Assistant.URL, "VILLARANK_ASSISTANT_URL"); err != nil {
		return fmt.Errorf("VILLARANK_ASSISTANT_URL is invalid: %w", err)
	}
	if c.Assistant.APIKey == "" {
		return fmt.Errorf("VILLARANK_ASSISTANT_API_KEY is required when VILLARANK_ASSISTANT_ENABLED=true")
	}
	if c.Assistant.Temperature < 0 || c.Assistant.Temperature > 2 {
		return fmt.Errorf("VILLARANK_ASSISTANT_TEMPERATURE must be between 0 and 2")
	}
	if c.Assistant.MaxTokens < 1 {
		return fmt.Errorf("VILLARANK_ASSISTANT_MAX_TOKENS must be at least 1")
	}
	if c.Assistant.DigestLimit < 1 {
		return fmt.Errorf("VILLARANK_ASSISTANT_DIGEST must be at least 1")
	}
	return nil
}

// validateNATS validates event bus settings (only if enabled).
func (c *Config) validateNATS() error {
	if !c.NATS.Enabled {
		return nil
	}

	if c.NATS.URL == "" {
		return fmt.Errorf("VILLARANK_NATS_URL is required when VILLARANK_NATS_ENABLED=true")
	}
	if !strings.HasPrefix(c.NATS.URL, "nats://") && !strings.HasPrefix(c.NATS.URL, "tls://") {
		return fmt.Errorf("VILLARANK_NATS_URL must use the nats:// or tls:// scheme")
	}
	if c.NATS.EmbeddedServer && c.NATS.StoreDir == "" {
		return fmt.Errorf("VILLARANK_NATS_STORE_DIR is required for the embedded server")
	}
	return nil
}

// validateServer validates HTTP server settings.
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("VILLARANK_HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("VILLARANK_HTTP_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("VILLARANK_ENVIRONMENT must be \"development\" or \"production\"")
	}
	return nil
}

// jwtSecretMinLength is the minimum secret length accepted in
// production. 32 bytes gives HMAC-SHA256 its full key strength.
const jwtSecretMinLength = 32

// validateSecurity validates authentication and rate limit settings.
func (c *Config) validateSecurity() error {
	if c.Server.Environment == "production" {
		if c.Security.JWTSecret == "" {
			return fmt.Errorf("VILLARANK_JWT_SECRET is required in production")
		}
		if len(c.Security.JWTSecret) < jwtSecretMinLength {
			return fmt.Errorf("VILLARANK_JWT_SECRET must be at least %d characters in production", jwtSecretMinLength)
		}
	}

	switch c.Security.AccountStore {
	case "badger", "memory":
	default:
		return fmt.Errorf("VILLARANK_ACCOUNT_STORE must be \"badger\" or \"memory\"")
	}
	if c.Security.AccountStore == "badger" && c.Security.AccountStorePath == "" {
		return fmt.Errorf("VILLARANK_ACCOUNT_STORE_PATH is required for the badger account store")
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("VILLARANK_RATE_LIMIT_REQUESTS must be at least 1")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("VILLARANK_RATE_LIMIT_WINDOW must be positive")
		}
	}

	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("VILLARANK_SESSION_TIMEOUT must be positive")
	}

	return nil
}

// validateLogging validates logging settings.
func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("VILLARANK_LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("VILLARANK_LOG_FORMAT must be \"json\" or \"console\"")
	}

	return nil
}

// validateHTTPURL checks that a URL parses and uses http or https.
func validateHTTPURL(raw, name string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s does not parse: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use the http or https scheme", name)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host", name)
	}
	return nil
}
