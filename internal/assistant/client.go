// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package assistant

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/villarank/villarank/internal/config"
	"github.com/villarank/villarank/internal/metrics"
	"github.com/villarank/villarank/internal/models"
)

// ErrUnavailable is returned for every failure mode of the assistant
// path. Callers translate it to "no recommendation"; the cause is in
// the logs, not the error chain.
var ErrUnavailable = errors.New("assistant unavailable")

// breakerName labels the assistant breaker in logs and metrics.
const breakerName = "assistant"

// Recommendation is the single structured pick the assistant returns.
// The shape mirrors the upstream contract; Reasoning is free text and
// is passed through unvalidated.
type Recommendation struct {
	PropertyID    string   `json:"property_id"`
	Location      string   `json:"location"`
	PropertyType  string   `json:"property_type"`
	PricePerNight float64  `json:"price_per_night"`
	Bedrooms      int      `json:"bedrooms"`
	Features      []string `json:"features"`
	Tags          []string `json:"tags"`
	Reasoning     string   `json:"reasoning"`
}

// Client talks to a chat-completions endpoint.
type Client struct {
	cfg     config.AssistantConfig
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*chatResponse]
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewClient builds an assistant client from config. The client is
// usable even when cfg.Enabled is false; every call then fails closed.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg config.AssistantConfig, logger zerolog.Logger) *Client {
	componentLogger := logger.With().Str("component", "assistant").Logger()

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0) // 0 = closed

	breaker := gobreaker.NewCircuitBreaker[*chatResponse](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,               // Allow 3 requests in half-open state
		Interval:    time.Minute,     // Reset counts after 1 minute in closed state
		Timeout:     2 * time.Minute, // Wait 2 minutes before transitioning from open to half-open

		// Open when failure rate >= 60% with at least 10 requests.
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= 0.6 {
				componentLogger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("opening assistant circuit")
				return true
			}
			return false
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			componentLogger.Info().
				Str("from", fromStr).
				Str("to", toStr).
				Msg("assistant circuit state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		limiter: newLimiter(cfg.RatePerMinute),
		logger:  componentLogger,
	}
}

// newLimiter converts a per-minute budget into a token bucket. The
// burst equals the full minute's budget so idle periods bank capacity.
func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)
}

// Enabled reports whether the assistant is configured for use.
func (c *Client) Enabled() bool {
	return c.cfg.Enabled
}

// Recommend asks the assistant for one property pick matching the
// free-form query, grounded in a digest of the given catalog snapshot.
// Every failure mode returns ErrUnavailable.
func (c *Client) Recommend(ctx context.Context, query string, properties []models.Property) (*Recommendation, error) {
	start := time.Now()

	if !c.cfg.Enabled {
		metrics.RecordAssistantRequest("disabled", time.Since(start))
		return nil, ErrUnavailable
	}
	if len(properties) == 0 {
		c.logger.Warn().Msg("assistant request with empty catalog")
		metrics.RecordAssistantRequest("error", time.Since(start))
		return nil, ErrUnavailable
	}

	if err := c.limiter.Wait(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("assistant rate budget exhausted")
		metrics.RecordAssistantRequest("rejected", time.Since(start))
		return nil, ErrUnavailable
	}

	request := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(len(properties), catalogDigest(properties, c.cfg.DigestLimit))},
			{Role: "user", Content: userPrompt(query)},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	reply, err := c.breaker.Execute(func() (*chatResponse, error) {
		return c.doRequest(ctx, &request)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.Warn().Err(err).Msg("assistant request rejected by circuit breaker")
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
			metrics.RecordAssistantRequest("rejected", time.Since(start))
		} else {
			c.logger.Error().Err(err).Msg("assistant request failed")
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
			metrics.RecordAssistantRequest("error", time.Since(start))
		}
		return nil, ErrUnavailable
	}
	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()

	content := reply.content()
	if content == "" {
		c.logger.Warn().Msg("assistant reply carried no choices")
		metrics.RecordAssistantRequest("malformed", time.Since(start))
		return nil, ErrUnavailable
	}

	recommendation, err := extractRecommendation(content)
	if err != nil {
		c.logger.Warn().Err(err).Msg("assistant reply not usable")
		metrics.RecordAssistantRequest("malformed", time.Since(start))
		return nil, ErrUnavailable
	}

	// The pick must reference a real catalog entry; an invented id is
	// worse than no answer.
	if !propertyExists(properties, recommendation.PropertyID) {
		c.logger.Warn().
			Str("property_id", recommendation.PropertyID).
			Msg("assistant recommended a property not in the catalog")
		metrics.RecordAssistantRequest("malformed", time.Since(start))
		return nil, ErrUnavailable
	}

	metrics.RecordAssistantRequest("success", time.Since(start))
	c.logger.Debug().
		Str("property_id", recommendation.PropertyID).
		Dur("latency", time.Since(start)).
		Msg("assistant recommendation produced")

	return recommendation, nil
}

// doRequest performs one chat-completions POST. Transport errors and
// non-200 statuses are breaker failures.
func (c *Client) doRequest(ctx context.Context, request *chatRequest) (*chatResponse, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var reply chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &reply, nil
}

// propertyExists reports whether id names a record in the snapshot.
func propertyExists(properties []models.Property, id string) bool {
	for i := range properties {
		if properties[i].ID == id {
			return true
		}
	}
	return false
}

// chatRequest is the chat-completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the slice of the chat-completions reply we consume.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// content returns the first choice's message text, or "".
func (r *chatResponse) content() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// stateToFloat converts breaker state to the metric encoding.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts breaker state to a label value.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
