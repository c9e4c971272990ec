// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Ranking engine throughput and latency
// - Catalog loads and malformed-record skips
// - API endpoint latency and throughput
// - Assistant calls and circuit breaker state
// - Auth operations
// - Analytics store (DuckDB) queries
// - Event bus (NATS) publishes/consumes
// - WebSocket connections

var (
	// Ranking Engine Metrics
	RankRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rank_requests_total",
			Help: "Total number of ranking requests",
		},
		[]string{"mode", "outcome"}, // mode: "plain", "detailed"; outcome: "success", "invalid", "canceled"
	)

	RankDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rank_duration_seconds",
			Help:    "Duration of ranking requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"mode"},
	)

	RankPropertiesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rank_properties_scored_total",
			Help: "Total number of properties scored across all requests",
		},
	)

	RankCandidateCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rank_candidate_count",
			Help:    "Number of catalog candidates per ranking request",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 5000, 10000},
		},
	)

	// Catalog Metrics
	CatalogLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_loads_total",
			Help: "Total number of catalog load attempts",
		},
		[]string{"outcome"}, // "success", "failure"
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_properties",
			Help: "Current number of properties in the active catalog snapshot",
		},
	)

	CatalogRecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_records_skipped_total",
			Help: "Total number of malformed catalog records skipped during load",
		},
		[]string{"reason"}, // "missing_id", "missing_location", "bad_price", "bad_coordinates", "parse"
	)

	CatalogCoordinateEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_coordinate_entries",
			Help: "Current number of location names in the coordinate index",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Assistant Metrics
	AssistantRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_requests_total",
			Help: "Total number of assistant completion requests",
		},
		[]string{"outcome"}, // "success", "failure", "rejected", "parse_failed"
	)

	AssistantRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assistant_request_duration_seconds",
			Help:    "Duration of assistant completion calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Auth Metrics
	AuthOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_operations_total",
			Help: "Total number of authentication operations",
		},
		[]string{"operation", "outcome"}, // operation: "register", "login", "refresh"; outcome: "success", "failure"
	)

	AuthTokenValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_token_validations_total",
			Help: "Total number of JWT validation attempts",
		},
		[]string{"result"}, // "valid", "expired", "invalid"
	)

	AuthAccounts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "auth_accounts",
			Help: "Current number of registered accounts",
		},
	)

	// Analytics Store Metrics (DuckDB)
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// Event Bus Metrics (NATS)
	NATSMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_messages_published_total",
			Help: "Total number of messages published to NATS",
		},
		[]string{"topic"},
	)

	NATSMessagesConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_messages_consumed_total",
			Help: "Total number of messages consumed from NATS",
		},
		[]string{"topic"},
	)

	NATSPublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_publish_errors_total",
			Help: "Total number of failed NATS publishes",
		},
		[]string{"topic"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSMessagesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_dropped_total",
			Help: "Total number of WebSocket messages dropped (slow clients)",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordRankRequest records a ranking request outcome.
func RecordRankRequest(mode, outcome string, candidates int, duration time.Duration) {
	RankRequestsTotal.WithLabelValues(mode, outcome).Inc()
	if outcome == "success" {
		RankDuration.WithLabelValues(mode).Observe(duration.Seconds())
		RankCandidateCount.Observe(float64(candidates))
		RankPropertiesScored.Add(float64(candidates))
	}
}

// RecordCatalogLoad records a catalog load attempt and, on success, the
// resulting snapshot size.
func RecordCatalogLoad(size int, err error) {
	if err != nil {
		CatalogLoads.WithLabelValues("failure").Inc()
		return
	}
	CatalogLoads.WithLabelValues("success").Inc()
	CatalogSize.Set(float64(size))
}

// RecordCatalogSkip records a malformed catalog record being skipped.
func RecordCatalogSkip(reason string) {
	CatalogRecordsSkipped.WithLabelValues(reason).Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAssistantRequest records an assistant call outcome.
func RecordAssistantRequest(outcome string, duration time.Duration) {
	AssistantRequests.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		AssistantRequestDuration.Observe(duration.Seconds())
	}
}

// RecordAuthOperation records an auth operation outcome.
func RecordAuthOperation(operation string, success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	AuthOperations.WithLabelValues(operation, outcome).Inc()
}

// RecordTokenValidation records a JWT validation attempt.
func RecordTokenValidation(result string) {
	AuthTokenValidations.WithLabelValues(result).Inc()
}

// RecordDBQuery records an analytics store query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordNATSPublish records a message publish attempt.
func RecordNATSPublish(topic string, err error) {
	if err != nil {
		NATSPublishErrors.WithLabelValues(topic).Inc()
		return
	}
	NATSMessagesPublished.WithLabelValues(topic).Inc()
}

// RecordNATSConsume records a message being consumed from NATS.
func RecordNATSConsume(topic string) {
	NATSMessagesConsumed.WithLabelValues(topic).Inc()
}
