// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

/*
Package metrics provides Prometheus metrics collection and export.

All metrics register through promauto at package init and are exposed
at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8460/metrics

# Available Metrics

Ranking Engine:
  - rank_requests_total: Ranking requests (counter)
    Labels: mode (plain, detailed), outcome (success, invalid, canceled)
  - rank_duration_seconds: Ranking latency (histogram)
    Labels: mode
  - rank_properties_scored_total: Properties scored (counter)
  - rank_candidate_count: Catalog candidates per request (histogram)

Catalog:
  - catalog_loads_total: Load attempts (counter)
    Labels: outcome (success, failure)
  - catalog_properties: Active snapshot size (gauge)
  - catalog_records_skipped_total: Malformed records skipped (counter)
    Labels: reason
  - catalog_coordinate_entries: Coordinate index size (gauge)

API:
  - api_requests_total: HTTP requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Assistant:
  - assistant_requests_total: Completion calls (counter)
    Labels: outcome (success, failure, rejected, parse_failed)
  - assistant_request_duration_seconds: Call latency (histogram)
  - circuit_breaker_state: Breaker state (gauge, 0=closed 1=half-open 2=open)
  - circuit_breaker_requests_total / circuit_breaker_state_transitions_total

Auth:
  - auth_operations_total: Register/login/refresh outcomes (counter)
  - auth_token_validations_total: JWT validation results (counter)
  - auth_accounts: Registered accounts (gauge)

Infrastructure:
  - duckdb_query_duration_seconds / duckdb_query_errors_total
  - nats_messages_published_total / nats_messages_consumed_total / nats_publish_errors_total
  - websocket_connections / websocket_messages_sent_total / websocket_messages_dropped_total
  - app_info / app_uptime_seconds

# Usage

Record helpers keep call sites one-liners:

	start := time.Now()
	results, err := engine.Rank(ctx, criteria, k)
	metrics.RecordRankRequest("plain", outcomeOf(err), len(candidates), time.Since(start))

Example PromQL:

	# Ranking p95 latency
	histogram_quantile(0.95, rate(rank_duration_seconds_bucket[5m]))

	# Skipped catalog records by reason
	sum by (reason) (rate(catalog_records_skipped_total[15m]))

# Cardinality

Endpoint labels use chi route patterns (no IDs or query strings), error
types are truncated constants, and no per-user labels exist.

# Thread Safety

All recording functions are safe for concurrent use; the Prometheus
client handles synchronization internally.
*/
package metrics
