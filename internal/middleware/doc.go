// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

/*
Package middleware provides HTTP middleware shared by the API router.

Key components:

  - RequestID: UUID-based request tracking wired into the logging context
  - PrometheusMetrics: request/response instrumentation
  - Compression: gzip for clients that accept it (websocket upgrades excluded)
  - PerformanceMonitor: sliding-window latency tracking with percentiles,
    surfaced through the admin performance endpoint

Handlers stay plain http.HandlerFunc; the router adapts these to chi
with a one-line wrapper.
*/
package middleware
