// VillaRank - Vacation Rental Search and Recommendation Engine
// Copyright 2026 The VillaRank Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/villarank/villarank

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPrometheusMetrics_PassesThrough(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		if _, err := w.Write([]byte("short and stout")); err != nil {
			t.Errorf("Write failed: %v", err)
		}
	})

	wrappedHandler := PrometheusMetrics(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search", nil)
	rec := httptest.NewRecorder()

	wrappedHandler(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if rec.Body.String() != "short and stout" {
		t.Errorf("Body = %q, want %q", rec.Body.String(), "short and stout")
	}
}

func TestPrometheusMetrics_DefaultStatusOK(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Write without an explicit WriteHeader.
		if _, err := w.Write([]byte("ok")); err != nil {
			t.Errorf("Write failed: %v", err)
		}
	})

	wrappedHandler := PrometheusMetrics(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	rec := httptest.NewRecorder()

	wrappedHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestMetricsResponseWriter_CapturesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapper := &metricsResponseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	wrapper.WriteHeader(http.StatusNotFound)

	if wrapper.statusCode != http.StatusNotFound {
		t.Errorf("statusCode = %d, want %d", wrapper.statusCode, http.StatusNotFound)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Underlying status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
