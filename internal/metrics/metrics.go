// Pralina - Artisan Confectionery Storefront and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pralina

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Recommendation engine throughput and latency per strategy
// - API endpoint latency and status codes
// - Database query performance (DuckDB)
// - Interaction ingestion volume

var (
	// Recommendation Engine Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests by strategy",
		},
		[]string{"method", "fell_back"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation computation in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Database Metrics
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
		[]string{"operation", "table"},
	)

	// Interaction Metrics
	InteractionsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_ingested_total",
			Help: "Total number of interaction records accepted",
		},
		[]string{"kind"},
	)
)

// RecordRecommendation tracks one recommendation computation.
func RecordRecommendation(method string, fellBack bool, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(method, strconv.FormatBool(fellBack)).Inc()
	RecommendationDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordAPIRequest tracks a completed API request.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDBQuery tracks a database query.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordInteraction tracks an accepted interaction record.
func RecordInteraction(kind string) {
	InteractionsIngested.WithLabelValues(kind).Inc()
}

// TrackActiveRequest increments the in-flight gauge and returns a done func.
//
//	defer metrics.TrackActiveRequest()()
func TrackActiveRequest() func() {
	APIActiveRequests.Inc()
	return APIActiveRequests.Dec
}
