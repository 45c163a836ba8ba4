// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

// Package metrics registers the process-wide Prometheus collectors. All
// collectors use promauto against the default registry and are exposed on
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
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

	// WebSocket metrics
	WSConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_connections_active",
			Help: "Current number of authenticated notification WebSocket connections",
		},
	)

	WSAuthFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ws_auth_failures_total",
			Help: "Total number of WebSocket handshakes rejected for bad or missing tokens",
		},
	)

	WSMessagesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ws_messages_dropped_total",
			Help: "Total number of outbound WebSocket messages dropped on slow connections",
		},
	)

	// Reminder scanner metrics
	RemindersSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminders_sent_total",
			Help: "Total number of reminders delivered, by type",
		},
		[]string{"type"}, // "medication", "feeding"
	)

	RemindersDeduplicated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reminders_deduplicated_total",
			Help: "Total number of due reminders suppressed by the sent ledger",
		},
	)

	ScanCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reminder_scan_duration_seconds",
			Help:    "Duration of one reminder scan cycle in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ScanCycleErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reminder_scan_errors_total",
			Help: "Total number of reminder scan cycles that failed",
		},
	)
)
