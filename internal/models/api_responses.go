// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package models

import "time"

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints.
//
// Status is "success" or "error". Data carries the payload on success;
// Error is populated only when Status is "error".
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "NOT_FOUND", "message": "Pet not found"},
//	  "metadata": {"timestamp": "2026-08-28T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
}

// APIError describes a failed request.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// TokenResponse is returned by the register, login, and refresh endpoints.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

// PetDashboard aggregates a pet's current-day activity for the
// /pets/{petID}/today endpoint.
type PetDashboard struct {
	Feeding           FeedingSummary `json:"feeding"`
	Water             WaterSummary   `json:"water"`
	UpcomingEvents    []Event        `json:"upcoming_events"`
	ActiveMedications []Medication   `json:"active_medications"`
}

// FeedingSummary totals today's feeding entries.
type FeedingSummary struct {
	TotalActualGrams  float64  `json:"total_actual_grams"`
	TotalPlannedGrams *float64 `json:"total_planned_grams,omitempty"`
	EntriesCount      int      `json:"entries_count"`
}

// WaterSummary totals today's water entries against the latest daily goal.
type WaterSummary struct {
	TotalMl      float64  `json:"total_ml"`
	DailyGoalMl  *float64 `json:"daily_goal_ml,omitempty"`
	EntriesCount int      `json:"entries_count"`
}
