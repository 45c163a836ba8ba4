// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

// Package notify implements the real-time reminder dispatcher: a per-user
// WebSocket connection registry, the authenticated session protocol, and the
// periodic scanner that turns medication and feeding schedules into at most
// one reminder per occurrence per day.
package notify
