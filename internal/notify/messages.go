// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package notify

// Message types on the notification channel.
const (
	MessageTypeAuth               = "auth"
	MessageTypeAuthOK             = "auth_ok"
	MessageTypeMedicationReminder = "medication_reminder"
	MessageTypeFeedingReminder    = "feeding_reminder"
)

// Liveness is carried as bare text frames, not JSON.
const (
	livenessPing = "ping"
	livenessPong = "pong"
)

// authRequest is the first-message credential envelope for handshake path 2.
type authRequest struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

type authOK struct {
	Type string `json:"type"`
}

// MedicationReminder tells the user a dose is due now.
type MedicationReminder struct {
	Type           string `json:"type"`
	PetID          int64  `json:"pet_id"`
	PetName        string `json:"pet_name"`
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	ScheduledTime  string `json:"scheduled_time"`
}

// FeedingReminder tells the user a feeding slot has arrived and the pet has
// not been fed today.
type FeedingReminder struct {
	Type          string `json:"type"`
	PetID         int64  `json:"pet_id"`
	PetName       string `json:"pet_name"`
	ScheduledTime string `json:"scheduled_time"`
}
