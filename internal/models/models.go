// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

// Package models defines the domain entities shared across the storage,
// API, and notification layers.
package models

import "time"

// User is an account holder. Timezone is an IANA identifier ("Europe/Berlin")
// used to evaluate reminder schedules in the user's local time.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PhotoURL     *string   `json:"photo_url,omitempty"`
	Timezone     string    `json:"timezone"`
	Language     string    `json:"language"`
	CreatedAt    time.Time `json:"created_at"`
}

// Pet is a single animal profile owned by exactly one user.
type Pet struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	Breed       *string    `json:"breed,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Sex         *string    `json:"sex,omitempty"`
	WeightKg    *float64   `json:"weight_kg,omitempty"`
	PhotoURL    *string    `json:"photo_url,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// FeedingLog records one feeding of a pet.
type FeedingLog struct {
	ID                 int64     `json:"id"`
	PetID              int64     `json:"pet_id"`
	Datetime           time.Time `json:"datetime"`
	FoodType           string    `json:"food_type"`
	PlannedAmountGrams *float64  `json:"planned_amount_grams,omitempty"`
	ActualAmountGrams  float64   `json:"actual_amount_grams"`
	Notes              *string   `json:"notes,omitempty"`
}

// WaterLog records one water intake entry.
type WaterLog struct {
	ID          int64     `json:"id"`
	PetID       int64     `json:"pet_id"`
	Datetime    time.Time `json:"datetime"`
	AmountMl    float64   `json:"amount_ml"`
	DailyGoalMl *float64  `json:"daily_goal_ml,omitempty"`
}

// WeightEntry is one point in a pet's weight history.
type WeightEntry struct {
	ID       int64     `json:"id"`
	PetID    int64     `json:"pet_id"`
	Datetime time.Time `json:"datetime"`
	WeightKg float64   `json:"weight_kg"`
	Notes    *string   `json:"notes,omitempty"`
}

// Vaccine records an administered vaccine and its next due date.
type Vaccine struct {
	ID               int64      `json:"id"`
	PetID            int64      `json:"pet_id"`
	Name             string     `json:"name"`
	DateAdministered time.Time  `json:"date_administered"`
	NextDueDate      *time.Time `json:"next_due_date,omitempty"`
	Clinic           *string    `json:"clinic,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	DocumentURL      *string    `json:"document_url,omitempty"`
}

// Medication is a prescribed course with a daily time-of-day schedule.
// TimesOfDay entries are "HH:MM" strings, e.g. ["08:00", "20:00"].
// The course is active on a given day d when StartDate <= d and
// (EndDate is nil or EndDate >= d).
type Medication struct {
	ID              int64      `json:"id"`
	PetID           int64      `json:"pet_id"`
	Name            string     `json:"name"`
	Dosage          string     `json:"dosage"`
	FrequencyPerDay int        `json:"frequency_per_day"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	TimesOfDay      []string   `json:"times_of_day,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

// ActiveOn reports whether the medication course covers day d.
// Only calendar dates are compared; times and locations are ignored.
func (m *Medication) ActiveOn(d time.Time) bool {
	day := midnightUTC(d)
	if midnightUTC(m.StartDate).After(day) {
		return false
	}
	return m.EndDate == nil || !midnightUTC(*m.EndDate).Before(day)
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Event is a calendar entry for a pet (vet visit, grooming, etc.).
type Event struct {
	ID                    int64     `json:"id"`
	PetID                 int64     `json:"pet_id"`
	Type                  string    `json:"type"`
	Title                 string    `json:"title"`
	DatetimeStart         time.Time `json:"datetime_start"`
	DurationMinutes       *int      `json:"duration_minutes,omitempty"`
	Location              *string   `json:"location,omitempty"`
	Notes                 *string   `json:"notes,omitempty"`
	ReminderMinutesBefore *int      `json:"reminder_minutes_before,omitempty"`
}

// Symptom records an observed health symptom.
type Symptom struct {
	ID       int64     `json:"id"`
	PetID    int64     `json:"pet_id"`
	Datetime time.Time `json:"datetime"`
	Type     string    `json:"type"`
	Severity string    `json:"severity"`
	Notes    *string   `json:"notes,omitempty"`
}

// SentNotification is the persisted dedup ledger row. The storage layer
// enforces uniqueness on (UserID, NotificationKey, SentDate); the scanner
// never delivers a reminder whose row already exists.
type SentNotification struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	NotificationKey string    `json:"notification_key"`
	SentDate        time.Time `json:"sent_date"`
	CreatedAt       time.Time `json:"created_at"`
}
