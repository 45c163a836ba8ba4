// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

// Package api implements the HTTP surface: account management, pet profiles,
// the per-pet record collections, the today dashboard, and the health
// endpoint. The websocket notification endpoint lives in internal/notify and
// is mounted by the router here.
package api

import (
	"context"
	"time"

	"github.com/pwelltrack/pwelltrack/internal/auth"
	"github.com/pwelltrack/pwelltrack/internal/config"
	"github.com/pwelltrack/pwelltrack/internal/database"
	"github.com/pwelltrack/pwelltrack/internal/models"
)

// UserStore covers the account operations.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUserProfile(ctx context.Context, u *models.User) error
}

// PetStore covers pet profiles and the dashboard aggregates.
type PetStore interface {
	CreatePet(ctx context.Context, p *models.Pet) (*models.Pet, error)
	PetsByUser(ctx context.Context, userID int64) ([]models.Pet, error)
	PetByIDForUser(ctx context.Context, petID, userID int64) (*models.Pet, error)
	UpdatePet(ctx context.Context, p *models.Pet) (*models.Pet, error)
	DeletePet(ctx context.Context, petID, userID int64) error

	FeedingSummary(ctx context.Context, petID int64, start, end time.Time) (*models.FeedingSummary, error)
	WaterSummary(ctx context.Context, petID int64, start, end time.Time) (*models.WaterSummary, error)
	UpcomingEvents(ctx context.Context, petID int64, from, to time.Time) ([]models.Event, error)
	ActiveMedications(ctx context.Context, petID int64, day time.Time) ([]models.Medication, error)
}

// RecordStore covers the per-pet record collections.
type RecordStore interface {
	CreateFeeding(ctx context.Context, f *models.FeedingLog) (*models.FeedingLog, error)
	FeedingsByPet(ctx context.Context, petID int64, filter database.RecordFilter) ([]models.FeedingLog, error)
	FeedingByIDForUser(ctx context.Context, id, userID int64) (*models.FeedingLog, error)
	UpdateFeeding(ctx context.Context, f *models.FeedingLog) (*models.FeedingLog, error)
	DeleteFeeding(ctx context.Context, id, userID int64) error

	CreateWater(ctx context.Context, w *models.WaterLog) (*models.WaterLog, error)
	WaterByPet(ctx context.Context, petID int64, filter database.RecordFilter) ([]models.WaterLog, error)
	WaterByIDForUser(ctx context.Context, id, userID int64) (*models.WaterLog, error)
	UpdateWater(ctx context.Context, w *models.WaterLog) (*models.WaterLog, error)
	DeleteWater(ctx context.Context, id, userID int64) error

	CreateWeight(ctx context.Context, w *models.WeightEntry) (*models.WeightEntry, error)
	WeightsByPet(ctx context.Context, petID int64, filter database.RecordFilter) ([]models.WeightEntry, error)
	WeightByIDForUser(ctx context.Context, id, userID int64) (*models.WeightEntry, error)
	UpdateWeight(ctx context.Context, w *models.WeightEntry) (*models.WeightEntry, error)
	DeleteWeight(ctx context.Context, id, userID int64) error

	CreateVaccine(ctx context.Context, v *models.Vaccine) (*models.Vaccine, error)
	VaccinesByPet(ctx context.Context, petID int64) ([]models.Vaccine, error)
	VaccineByIDForUser(ctx context.Context, id, userID int64) (*models.Vaccine, error)
	UpdateVaccine(ctx context.Context, v *models.Vaccine) (*models.Vaccine, error)
	DeleteVaccine(ctx context.Context, id, userID int64) error

	CreateMedication(ctx context.Context, m *models.Medication) (*models.Medication, error)
	MedicationsByPet(ctx context.Context, petID int64) ([]models.Medication, error)
	MedicationByIDForUser(ctx context.Context, id, userID int64) (*models.Medication, error)
	UpdateMedication(ctx context.Context, m *models.Medication) (*models.Medication, error)
	DeleteMedication(ctx context.Context, id, userID int64) error

	CreateEvent(ctx context.Context, e *models.Event) (*models.Event, error)
	EventsByPet(ctx context.Context, petID int64, filter database.RecordFilter) ([]models.Event, error)
	EventByIDForUser(ctx context.Context, id, userID int64) (*models.Event, error)
	UpdateEvent(ctx context.Context, e *models.Event) (*models.Event, error)
	DeleteEvent(ctx context.Context, id, userID int64) error

	CreateSymptom(ctx context.Context, s *models.Symptom) (*models.Symptom, error)
	SymptomsByPet(ctx context.Context, petID int64, filter database.RecordFilter) ([]models.Symptom, error)
	SymptomByIDForUser(ctx context.Context, id, userID int64) (*models.Symptom, error)
	UpdateSymptom(ctx context.Context, s *models.Symptom) (*models.Symptom, error)
	DeleteSymptom(ctx context.Context, id, userID int64) error
}

// Store is the full storage surface the handlers need. *database.Database
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	UserStore
	PetStore
	RecordStore
	Ping(ctx context.Context) error
}

// Handler carries the dependencies shared by all HTTP handlers.
type Handler struct {
	store        Store
	tokens       *auth.TokenManager
	registerRate *auth.AttemptLimiter
	loginRate    *auth.AttemptLimiter
	bcryptCost   int
}

// NewHandler wires the handler set.
func NewHandler(store Store, tokens *auth.TokenManager, cfg *config.SecurityConfig) *Handler {
	return &Handler{
		store:        store,
		tokens:       tokens,
		registerRate: auth.NewAttemptLimiter(cfg.RegisterPerMinute),
		loginRate:    auth.NewAttemptLimiter(cfg.LoginPerMinute),
		bcryptCost:   cfg.BcryptCost,
	}
}
