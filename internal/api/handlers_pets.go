// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/pwelltrack/pwelltrack/internal/auth"
	"github.com/pwelltrack/pwelltrack/internal/models"
)

type petRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=120"`
	Species     string   `json:"species" validate:"required,min=1,max=50"`
	Breed       *string  `json:"breed" validate:"omitempty,max=120"`
	DateOfBirth *string  `json:"date_of_birth"`
	Sex         *string  `json:"sex" validate:"omitempty,oneof=male female unknown"`
	WeightKg    *float64 `json:"weight_kg" validate:"omitempty,gt=0"`
	PhotoURL    *string  `json:"photo_url" validate:"omitempty,max=500"`
	Notes       *string  `json:"notes" validate:"omitempty,max=2000"`
}

func (req *petRequest) apply(p *models.Pet) error {
	dob, err := optionalTime(req.DateOfBirth)
	if err != nil {
		return err
	}
	p.Name = strings.TrimSpace(req.Name)
	p.Species = req.Species
	p.Breed = req.Breed
	p.DateOfBirth = dob
	p.Sex = req.Sex
	p.WeightKg = req.WeightKg
	p.PhotoURL = req.PhotoURL
	p.Notes = req.Notes
	return nil
}

// CreatePet adds a pet profile for the authenticated user.
func (h *Handler) CreatePet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	var req petRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	pet := &models.Pet{UserID: userID}
	if err := req.apply(pet); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	created, err := h.store.CreatePet(r.Context(), pet)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	respondSuccess(w, http.StatusCreated, created)
}

// ListPets returns every pet owned by the authenticated user.
func (h *Handler) ListPets(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	pets, err := h.store.PetsByUser(r.Context(), userID)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	if pets == nil {
		pets = []models.Pet{}
	}
	respondSuccess(w, http.StatusOK, pets)
}

// GetPet returns one pet owned by the authenticated user.
func (h *Handler) GetPet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	pet, ok := h.ownedPet(w, r, userID)
	if !ok {
		return
	}
	respondSuccess(w, http.StatusOK, pet)
}

// UpdatePet replaces the mutable fields of a pet profile.
func (h *Handler) UpdatePet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	pet, ok := h.ownedPet(w, r, userID)
	if !ok {
		return
	}
	var req petRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := req.apply(pet); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	updated, err := h.store.UpdatePet(r.Context(), pet)
	if err != nil {
		respondStoreError(w, err, "Pet not found")
		return
	}
	respondSuccess(w, http.StatusOK, updated)
}

// DeletePet removes a pet and all of its records.
func (h *Handler) DeletePet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	petID, err := pathID(r, "petID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid pet id", nil)
		return
	}
	if err := h.store.DeletePet(r.Context(), petID, userID); err != nil {
		respondStoreError(w, err, "Pet not found")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]int64{"deleted": petID})
}

// PetToday aggregates the pet's current UTC day: feeding and water totals,
// the next week of events, and medication courses active today.
func (h *Handler) PetToday(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	pet, ok := h.ownedPet(w, r, userID)
	if !ok {
		return
	}

	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	feeding, err := h.store.FeedingSummary(r.Context(), pet.ID, dayStart, dayEnd)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	water, err := h.store.WaterSummary(r.Context(), pet.ID, dayStart, dayEnd)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	events, err := h.store.UpcomingEvents(r.Context(), pet.ID, now, now.Add(7*24*time.Hour))
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	meds, err := h.store.ActiveMedications(r.Context(), pet.ID, dayStart)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}

	if events == nil {
		events = []models.Event{}
	}
	if meds == nil {
		meds = []models.Medication{}
	}
	respondSuccess(w, http.StatusOK, models.PetDashboard{
		Feeding:           *feeding,
		Water:             *water,
		UpcomingEvents:    events,
		ActiveMedications: meds,
	})
}
