// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package api

import (
	"net/http"

	"github.com/pwelltrack/pwelltrack/internal/auth"
	"github.com/pwelltrack/pwelltrack/internal/models"
)

type medicationRequest struct {
	Name            string   `json:"name" validate:"required,min=1,max=200"`
	Dosage          string   `json:"dosage" validate:"required,min=1,max=100"`
	FrequencyPerDay int      `json:"frequency_per_day" validate:"required,gte=1,lte=24"`
	StartDate       string   `json:"start_date" validate:"required"`
	EndDate         *string  `json:"end_date"`
	TimesOfDay      []string `json:"times_of_day" validate:"omitempty,dive,hhmm"`
	Notes           *string  `json:"notes" validate:"omitempty,max=2000"`
}

func (req *medicationRequest) apply(m *models.Medication) error {
	start, err := optionalTime(&req.StartDate)
	if err != nil {
		return err
	}
	end, err := optionalTime(req.EndDate)
	if err != nil {
		return err
	}
	m.Name = req.Name
	m.Dosage = req.Dosage
	m.FrequencyPerDay = req.FrequencyPerDay
	m.StartDate = *start
	m.EndDate = end
	m.TimesOfDay = req.TimesOfDay
	m.Notes = req.Notes
	return nil
}

// CreateMedication starts a medication course for one of the user's pets.
// The reminder scanner picks it up on its next cycle; no restart needed.
func (h *Handler) CreateMedication(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	pet, ok := h.ownedPet(w, r, userID)
	if !ok {
		return
	}
	var req medicationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	course := &models.Medication{PetID: pet.ID}
	if err := req.apply(course); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	created, err := h.store.CreateMedication(r.Context(), course)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	respondSuccess(w, http.StatusCreated, created)
}

// ListMedications returns a pet's medication courses.
func (h *Handler) ListMedications(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	pet, ok := h.ownedPet(w, r, userID)
	if !ok {
		return
	}
	courses, err := h.store.MedicationsByPet(r.Context(), pet.ID)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	if courses == nil {
		courses = []models.Medication{}
	}
	respondSuccess(w, http.StatusOK, courses)
}

// UpdateMedication rewrites one medication course owned by the user.
func (h *Handler) UpdateMedication(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r, "recordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid record id", nil)
		return
	}
	course, err := h.store.MedicationByIDForUser(r.Context(), id, userID)
	if err != nil {
		respondStoreError(w, err, "Medication not found")
		return
	}
	var req medicationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := req.apply(course); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	updated, err := h.store.UpdateMedication(r.Context(), course)
	if err != nil {
		respondStoreError(w, err, "Medication not found")
		return
	}
	respondSuccess(w, http.StatusOK, updated)
}

// DeleteMedication ends one medication course owned by the user.
func (h *Handler) DeleteMedication(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r, "recordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid record id", nil)
		return
	}
	if err := h.store.DeleteMedication(r.Context(), id, userID); err != nil {
		respondStoreError(w, err, "Medication not found")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]int64{"deleted": id})
}
