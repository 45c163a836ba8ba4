// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package api

import (
	"net/http"
	"time"

	"github.com/pwelltrack/pwelltrack/internal/auth"
	"github.com/pwelltrack/pwelltrack/internal/models"
)

type symptomRequest struct {
	Datetime *string `json:"datetime"`
	Type     string  `json:"type" validate:"required,min=1,max=100"`
	Severity string  `json:"severity" validate:"required,oneof=mild moderate severe"`
	Notes    *string `json:"notes" validate:"omitempty,max=2000"`
}

func (req *symptomRequest) apply(s *models.Symptom) error {
	at, err := optionalTime(req.Datetime)
	if err != nil {
		return err
	}
	if at == nil {
		now := time.Now().UTC()
		at = &now
	}
	s.Datetime = *at
	s.Type = req.Type
	s.Severity = req.Severity
	s.Notes = req.Notes
	return nil
}

// CreateSymptom records an observed symptom for one of the user's pets.
func (h *Handler) CreateSymptom(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	pet, ok := h.ownedPet(w, r, userID)
	if !ok {
		return
	}
	var req symptomRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	record := &models.Symptom{PetID: pet.ID}
	if err := req.apply(record); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	created, err := h.store.CreateSymptom(r.Context(), record)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	respondSuccess(w, http.StatusCreated, created)
}

// ListSymptoms returns a pet's symptom history with optional date filters.
func (h *Handler) ListSymptoms(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	pet, ok := h.ownedPet(w, r, userID)
	if !ok {
		return
	}
	filter, err := recordFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_QUERY", err.Error(), nil)
		return
	}
	records, err := h.store.SymptomsByPet(r.Context(), pet.ID, filter)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	if records == nil {
		records = []models.Symptom{}
	}
	respondSuccess(w, http.StatusOK, records)
}

// UpdateSymptom rewrites one symptom owned by the user.
func (h *Handler) UpdateSymptom(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r, "recordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid record id", nil)
		return
	}
	record, err := h.store.SymptomByIDForUser(r.Context(), id, userID)
	if err != nil {
		respondStoreError(w, err, "Symptom not found")
		return
	}
	var req symptomRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := req.apply(record); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	updated, err := h.store.UpdateSymptom(r.Context(), record)
	if err != nil {
		respondStoreError(w, err, "Symptom not found")
		return
	}
	respondSuccess(w, http.StatusOK, updated)
}

// DeleteSymptom removes one symptom owned by the user.
func (h *Handler) DeleteSymptom(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r, "recordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid record id", nil)
		return
	}
	if err := h.store.DeleteSymptom(r.Context(), id, userID); err != nil {
		respondStoreError(w, err, "Symptom not found")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]int64{"deleted": id})
}
