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

type vaccineRequest struct {
	Name             string  `json:"name" validate:"required,min=1,max=200"`
	DateAdministered string  `json:"date_administered" validate:"required"`
	NextDueDate      *string `json:"next_due_date"`
	Clinic           *string `json:"clinic" validate:"omitempty,max=200"`
	Notes            *string `json:"notes" validate:"omitempty,max=2000"`
	DocumentURL      *string `json:"document_url" validate:"omitempty,max=500"`
}

func (req *vaccineRequest) apply(v *models.Vaccine) error {
	administered, err := optionalTime(&req.DateAdministered)
	if err != nil {
		return err
	}
	nextDue, err := optionalTime(req.NextDueDate)
	if err != nil {
		return err
	}
	v.Name = req.Name
	v.DateAdministered = *administered
	v.NextDueDate = nextDue
	v.Clinic = req.Clinic
	v.Notes = req.Notes
	v.DocumentURL = req.DocumentURL
	return nil
}

// CreateVaccine records an administered vaccine for one of the user's pets.
func (h *Handler) CreateVaccine(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	pet, ok := h.ownedPet(w, r, userID)
	if !ok {
		return
	}
	var req vaccineRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	record := &models.Vaccine{PetID: pet.ID}
	if err := req.apply(record); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	created, err := h.store.CreateVaccine(r.Context(), record)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	respondSuccess(w, http.StatusCreated, created)
}

// ListVaccines returns a pet's vaccine records.
func (h *Handler) ListVaccines(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	pet, ok := h.ownedPet(w, r, userID)
	if !ok {
		return
	}
	records, err := h.store.VaccinesByPet(r.Context(), pet.ID)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	if records == nil {
		records = []models.Vaccine{}
	}
	respondSuccess(w, http.StatusOK, records)
}

// UpdateVaccine rewrites one vaccine record owned by the user.
func (h *Handler) UpdateVaccine(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r, "recordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid record id", nil)
		return
	}
	record, err := h.store.VaccineByIDForUser(r.Context(), id, userID)
	if err != nil {
		respondStoreError(w, err, "Vaccine not found")
		return
	}
	var req vaccineRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := req.apply(record); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	updated, err := h.store.UpdateVaccine(r.Context(), record)
	if err != nil {
		respondStoreError(w, err, "Vaccine not found")
		return
	}
	respondSuccess(w, http.StatusOK, updated)
}

// DeleteVaccine removes one vaccine record owned by the user.
func (h *Handler) DeleteVaccine(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r, "recordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid record id", nil)
		return
	}
	if err := h.store.DeleteVaccine(r.Context(), id, userID); err != nil {
		respondStoreError(w, err, "Vaccine not found")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]int64{"deleted": id})
}
