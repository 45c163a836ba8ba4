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

type weightRequest struct {
	Datetime *string `json:"datetime"`
	WeightKg float64 `json:"weight_kg" validate:"required,gt=0"`
	Notes    *string `json:"notes" validate:"omitempty,max=2000"`
}

func (req *weightRequest) apply(entry *models.WeightEntry) error {
	at, err := optionalTime(req.Datetime)
	if err != nil {
		return err
	}
	if at == nil {
		now := time.Now().UTC()
		at = &now
	}
	entry.Datetime = *at
	entry.WeightKg = req.WeightKg
	entry.Notes = req.Notes
	return nil
}

// CreateWeight logs a weight measurement; the pet profile's current weight
// follows it.
func (h *Handler) CreateWeight(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	pet, ok := h.ownedPet(w, r, userID)
	if !ok {
		return
	}
	var req weightRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	entry := &models.WeightEntry{PetID: pet.ID}
	if err := req.apply(entry); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	created, err := h.store.CreateWeight(r.Context(), entry)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	respondSuccess(w, http.StatusCreated, created)
}

// ListWeights returns a pet's weight history.
func (h *Handler) ListWeights(w http.ResponseWriter, r *http.Request) {
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
	entries, err := h.store.WeightsByPet(r.Context(), pet.ID, filter)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	if entries == nil {
		entries = []models.WeightEntry{}
	}
	respondSuccess(w, http.StatusOK, entries)
}

// UpdateWeight rewrites one weight entry owned by the user.
func (h *Handler) UpdateWeight(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r, "recordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid record id", nil)
		return
	}
	entry, err := h.store.WeightByIDForUser(r.Context(), id, userID)
	if err != nil {
		respondStoreError(w, err, "Weight entry not found")
		return
	}
	var req weightRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := req.apply(entry); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	updated, err := h.store.UpdateWeight(r.Context(), entry)
	if err != nil {
		respondStoreError(w, err, "Weight entry not found")
		return
	}
	respondSuccess(w, http.StatusOK, updated)
}

// DeleteWeight removes one weight entry owned by the user.
func (h *Handler) DeleteWeight(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r, "recordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid record id", nil)
		return
	}
	if err := h.store.DeleteWeight(r.Context(), id, userID); err != nil {
		respondStoreError(w, err, "Weight entry not found")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]int64{"deleted": id})
}
