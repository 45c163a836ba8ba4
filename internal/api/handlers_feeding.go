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

type feedingRequest struct {
	Datetime           *string  `json:"datetime"`
	FoodType           string   `json:"food_type" validate:"required,min=1,max=120"`
	PlannedAmountGrams *float64 `json:"planned_amount_grams" validate:"omitempty,gt=0"`
	ActualAmountGrams  float64  `json:"actual_amount_grams" validate:"required,gt=0"`
	Notes              *string  `json:"notes" validate:"omitempty,max=2000"`
}

func (req *feedingRequest) apply(f *models.FeedingLog) error {
	at, err := optionalTime(req.Datetime)
	if err != nil {
		return err
	}
	if at == nil {
		now := time.Now().UTC()
		at = &now
	}
	f.Datetime = *at
	f.FoodType = req.FoodType
	f.PlannedAmountGrams = req.PlannedAmountGrams
	f.ActualAmountGrams = req.ActualAmountGrams
	f.Notes = req.Notes
	return nil
}

// CreateFeeding logs a feeding for one of the user's pets.
func (h *Handler) CreateFeeding(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	pet, ok := h.ownedPet(w, r, userID)
	if !ok {
		return
	}
	var req feedingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	entry := &models.FeedingLog{PetID: pet.ID}
	if err := req.apply(entry); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	created, err := h.store.CreateFeeding(r.Context(), entry)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	respondSuccess(w, http.StatusCreated, created)
}

// ListFeedings returns a pet's feeding history with optional date filters.
func (h *Handler) ListFeedings(w http.ResponseWriter, r *http.Request) {
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
	entries, err := h.store.FeedingsByPet(r.Context(), pet.ID, filter)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	if entries == nil {
		entries = []models.FeedingLog{}
	}
	respondSuccess(w, http.StatusOK, entries)
}

// UpdateFeeding rewrites one feeding entry owned by the user.
func (h *Handler) UpdateFeeding(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r, "recordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid record id", nil)
		return
	}
	entry, err := h.store.FeedingByIDForUser(r.Context(), id, userID)
	if err != nil {
		respondStoreError(w, err, "Feeding entry not found")
		return
	}
	var req feedingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := req.apply(entry); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	updated, err := h.store.UpdateFeeding(r.Context(), entry)
	if err != nil {
		respondStoreError(w, err, "Feeding entry not found")
		return
	}
	respondSuccess(w, http.StatusOK, updated)
}

// DeleteFeeding removes one feeding entry owned by the user.
func (h *Handler) DeleteFeeding(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r, "recordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid record id", nil)
		return
	}
	if err := h.store.DeleteFeeding(r.Context(), id, userID); err != nil {
		respondStoreError(w, err, "Feeding entry not found")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]int64{"deleted": id})
}
