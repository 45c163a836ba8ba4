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

type waterRequest struct {
	Datetime    *string  `json:"datetime"`
	AmountMl    float64  `json:"amount_ml" validate:"required,gt=0"`
	DailyGoalMl *float64 `json:"daily_goal_ml" validate:"omitempty,gt=0"`
}

func (req *waterRequest) apply(entry *models.WaterLog) error {
	at, err := optionalTime(req.Datetime)
	if err != nil {
		return err
	}
	if at == nil {
		now := time.Now().UTC()
		at = &now
	}
	entry.Datetime = *at
	entry.AmountMl = req.AmountMl
	entry.DailyGoalMl = req.DailyGoalMl
	return nil
}

// CreateWater logs a water intake entry for one of the user's pets.
func (h *Handler) CreateWater(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	pet, ok := h.ownedPet(w, r, userID)
	if !ok {
		return
	}
	var req waterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	entry := &models.WaterLog{PetID: pet.ID}
	if err := req.apply(entry); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	created, err := h.store.CreateWater(r.Context(), entry)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	respondSuccess(w, http.StatusCreated, created)
}

// ListWater returns a pet's water intake history.
func (h *Handler) ListWater(w http.ResponseWriter, r *http.Request) {
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
	entries, err := h.store.WaterByPet(r.Context(), pet.ID, filter)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	if entries == nil {
		entries = []models.WaterLog{}
	}
	respondSuccess(w, http.StatusOK, entries)
}

// UpdateWater rewrites one water entry owned by the user.
func (h *Handler) UpdateWater(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r, "recordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid record id", nil)
		return
	}
	entry, err := h.store.WaterByIDForUser(r.Context(), id, userID)
	if err != nil {
		respondStoreError(w, err, "Water entry not found")
		return
	}
	var req waterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := req.apply(entry); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	updated, err := h.store.UpdateWater(r.Context(), entry)
	if err != nil {
		respondStoreError(w, err, "Water entry not found")
		return
	}
	respondSuccess(w, http.StatusOK, updated)
}

// DeleteWater removes one water entry owned by the user.
func (h *Handler) DeleteWater(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r, "recordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid record id", nil)
		return
	}
	if err := h.store.DeleteWater(r.Context(), id, userID); err != nil {
		respondStoreError(w, err, "Water entry not found")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]int64{"deleted": id})
}
