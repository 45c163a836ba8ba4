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

type eventRequest struct {
	Type                  string  `json:"type" validate:"required,oneof=vet grooming walk training medication other"`
	Title                 string  `json:"title" validate:"required,min=1,max=200"`
	DatetimeStart         string  `json:"datetime_start" validate:"required"`
	DurationMinutes       *int    `json:"duration_minutes" validate:"omitempty,gte=1,lte=1440"`
	Location              *string `json:"location" validate:"omitempty,max=300"`
	Notes                 *string `json:"notes" validate:"omitempty,max=2000"`
	ReminderMinutesBefore *int    `json:"reminder_minutes_before" validate:"omitempty,gte=0,lte=10080"`
}

func (req *eventRequest) apply(e *models.Event) error {
	start, err := optionalTime(&req.DatetimeStart)
	if err != nil {
		return err
	}
	e.Type = req.Type
	e.Title = req.Title
	e.DatetimeStart = *start
	e.DurationMinutes = req.DurationMinutes
	e.Location = req.Location
	e.Notes = req.Notes
	e.ReminderMinutesBefore = req.ReminderMinutesBefore
	return nil
}

// CreateEvent schedules a calendar event for one of the user's pets.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	pet, ok := h.ownedPet(w, r, userID)
	if !ok {
		return
	}
	var req eventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	event := &models.Event{PetID: pet.ID}
	if err := req.apply(event); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	created, err := h.store.CreateEvent(r.Context(), event)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	respondSuccess(w, http.StatusCreated, created)
}

// ListEvents returns a pet's events with optional date filters.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
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
	events, err := h.store.EventsByPet(r.Context(), pet.ID, filter)
	if err != nil {
		respondStoreError(w, err, "")
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	respondSuccess(w, http.StatusOK, events)
}

// UpdateEvent rewrites one event owned by the user.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r, "recordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid record id", nil)
		return
	}
	event, err := h.store.EventByIDForUser(r.Context(), id, userID)
	if err != nil {
		respondStoreError(w, err, "Event not found")
		return
	}
	var req eventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := req.apply(event); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	updated, err := h.store.UpdateEvent(r.Context(), event)
	if err != nil {
		respondStoreError(w, err, "Event not found")
		return
	}
	respondSuccess(w, http.StatusOK, updated)
}

// DeleteEvent removes one event owned by the user.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, err := pathID(r, "recordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid record id", nil)
		return
	}
	if err := h.store.DeleteEvent(r.Context(), id, userID); err != nil {
		respondStoreError(w, err, "Event not found")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]int64{"deleted": id})
}
