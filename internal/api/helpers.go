// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/pwelltrack/pwelltrack/internal/database"
	"github.com/pwelltrack/pwelltrack/internal/logging"
	"github.com/pwelltrack/pwelltrack/internal/models"
	"github.com/pwelltrack/pwelltrack/internal/validation"
)

const maxBodyBytes = 1 << 20 // 1 MB

func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("failed to write JSON response")
	}
}

func respondSuccess(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

func respondError(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondStoreError maps storage errors onto the API error vocabulary.
func respondStoreError(w http.ResponseWriter, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", notFoundMessage, nil)
	default:
		logging.Error().Err(err).Msg("storage operation failed")
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Internal storage error", nil)
	}
}

// decodeAndValidate reads a JSON body into req and runs struct validation.
// On failure it writes the error response and reports false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", nil)
		return false
	}
	if err := validation.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", validation.Details(err))
		return false
	}
	return true
}

// pathID parses a chi URL parameter as a positive integer ID.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// recordFilter builds a RecordFilter from from/to/limit/offset query
// parameters. Timestamps are RFC 3339; bad values are a 400, not silently
// dropped.
func recordFilter(r *http.Request) (database.RecordFilter, error) {
	var filter database.RecordFilter
	q := r.URL.Query()

	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, fmt.Errorf("invalid from timestamp %q", raw)
		}
		filter.From = &t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, fmt.Errorf("invalid to timestamp %q", raw)
		}
		filter.To = &t
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, fmt.Errorf("invalid limit %q", raw)
		}
		filter.Limit = n
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, fmt.Errorf("invalid offset %q", raw)
		}
		filter.Offset = n
	}
	return filter, nil
}

// ownedPet resolves {petID} and verifies the authenticated user owns it.
// Writes the error response itself on failure.
func (h *Handler) ownedPet(w http.ResponseWriter, r *http.Request, userID int64) (*models.Pet, bool) {
	petID, err := pathID(r, "petID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid pet id", nil)
		return nil, false
	}
	pet, err := h.store.PetByIDForUser(r.Context(), petID, userID)
	if err != nil {
		respondStoreError(w, err, "Pet not found")
		return nil, false
	}
	return pet, true
}

// optionalTime parses a nullable RFC 3339 date string from a request body.
func optionalTime(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, *raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid timestamp %q", *raw)
}
