// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pwelltrack/pwelltrack/internal/auth"
	"github.com/pwelltrack/pwelltrack/internal/database"
	"github.com/pwelltrack/pwelltrack/internal/logging"
	"github.com/pwelltrack/pwelltrack/internal/models"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=120"`
	PhotoURL *string `json:"photo_url" validate:"omitempty,max=500"`
	Timezone string  `json:"timezone" validate:"required,iana_tz"`
	Language string  `json:"language" validate:"omitempty,bcp47_language_tag"`
}

// Register creates an account and signs the user in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !h.registerRate.Allow(email) {
		respondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many registration attempts", nil)
		return
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		logging.Error().Err(err).Msg("failed to hash password")
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create account", nil)
		return
	}

	user, err := h.store.CreateUser(r.Context(), strings.TrimSpace(req.Name), email, hash)
	if err != nil {
		if errors.Is(err, database.ErrEmailTaken) {
			respondError(w, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered", nil)
			return
		}
		respondStoreError(w, err, "")
		return
	}

	h.respondWithToken(w, http.StatusCreated, user)
}

// Login verifies credentials and issues a token. Invalid email and invalid
// password produce the same response so accounts cannot be enumerated.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !h.loginRate.Allow(email) {
		respondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many login attempts", nil)
		return
	}

	user, err := h.store.UserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
			return
		}
		respondStoreError(w, err, "")
		return
	}
	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
		return
	}

	h.respondWithToken(w, http.StatusOK, user)
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}
	user, err := h.store.UserByID(r.Context(), userID)
	if err != nil {
		respondStoreError(w, err, "User not found")
		return
	}
	respondSuccess(w, http.StatusOK, user)
}

// UpdateMe updates the authenticated user's mutable profile fields.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}
	var req updateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.store.UserByID(r.Context(), userID)
	if err != nil {
		respondStoreError(w, err, "User not found")
		return
	}
	user.Name = strings.TrimSpace(req.Name)
	user.PhotoURL = req.PhotoURL
	user.Timezone = req.Timezone
	if req.Language != "" {
		user.Language = req.Language
	}

	if err := h.store.UpdateUserProfile(r.Context(), user); err != nil {
		respondStoreError(w, err, "User not found")
		return
	}
	respondSuccess(w, http.StatusOK, user)
}

// Refresh exchanges a valid token for a fresh one with a full TTL.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}
	user, err := h.store.UserByID(r.Context(), userID)
	if err != nil {
		respondStoreError(w, err, "User not found")
		return
	}
	h.respondWithToken(w, http.StatusOK, user)
}

func (h *Handler) respondWithToken(w http.ResponseWriter, status int, user *models.User) {
	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		logging.Error().Err(err).Int64("user_id", user.ID).Msg("failed to issue token")
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token", nil)
		return
	}
	respondSuccess(w, status, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}
