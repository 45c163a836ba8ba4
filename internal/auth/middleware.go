// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/pwelltrack/pwelltrack/internal/logging"
)

type contextKey string

// userIDKey stashes the authenticated user ID in the request context.
const userIDKey contextKey = "pwelltrack.user_id"

// UserID extracts the authenticated user ID from a request context.
// The second return is false when the request did not pass Require.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// WithUserID returns a context carrying the given user ID. Exposed for
// handler tests.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Require is chi middleware that validates the Bearer token on every
// request and injects the user ID into the context. Requests without a
// valid token receive 401 and never reach the handler.
func (m *TokenManager) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			unauthorized(w, "missing bearer token")
			return
		}

		userID, err := m.Validate(token)
		if err != nil {
			logging.Debug().Err(err).Msg("rejected bearer token")
			unauthorized(w, "could not validate credentials")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": "error",
		"error":  map[string]string{"code": "UNAUTHORIZED", "message": message},
	})
}
