// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package notify

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/pwelltrack/pwelltrack/internal/auth"
	"github.com/pwelltrack/pwelltrack/internal/database"
	"github.com/pwelltrack/pwelltrack/internal/logging"
	"github.com/pwelltrack/pwelltrack/internal/metrics"
	"github.com/pwelltrack/pwelltrack/internal/models"
)

// Application close codes. Both are auth failures; they are distinct so
// clients can tell a bad credential from a broken handshake.
const (
	CloseInvalidToken   = 4001 // malformed, expired, bad signature, unknown subject
	CloseAuthIncomplete = 4002 // timeout or wrong first-message shape
)

// UserDirectory resolves token subjects to existing accounts.
type UserDirectory interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

// Handler upgrades /ws/notifications requests, runs the auth handshake, and
// hands authenticated connections to the registry.
type Handler struct {
	registry    *Registry
	tokens      *auth.TokenManager
	users       UserDirectory
	authTimeout time.Duration

	upgrader websocket.Upgrader
}

// NewHandler builds the websocket endpoint handler. authTimeout bounds how
// long an unauthenticated connection may sit waiting for its first auth
// message.
func NewHandler(registry *Registry, tokens *auth.TokenManager, users UserDirectory, authTimeout time.Duration) *Handler {
	return &Handler{
		registry:    registry,
		tokens:      tokens,
		users:       users,
		authTimeout: authTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients authenticate with a bearer token, not
			// cookies, so cross-origin upgrades carry no ambient
			// credentials to protect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP implements the dual-path handshake:
//
//  1. token in the "token" query parameter, validated immediately after the
//     upgrade, or
//  2. no query token: the connection is accepted and the first JSON message
//     {"type":"auth","token":...} must arrive within authTimeout.
//
// Either path replies {"type":"auth_ok"} and registers the connection. All
// failures close the socket with an application close code and a reason.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		logging.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	userID, ok := h.authenticate(r, conn)
	if !ok {
		_ = conn.Close()
		return
	}

	client := newClient(userID, conn)
	if err := h.writeJSON(conn, authOK{Type: MessageTypeAuthOK}); err != nil {
		_ = conn.Close()
		return
	}
	h.registry.Register(client)

	go client.writePump()
	client.readLoop(h.registry)
}

// authenticate runs whichever handshake path the request selected and
// resolves the token subject to an existing user. On failure it sends the
// close frame and reports !ok.
func (h *Handler) authenticate(r *http.Request, conn *websocket.Conn) (int64, bool) {
	token := r.URL.Query().Get("token")
	if token == "" {
		var ok bool
		token, ok = h.awaitAuthMessage(conn)
		if !ok {
			return 0, false
		}
	}

	userID, err := h.tokens.Validate(token)
	if err != nil {
		metrics.WSAuthFailures.Inc()
		reason := "invalid token"
		if errors.Is(err, auth.ErrTokenExpired) {
			reason = "token expired"
		}
		h.closeWith(conn, CloseInvalidToken, reason)
		return 0, false
	}

	// The subject must still exist; tokens outlive account deletion.
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := h.users.UserByID(ctx, userID); err != nil {
		metrics.WSAuthFailures.Inc()
		if !errors.Is(err, database.ErrNotFound) {
			logging.Error().Err(err).Int64("user_id", userID).
				Msg("user lookup failed during websocket handshake")
		}
		h.closeWith(conn, CloseInvalidToken, "unknown user")
		return 0, false
	}
	return userID, true
}

// awaitAuthMessage waits for the first-message credential on handshake
// path 2.
func (h *Handler) awaitAuthMessage(conn *websocket.Conn) (string, bool) {
	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(h.authTimeout)); err != nil {
		return "", false
	}

	_, data, err := conn.ReadMessage()
	if err != nil {
		metrics.WSAuthFailures.Inc()
		h.closeWith(conn, CloseAuthIncomplete, "authentication timeout")
		return "", false
	}

	var req authRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Type != MessageTypeAuth || req.Token == "" {
		metrics.WSAuthFailures.Inc()
		h.closeWith(conn, CloseAuthIncomplete, "expected auth message")
		return "", false
	}

	// Back to the steady-state read deadline.
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return "", false
	}
	return req.Token, true
}

func (h *Handler) writeJSON(conn *websocket.Conn, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

func (h *Handler) closeWith(conn *websocket.Conn, code int, reason string) {
	deadline := time.Now().Add(writeWait)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason), deadline)
}
