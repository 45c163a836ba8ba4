// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package notify

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/pwelltrack/pwelltrack/internal/auth"
	"github.com/pwelltrack/pwelltrack/internal/config"
	"github.com/pwelltrack/pwelltrack/internal/database"
	"github.com/pwelltrack/pwelltrack/internal/models"
)

type fakeUserDirectory struct {
	users map[int64]*models.User
}

func (f *fakeUserDirectory) UserByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, database.ErrNotFound
}

type wsFixture struct {
	server   *httptest.Server
	registry *Registry
	tokens   *auth.TokenManager
}

func newWSFixture(t *testing.T, authTimeout time.Duration) *wsFixture {
	t.Helper()
	tokens, err := auth.NewTokenManager(&config.SecurityConfig{
		JWTSecret: "test-secret-test-secret-test-secret!",
		TokenTTL:  time.Hour,
	})
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}

	registry := NewRegistry()
	users := &fakeUserDirectory{users: map[int64]*models.User{
		1: {ID: 1, Name: "Anna", Timezone: "UTC"},
	}}
	handler := NewHandler(registry, tokens, users, authTimeout)
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &wsFixture{server: server, registry: registry, tokens: tokens}
}

func (f *wsFixture) wsURL() string {
	return "ws" + strings.TrimPrefix(f.server.URL, "http")
}

func (f *wsFixture) dial(t *testing.T, query string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL()+query, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return data
}

func expectClose(t *testing.T, conn *websocket.Conn, wantCode int) {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}
	_, _, err := conn.ReadMessage()
	var closeErr *websocket.CloseError
	if !errors.As(err, &closeErr) {
		t.Fatalf("read returned %v, want close error", err)
	}
	if closeErr.Code != wantCode {
		t.Errorf("close code = %d (%q), want %d", closeErr.Code, closeErr.Text, wantCode)
	}
}

func expectAuthOK(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	var msg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(readMessage(t, conn), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != MessageTypeAuthOK {
		t.Fatalf("first message type = %q, want %q", msg.Type, MessageTypeAuthOK)
	}
}

func waitForUsers(t *testing.T, r *Registry, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(r.ConnectedUsers()) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("registry has %d users, want %d", len(r.ConnectedUsers()), want)
}

func TestHandshakeQueryToken(t *testing.T) {
	f := newWSFixture(t, time.Second)
	token, err := f.tokens.Issue(1)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	conn := f.dial(t, "?token="+token)
	expectAuthOK(t, conn)
	waitForUsers(t, f.registry, 1)
}

func TestHandshakeFirstMessageToken(t *testing.T) {
	f := newWSFixture(t, time.Second)
	token, err := f.tokens.Issue(1)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	conn := f.dial(t, "")
	if err := conn.WriteJSON(map[string]string{"type": "auth", "token": token}); err != nil {
		t.Fatalf("write auth message: %v", err)
	}
	expectAuthOK(t, conn)
	waitForUsers(t, f.registry, 1)
}

func TestHandshakeInvalidQueryToken(t *testing.T) {
	f := newWSFixture(t, time.Second)
	conn := f.dial(t, "?token=garbage")
	expectClose(t, conn, CloseInvalidToken)
	waitForUsers(t, f.registry, 0)
}

func TestHandshakeUnknownSubject(t *testing.T) {
	f := newWSFixture(t, time.Second)
	token, err := f.tokens.Issue(999) // no such user
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	conn := f.dial(t, "?token="+token)
	expectClose(t, conn, CloseInvalidToken)
}

func TestHandshakeWrongFirstMessageShape(t *testing.T) {
	f := newWSFixture(t, time.Second)
	conn := f.dial(t, "")
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"hello"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	expectClose(t, conn, CloseAuthIncomplete)
}

func TestHandshakeAuthTimeout(t *testing.T) {
	f := newWSFixture(t, 100*time.Millisecond)
	conn := f.dial(t, "")
	// Send nothing; the server must close the connection on its own.
	expectClose(t, conn, CloseAuthIncomplete)
}

func TestPingPong(t *testing.T) {
	f := newWSFixture(t, time.Second)
	token, err := f.tokens.Issue(1)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	conn := f.dial(t, "?token="+token)
	expectAuthOK(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	if got := string(readMessage(t, conn)); got != "pong" {
		t.Errorf("liveness reply = %q, want %q", got, "pong")
	}
}

func TestUnknownMessagesIgnored(t *testing.T) {
	f := newWSFixture(t, time.Second)
	token, err := f.tokens.Issue(1)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	conn := f.dial(t, "?token="+token)
	expectAuthOK(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"mystery"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	// The connection stays up: a ping still gets its pong.
	if err := conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
		t.Fatalf("write ping: %v", err)
	}
	if got := string(readMessage(t, conn)); got != "pong" {
		t.Errorf("liveness reply = %q, want %q", got, "pong")
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	f := newWSFixture(t, time.Second)
	token, err := f.tokens.Issue(1)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	conn := f.dial(t, "?token="+token)
	expectAuthOK(t, conn)
	waitForUsers(t, f.registry, 1)

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()
	waitForUsers(t, f.registry, 0)
}

func TestReminderReachesConnectedClient(t *testing.T) {
	f := newWSFixture(t, time.Second)
	token, err := f.tokens.Issue(1)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	conn := f.dial(t, "?token="+token)
	expectAuthOK(t, conn)
	waitForUsers(t, f.registry, 1)

	payload, _ := json.Marshal(MedicationReminder{
		Type: MessageTypeMedicationReminder, PetID: 10, PetName: "Rex",
		MedicationName: "Apoquel", Dosage: "16mg", ScheduledTime: "08:00",
	})
	f.registry.SendToUser(1, payload)

	var got MedicationReminder
	if err := json.Unmarshal(readMessage(t, conn), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != MessageTypeMedicationReminder || got.PetName != "Rex" {
		t.Errorf("unexpected reminder: %+v", got)
	}
}
