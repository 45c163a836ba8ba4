// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package notify

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pwelltrack/pwelltrack/internal/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 32
)

// Client is one authenticated notification connection. The registry and the
// scanner only ever touch the buffered send channel; the two pump goroutines
// own the underlying socket.
type Client struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once
}

func newClient(userID int64, conn *websocket.Conn) *Client {
	return &Client{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
}

// UserID returns the owning user.
func (c *Client) UserID() int64 { return c.userID }

// shutdown stops the write pump. The send channel is never closed, so
// concurrent best-effort enqueues after unregistration are harmless drops
// rather than panics.
func (c *Client) shutdown() {
	c.once.Do(func() { close(c.done) })
}

// enqueue offers a payload to the write pump without blocking.
func (c *Client) enqueue(payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// writePump serializes all writes to the socket: queued payloads and
// keepalive ping frames.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case payload := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop blocks on inbound frames until the peer disconnects or the
// socket errors. A literal "ping" text frame gets a literal "pong" reply;
// every other shape is ignored for forward compatibility. The deferred
// unregister runs on every exit path.
func (c *Client) readLoop(registry *Registry) {
	defer func() {
		registry.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logging.Debug().Err(err).Int64("user_id", c.userID).
					Msg("notification connection closed unexpectedly")
			}
			return
		}
		if string(data) == livenessPing {
			c.enqueue([]byte(livenessPong))
		}
	}
}
