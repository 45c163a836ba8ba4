// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package notify

import (
	"sync"

	"github.com/pwelltrack/pwelltrack/internal/logging"
	"github.com/pwelltrack/pwelltrack/internal/metrics"
)

// Registry maps user IDs to their live notification connections. A user may
// hold several connections (multiple tabs/devices); each receives every
// message independently.
//
// Register/Unregister and SendToUser run concurrently from session
// goroutines and the scanner. Sends snapshot the user's connection set
// under the read lock, then deliver without holding it, so a slow socket
// never blocks registration.
type Registry struct {
	mu    sync.RWMutex
	conns map[int64]map[*Client]struct{}
}

// NewRegistry creates an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[int64]map[*Client]struct{})}
}

// Register adds an authenticated connection to the user's set.
func (r *Registry) Register(c *Client) {
	r.mu.Lock()
	set, ok := r.conns[c.userID]
	if !ok {
		set = make(map[*Client]struct{})
		r.conns[c.userID] = set
	}
	set[c] = struct{}{}
	total := len(set)
	r.mu.Unlock()

	metrics.WSConnectionsActive.Inc()
	logging.Info().Int64("user_id", c.userID).Int("user_connections", total).
		Msg("notification client connected")
}

// Unregister removes a connection and drops the user's entry when it was the
// last one. Safe to call more than once for the same client.
func (r *Registry) Unregister(c *Client) {
	r.mu.Lock()
	set, ok := r.conns[c.userID]
	if ok {
		if _, present := set[c]; present {
			delete(set, c)
			if len(set) == 0 {
				delete(r.conns, c.userID)
			}
		} else {
			ok = false
		}
	}
	r.mu.Unlock()

	if !ok {
		return
	}
	c.shutdown()
	metrics.WSConnectionsActive.Dec()
	logging.Info().Int64("user_id", c.userID).Msg("notification client disconnected")
}

// SendToUser delivers a payload to every connection the user currently
// holds. Delivery is best-effort per connection: a connection whose send
// buffer is full is pruned and the rest are unaffected. Never returns an
// error; a user with no connections is a no-op.
func (r *Registry) SendToUser(userID int64, payload []byte) {
	r.mu.RLock()
	set := r.conns[userID]
	clients := make([]*Client, 0, len(set))
	for c := range set {
		clients = append(clients, c)
	}
	r.mu.RUnlock()

	for _, c := range clients {
		if !c.enqueue(payload) {
			metrics.WSMessagesDropped.Inc()
			logging.Warn().Int64("user_id", userID).
				Msg("notification send buffer full, pruning connection")
			r.Unregister(c)
		}
	}
}

// ConnectedUsers returns a snapshot of user IDs with at least one live
// connection. The scanner uses it to size each cycle.
func (r *Registry) ConnectedUsers() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]int64, 0, len(r.conns))
	for id := range r.conns {
		users = append(users, id)
	}
	return users
}

// ConnectionCount returns the total number of live connections.
func (r *Registry) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, set := range r.conns {
		n += len(set)
	}
	return n
}
