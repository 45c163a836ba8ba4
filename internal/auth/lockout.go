// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// AttemptLimiter throttles credential attempts per client key (IP address).
// It complements the HTTP-level rate limiting: the HTTP limiter bounds
// request volume, this one bounds failed-login probing specifically and is
// consulted by the login handler before touching the password hash.
type AttemptLimiter struct {
	mu       sync.Mutex
	limiters map[string]*attemptEntry
	rate     rate.Limit
	burst    int
	maxIdle  time.Duration
}

type attemptEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewAttemptLimiter allows perMinute attempts per key with the same burst.
func NewAttemptLimiter(perMinute int) *AttemptLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	return &AttemptLimiter{
		limiters: make(map[string]*attemptEntry),
		rate:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		maxIdle:  15 * time.Minute,
	}
}

// Allow reports whether another attempt from key is permitted now.
func (l *AttemptLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	entry, ok := l.limiters[key]
	if !ok {
		entry = &attemptEntry{limiter: rate.NewLimiter(l.rate, l.burst), lastSeen: now}
		l.limiters[key] = entry
		l.evictStale(now)
	}
	entry.lastSeen = now
	return entry.limiter.Allow()
}

// evictStale drops entries idle longer than maxIdle. Called with mu held,
// only on the map-growth path so steady-state Allow stays O(1).
func (l *AttemptLimiter) evictStale(now time.Time) {
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > l.maxIdle {
			delete(l.limiters, key)
		}
	}
}
