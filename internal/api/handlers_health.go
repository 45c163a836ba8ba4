// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/pwelltrack/pwelltrack/internal/logging"
)

type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health reports process liveness and database reachability. Returns 503
// when the database is unreachable so load balancers stop routing here.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := healthStatus{Status: "ok", Database: "ok"}
	code := http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		logging.Warn().Err(err).Msg("health check: database unreachable")
		status.Status = "degraded"
		status.Database = "unreachable"
		code = http.StatusServiceUnavailable
	}
	respondSuccess(w, code, status)
}
