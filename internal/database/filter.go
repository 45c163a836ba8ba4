// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package database

import "time"

// RecordFilter bounds list queries over per-pet record collections.
type RecordFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// normalize applies the default and maximum page size.
func (f RecordFilter) normalize() RecordFilter {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Limit > 200 {
		f.Limit = 200
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
