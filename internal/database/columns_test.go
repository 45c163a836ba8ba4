// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package database

import "testing"

func TestPrefixColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns string
		alias   string
		want    string
	}{
		{"single", "id", "f", "f.id"},
		{"multiple", "id, pet_id, datetime", "w", "w.id, w.pet_id, w.datetime"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prefixColumns(tt.columns, tt.alias); got != tt.want {
				t.Errorf("prefixColumns(%q, %q) = %q, want %q", tt.columns, tt.alias, got, tt.want)
			}
		})
	}
}

func TestRecordFilterNormalize(t *testing.T) {
	tests := []struct {
		name       string
		in         RecordFilter
		wantLimit  int
		wantOffset int
	}{
		{"zero value defaults", RecordFilter{}, 50, 0},
		{"negative limit defaults", RecordFilter{Limit: -5}, 50, 0},
		{"limit capped", RecordFilter{Limit: 1000}, 200, 0},
		{"negative offset clamped", RecordFilter{Limit: 10, Offset: -1}, 10, 0},
		{"in-range passthrough", RecordFilter{Limit: 25, Offset: 75}, 25, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.normalize()
			if got.Limit != tt.wantLimit || got.Offset != tt.wantOffset {
				t.Errorf("normalize() = limit %d offset %d, want limit %d offset %d",
					got.Limit, got.Offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestSentKey(t *testing.T) {
	if got := SentKey(42, "medication:7:08:00"); got != "42:medication:7:08:00" {
		t.Errorf("SentKey = %q", got)
	}
}
