// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pwelltrack/pwelltrack/internal/models"
)

const eventColumns = `id, pet_id, type, title, datetime_start, duration_minutes, location, notes, reminder_minutes_before`

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	err := row.Scan(&e.ID, &e.PetID, &e.Type, &e.Title, &e.DatetimeStart,
		&e.DurationMinutes, &e.Location, &e.Notes, &e.ReminderMinutesBefore)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}
	return &e, nil
}

func collectEvents(rows pgx.Rows) ([]models.Event, error) {
	defer rows.Close()
	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.PetID, &e.Type, &e.Title, &e.DatetimeStart,
			&e.DurationMinutes, &e.Location, &e.Notes, &e.ReminderMinutesBefore); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CreateEvent inserts one calendar event.
func (db *Database) CreateEvent(ctx context.Context, e *models.Event) (*models.Event, error) {
	return scanEvent(db.pool.QueryRow(ctx,
		`INSERT INTO events (pet_id, type, title, datetime_start, duration_minutes, location, notes, reminder_minutes_before)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+eventColumns,
		e.PetID, e.Type, e.Title, e.DatetimeStart, e.DurationMinutes, e.Location, e.Notes, e.ReminderMinutesBefore))
}

// EventsByPet lists events for a pet in chronological order.
func (db *Database) EventsByPet(ctx context.Context, petID int64, filter RecordFilter) ([]models.Event, error) {
	filter = filter.normalize()
	rows, err := db.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE pet_id = $1
		   AND ($2::timestamptz IS NULL OR datetime_start >= $2)
		   AND ($3::timestamptz IS NULL OR datetime_start <= $3)
		 ORDER BY datetime_start
		 LIMIT $4 OFFSET $5`,
		petID, filter.From, filter.To, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	return collectEvents(rows)
}

// UpcomingEvents lists events for a pet starting in [from, to), soonest
// first. The today dashboard uses a 7-day horizon.
func (db *Database) UpcomingEvents(ctx context.Context, petID int64, from, to time.Time) ([]models.Event, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE pet_id = $1 AND datetime_start >= $2 AND datetime_start < $3
		 ORDER BY datetime_start`, petID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming events: %w", err)
	}
	return collectEvents(rows)
}

// EventByIDForUser fetches one event, visible only through the owner's pet.
func (db *Database) EventByIDForUser(ctx context.Context, id, userID int64) (*models.Event, error) {
	return scanEvent(db.pool.QueryRow(ctx,
		`SELECT `+prefixColumns(eventColumns, "e")+`
		 FROM events e JOIN pets p ON p.id = e.pet_id
		 WHERE e.id = $1 AND p.user_id = $2`, id, userID))
}

// UpdateEvent saves the mutable fields of an event.
func (db *Database) UpdateEvent(ctx context.Context, e *models.Event) (*models.Event, error) {
	return scanEvent(db.pool.QueryRow(ctx,
		`UPDATE events SET type = $2, title = $3, datetime_start = $4, duration_minutes = $5,
		        location = $6, notes = $7, reminder_minutes_before = $8
		 WHERE id = $1
		 RETURNING `+eventColumns,
		e.ID, e.Type, e.Title, e.DatetimeStart, e.DurationMinutes, e.Location, e.Notes, e.ReminderMinutesBefore))
}

// DeleteEvent removes one event owned by the user.
func (db *Database) DeleteEvent(ctx context.Context, id, userID int64) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM events e USING pets p
		 WHERE e.id = $1 AND p.id = e.pet_id AND p.user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
