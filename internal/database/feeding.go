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

const feedingColumns = `id, pet_id, datetime, food_type, planned_amount_grams, actual_amount_grams, notes`

func scanFeeding(row pgx.Row) (*models.FeedingLog, error) {
	var f models.FeedingLog
	err := row.Scan(&f.ID, &f.PetID, &f.Datetime, &f.FoodType, &f.PlannedAmountGrams, &f.ActualAmountGrams, &f.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan feeding log: %w", err)
	}
	return &f, nil
}

// CreateFeeding inserts one feeding entry.
func (db *Database) CreateFeeding(ctx context.Context, f *models.FeedingLog) (*models.FeedingLog, error) {
	return scanFeeding(db.pool.QueryRow(ctx,
		`INSERT INTO feeding_logs (pet_id, datetime, food_type, planned_amount_grams, actual_amount_grams, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+feedingColumns,
		f.PetID, f.Datetime, f.FoodType, f.PlannedAmountGrams, f.ActualAmountGrams, f.Notes))
}

// FeedingsByPet lists feeding entries for a pet, newest first.
func (db *Database) FeedingsByPet(ctx context.Context, petID int64, filter RecordFilter) ([]models.FeedingLog, error) {
	filter = filter.normalize()
	rows, err := db.pool.Query(ctx,
		`SELECT `+feedingColumns+` FROM feeding_logs
		 WHERE pet_id = $1
		   AND ($2::timestamptz IS NULL OR datetime >= $2)
		   AND ($3::timestamptz IS NULL OR datetime <= $3)
		 ORDER BY datetime DESC
		 LIMIT $4 OFFSET $5`,
		petID, filter.From, filter.To, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query feeding logs: %w", err)
	}
	defer rows.Close()

	var logs []models.FeedingLog
	for rows.Next() {
		var f models.FeedingLog
		if err := rows.Scan(&f.ID, &f.PetID, &f.Datetime, &f.FoodType, &f.PlannedAmountGrams, &f.ActualAmountGrams, &f.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan feeding log: %w", err)
		}
		logs = append(logs, f)
	}
	return logs, rows.Err()
}

// FeedingByIDForUser fetches one feeding entry, visible only through the
// owner's pet.
func (db *Database) FeedingByIDForUser(ctx context.Context, id, userID int64) (*models.FeedingLog, error) {
	return scanFeeding(db.pool.QueryRow(ctx,
		`SELECT `+prefixColumns(feedingColumns, "f")+`
		 FROM feeding_logs f JOIN pets p ON p.id = f.pet_id
		 WHERE f.id = $1 AND p.user_id = $2`, id, userID))
}

// UpdateFeeding saves the mutable fields of a feeding entry.
func (db *Database) UpdateFeeding(ctx context.Context, f *models.FeedingLog) (*models.FeedingLog, error) {
	return scanFeeding(db.pool.QueryRow(ctx,
		`UPDATE feeding_logs SET datetime = $2, food_type = $3, planned_amount_grams = $4,
		        actual_amount_grams = $5, notes = $6
		 WHERE id = $1
		 RETURNING `+feedingColumns,
		f.ID, f.Datetime, f.FoodType, f.PlannedAmountGrams, f.ActualAmountGrams, f.Notes))
}

// DeleteFeeding removes one feeding entry owned by the user.
func (db *Database) DeleteFeeding(ctx context.Context, id, userID int64) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM feeding_logs f USING pets p
		 WHERE f.id = $1 AND p.id = f.pet_id AND p.user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete feeding log %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// PetsFedBetween returns the set of pet IDs with at least one feeding entry
// in [start, end). One query regardless of pet count; the reminder scanner
// uses it to suppress feeding reminders for pets already fed today.
func (db *Database) PetsFedBetween(ctx context.Context, petIDs []int64, start, end time.Time) (map[int64]struct{}, error) {
	fed := make(map[int64]struct{})
	if len(petIDs) == 0 {
		return fed, nil
	}
	rows, err := db.pool.Query(ctx,
		`SELECT DISTINCT pet_id FROM feeding_logs
		 WHERE pet_id = ANY($1) AND datetime >= $2 AND datetime < $3`,
		petIDs, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query fed pets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan fed pet id: %w", err)
		}
		fed[id] = struct{}{}
	}
	return fed, rows.Err()
}

// FeedingSummary totals feeding entries for a pet within [start, end].
func (db *Database) FeedingSummary(ctx context.Context, petID int64, start, end time.Time) (*models.FeedingSummary, error) {
	var (
		actual  float64
		planned float64
		count   int
	)
	err := db.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(actual_amount_grams), 0),
		        COALESCE(SUM(planned_amount_grams), 0),
		        COUNT(id)
		 FROM feeding_logs
		 WHERE pet_id = $1 AND datetime BETWEEN $2 AND $3`,
		petID, start, end).Scan(&actual, &planned, &count)
	if err != nil {
		return nil, fmt.Errorf("failed to query feeding summary: %w", err)
	}

	summary := &models.FeedingSummary{
		TotalActualGrams: actual,
		EntriesCount:     count,
	}
	if planned > 0 {
		summary.TotalPlannedGrams = &planned
	}
	return summary, nil
}
