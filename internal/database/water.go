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

const waterColumns = `id, pet_id, datetime, amount_ml, daily_goal_ml`

func scanWater(row pgx.Row) (*models.WaterLog, error) {
	var w models.WaterLog
	err := row.Scan(&w.ID, &w.PetID, &w.Datetime, &w.AmountMl, &w.DailyGoalMl)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan water log: %w", err)
	}
	return &w, nil
}

// CreateWater inserts one water intake entry.
func (db *Database) CreateWater(ctx context.Context, w *models.WaterLog) (*models.WaterLog, error) {
	return scanWater(db.pool.QueryRow(ctx,
		`INSERT INTO water_logs (pet_id, datetime, amount_ml, daily_goal_ml)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+waterColumns,
		w.PetID, w.Datetime, w.AmountMl, w.DailyGoalMl))
}

// WaterByPet lists water entries for a pet, newest first.
func (db *Database) WaterByPet(ctx context.Context, petID int64, filter RecordFilter) ([]models.WaterLog, error) {
	filter = filter.normalize()
	rows, err := db.pool.Query(ctx,
		`SELECT `+waterColumns+` FROM water_logs
		 WHERE pet_id = $1
		   AND ($2::timestamptz IS NULL OR datetime >= $2)
		   AND ($3::timestamptz IS NULL OR datetime <= $3)
		 ORDER BY datetime DESC
		 LIMIT $4 OFFSET $5`,
		petID, filter.From, filter.To, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query water logs: %w", err)
	}
	defer rows.Close()

	var logs []models.WaterLog
	for rows.Next() {
		var w models.WaterLog
		if err := rows.Scan(&w.ID, &w.PetID, &w.Datetime, &w.AmountMl, &w.DailyGoalMl); err != nil {
			return nil, fmt.Errorf("failed to scan water log: %w", err)
		}
		logs = append(logs, w)
	}
	return logs, rows.Err()
}

// WaterByIDForUser fetches one water entry, visible only through the
// owner's pet.
func (db *Database) WaterByIDForUser(ctx context.Context, id, userID int64) (*models.WaterLog, error) {
	return scanWater(db.pool.QueryRow(ctx,
		`SELECT `+prefixColumns(waterColumns, "w")+`
		 FROM water_logs w JOIN pets p ON p.id = w.pet_id
		 WHERE w.id = $1 AND p.user_id = $2`, id, userID))
}

// UpdateWater saves the mutable fields of a water entry.
func (db *Database) UpdateWater(ctx context.Context, w *models.WaterLog) (*models.WaterLog, error) {
	return scanWater(db.pool.QueryRow(ctx,
		`UPDATE water_logs SET datetime = $2, amount_ml = $3, daily_goal_ml = $4
		 WHERE id = $1
		 RETURNING `+waterColumns,
		w.ID, w.Datetime, w.AmountMl, w.DailyGoalMl))
}

// DeleteWater removes one water entry owned by the user.
func (db *Database) DeleteWater(ctx context.Context, id, userID int64) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM water_logs w USING pets p
		 WHERE w.id = $1 AND p.id = w.pet_id AND p.user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete water log %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// WaterSummary totals water entries for a pet within [start, end]. The daily
// goal is taken from the most recent entry that carries one, since the goal
// is stored per log entry rather than on the pet.
func (db *Database) WaterSummary(ctx context.Context, petID int64, start, end time.Time) (*models.WaterSummary, error) {
	summary := &models.WaterSummary{}
	err := db.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_ml), 0), COUNT(id)
		 FROM water_logs
		 WHERE pet_id = $1 AND datetime BETWEEN $2 AND $3`,
		petID, start, end).Scan(&summary.TotalMl, &summary.EntriesCount)
	if err != nil {
		return nil, fmt.Errorf("failed to query water summary: %w", err)
	}

	var goal *float64
	err = db.pool.QueryRow(ctx,
		`SELECT daily_goal_ml FROM water_logs
		 WHERE pet_id = $1 AND daily_goal_ml IS NOT NULL
		 ORDER BY datetime DESC LIMIT 1`, petID).Scan(&goal)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to query water goal: %w", err)
	}
	summary.DailyGoalMl = goal
	return summary, nil
}
