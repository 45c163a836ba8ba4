// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pwelltrack/pwelltrack/internal/models"
)

const weightColumns = `id, pet_id, datetime, weight_kg, notes`

func scanWeight(row pgx.Row) (*models.WeightEntry, error) {
	var w models.WeightEntry
	err := row.Scan(&w.ID, &w.PetID, &w.Datetime, &w.WeightKg, &w.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan weight entry: %w", err)
	}
	return &w, nil
}

// CreateWeight inserts one weight history entry and mirrors the value onto
// the pet profile so the latest weight is visible without a second query.
func (db *Database) CreateWeight(ctx context.Context, w *models.WeightEntry) (*models.WeightEntry, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin weight transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	entry, err := scanWeight(tx.QueryRow(ctx,
		`INSERT INTO weight_logs_history (pet_id, datetime, weight_kg, notes)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+weightColumns,
		w.PetID, w.Datetime, w.WeightKg, w.Notes))
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE pets SET weight_kg = $2, updated_at = now() WHERE id = $1`,
		w.PetID, w.WeightKg); err != nil {
		return nil, fmt.Errorf("failed to update pet weight: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit weight transaction: %w", err)
	}
	return entry, nil
}

// WeightsByPet lists weight entries for a pet, newest first.
func (db *Database) WeightsByPet(ctx context.Context, petID int64, filter RecordFilter) ([]models.WeightEntry, error) {
	filter = filter.normalize()
	rows, err := db.pool.Query(ctx,
		`SELECT `+weightColumns+` FROM weight_logs_history
		 WHERE pet_id = $1
		   AND ($2::timestamptz IS NULL OR datetime >= $2)
		   AND ($3::timestamptz IS NULL OR datetime <= $3)
		 ORDER BY datetime DESC
		 LIMIT $4 OFFSET $5`,
		petID, filter.From, filter.To, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query weight entries: %w", err)
	}
	defer rows.Close()

	var entries []models.WeightEntry
	for rows.Next() {
		var w models.WeightEntry
		if err := rows.Scan(&w.ID, &w.PetID, &w.Datetime, &w.WeightKg, &w.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan weight entry: %w", err)
		}
		entries = append(entries, w)
	}
	return entries, rows.Err()
}

// WeightByIDForUser fetches one weight entry, visible only through the
// owner's pet.
func (db *Database) WeightByIDForUser(ctx context.Context, id, userID int64) (*models.WeightEntry, error) {
	return scanWeight(db.pool.QueryRow(ctx,
		`SELECT `+prefixColumns(weightColumns, "w")+`
		 FROM weight_logs_history w JOIN pets p ON p.id = w.pet_id
		 WHERE w.id = $1 AND p.user_id = $2`, id, userID))
}

// UpdateWeight saves the mutable fields of a weight entry.
func (db *Database) UpdateWeight(ctx context.Context, w *models.WeightEntry) (*models.WeightEntry, error) {
	return scanWeight(db.pool.QueryRow(ctx,
		`UPDATE weight_logs_history SET datetime = $2, weight_kg = $3, notes = $4
		 WHERE id = $1
		 RETURNING `+weightColumns,
		w.ID, w.Datetime, w.WeightKg, w.Notes))
}

// DeleteWeight removes one weight entry owned by the user.
func (db *Database) DeleteWeight(ctx context.Context, id, userID int64) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM weight_logs_history w USING pets p
		 WHERE w.id = $1 AND p.id = w.pet_id AND p.user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete weight entry %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
