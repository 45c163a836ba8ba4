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

const symptomColumns = `id, pet_id, datetime, type, severity, notes`

func scanSymptom(row pgx.Row) (*models.Symptom, error) {
	var s models.Symptom
	err := row.Scan(&s.ID, &s.PetID, &s.Datetime, &s.Type, &s.Severity, &s.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan symptom: %w", err)
	}
	return &s, nil
}

// CreateSymptom inserts one symptom observation.
func (db *Database) CreateSymptom(ctx context.Context, s *models.Symptom) (*models.Symptom, error) {
	return scanSymptom(db.pool.QueryRow(ctx,
		`INSERT INTO symptoms (pet_id, datetime, type, severity, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+symptomColumns,
		s.PetID, s.Datetime, s.Type, s.Severity, s.Notes))
}

// SymptomsByPet lists symptom observations for a pet, newest first.
func (db *Database) SymptomsByPet(ctx context.Context, petID int64, filter RecordFilter) ([]models.Symptom, error) {
	filter = filter.normalize()
	rows, err := db.pool.Query(ctx,
		`SELECT `+symptomColumns+` FROM symptoms
		 WHERE pet_id = $1
		   AND ($2::timestamptz IS NULL OR datetime >= $2)
		   AND ($3::timestamptz IS NULL OR datetime <= $3)
		 ORDER BY datetime DESC
		 LIMIT $4 OFFSET $5`,
		petID, filter.From, filter.To, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query symptoms: %w", err)
	}
	defer rows.Close()

	var symptoms []models.Symptom
	for rows.Next() {
		var s models.Symptom
		if err := rows.Scan(&s.ID, &s.PetID, &s.Datetime, &s.Type, &s.Severity, &s.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan symptom: %w", err)
		}
		symptoms = append(symptoms, s)
	}
	return symptoms, rows.Err()
}

// SymptomByIDForUser fetches one symptom, visible only through the owner's
// pet.
func (db *Database) SymptomByIDForUser(ctx context.Context, id, userID int64) (*models.Symptom, error) {
	return scanSymptom(db.pool.QueryRow(ctx,
		`SELECT `+prefixColumns(symptomColumns, "s")+`
		 FROM symptoms s JOIN pets p ON p.id = s.pet_id
		 WHERE s.id = $1 AND p.user_id = $2`, id, userID))
}

// UpdateSymptom saves the mutable fields of a symptom observation.
func (db *Database) UpdateSymptom(ctx context.Context, s *models.Symptom) (*models.Symptom, error) {
	return scanSymptom(db.pool.QueryRow(ctx,
		`UPDATE symptoms SET datetime = $2, type = $3, severity = $4, notes = $5
		 WHERE id = $1
		 RETURNING `+symptomColumns,
		s.ID, s.Datetime, s.Type, s.Severity, s.Notes))
}

// DeleteSymptom removes one symptom owned by the user.
func (db *Database) DeleteSymptom(ctx context.Context, id, userID int64) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM symptoms s USING pets p
		 WHERE s.id = $1 AND p.id = s.pet_id AND p.user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete symptom %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
