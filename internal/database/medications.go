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

const medicationColumns = `id, pet_id, name, dosage, frequency_per_day, start_date, end_date, times_of_day, notes`

func scanMedication(row pgx.Row) (*models.Medication, error) {
	var m models.Medication
	err := row.Scan(&m.ID, &m.PetID, &m.Name, &m.Dosage, &m.FrequencyPerDay,
		&m.StartDate, &m.EndDate, &m.TimesOfDay, &m.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan medication: %w", err)
	}
	return &m, nil
}

func collectMedications(rows pgx.Rows) ([]models.Medication, error) {
	defer rows.Close()
	var meds []models.Medication
	for rows.Next() {
		var m models.Medication
		if err := rows.Scan(&m.ID, &m.PetID, &m.Name, &m.Dosage, &m.FrequencyPerDay,
			&m.StartDate, &m.EndDate, &m.TimesOfDay, &m.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan medication: %w", err)
		}
		meds = append(meds, m)
	}
	return meds, rows.Err()
}

// CreateMedication inserts one medication course. TimesOfDay round-trips
// through the JSONB column via pgx's JSON codec.
func (db *Database) CreateMedication(ctx context.Context, m *models.Medication) (*models.Medication, error) {
	return scanMedication(db.pool.QueryRow(ctx,
		`INSERT INTO medications (pet_id, name, dosage, frequency_per_day, start_date, end_date, times_of_day, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+medicationColumns,
		m.PetID, m.Name, m.Dosage, m.FrequencyPerDay, m.StartDate, m.EndDate, m.TimesOfDay, m.Notes))
}

// MedicationsByPet lists medication courses for a pet.
func (db *Database) MedicationsByPet(ctx context.Context, petID int64) ([]models.Medication, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+medicationColumns+` FROM medications WHERE pet_id = $1 ORDER BY start_date DESC, id`, petID)
	if err != nil {
		return nil, fmt.Errorf("failed to query medications: %w", err)
	}
	return collectMedications(rows)
}

// MedicationsByPets bulk-fetches medication courses across many pets. The
// reminder scanner calls this once per cycle instead of once per pet.
func (db *Database) MedicationsByPets(ctx context.Context, petIDs []int64) ([]models.Medication, error) {
	if len(petIDs) == 0 {
		return nil, nil
	}
	rows, err := db.pool.Query(ctx,
		`SELECT `+medicationColumns+` FROM medications WHERE pet_id = ANY($1)`, petIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query medications by pets: %w", err)
	}
	return collectMedications(rows)
}

// ActiveMedications lists courses for a pet whose date range covers day.
func (db *Database) ActiveMedications(ctx context.Context, petID int64, day time.Time) ([]models.Medication, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+medicationColumns+` FROM medications
		 WHERE pet_id = $1 AND start_date <= $2 AND (end_date IS NULL OR end_date >= $2)
		 ORDER BY id`, petID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query active medications: %w", err)
	}
	return collectMedications(rows)
}

// MedicationByIDForUser fetches one medication course, visible only through
// the owner's pet.
func (db *Database) MedicationByIDForUser(ctx context.Context, id, userID int64) (*models.Medication, error) {
	return scanMedication(db.pool.QueryRow(ctx,
		`SELECT `+prefixColumns(medicationColumns, "m")+`
		 FROM medications m JOIN pets p ON p.id = m.pet_id
		 WHERE m.id = $1 AND p.user_id = $2`, id, userID))
}

// UpdateMedication saves the mutable fields of a medication course.
func (db *Database) UpdateMedication(ctx context.Context, m *models.Medication) (*models.Medication, error) {
	return scanMedication(db.pool.QueryRow(ctx,
		`UPDATE medications SET name = $2, dosage = $3, frequency_per_day = $4,
		        start_date = $5, end_date = $6, times_of_day = $7, notes = $8
		 WHERE id = $1
		 RETURNING `+medicationColumns,
		m.ID, m.Name, m.Dosage, m.FrequencyPerDay, m.StartDate, m.EndDate, m.TimesOfDay, m.Notes))
}

// DeleteMedication removes one medication course owned by the user.
func (db *Database) DeleteMedication(ctx context.Context, id, userID int64) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM medications m USING pets p
		 WHERE m.id = $1 AND p.id = m.pet_id AND p.user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete medication %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
