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

const vaccineColumns = `id, pet_id, name, date_administered, next_due_date, clinic, notes, document_url`

func scanVaccine(row pgx.Row) (*models.Vaccine, error) {
	var v models.Vaccine
	err := row.Scan(&v.ID, &v.PetID, &v.Name, &v.DateAdministered, &v.NextDueDate, &v.Clinic, &v.Notes, &v.DocumentURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan vaccine: %w", err)
	}
	return &v, nil
}

// CreateVaccine inserts one vaccine record.
func (db *Database) CreateVaccine(ctx context.Context, v *models.Vaccine) (*models.Vaccine, error) {
	return scanVaccine(db.pool.QueryRow(ctx,
		`INSERT INTO vaccines (pet_id, name, date_administered, next_due_date, clinic, notes, document_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+vaccineColumns,
		v.PetID, v.Name, v.DateAdministered, v.NextDueDate, v.Clinic, v.Notes, v.DocumentURL))
}

// VaccinesByPet lists vaccine records for a pet, most recent first.
func (db *Database) VaccinesByPet(ctx context.Context, petID int64) ([]models.Vaccine, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+vaccineColumns+` FROM vaccines WHERE pet_id = $1 ORDER BY date_administered DESC`, petID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vaccines: %w", err)
	}
	defer rows.Close()

	var vaccines []models.Vaccine
	for rows.Next() {
		var v models.Vaccine
		if err := rows.Scan(&v.ID, &v.PetID, &v.Name, &v.DateAdministered, &v.NextDueDate, &v.Clinic, &v.Notes, &v.DocumentURL); err != nil {
			return nil, fmt.Errorf("failed to scan vaccine: %w", err)
		}
		vaccines = append(vaccines, v)
	}
	return vaccines, rows.Err()
}

// VaccineByIDForUser fetches one vaccine record, visible only through the
// owner's pet.
func (db *Database) VaccineByIDForUser(ctx context.Context, id, userID int64) (*models.Vaccine, error) {
	return scanVaccine(db.pool.QueryRow(ctx,
		`SELECT `+prefixColumns(vaccineColumns, "v")+`
		 FROM vaccines v JOIN pets p ON p.id = v.pet_id
		 WHERE v.id = $1 AND p.user_id = $2`, id, userID))
}

// UpdateVaccine saves the mutable fields of a vaccine record.
func (db *Database) UpdateVaccine(ctx context.Context, v *models.Vaccine) (*models.Vaccine, error) {
	return scanVaccine(db.pool.QueryRow(ctx,
		`UPDATE vaccines SET name = $2, date_administered = $3, next_due_date = $4,
		        clinic = $5, notes = $6, document_url = $7
		 WHERE id = $1
		 RETURNING `+vaccineColumns,
		v.ID, v.Name, v.DateAdministered, v.NextDueDate, v.Clinic, v.Notes, v.DocumentURL))
}

// DeleteVaccine removes one vaccine record owned by the user.
func (db *Database) DeleteVaccine(ctx context.Context, id, userID int64) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM vaccines v USING pets p
		 WHERE v.id = $1 AND p.id = v.pet_id AND p.user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete vaccine %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
