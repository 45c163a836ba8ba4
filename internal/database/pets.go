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

const petColumns = `id, user_id, name, species, breed, date_of_birth, sex, weight_kg, photo_url, notes, created_at, updated_at`

func scanPet(row pgx.Row) (*models.Pet, error) {
	var p models.Pet
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Species, &p.Breed, &p.DateOfBirth,
		&p.Sex, &p.WeightKg, &p.PhotoURL, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan pet: %w", err)
	}
	return &p, nil
}

func collectPets(rows pgx.Rows) ([]models.Pet, error) {
	defer rows.Close()
	var pets []models.Pet
	for rows.Next() {
		var p models.Pet
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Species, &p.Breed, &p.DateOfBirth,
			&p.Sex, &p.WeightKg, &p.PhotoURL, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pet: %w", err)
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

// CreatePet inserts a pet profile owned by the given user.
func (db *Database) CreatePet(ctx context.Context, p *models.Pet) (*models.Pet, error) {
	return scanPet(db.pool.QueryRow(ctx,
		`INSERT INTO pets (user_id, name, species, breed, date_of_birth, sex, weight_kg, photo_url, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+petColumns,
		p.UserID, p.Name, p.Species, p.Breed, p.DateOfBirth, p.Sex, p.WeightKg, p.PhotoURL, p.Notes))
}

// PetsByUser lists all pets owned by a user.
func (db *Database) PetsByUser(ctx context.Context, userID int64) ([]models.Pet, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+petColumns+` FROM pets WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pets: %w", err)
	}
	return collectPets(rows)
}

// PetByIDForUser fetches one pet, visible only to its owner. Returns
// ErrNotFound for both missing pets and pets owned by someone else, so
// handlers cannot leak existence.
func (db *Database) PetByIDForUser(ctx context.Context, petID, userID int64) (*models.Pet, error) {
	return scanPet(db.pool.QueryRow(ctx,
		`SELECT `+petColumns+` FROM pets WHERE id = $1 AND user_id = $2`, petID, userID))
}

// UpdatePet saves the mutable fields of a pet profile.
func (db *Database) UpdatePet(ctx context.Context, p *models.Pet) (*models.Pet, error) {
	return scanPet(db.pool.QueryRow(ctx,
		`UPDATE pets SET name = $3, species = $4, breed = $5, date_of_birth = $6, sex = $7,
		        weight_kg = $8, photo_url = $9, notes = $10, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+petColumns,
		p.ID, p.UserID, p.Name, p.Species, p.Breed, p.DateOfBirth, p.Sex, p.WeightKg, p.PhotoURL, p.Notes))
}

// DeletePet removes a pet and, through FK cascades, all of its records.
func (db *Database) DeletePet(ctx context.Context, petID, userID int64) error {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM pets WHERE id = $1 AND user_id = $2`, petID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete pet %d: %w", petID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// PetsByOwners bulk-fetches every pet owned by any of the given users, for
// the reminder scanner.
func (db *Database) PetsByOwners(ctx context.Context, userIDs []int64) ([]models.Pet, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	rows, err := db.pool.Query(ctx,
		`SELECT `+petColumns+` FROM pets WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query pets by owners: %w", err)
	}
	return collectPets(rows)
}
