// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package database

import (
	"context"
	"fmt"
)

// schemaDDL is executed on startup. Every statement is idempotent so the
// bootstrap is safe to run on every boot.
//
// The UNIQUE constraint on sent_notifications is load-bearing: it is the
// storage-level enforcement of at-most-once reminder delivery per day, and
// the reason concurrent duplicate inserts fail harmlessly.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		name          VARCHAR(120) NOT NULL,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		photo_url     TEXT,
		timezone      VARCHAR(64) NOT NULL DEFAULT 'UTC',
		language      VARCHAR(8) NOT NULL DEFAULT 'en',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS pets (
		id            BIGSERIAL PRIMARY KEY,
		user_id       BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name          VARCHAR(120) NOT NULL,
		species       VARCHAR(50) NOT NULL,
		breed         VARCHAR(120),
		date_of_birth DATE,
		sex           VARCHAR(20),
		weight_kg     DOUBLE PRECISION,
		photo_url     TEXT,
		notes         TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pets_user_id ON pets(user_id)`,

	`CREATE TABLE IF NOT EXISTS feeding_logs (
		id                   BIGSERIAL PRIMARY KEY,
		pet_id               BIGINT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		datetime             TIMESTAMPTZ NOT NULL DEFAULT now(),
		food_type            VARCHAR(120) NOT NULL,
		planned_amount_grams DOUBLE PRECISION,
		actual_amount_grams  DOUBLE PRECISION NOT NULL,
		notes                TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_feeding_logs_pet_dt ON feeding_logs(pet_id, datetime)`,

	`CREATE TABLE IF NOT EXISTS water_logs (
		id            BIGSERIAL PRIMARY KEY,
		pet_id        BIGINT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		datetime      TIMESTAMPTZ NOT NULL DEFAULT now(),
		amount_ml     DOUBLE PRECISION NOT NULL,
		daily_goal_ml DOUBLE PRECISION
	)`,
	`CREATE INDEX IF NOT EXISTS idx_water_logs_pet_dt ON water_logs(pet_id, datetime)`,

	`CREATE TABLE IF NOT EXISTS weight_logs_history (
		id        BIGSERIAL PRIMARY KEY,
		pet_id    BIGINT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		datetime  TIMESTAMPTZ NOT NULL DEFAULT now(),
		weight_kg DOUBLE PRECISION NOT NULL,
		notes     TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_weight_logs_pet_dt ON weight_logs_history(pet_id, datetime)`,

	`CREATE TABLE IF NOT EXISTS vaccines (
		id                BIGSERIAL PRIMARY KEY,
		pet_id            BIGINT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		name              VARCHAR(200) NOT NULL,
		date_administered DATE NOT NULL,
		next_due_date     DATE,
		clinic            VARCHAR(200),
		notes             TEXT,
		document_url      VARCHAR(500)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_vaccines_pet_id ON vaccines(pet_id)`,

	`CREATE TABLE IF NOT EXISTS medications (
		id                BIGSERIAL PRIMARY KEY,
		pet_id            BIGINT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		name              VARCHAR(200) NOT NULL,
		dosage            VARCHAR(100) NOT NULL,
		frequency_per_day INTEGER NOT NULL,
		start_date        DATE NOT NULL,
		end_date          DATE,
		times_of_day      JSONB,
		notes             TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_medications_pet_id ON medications(pet_id)`,

	`CREATE TABLE IF NOT EXISTS events (
		id                      BIGSERIAL PRIMARY KEY,
		pet_id                  BIGINT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		type                    VARCHAR(50) NOT NULL,
		title                   VARCHAR(200) NOT NULL,
		datetime_start          TIMESTAMPTZ NOT NULL,
		duration_minutes        INTEGER,
		location                VARCHAR(300),
		notes                   TEXT,
		reminder_minutes_before INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_pet_start ON events(pet_id, datetime_start)`,

	`CREATE TABLE IF NOT EXISTS symptoms (
		id       BIGSERIAL PRIMARY KEY,
		pet_id   BIGINT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		datetime TIMESTAMPTZ NOT NULL DEFAULT now(),
		type     VARCHAR(100) NOT NULL,
		severity VARCHAR(20) NOT NULL,
		notes    TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_symptoms_pet_dt ON symptoms(pet_id, datetime)`,

	`CREATE TABLE IF NOT EXISTS sent_notifications (
		id               BIGSERIAL PRIMARY KEY,
		user_id          BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		notification_key VARCHAR(255) NOT NULL,
		sent_date        DATE NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT uq_sent_notification UNIQUE (user_id, notification_key, sent_date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sent_notifications_date ON sent_notifications(sent_date)`,
}

func (db *Database) ensureSchema(ctx context.Context) error {
	for _, stmt := range schemaDDL {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
