// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

// Package database implements PostgreSQL storage for PWellTrack on pgx.
//
// One Database value wraps a pgxpool.Pool and exposes typed queries per
// entity (users, pets, logs, medications, vaccines, events, symptoms) plus
// the reminder scanner's batched read paths and the sent-notifications
// dedup ledger. All reads that serve user requests are ownership-scoped:
// a record is only visible through the pet -> owner join.
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pwelltrack/pwelltrack/internal/config"
	"github.com/pwelltrack/pwelltrack/internal/logging"
)

// ErrNotFound is returned when a row does not exist or is not visible to
// the requesting user. Handlers translate it to 404.
var ErrNotFound = errors.New("not found")

// Database wraps a pgx connection pool.
type Database struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL, verifies the connection, and bootstraps the
// schema.
func New(ctx context.Context, cfg config.DatabaseConfig) (*Database, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx := ctx
	if cfg.PingWait > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.PingWait)
		defer cancel()
	}
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &Database{pool: pool}
	if err := db.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	logging.Info().Int32("max_conns", poolCfg.MaxConns).Msg("database connected")
	return db, nil
}

// Close releases the connection pool.
func (db *Database) Close() {
	db.pool.Close()
}

// Ping verifies database connectivity, used by the readiness endpoint.
func (db *Database) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}
