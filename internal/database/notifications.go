// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package database

import (
	"context"
	"fmt"
	"time"
)

// SentKeysForUsers loads every dedup ledger key already recorded for the
// given users on the given date, as "userID:key" composites. The scanner
// calls this once per cycle so per-candidate checks stay in memory.
func (db *Database) SentKeysForUsers(ctx context.Context, userIDs []int64, date time.Time) (map[string]struct{}, error) {
	sent := make(map[string]struct{})
	if len(userIDs) == 0 {
		return sent, nil
	}
	rows, err := db.pool.Query(ctx,
		`SELECT user_id, notification_key FROM sent_notifications
		 WHERE user_id = ANY($1) AND sent_date = $2`, userIDs, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query sent notifications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID int64
			key    string
		)
		if err := rows.Scan(&userID, &key); err != nil {
			return nil, fmt.Errorf("failed to scan sent notification: %w", err)
		}
		sent[SentKey(userID, key)] = struct{}{}
	}
	return sent, rows.Err()
}

// SentKey builds the composite in-memory key used with SentKeysForUsers.
func SentKey(userID int64, notificationKey string) string {
	return fmt.Sprintf("%d:%s", userID, notificationKey)
}

// WasNotificationSent reports whether the ledger already holds a row for
// (userID, key, date).
func (db *Database) WasNotificationSent(ctx context.Context, userID int64, key string, date time.Time) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (
		    SELECT 1 FROM sent_notifications
		    WHERE user_id = $1 AND notification_key = $2 AND sent_date = $3
		 )`, userID, key, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check sent notification: %w", err)
	}
	return exists, nil
}

// MarkNotificationSent records a delivery in the dedup ledger. Returns
// (false, nil) when another writer already recorded the same key today:
// the UNIQUE constraint makes the race harmless and the loser simply skips
// delivery.
func (db *Database) MarkNotificationSent(ctx context.Context, userID int64, key string, date time.Time) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`INSERT INTO sent_notifications (user_id, notification_key, sent_date)
		 VALUES ($1, $2, $3)
		 ON CONFLICT ON CONSTRAINT uq_sent_notification DO NOTHING`,
		userID, key, date)
	if err != nil {
		return false, fmt.Errorf("failed to record sent notification: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// PruneSentNotifications deletes ledger rows older than the cutoff date.
// The ledger only ever answers "was this sent today", so old rows are
// garbage.
func (db *Database) PruneSentNotifications(ctx context.Context, before time.Time) (int64, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM sent_notifications WHERE sent_date < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to prune sent notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}
