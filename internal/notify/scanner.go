// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/pwelltrack/pwelltrack/internal/logging"
	"github.com/pwelltrack/pwelltrack/internal/metrics"
	"github.com/pwelltrack/pwelltrack/internal/models"
)

// feedingSlots are the fixed daily feeding reminder times.
var feedingSlots = []string{"08:00", "13:00", "19:00"}

// ledgerRetentionDays is how long sent-notification rows are kept. Dedup
// only ever consults the current day; older rows are dead weight.
const ledgerRetentionDays = 7

// Store is the collaborator surface the scanner reads each cycle. All calls
// are batched across every connected user so one cycle costs a fixed number
// of queries. *database.Database satisfies it.
type Store interface {
	UsersByIDs(ctx context.Context, ids []int64) ([]models.User, error)
	PetsByOwners(ctx context.Context, userIDs []int64) ([]models.Pet, error)
	MedicationsByPets(ctx context.Context, petIDs []int64) ([]models.Medication, error)
	PetsFedBetween(ctx context.Context, petIDs []int64, start, end time.Time) (map[int64]struct{}, error)
	SentKeysForUsers(ctx context.Context, userIDs []int64, date time.Time) (map[string]struct{}, error)
	MarkNotificationSent(ctx context.Context, userID int64, key string, date time.Time) (bool, error)
	PruneSentNotifications(ctx context.Context, before time.Time) (int64, error)
}

// Notifier is the delivery surface. *Registry satisfies it.
type Notifier interface {
	ConnectedUsers() []int64
	SendToUser(userID int64, payload []byte)
}

// Scanner periodically evaluates medication schedules and feeding slots for
// every connected user and delivers each due reminder at most once per day.
//
// Dedup lives in the persisted ledger: each cycle preloads today's sent
// keys in one query, checks candidates against that set, and records every
// delivery back through MarkNotificationSent, whose unique constraint makes
// concurrent duplicate inserts harmless.
type Scanner struct {
	store    Store
	notifier Notifier
	interval time.Duration
	now      func() time.Time

	lastPruneDay time.Time
}

// NewScanner builds a reminder scanner ticking at the given interval.
func NewScanner(store Store, notifier Notifier, interval time.Duration) *Scanner {
	return &Scanner{
		store:    store,
		notifier: notifier,
		interval: interval,
		now:      time.Now,
	}
}

// Serve runs the scan loop until ctx is cancelled. Implements
// suture.Service. Cycle failures are logged and swallowed; the loop itself
// only ends with the context. The first cycle runs immediately so reminders
// due at startup are not delayed by a full interval.
func (s *Scanner) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logging.Info().Dur("interval", s.interval).Msg("reminder scanner started")
	s.runCycle(ctx)
	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("reminder scanner stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// runCycle executes one scan with panic and error containment: nothing that
// happens inside a cycle may kill the loop.
func (s *Scanner) runCycle(ctx context.Context) {
	defer func(start time.Time) {
		if r := recover(); r != nil {
			metrics.ScanCycleErrors.Inc()
			logging.Error().Interface("panic", r).Msg("reminder scan cycle panicked")
		}
		metrics.ScanCycleDuration.Observe(time.Since(start).Seconds())
	}(time.Now())

	if err := s.scan(ctx); err != nil {
		metrics.ScanCycleErrors.Inc()
		logging.Error().Err(err).Msg("reminder scan cycle failed")
	}
}

func (s *Scanner) scan(ctx context.Context) error {
	userIDs := s.notifier.ConnectedUsers()
	if len(userIDs) == 0 {
		// Nobody to notify; skip all collaborator calls.
		return nil
	}

	utcNow := s.now().UTC()
	utcDay := midnight(utcNow)

	users, err := s.store.UsersByIDs(ctx, userIDs)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	pets, err := s.store.PetsByOwners(ctx, userIDs)
	if err != nil {
		return fmt.Errorf("load pets: %w", err)
	}
	if len(pets) == 0 {
		return nil
	}

	petIDs := make([]int64, len(pets))
	petsByOwner := make(map[int64][]models.Pet)
	for i, p := range pets {
		petIDs[i] = p.ID
		petsByOwner[p.UserID] = append(petsByOwner[p.UserID], p)
	}

	meds, err := s.store.MedicationsByPets(ctx, petIDs)
	if err != nil {
		return fmt.Errorf("load medications: %w", err)
	}
	medsByPet := make(map[int64][]models.Medication)
	for _, m := range meds {
		medsByPet[m.PetID] = append(medsByPet[m.PetID], m)
	}

	fedToday, err := s.store.PetsFedBetween(ctx, petIDs, utcDay, utcDay.Add(24*time.Hour))
	if err != nil {
		return fmt.Errorf("load fed pets: %w", err)
	}
	sentToday, err := s.store.SentKeysForUsers(ctx, userIDs, utcDay)
	if err != nil {
		return fmt.Errorf("load sent ledger: %w", err)
	}

	cycle := &cycleState{
		scanner:  s,
		utcDay:   utcDay,
		fedToday: fedToday,
		sent:     sentToday,
	}

	for _, user := range users {
		localNow := utcNow.In(userLocation(user.Timezone))
		for _, pet := range petsByOwner[user.ID] {
			cycle.scanPet(ctx, user.ID, pet, medsByPet[pet.ID], localNow)
		}
	}

	s.pruneLedger(ctx, utcDay)
	return nil
}

// pruneLedger drops ledger rows older than the retention window, at most
// once per UTC day.
func (s *Scanner) pruneLedger(ctx context.Context, utcDay time.Time) {
	if !utcDay.After(s.lastPruneDay) {
		return
	}
	s.lastPruneDay = utcDay

	removed, err := s.store.PruneSentNotifications(ctx, utcDay.AddDate(0, 0, -ledgerRetentionDays))
	if err != nil {
		logging.Warn().Err(err).Msg("failed to prune sent notification ledger")
		return
	}
	if removed > 0 {
		logging.Info().Int64("removed", removed).Msg("pruned sent notification ledger")
	}
}

// cycleState carries one cycle's preloaded collaborator data.
type cycleState struct {
	scanner  *Scanner
	utcDay   time.Time
	fedToday map[int64]struct{}
	sent     map[string]struct{}
}

func (c *cycleState) scanPet(ctx context.Context, userID int64, pet models.Pet, meds []models.Medication, localNow time.Time) {
	for _, med := range meds {
		if !med.ActiveOn(localNow) {
			continue
		}
		for _, slot := range med.TimesOfDay {
			if !isDue(localNow, slot) {
				continue
			}
			key := fmt.Sprintf("medication:%d:%s", med.ID, slot)
			c.deliver(ctx, userID, key, "medication", MedicationReminder{
				Type:           MessageTypeMedicationReminder,
				PetID:          pet.ID,
				PetName:        pet.Name,
				MedicationName: med.Name,
				Dosage:         med.Dosage,
				ScheduledTime:  slot,
			})
		}
	}

	if _, fed := c.fedToday[pet.ID]; fed {
		return
	}
	for _, slot := range feedingSlots {
		if !isDue(localNow, slot) {
			continue
		}
		key := fmt.Sprintf("feeding:%d:%s", pet.ID, slot)
		c.deliver(ctx, userID, key, "feeding", FeedingReminder{
			Type:          MessageTypeFeedingReminder,
			PetID:         pet.ID,
			PetName:       pet.Name,
			ScheduledTime: slot,
		})
	}
}

// deliver sends one reminder occurrence unless the ledger already holds it,
// then records it. Check-unsent before send, mark-sent after.
func (c *cycleState) deliver(ctx context.Context, userID int64, key, kind string, payload any) {
	composite := fmt.Sprintf("%d:%s", userID, key)
	if _, already := c.sent[composite]; already {
		metrics.RemindersDeduplicated.Inc()
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logging.Error().Err(err).Str("key", key).Msg("failed to marshal reminder")
		return
	}
	c.scanner.notifier.SendToUser(userID, body)

	inserted, err := c.scanner.store.MarkNotificationSent(ctx, userID, key, c.utcDay)
	if err != nil {
		logging.Error().Err(err).Int64("user_id", userID).Str("key", key).
			Msg("failed to record sent reminder")
		return
	}
	if !inserted {
		// Lost a benign race with a concurrent writer; the row exists.
		logging.Debug().Int64("user_id", userID).Str("key", key).
			Msg("sent reminder already recorded")
	}
	c.sent[composite] = struct{}{}

	metrics.RemindersSent.WithLabelValues(kind).Inc()
	logging.Info().Int64("user_id", userID).Str("key", key).Msg("reminder delivered")
}

// isDue reports whether slot ("HH:MM") is inside its delivery window at the
// given wall-clock time: the window opens exactly at the slot and stays open
// for five minutes. Malformed slots are never due.
func isDue(current time.Time, slot string) bool {
	t, err := time.Parse("15:04", slot)
	if err != nil {
		return false
	}
	slotMinutes := t.Hour()*60 + t.Minute()
	currentMinutes := current.Hour()*60 + current.Minute()
	diff := currentMinutes - slotMinutes
	return diff >= 0 && diff <= 5
}

// userLocation loads the user's IANA timezone, falling back to UTC when the
// stored value is empty or invalid.
func userLocation(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		logging.Warn().Str("timezone", tz).Msg("invalid user timezone, using UTC")
		return time.UTC
	}
	return loc
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
