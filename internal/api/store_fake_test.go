// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package api

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/pwelltrack/pwelltrack/internal/database"
	"github.com/pwelltrack/pwelltrack/internal/models"
)

// fakeStore is an in-memory Store with the same error semantics as the real
// storage layer: ErrNotFound for both missing rows and rows owned by
// someone else, ErrEmailTaken on duplicate registration.
type fakeStore struct {
	mu      sync.Mutex
	nextID  int64
	pingErr error

	users    map[int64]*models.User
	pets     map[int64]*models.Pet
	feedings map[int64]*models.FeedingLog
	water    map[int64]*models.WaterLog
	weights  map[int64]*models.WeightEntry
	vaccines map[int64]*models.Vaccine
	meds     map[int64]*models.Medication
	events   map[int64]*models.Event
	symptoms map[int64]*models.Symptom
}

func newStoreFake() *fakeStore {
	return &fakeStore{
		users:    make(map[int64]*models.User),
		pets:     make(map[int64]*models.Pet),
		feedings: make(map[int64]*models.FeedingLog),
		water:    make(map[int64]*models.WaterLog),
		weights:  make(map[int64]*models.WeightEntry),
		vaccines: make(map[int64]*models.Vaccine),
		meds:     make(map[int64]*models.Medication),
		events:   make(map[int64]*models.Event),
		symptoms: make(map[int64]*models.Symptom),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

// ownerOfPet reports the owner of petID, or false when the pet is unknown.
func (f *fakeStore) ownerOfPet(petID int64) (int64, bool) {
	p, ok := f.pets[petID]
	if !ok {
		return 0, false
	}
	return p.UserID, true
}

func (f *fakeStore) CreateUser(_ context.Context, name, email, passwordHash string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return nil, database.ErrEmailTaken
		}
	}
	u := &models.User{ID: f.id(), Name: name, Email: email, PasswordHash: passwordHash,
		Timezone: "UTC", Language: "en", CreatedAt: time.Now()}
	f.users[u.ID] = u
	out := *u
	return &out, nil
}

func (f *fakeStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) UserByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeStore) UpdateUserProfile(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.users[u.ID]
	if !ok {
		return database.ErrNotFound
	}
	stored.Name = u.Name
	stored.PhotoURL = u.PhotoURL
	stored.Timezone = u.Timezone
	stored.Language = u.Language
	return nil
}

func (f *fakeStore) CreatePet(_ context.Context, p *models.Pet) (*models.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *p
	stored.ID = f.id()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.pets[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeStore) PetsByUser(_ context.Context, userID int64) ([]models.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pets []models.Pet
	for _, p := range f.pets {
		if p.UserID == userID {
			pets = append(pets, *p)
		}
	}
	sort.Slice(pets, func(i, j int) bool { return pets[i].ID < pets[j].ID })
	return pets, nil
}

func (f *fakeStore) PetByIDForUser(_ context.Context, petID, userID int64) (*models.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pets[petID]
	if !ok || p.UserID != userID {
		return nil, database.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (f *fakeStore) UpdatePet(_ context.Context, p *models.Pet) (*models.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.pets[p.ID]
	if !ok || stored.UserID != p.UserID {
		return nil, database.ErrNotFound
	}
	updated := *p
	updated.UpdatedAt = time.Now()
	f.pets[p.ID] = &updated
	out := updated
	return &out, nil
}

func (f *fakeStore) DeletePet(_ context.Context, petID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pets[petID]
	if !ok || p.UserID != userID {
		return database.ErrNotFound
	}
	delete(f.pets, petID)
	return nil
}

func (f *fakeStore) FeedingSummary(_ context.Context, petID int64, start, end time.Time) (*models.FeedingSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &models.FeedingSummary{}
	for _, e := range f.feedings {
		if e.PetID == petID && !e.Datetime.Before(start) && e.Datetime.Before(end) {
			s.TotalActualGrams += e.ActualAmountGrams
			s.EntriesCount++
		}
	}
	return s, nil
}

func (f *fakeStore) WaterSummary(_ context.Context, petID int64, start, end time.Time) (*models.WaterSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &models.WaterSummary{}
	for _, e := range f.water {
		if e.PetID == petID && !e.Datetime.Before(start) && e.Datetime.Before(end) {
			s.TotalMl += e.AmountMl
			s.EntriesCount++
		}
	}
	return s, nil
}

func (f *fakeStore) UpcomingEvents(_ context.Context, petID int64, from, to time.Time) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Event
	for _, e := range f.events {
		if e.PetID == petID && !e.DatetimeStart.Before(from) && e.DatetimeStart.Before(to) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeStore) ActiveMedications(_ context.Context, petID int64, day time.Time) ([]models.Medication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Medication
	for _, m := range f.meds {
		if m.PetID == petID && m.ActiveOn(day) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateFeeding(_ context.Context, e *models.FeedingLog) (*models.FeedingLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *e
	stored.ID = f.id()
	f.feedings[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeStore) FeedingsByPet(_ context.Context, petID int64, filter database.RecordFilter) ([]models.FeedingLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.FeedingLog
	for _, e := range f.feedings {
		if e.PetID != petID {
			continue
		}
		if filter.From != nil && e.Datetime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Datetime.After(*filter.To) {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Datetime.After(out[j].Datetime) })
	return out, nil
}

func (f *fakeStore) FeedingByIDForUser(_ context.Context, id, userID int64) (*models.FeedingLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.feedings[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if owner, ok := f.ownerOfPet(e.PetID); !ok || owner != userID {
		return nil, database.ErrNotFound
	}
	out := *e
	return &out, nil
}

func (f *fakeStore) UpdateFeeding(_ context.Context, e *models.FeedingLog) (*models.FeedingLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.feedings[e.ID]; !ok {
		return nil, database.ErrNotFound
	}
	stored := *e
	f.feedings[e.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeStore) DeleteFeeding(_ context.Context, id, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.feedings[id]
	if !ok {
		return database.ErrNotFound
	}
	if owner, ok := f.ownerOfPet(e.PetID); !ok || owner != userID {
		return database.ErrNotFound
	}
	delete(f.feedings, id)
	return nil
}

func (f *fakeStore) CreateWater(_ context.Context, e *models.WaterLog) (*models.WaterLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *e
	stored.ID = f.id()
	f.water[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeStore) WaterByPet(_ context.Context, petID int64, _ database.RecordFilter) ([]models.WaterLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WaterLog
	for _, e := range f.water {
		if e.PetID == petID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeStore) WaterByIDForUser(_ context.Context, id, userID int64) (*models.WaterLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.water[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if owner, ok := f.ownerOfPet(e.PetID); !ok || owner != userID {
		return nil, database.ErrNotFound
	}
	out := *e
	return &out, nil
}

func (f *fakeStore) UpdateWater(_ context.Context, e *models.WaterLog) (*models.WaterLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.water[e.ID]; !ok {
		return nil, database.ErrNotFound
	}
	stored := *e
	f.water[e.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeStore) DeleteWater(_ context.Context, id, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.water[id]
	if !ok {
		return database.ErrNotFound
	}
	if owner, ok := f.ownerOfPet(e.PetID); !ok || owner != userID {
		return database.ErrNotFound
	}
	delete(f.water, id)
	return nil
}

func (f *fakeStore) CreateWeight(_ context.Context, e *models.WeightEntry) (*models.WeightEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *e
	stored.ID = f.id()
	f.weights[stored.ID] = &stored
	if p, ok := f.pets[e.PetID]; ok {
		w := e.WeightKg
		p.WeightKg = &w
	}
	out := stored
	return &out, nil
}

func (f *fakeStore) WeightsByPet(_ context.Context, petID int64, _ database.RecordFilter) ([]models.WeightEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WeightEntry
	for _, e := range f.weights {
		if e.PetID == petID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeStore) WeightByIDForUser(_ context.Context, id, userID int64) (*models.WeightEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.weights[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if owner, ok := f.ownerOfPet(e.PetID); !ok || owner != userID {
		return nil, database.ErrNotFound
	}
	out := *e
	return &out, nil
}

func (f *fakeStore) UpdateWeight(_ context.Context, e *models.WeightEntry) (*models.WeightEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.weights[e.ID]; !ok {
		return nil, database.ErrNotFound
	}
	stored := *e
	f.weights[e.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeStore) DeleteWeight(_ context.Context, id, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.weights[id]
	if !ok {
		return database.ErrNotFound
	}
	if owner, ok := f.ownerOfPet(e.PetID); !ok || owner != userID {
		return database.ErrNotFound
	}
	delete(f.weights, id)
	return nil
}

func (f *fakeStore) CreateVaccine(_ context.Context, v *models.Vaccine) (*models.Vaccine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *v
	stored.ID = f.id()
	f.vaccines[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeStore) VaccinesByPet(_ context.Context, petID int64) ([]models.Vaccine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Vaccine
	for _, v := range f.vaccines {
		if v.PetID == petID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeStore) VaccineByIDForUser(_ context.Context, id, userID int64) (*models.Vaccine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vaccines[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if owner, ok := f.ownerOfPet(v.PetID); !ok || owner != userID {
		return nil, database.ErrNotFound
	}
	out := *v
	return &out, nil
}

func (f *fakeStore) UpdateVaccine(_ context.Context, v *models.Vaccine) (*models.Vaccine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.vaccines[v.ID]; !ok {
		return nil, database.ErrNotFound
	}
	stored := *v
	f.vaccines[v.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeStore) DeleteVaccine(_ context.Context, id, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.vaccines[id]
	if !ok {
		return database.ErrNotFound
	}
	if owner, ok := f.ownerOfPet(v.PetID); !ok || owner != userID {
		return database.ErrNotFound
	}
	delete(f.vaccines, id)
	return nil
}

func (f *fakeStore) CreateMedication(_ context.Context, m *models.Medication) (*models.Medication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *m
	stored.ID = f.id()
	f.meds[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeStore) MedicationsByPet(_ context.Context, petID int64) ([]models.Medication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Medication
	for _, m := range f.meds {
		if m.PetID == petID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeStore) MedicationByIDForUser(_ context.Context, id, userID int64) (*models.Medication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.meds[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if owner, ok := f.ownerOfPet(m.PetID); !ok || owner != userID {
		return nil, database.ErrNotFound
	}
	out := *m
	return &out, nil
}

func (f *fakeStore) UpdateMedication(_ context.Context, m *models.Medication) (*models.Medication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.meds[m.ID]; !ok {
		return nil, database.ErrNotFound
	}
	stored := *m
	f.meds[m.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeStore) DeleteMedication(_ context.Context, id, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.meds[id]
	if !ok {
		return database.ErrNotFound
	}
	if owner, ok := f.ownerOfPet(m.PetID); !ok || owner != userID {
		return database.ErrNotFound
	}
	delete(f.meds, id)
	return nil
}

func (f *fakeStore) CreateEvent(_ context.Context, e *models.Event) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *e
	stored.ID = f.id()
	f.events[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeStore) EventsByPet(_ context.Context, petID int64, _ database.RecordFilter) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Event
	for _, e := range f.events {
		if e.PetID == petID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeStore) EventByIDForUser(_ context.Context, id, userID int64) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if owner, ok := f.ownerOfPet(e.PetID); !ok || owner != userID {
		return nil, database.ErrNotFound
	}
	out := *e
	return &out, nil
}

func (f *fakeStore) UpdateEvent(_ context.Context, e *models.Event) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[e.ID]; !ok {
		return nil, database.ErrNotFound
	}
	stored := *e
	f.events[e.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeStore) DeleteEvent(_ context.Context, id, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return database.ErrNotFound
	}
	if owner, ok := f.ownerOfPet(e.PetID); !ok || owner != userID {
		return database.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeStore) CreateSymptom(_ context.Context, s *models.Symptom) (*models.Symptom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *s
	stored.ID = f.id()
	f.symptoms[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeStore) SymptomsByPet(_ context.Context, petID int64, _ database.RecordFilter) ([]models.Symptom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Symptom
	for _, s := range f.symptoms {
		if s.PetID == petID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStore) SymptomByIDForUser(_ context.Context, id, userID int64) (*models.Symptom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.symptoms[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if owner, ok := f.ownerOfPet(s.PetID); !ok || owner != userID {
		return nil, database.ErrNotFound
	}
	out := *s
	return &out, nil
}

func (f *fakeStore) UpdateSymptom(_ context.Context, s *models.Symptom) (*models.Symptom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.symptoms[s.ID]; !ok {
		return nil, database.ErrNotFound
	}
	stored := *s
	f.symptoms[s.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeStore) DeleteSymptom(_ context.Context, id, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.symptoms[id]
	if !ok {
		return database.ErrNotFound
	}
	if owner, ok := f.ownerOfPet(s.PetID); !ok || owner != userID {
		return database.ErrNotFound
	}
	delete(f.symptoms, id)
	return nil
}

var errPingFailed = errors.New("ping failed")
