package sessionRepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"studiofit/models"
)

// MemorySessionRepo is an in-process implementation of SessionRepository.
// Serialization per session is provided by a per-record mutex; transactions
// stage their writes on copies and commit them only when the unit of work
// succeeds. Used by the engine tests and by local development without mongo.
type MemorySessionRepo struct {
	mu      sync.RWMutex
	records map[string]*memRecord
}

type memRecord struct {
	mu           sync.Mutex
	session      models.Session
	participants []models.Participant
}

func NewMemorySessionRepo() *MemorySessionRepo {
	return &MemorySessionRepo{records: make(map[string]*memRecord)}
}

func (repo *MemorySessionRepo) lookup(id string) (*memRecord, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	rec, ok := repo.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (repo *MemorySessionRepo) GetSession(_ context.Context, id string) (*models.Session, error) {
	rec, err := repo.lookup(id)
	if err != nil {
		return nil, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	s := rec.session
	return &s, nil
}

func (repo *MemorySessionRepo) GetParticipants(_ context.Context, sessionID string) ([]models.Participant, error) {
	rec, err := repo.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	out := make([]models.Participant, len(rec.participants))
	copy(out, rec.participants)
	return out, nil
}

func (repo *MemorySessionRepo) ListByTrainerWindow(_ context.Context, trainerID string, from, to time.Time) ([]models.Session, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	var out []models.Session
	for _, rec := range repo.records {
		rec.mu.Lock()
		s := rec.session
		rec.mu.Unlock()
		if s.TrainerID != trainerID || s.Status == models.SessionCancelled {
			continue
		}
		if s.StartTime.Before(to) && s.EndTime.After(from) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (repo *MemorySessionRepo) CountInWindow(_ context.Context, from, to time.Time, types []models.SessionType) (int, error) {
	typeSet := make(map[models.SessionType]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	n := 0
	for _, rec := range repo.records {
		rec.mu.Lock()
		s := rec.session
		rec.mu.Unlock()
		if s.Status == models.SessionCancelled || !typeSet[s.Type] {
			continue
		}
		if !s.StartTime.Before(from) && !s.StartTime.After(to) {
			n++
		}
	}
	return n, nil
}

// memSessionTx stages all writes on copies; commit swaps them in atomically
// under the record lock.
type memSessionTx struct {
	session      models.Session
	participants []models.Participant
	deleted      bool
}

func (tx *memSessionTx) Session() (*models.Session, error) {
	s := tx.session
	return &s, nil
}

func (tx *memSessionTx) Participants() ([]models.Participant, error) {
	out := make([]models.Participant, len(tx.participants))
	copy(out, tx.participants)
	return out, nil
}

func (tx *memSessionTx) UpdateSession(s *models.Session) error {
	s.UpdatedAt = time.Now().UTC()
	tx.session = *s
	return nil
}

func (tx *memSessionTx) InsertParticipant(p *models.Participant) error {
	for _, existing := range tx.participants {
		if existing.ID == p.ID {
			return fmt.Errorf("participant %s already exists", p.ID)
		}
	}
	tx.participants = append(tx.participants, *p)
	return nil
}

func (tx *memSessionTx) UpdateParticipant(p *models.Participant) error {
	p.UpdatedAt = time.Now().UTC()
	for i, existing := range tx.participants {
		if existing.ID == p.ID {
			tx.participants[i] = *p
			return nil
		}
	}
	return ErrNotFound
}

func (tx *memSessionTx) DeleteParticipant(participantID string) error {
	for i, existing := range tx.participants {
		if existing.ID == participantID {
			tx.participants = append(tx.participants[:i], tx.participants[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (repo *MemorySessionRepo) CreateSession(_ context.Context, s *models.Session, admit func(tx SessionTx) error) error {
	repo.mu.Lock()
	if _, exists := repo.records[s.ID]; exists {
		repo.mu.Unlock()
		return fmt.Errorf("session %s already exists", s.ID)
	}
	rec := &memRecord{session: *s}
	repo.records[s.ID] = rec
	rec.mu.Lock()
	repo.mu.Unlock()
	defer rec.mu.Unlock()

	if admit == nil {
		return nil
	}
	tx := &memSessionTx{session: rec.session}
	if err := admit(tx); err != nil {
		// Roll the whole creation back: neither row becomes visible.
		repo.mu.Lock()
		delete(repo.records, s.ID)
		repo.mu.Unlock()
		return err
	}
	rec.session = tx.session
	rec.participants = tx.participants
	return nil
}

func (repo *MemorySessionRepo) InSessionTx(_ context.Context, sessionID string, fn func(tx SessionTx) error) error {
	rec, err := repo.lookup(sessionID)
	if err != nil {
		return err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	tx := &memSessionTx{session: rec.session}
	tx.participants = make([]models.Participant, len(rec.participants))
	copy(tx.participants, rec.participants)

	if err := fn(tx); err != nil {
		return err
	}
	tx.session.Version++
	rec.session = tx.session
	rec.participants = tx.participants
	return nil
}

func (repo *MemorySessionRepo) DeleteSessionCascade(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.records[id]; !ok {
		return ErrNotFound
	}
	delete(repo.records, id)
	return nil
}

func (repo *MemorySessionRepo) ReconcileCounts(_ context.Context) (int, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	fixed := 0
	for _, rec := range repo.records {
		rec.mu.Lock()
		n := 0
		for _, p := range rec.participants {
			if p.Status == models.BookingConfirmed {
				n++
			}
		}
		if rec.session.CurrentParticipants != n {
			rec.session.CurrentParticipants = n
			fixed++
		}
		rec.mu.Unlock()
	}
	return fixed, nil
}
