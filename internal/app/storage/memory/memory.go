// Package memory is an in-memory implementation of the storage interfaces.
// It is safe for concurrent use and is primarily intended for tests and
// local development.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pokecapture/service/internal/app/domain/capture"
	"github.com/pokecapture/service/internal/app/domain/species"
	"github.com/pokecapture/service/internal/app/domain/trainer"
	"github.com/pokecapture/service/internal/app/storage"
)

// Store holds all aggregates behind one mutex.
type Store struct {
	mu                 sync.RWMutex
	trainers           map[string]trainer.Trainer
	trainersByUsername map[string]string
	species            map[int]species.Species
	captures           map[string]capture.CapturedPokemon
}

var _ storage.TrainerStore = (*Store)(nil)
var _ storage.SpeciesStore = (*Store)(nil)
var _ storage.CaptureStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		trainers:           make(map[string]trainer.Trainer),
		trainersByUsername: make(map[string]string),
		species:            make(map[int]species.Species),
		captures:           make(map[string]capture.CapturedPokemon),
	}
}

// TrainerStore implementation ------------------------------------------------

func (s *Store) CreateTrainer(_ context.Context, t trainer.Trainer) (trainer.Trainer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.trainersByUsername[t.Username]; taken {
		return trainer.Trainer{}, storage.ErrDuplicate
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	s.trainers[t.ID] = t
	s.trainersByUsername[t.Username] = t.ID
	return t, nil
}

func (s *Store) GetTrainer(_ context.Context, id string) (trainer.Trainer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.trainers[id]
	if !ok {
		return trainer.Trainer{}, sql.ErrNoRows
	}
	return t, nil
}

func (s *Store) GetTrainerByUsername(_ context.Context, username string) (trainer.Trainer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.trainersByUsername[username]
	if !ok {
		return trainer.Trainer{}, sql.ErrNoRows
	}
	return s.trainers[id], nil
}

func (s *Store) ListTrainers(_ context.Context) ([]trainer.Trainer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]trainer.Trainer, 0, len(s.trainers))
	for _, t := range s.trainers {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) UpdateTrainer(_ context.Context, id, firstName, lastName string) (trainer.Trainer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trainers[id]
	if !ok {
		return trainer.Trainer{}, sql.ErrNoRows
	}
	t.FirstName = firstName
	t.LastName = lastName
	s.trainers[id] = t
	return t, nil
}

func (s *Store) DeleteTrainer(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trainers[id]
	if !ok {
		return sql.ErrNoRows
	}
	delete(s.trainers, id)
	delete(s.trainersByUsername, t.Username)
	// cascade, as the relational schema does
	for cid, c := range s.captures {
		if c.TrainerID == id {
			delete(s.captures, cid)
		}
	}
	return nil
}

// SpeciesStore implementation ------------------------------------------------

func (s *Store) GetSpecies(_ context.Context, id int) (species.Species, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sp, ok := s.species[id]
	if !ok {
		return species.Species{}, sql.ErrNoRows
	}
	return sp, nil
}

func (s *Store) InsertSpecies(_ context.Context, sp species.Species) (species.Species, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.species[sp.ID]; ok {
		return existing, nil
	}
	if sp.CreatedAt.IsZero() {
		sp.CreatedAt = time.Now().UTC()
	}
	s.species[sp.ID] = sp
	return sp, nil
}

func (s *Store) ListPokedex(_ context.Context) ([]species.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]species.Entry, 0, len(s.species))
	for _, sp := range s.species {
		entry := species.Entry{Species: sp}
		if username, ok := s.firstDiscovererLocked(sp.ID); ok {
			entry.DiscoveredBy = &username
		}
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Store) firstDiscovererLocked(speciesID int) (string, bool) {
	var earliest *capture.CapturedPokemon
	for _, c := range s.captures {
		if c.SpeciesID != speciesID {
			continue
		}
		c := c
		if earliest == nil || c.CapturedAt.Before(earliest.CapturedAt) {
			earliest = &c
		}
	}
	if earliest == nil {
		return "", false
	}
	t, ok := s.trainers[earliest.TrainerID]
	if !ok {
		return "", false
	}
	return t.Username, true
}

// CaptureStore implementation ------------------------------------------------

func (s *Store) CreateCapture(_ context.Context, c capture.CapturedPokemon) (capture.CapturedPokemon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CapturedAt.IsZero() {
		c.CapturedAt = time.Now().UTC()
	}
	s.captures[c.ID] = c
	return c, nil
}

func (s *Store) ListCapturesByTrainer(_ context.Context, trainerID string) ([]capture.Owned, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []capture.Owned
	for _, c := range s.captures {
		if c.TrainerID != trainerID {
			continue
		}
		owned := capture.Owned{CapturedPokemon: c}
		if sp, ok := s.species[c.SpeciesID]; ok {
			owned.SpeciesName = sp.Name
			owned.SpriteURL = sp.SpriteURL
			owned.Type1 = sp.Type1
			owned.Type2 = sp.Type2
		}
		result = append(result, owned)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CapturedAt.After(result[j].CapturedAt)
	})
	return result, nil
}

func (s *Store) UpdateNickname(_ context.Context, captureID, trainerID string, nickname *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.captures[captureID]
	if !ok || c.TrainerID != trainerID {
		return sql.ErrNoRows
	}
	c.Nickname = nickname
	s.captures[captureID] = c
	return nil
}

func (s *Store) DeleteCapture(_ context.Context, captureID, trainerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.captures[captureID]
	if !ok || c.TrainerID != trainerID {
		return sql.ErrNoRows
	}
	delete(s.captures, captureID)
	return nil
}

func (s *Store) ResetPokedex(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.species = make(map[int]species.Species)
	s.captures = make(map[string]capture.CapturedPokemon)
	return nil
}
