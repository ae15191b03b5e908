// Package storage defines the persistence contracts the services depend on.
// Implementations report a missing row as sql.ErrNoRows and a uniqueness
// conflict as ErrDuplicate so callers can translate without knowing the
// backend.
package storage

import (
	"context"
	"errors"

	"github.com/pokecapture/service/internal/app/domain/capture"
	"github.com/pokecapture/service/internal/app/domain/species"
	"github.com/pokecapture/service/internal/app/domain/trainer"
)

// ErrDuplicate reports a unique-constraint conflict.
var ErrDuplicate = errors.New("storage: duplicate key")

// TrainerStore persists trainer accounts.
type TrainerStore interface {
	// CreateTrainer inserts a trainer, returning ErrDuplicate when the
	// username is taken.
	CreateTrainer(ctx context.Context, t trainer.Trainer) (trainer.Trainer, error)
	GetTrainer(ctx context.Context, id string) (trainer.Trainer, error)
	GetTrainerByUsername(ctx context.Context, username string) (trainer.Trainer, error)
	ListTrainers(ctx context.Context) ([]trainer.Trainer, error)
	UpdateTrainer(ctx context.Context, id, firstName, lastName string) (trainer.Trainer, error)
	// DeleteTrainer removes the trainer; owned captures go with it.
	DeleteTrainer(ctx context.Context, id string) error
}

// SpeciesStore is the durable species cache.
type SpeciesStore interface {
	GetSpecies(ctx context.Context, id int) (species.Species, error)
	// InsertSpecies writes a species record once. When a concurrent insert
	// already won the race it re-reads and returns the existing row instead
	// of failing; the first writer's record is canonical.
	InsertSpecies(ctx context.Context, sp species.Species) (species.Species, error)
	// ListPokedex returns every cached species, lowest id first, each
	// annotated with the username of its earliest captor if any.
	ListPokedex(ctx context.Context) ([]species.Entry, error)
}

// CaptureStore persists owned captures.
type CaptureStore interface {
	CreateCapture(ctx context.Context, c capture.CapturedPokemon) (capture.CapturedPokemon, error)
	// ListCapturesByTrainer returns the trainer's captures joined with
	// species display fields, newest first.
	ListCapturesByTrainer(ctx context.Context, trainerID string) ([]capture.Owned, error)
	// UpdateNickname sets (or clears, when nil) the nickname of a capture.
	// The predicate matches both capture id and owner, so a capture owned by
	// someone else is indistinguishable from a missing one.
	UpdateNickname(ctx context.Context, captureID, trainerID string, nickname *string) error
	// DeleteCapture releases a capture under the same ownership predicate.
	DeleteCapture(ctx context.Context, captureID, trainerID string) error
	// ResetPokedex irreversibly clears all captures and all cached species.
	ResetPokedex(ctx context.Context) error
}
