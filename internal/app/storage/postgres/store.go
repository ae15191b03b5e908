// Package postgres implements the storage interfaces on PostgreSQL via sqlx.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/pokecapture/service/internal/app/domain/capture"
	"github.com/pokecapture/service/internal/app/domain/species"
	"github.com/pokecapture/service/internal/app/domain/trainer"
	"github.com/pokecapture/service/internal/app/storage"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sqlx.DB
}

var _ storage.TrainerStore = (*Store)(nil)
var _ storage.SpeciesStore = (*Store)(nil)
var _ storage.CaptureStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// uniqueViolation is the PostgreSQL error code for unique-constraint breaks.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// --- TrainerStore -----------------------------------------------------------

func (s *Store) CreateTrainer(ctx context.Context, t trainer.Trainer) (trainer.Trainer, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trainers (id, first_name, last_name, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, t.ID, t.FirstName, t.LastName, t.Username, t.PasswordHash, t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return trainer.Trainer{}, storage.ErrDuplicate
		}
		return trainer.Trainer{}, err
	}
	return t, nil
}

func (s *Store) GetTrainer(ctx context.Context, id string) (trainer.Trainer, error) {
	var t trainer.Trainer
	err := s.db.GetContext(ctx, &t, `
		SELECT id, first_name, last_name, username, password_hash, created_at
		FROM trainers
		WHERE id = $1
	`, id)
	if err != nil {
		return trainer.Trainer{}, err
	}
	return t, nil
}

func (s *Store) GetTrainerByUsername(ctx context.Context, username string) (trainer.Trainer, error) {
	var t trainer.Trainer
	err := s.db.GetContext(ctx, &t, `
		SELECT id, first_name, last_name, username, password_hash, created_at
		FROM trainers
		WHERE username = $1
	`, username)
	if err != nil {
		return trainer.Trainer{}, err
	}
	return t, nil
}

func (s *Store) ListTrainers(ctx context.Context) ([]trainer.Trainer, error) {
	var result []trainer.Trainer
	err := s.db.SelectContext(ctx, &result, `
		SELECT id, first_name, last_name, username, password_hash, created_at
		FROM trainers
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) UpdateTrainer(ctx context.Context, id, firstName, lastName string) (trainer.Trainer, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE trainers
		SET first_name = $2, last_name = $3
		WHERE id = $1
	`, id, firstName, lastName)
	if err != nil {
		return trainer.Trainer{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return trainer.Trainer{}, sql.ErrNoRows
	}
	return s.GetTrainer(ctx, id)
}

func (s *Store) DeleteTrainer(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM trainers WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// --- SpeciesStore -----------------------------------------------------------

func (s *Store) GetSpecies(ctx context.Context, id int) (species.Species, error) {
	var sp species.Species
	err := s.db.GetContext(ctx, &sp, `
		SELECT id, name, type1, type2, height_m, weight_kg, sprite_url,
		       base_hp, base_attack, base_defense, base_sp_attack,
		       base_sp_defense, base_speed, habitat, flavor_text, created_at
		FROM pokemon_species
		WHERE id = $1
	`, id)
	if err != nil {
		return species.Species{}, err
	}
	return sp, nil
}

// InsertSpecies is insert-or-fetch: concurrent resolutions of the same id may
// both reach the insert, so a conflicting write falls through to a re-read of
// the winner's row.
func (s *Store) InsertSpecies(ctx context.Context, sp species.Species) (species.Species, error) {
	if sp.CreatedAt.IsZero() {
		sp.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO pokemon_species (
			id, name, type1, type2, height_m, weight_kg, sprite_url,
			base_hp, base_attack, base_defense, base_sp_attack,
			base_sp_defense, base_speed, habitat, flavor_text, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO NOTHING
	`, sp.ID, sp.Name, sp.Type1, sp.Type2, sp.HeightM, sp.WeightKG, sp.SpriteURL,
		sp.BaseHP, sp.BaseAttack, sp.BaseDefense, sp.BaseSpAttack,
		sp.BaseSpDefense, sp.BaseSpeed, sp.Habitat, sp.FlavorText, sp.CreatedAt)
	if err != nil {
		return species.Species{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return s.GetSpecies(ctx, sp.ID)
	}
	return sp, nil
}

func (s *Store) ListPokedex(ctx context.Context) ([]species.Entry, error) {
	var result []species.Entry
	err := s.db.SelectContext(ctx, &result, `
		SELECT ps.id, ps.name, ps.type1, ps.type2, ps.height_m, ps.weight_kg,
		       ps.sprite_url, ps.base_hp, ps.base_attack, ps.base_defense,
		       ps.base_sp_attack, ps.base_sp_defense, ps.base_speed,
		       ps.habitat, ps.flavor_text, ps.created_at,
		       (
		           SELECT t.username
		           FROM captured_pokemon cp
		           JOIN trainers t ON t.id = cp.trainer_id
		           WHERE cp.species_id = ps.id
		           ORDER BY cp.captured_at ASC
		           LIMIT 1
		       ) AS discovered_by
		FROM pokemon_species ps
		ORDER BY ps.id ASC
	`)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// --- CaptureStore -----------------------------------------------------------

func (s *Store) CreateCapture(ctx context.Context, c capture.CapturedPokemon) (capture.CapturedPokemon, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CapturedAt.IsZero() {
		c.CapturedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO captured_pokemon (
			id, trainer_id, species_id, nickname, level, current_hp,
			gender, nature, height_m, weight_kg, captured_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, c.ID, c.TrainerID, c.SpeciesID, c.Nickname, c.Level, c.CurrentHP,
		c.Gender, c.Nature, c.HeightM, c.WeightKG, c.CapturedAt)
	if err != nil {
		return capture.CapturedPokemon{}, err
	}
	return c, nil
}

func (s *Store) ListCapturesByTrainer(ctx context.Context, trainerID string) ([]capture.Owned, error) {
	var result []capture.Owned
	err := s.db.SelectContext(ctx, &result, `
		SELECT cp.id, cp.trainer_id, cp.species_id, cp.nickname, cp.level,
		       cp.current_hp, cp.gender, cp.nature, cp.height_m, cp.weight_kg,
		       cp.captured_at,
		       ps.name AS species_name, ps.sprite_url, ps.type1, ps.type2
		FROM captured_pokemon cp
		JOIN pokemon_species ps ON ps.id = cp.species_id
		WHERE cp.trainer_id = $1
		ORDER BY cp.captured_at DESC
	`, trainerID)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) UpdateNickname(ctx context.Context, captureID, trainerID string, nickname *string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE captured_pokemon
		SET nickname = $3
		WHERE id = $1 AND trainer_id = $2
	`, captureID, trainerID, nickname)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) DeleteCapture(ctx context.Context, captureID, trainerID string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM captured_pokemon
		WHERE id = $1 AND trainer_id = $2
	`, captureID, trainerID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) ResetPokedex(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		TRUNCATE TABLE captured_pokemon, pokemon_species RESTART IDENTITY CASCADE
	`)
	return err
}
