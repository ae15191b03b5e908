// Package migrations applies the database schema at startup. Statements
// are idempotent so repeated application is safe.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS trainers (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS pokemon_species (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		type1 TEXT,
		type2 TEXT,
		height_m DOUBLE PRECISION NOT NULL,
		weight_kg DOUBLE PRECISION NOT NULL,
		sprite_url TEXT NOT NULL,
		base_hp INTEGER NOT NULL,
		base_attack INTEGER NOT NULL,
		base_defense INTEGER NOT NULL,
		base_sp_attack INTEGER NOT NULL,
		base_sp_defense INTEGER NOT NULL,
		base_speed INTEGER NOT NULL,
		habitat TEXT,
		flavor_text TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS captured_pokemon (
		id TEXT PRIMARY KEY,
		trainer_id TEXT NOT NULL REFERENCES trainers(id) ON DELETE CASCADE,
		species_id INTEGER NOT NULL REFERENCES pokemon_species(id) ON DELETE RESTRICT,
		nickname TEXT,
		level INTEGER NOT NULL,
		current_hp INTEGER NOT NULL,
		gender TEXT NOT NULL,
		nature TEXT NOT NULL,
		height_m DOUBLE PRECISION NOT NULL,
		weight_kg DOUBLE PRECISION NOT NULL,
		captured_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_captured_pokemon_trainer
		ON captured_pokemon (trainer_id, captured_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_captured_pokemon_species
		ON captured_pokemon (species_id, captured_at ASC)`,
}

// Apply runs every schema statement in order.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
	}
	return nil
}
