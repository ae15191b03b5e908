package capture

import "time"

// CapturedPokemon is a single owned instance of a species.
type CapturedPokemon struct {
	ID         string    `db:"id" json:"capturedPokemonID"`
	TrainerID  string    `db:"trainer_id" json:"-"`
	SpeciesID  int       `db:"species_id" json:"speciesId"`
	Nickname   *string   `db:"nickname" json:"nickname"`
	Level      int       `db:"level" json:"level"`
	CurrentHP  int       `db:"current_hp" json:"currentHp"`
	Gender     string    `db:"gender" json:"gender"`
	Nature     string    `db:"nature" json:"nature"`
	HeightM    float64   `db:"height_m" json:"heightM"`
	WeightKG   float64   `db:"weight_kg" json:"weightKg"`
	CapturedAt time.Time `db:"captured_at" json:"capturedAt"`
}

// Owned is a capture joined with the display fields of its species, as served
// by the collection listing. DisplayName falls back to the species name when
// no nickname is set; CapturedOn is the localized capture date.
type Owned struct {
	CapturedPokemon
	DisplayName string  `db:"-" json:"displayName"`
	CapturedOn  string  `db:"-" json:"capturedOn"`
	SpeciesName string  `db:"species_name" json:"speciesName"`
	SpriteURL   string  `db:"sprite_url" json:"spriteUrl"`
	Type1       *string `db:"type1" json:"type1"`
	Type2       *string `db:"type2" json:"type2"`
}
