package species

import "time"

// Species is the cached reference record for one species. Rows are written
// once, on first resolution, and never updated afterwards. The ID matches the
// external provider's numeric id space.
type Species struct {
	ID            int       `db:"id" json:"speciesId"`
	Name          string    `db:"name" json:"name"`
	Type1         *string   `db:"type1" json:"type1"`
	Type2         *string   `db:"type2" json:"type2"`
	HeightM       float64   `db:"height_m" json:"heightM"`
	WeightKG      float64   `db:"weight_kg" json:"weightKg"`
	SpriteURL     string    `db:"sprite_url" json:"spriteUrl"`
	BaseHP        int       `db:"base_hp" json:"baseHp"`
	BaseAttack    int       `db:"base_attack" json:"baseAttack"`
	BaseDefense   int       `db:"base_defense" json:"baseDefense"`
	BaseSpAttack  int       `db:"base_sp_attack" json:"baseSpAttack"`
	BaseSpDefense int       `db:"base_sp_defense" json:"baseSpDefense"`
	BaseSpeed     int       `db:"base_speed" json:"baseSpeed"`
	Habitat       *string   `db:"habitat" json:"habitat"`
	FlavorText    *string   `db:"flavor_text" json:"flavorText"`
	CreatedAt     time.Time `db:"created_at" json:"-"`
}

// Entry is a species row in the encyclopedia listing, annotated with the
// username of the trainer whose capture of it is oldest. Nil when nobody has
// captured it yet.
type Entry struct {
	Species
	DiscoveredBy *string `db:"discovered_by" json:"discoveredBy"`
}
