package pokeapi

// Raw payload shapes for the two provider resources a resolution needs. Only
// the fields the normalizer consumes are mapped.

// NamedResource is the provider's {name, url} reference object.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TypeSlot is one entry of a pokemon's type list.
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// StatValue is one entry of a pokemon's base stat list.
type StatValue struct {
	BaseStat int           `json:"base_stat"`
	Stat     NamedResource `json:"stat"`
}

// Sprites carries the default front sprite URL.
type Sprites struct {
	FrontDefault string `json:"front_default"`
}

// PokemonData is the "basic" resource: typing, stats, sprite and measurements.
// Height is expressed in decimetres and weight in hectograms.
type PokemonData struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Height  int         `json:"height"`
	Weight  int         `json:"weight"`
	Types   []TypeSlot  `json:"types"`
	Stats   []StatValue `json:"stats"`
	Sprites Sprites     `json:"sprites"`
}

// FlavorTextEntry is one localized flavor-text entry.
type FlavorTextEntry struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
}

// SpeciesData is the "species" resource: habitat and localized flavor text.
type SpeciesData struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	Habitat           *NamedResource    `json:"habitat"`
	FlavorTextEntries []FlavorTextEntry `json:"flavor_text_entries"`
}
