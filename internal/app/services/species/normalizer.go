package species

import (
	"strings"

	"github.com/pokecapture/service/internal/app/clients/pokeapi"
	"github.com/pokecapture/service/internal/app/domain/species"
	"github.com/pokecapture/service/internal/errors"
)

// typeTranslations maps the provider's elemental type names to the Spanish
// vocabulary served to clients. Unmapped names pass through verbatim.
var typeTranslations = map[string]string{
	"normal":   "Normal",
	"fire":     "Fuego",
	"water":    "Agua",
	"grass":    "Planta",
	"electric": "Eléctrico",
	"ice":      "Hielo",
	"fighting": "Lucha",
	"poison":   "Veneno",
	"ground":   "Tierra",
	"flying":   "Volador",
	"psychic":  "Psíquico",
	"bug":      "Bicho",
	"rock":     "Roca",
	"ghost":    "Fantasma",
	"dragon":   "Dragón",
	"steel":    "Acero",
	"fairy":    "Hada",
	"dark":     "Siniestro",
}

// The six stats every species record must carry, keyed by the provider's
// stat names.
var requiredStats = []string{
	"hp", "attack", "defense", "special-attack", "special-defense", "speed",
}

// Normalize maps the two raw provider payloads into the internal species
// shape. It is a pure function: flavor text prefers the Spanish entry and
// falls back to English, measurements convert from decimetres/hectograms to
// metres/kilograms, and all six base stats must be present by name.
func Normalize(basic *pokeapi.PokemonData, meta *pokeapi.SpeciesData) (species.Species, error) {
	stats := make(map[string]int, len(basic.Stats))
	for _, s := range basic.Stats {
		stats[s.Stat.Name] = s.BaseStat
	}
	for _, name := range requiredStats {
		if _, ok := stats[name]; !ok {
			return species.Species{}, errors.BadUpstream("stat %q missing for species %d", name, basic.ID)
		}
	}

	sp := species.Species{
		ID:            basic.ID,
		Name:          basic.Name,
		HeightM:       float64(basic.Height) / 10,
		WeightKG:      float64(basic.Weight) / 10,
		SpriteURL:     basic.Sprites.FrontDefault,
		BaseHP:        stats["hp"],
		BaseAttack:    stats["attack"],
		BaseDefense:   stats["defense"],
		BaseSpAttack:  stats["special-attack"],
		BaseSpDefense: stats["special-defense"],
		BaseSpeed:     stats["speed"],
	}

	types := make([]string, 0, 2)
	for _, t := range basic.Types {
		types = append(types, translateType(t.Type.Name))
		if len(types) == 2 {
			break
		}
	}
	if len(types) > 0 {
		sp.Type1 = &types[0]
	}
	if len(types) > 1 {
		sp.Type2 = &types[1]
	}

	if meta.Habitat != nil && meta.Habitat.Name != "" {
		habitat := meta.Habitat.Name
		sp.Habitat = &habitat
	}
	if flavor, ok := pickFlavorText(meta); ok {
		sp.FlavorText = &flavor
	}

	return sp, nil
}

func translateType(name string) string {
	if translated, ok := typeTranslations[name]; ok {
		return translated
	}
	return name
}

// pickFlavorText selects a single flavor-text entry, preferring Spanish over
// English, and collapses the provider's embedded newlines and form feeds to
// single spaces.
func pickFlavorText(meta *pokeapi.SpeciesData) (string, bool) {
	for _, lang := range []string{"es", "en"} {
		for _, entry := range meta.FlavorTextEntries {
			if entry.Language.Name == lang {
				return strings.Join(strings.Fields(entry.FlavorText), " "), true
			}
		}
	}
	return "", false
}
