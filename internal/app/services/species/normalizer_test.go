package species

import (
	"testing"

	"github.com/pokecapture/service/internal/app/clients/pokeapi"
	"github.com/pokecapture/service/internal/errors"
)

func basicPayload() *pokeapi.PokemonData {
	basic := &pokeapi.PokemonData{
		ID:     7,
		Name:   "squirtle",
		Height: 70,
		Weight: 690,
	}
	basic.Sprites.FrontDefault = "https://sprites.example/7.png"
	basic.Types = []pokeapi.TypeSlot{
		{Slot: 1, Type: pokeapi.NamedResource{Name: "water"}},
	}
	basic.Stats = []pokeapi.StatValue{
		{BaseStat: 44, Stat: pokeapi.NamedResource{Name: "hp"}},
		{BaseStat: 48, Stat: pokeapi.NamedResource{Name: "attack"}},
		{BaseStat: 65, Stat: pokeapi.NamedResource{Name: "defense"}},
		{BaseStat: 50, Stat: pokeapi.NamedResource{Name: "special-attack"}},
		{BaseStat: 64, Stat: pokeapi.NamedResource{Name: "special-defense"}},
		{BaseStat: 43, Stat: pokeapi.NamedResource{Name: "speed"}},
	}
	return basic
}

func metaPayload(entries ...[2]string) *pokeapi.SpeciesData {
	meta := &pokeapi.SpeciesData{ID: 7, Name: "squirtle"}
	meta.Habitat = &pokeapi.NamedResource{Name: "waters-edge"}
	for _, e := range entries {
		meta.FlavorTextEntries = append(meta.FlavorTextEntries, pokeapi.FlavorTextEntry{
			FlavorText: e[1],
			Language:   pokeapi.NamedResource{Name: e[0]},
		})
	}
	return meta
}

func TestNormalizeConvertsUnitsAndTranslatesTypes(t *testing.T) {
	sp, err := Normalize(basicPayload(), metaPayload([2]string{"en", "Shoots water."}))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	if sp.HeightM != 7.0 {
		t.Errorf("height = %v, want 7.0", sp.HeightM)
	}
	if sp.WeightKG != 69.0 {
		t.Errorf("weight = %v, want 69.0", sp.WeightKG)
	}
	if sp.Type1 == nil || *sp.Type1 != "Agua" {
		t.Errorf("type1 = %v, want Agua", sp.Type1)
	}
	if sp.Type2 != nil {
		t.Errorf("type2 = %v, want nil", *sp.Type2)
	}
	if sp.BaseHP != 44 || sp.BaseSpeed != 43 {
		t.Errorf("stats not extracted: %#v", sp)
	}
	if sp.Habitat == nil || *sp.Habitat != "waters-edge" {
		t.Errorf("habitat = %v", sp.Habitat)
	}
}

func TestNormalizeUnknownTypePassesThrough(t *testing.T) {
	basic := basicPayload()
	basic.Types[0].Type.Name = "cosmic"

	sp, err := Normalize(basic, metaPayload())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if sp.Type1 == nil || *sp.Type1 != "cosmic" {
		t.Errorf("type1 = %v, want cosmic verbatim", sp.Type1)
	}
}

func TestNormalizeMissingStatFails(t *testing.T) {
	basic := basicPayload()
	basic.Stats = basic.Stats[:4] // drop special-defense and speed

	_, err := Normalize(basic, metaPayload())
	if !errors.IsCode(err, errors.CodeBadUpstream) {
		t.Fatalf("expected BAD_UPSTREAM, got %v", err)
	}
}

func TestNormalizeFlavorTextPrefersSpanish(t *testing.T) {
	meta := metaPayload(
		[2]string{"en", "Shoots water."},
		[2]string{"es", "Lanza  agua\na presión."},
	)

	sp, err := Normalize(basicPayload(), meta)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if sp.FlavorText == nil || *sp.FlavorText != "Lanza agua a presión." {
		t.Errorf("flavor = %v, want collapsed Spanish entry", sp.FlavorText)
	}
}

func TestNormalizeFlavorTextFallsBackToEnglish(t *testing.T) {
	meta := metaPayload(
		[2]string{"fr", "Tire de l'eau."},
		[2]string{"en", "Shoots\nwater."},
	)

	sp, err := Normalize(basicPayload(), meta)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if sp.FlavorText == nil || *sp.FlavorText != "Shoots water." {
		t.Errorf("flavor = %v, want English fallback", sp.FlavorText)
	}
}

func TestNormalizeNoUsableFlavorText(t *testing.T) {
	sp, err := Normalize(basicPayload(), metaPayload([2]string{"fr", "Tire de l'eau."}))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if sp.FlavorText != nil {
		t.Errorf("flavor = %v, want nil", *sp.FlavorText)
	}
}
