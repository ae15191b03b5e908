package pokeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pokecapture/service/internal/errors"
)

const pokemonBody = `{
	"id": 7,
	"name": "squirtle",
	"height": 5,
	"weight": 90,
	"types": [{"slot": 1, "type": {"name": "water", "url": ""}}],
	"stats": [
		{"base_stat": 44, "stat": {"name": "hp", "url": ""}},
		{"base_stat": 48, "stat": {"name": "attack", "url": ""}}
	],
	"sprites": {"front_default": "https://sprites.example/7.png"}
}`

const speciesBody = `{
	"id": 7,
	"name": "squirtle",
	"habitat": {"name": "waters-edge", "url": ""},
	"flavor_text_entries": [
		{"flavor_text": "Shoots water.", "language": {"name": "en", "url": ""}}
	]
}`

func TestGetPokemon(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pokemon/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(pokemonBody))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.Client(), srv.URL, nil)
	data, err := client.GetPokemon(context.Background(), 7)
	if err != nil {
		t.Fatalf("get pokemon: %v", err)
	}
	if data.Name != "squirtle" || data.Height != 5 || data.Weight != 90 {
		t.Fatalf("unexpected payload: %#v", data)
	}
	if len(data.Types) != 1 || data.Types[0].Type.Name != "water" {
		t.Fatalf("types not decoded: %#v", data.Types)
	}
	if data.Sprites.FrontDefault == "" {
		t.Fatalf("sprite not decoded")
	}
}

func TestGetPokemonSpecies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pokemon-species/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(speciesBody))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.Client(), srv.URL, nil)
	data, err := client.GetPokemonSpecies(context.Background(), 7)
	if err != nil {
		t.Fatalf("get species: %v", err)
	}
	if data.Habitat == nil || data.Habitat.Name != "waters-edge" {
		t.Fatalf("habitat not decoded: %#v", data.Habitat)
	}
	if len(data.FlavorTextEntries) != 1 {
		t.Fatalf("flavor entries not decoded")
	}
}

func TestGetPokemonNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.Client(), srv.URL, nil)
	_, err := client.GetPokemon(context.Background(), 99999)
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestGetPokemonServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.Client(), srv.URL, nil)
	_, err := client.GetPokemon(context.Background(), 7)
	if !errors.IsCode(err, errors.CodeUnavailable) {
		t.Fatalf("expected UNAVAILABLE, got %v", err)
	}
}

func TestGetPokemonMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "not-a-number"`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.Client(), srv.URL, nil)
	_, err := client.GetPokemon(context.Background(), 7)
	if !errors.IsCode(err, errors.CodeUnavailable) {
		t.Fatalf("expected UNAVAILABLE on malformed body, got %v", err)
	}
}

func TestGetPokemonUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewHTTPClient(nil, srv.URL, nil)
	_, err := client.GetPokemon(context.Background(), 7)
	if !errors.IsCode(err, errors.CodeUnavailable) {
		t.Fatalf("expected UNAVAILABLE on dead provider, got %v", err)
	}
}
