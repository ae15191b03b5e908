// Package species resolves species reference data through the local cache
// store, falling back to the external provider exactly once per id.
package species

import (
	"context"
	"database/sql"
	"math/rand"
	"sync"
	"time"

	"github.com/pokecapture/service/internal/app/clients/pokeapi"
	"github.com/pokecapture/service/internal/app/domain/species"
	"github.com/pokecapture/service/internal/app/metrics"
	"github.com/pokecapture/service/internal/app/storage"
	"github.com/pokecapture/service/internal/errors"
	"github.com/pokecapture/service/pkg/logger"
)

// maxSpeciesID bounds the id range used for random resolution. It matches
// the provider's highest assigned species id.
const maxSpeciesID = 1025

// Resolver orchestrates cache lookup, provider fetch, normalization and
// persist-on-miss.
type Resolver struct {
	store  storage.SpeciesStore
	client pokeapi.Client
	log    *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewResolver constructs a resolver. A nil rng gets a time-seeded source; a
// seeded one makes Random deterministic for tests.
func NewResolver(store storage.SpeciesStore, client pokeapi.Client, rng *rand.Rand, log *logger.Logger) *Resolver {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = logger.NewDefault("species-resolver")
	}
	return &Resolver{
		store:  store,
		client: client,
		log:    log,
		rng:    rng,
	}
}

// Resolve returns the species record for id, serving it from the cache store
// when present and otherwise fetching, normalizing and persisting it. Two
// concurrent resolutions of an uncached id may both fetch from the provider;
// the store's insert-or-fetch contract guarantees a single row either way.
func (r *Resolver) Resolve(ctx context.Context, id int) (species.Species, error) {
	if id < 1 {
		return species.Species{}, errors.InvalidArgument("species id %d out of range", id)
	}

	sp, err := r.store.GetSpecies(ctx, id)
	if err == nil {
		metrics.RecordCacheHit()
		return sp, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return species.Species{}, errors.WrapCode(errors.CodeInternal, err, "query species cache for %d", id)
	}
	metrics.RecordCacheMiss()

	basic, meta, err := r.fetchBoth(ctx, id)
	if err != nil {
		if errors.IsCode(err, errors.CodeNotFound) {
			metrics.RecordProviderFetch("not_found")
		} else {
			metrics.RecordProviderFetch("error")
		}
		return species.Species{}, err
	}
	metrics.RecordProviderFetch("ok")

	sp, err = Normalize(basic, meta)
	if err != nil {
		return species.Species{}, err
	}

	inserted, err := r.store.InsertSpecies(ctx, sp)
	if err != nil {
		return species.Species{}, errors.WrapCode(errors.CodeInternal, err, "persist species %d", id)
	}
	r.log.WithField("species_id", id).WithField("name", inserted.Name).Info("species cached")
	return inserted, nil
}

// Random resolves a uniformly random species id.
func (r *Resolver) Random(ctx context.Context) (species.Species, error) {
	r.mu.Lock()
	id := r.rng.Intn(maxSpeciesID) + 1
	r.mu.Unlock()
	return r.Resolve(ctx, id)
}

type basicResult struct {
	data *pokeapi.PokemonData
	err  error
}

type metaResult struct {
	data *pokeapi.SpeciesData
	err  error
}

// fetchBoth issues the two provider calls concurrently and joins them.
// Partial results are never used: either call failing fails the resolution.
func (r *Resolver) fetchBoth(ctx context.Context, id int) (*pokeapi.PokemonData, *pokeapi.SpeciesData, error) {
	basicCh := make(chan basicResult, 1)
	metaCh := make(chan metaResult, 1)

	go func() {
		data, err := r.client.GetPokemon(ctx, id)
		basicCh <- basicResult{data: data, err: err}
	}()
	go func() {
		data, err := r.client.GetPokemonSpecies(ctx, id)
		metaCh <- metaResult{data: data, err: err}
	}()

	basic := <-basicCh
	meta := <-metaCh

	if basic.err != nil {
		return nil, nil, basic.err
	}
	if meta.err != nil {
		return nil, nil, meta.err
	}
	return basic.data, meta.data, nil
}
