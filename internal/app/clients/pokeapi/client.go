// Package pokeapi is the client for the external species data provider.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pokecapture/service/internal/errors"
	"github.com/pokecapture/service/pkg/logger"
)

// Client fetches the two provider resources a species resolution needs.
type Client interface {
	// GetPokemon fetches typing, stats, sprite and measurements by numeric id.
	GetPokemon(ctx context.Context, id int) (*PokemonData, error)

	// GetPokemonSpecies fetches habitat and flavor text by the same id.
	GetPokemonSpecies(ctx context.Context, id int) (*SpeciesData, error)
}

// HTTPClient is the HTTP implementation of Client.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	log     *logger.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient constructs a provider client. A nil http.Client gets a
// bounded default timeout so a dead provider fails instead of hanging.
func NewHTTPClient(client *http.Client, baseURL string, log *logger.Logger) *HTTPClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if log == nil {
		log = logger.NewDefault("pokeapi")
	}
	return &HTTPClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

// GetPokemon implements Client.
func (c *HTTPClient) GetPokemon(ctx context.Context, id int) (*PokemonData, error) {
	var data PokemonData
	if err := c.get(ctx, fmt.Sprintf("%s/pokemon/%d", c.baseURL, id), id, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetPokemonSpecies implements Client.
func (c *HTTPClient) GetPokemonSpecies(ctx context.Context, id int) (*SpeciesData, error) {
	var data SpeciesData
	if err := c.get(ctx, fmt.Sprintf("%s/pokemon-species/%d", c.baseURL, id), id, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *HTTPClient) get(ctx context.Context, url string, id int, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Unavailable("build provider request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("url", url).Warn("provider request failed")
		return errors.Unavailable("provider request for id %d: %v", id, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.NotFound("species %d does not exist upstream", id)
	case resp.StatusCode != http.StatusOK:
		return errors.Unavailable("provider status %d for id %d", resp.StatusCode, id)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return errors.Unavailable("decode provider response for id %d: %v", id, err)
	}
	return nil
}
