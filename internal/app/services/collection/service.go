// Package collection serves queries and mutations over a trainer's own
// captures plus the shared encyclopedia view.
package collection

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pokecapture/service/internal/app/domain/capture"
	"github.com/pokecapture/service/internal/app/domain/species"
	"github.com/pokecapture/service/internal/app/storage"
	"github.com/pokecapture/service/internal/errors"
	"github.com/pokecapture/service/pkg/logger"
)

// captureDateLayout renders capture dates the way the gallery displays them.
const captureDateLayout = "02/01/2006"

// displayLocation is the timezone capture dates are rendered in.
var displayLocation = func() *time.Location {
	loc, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// Service queries and mutates a trainer's collection.
type Service struct {
	captures storage.CaptureStore
	species  storage.SpeciesStore
	log      *logger.Logger
}

// New constructs a collection service.
func New(captures storage.CaptureStore, speciesStore storage.SpeciesStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("collection")
	}
	return &Service{
		captures: captures,
		species:  speciesStore,
		log:      log,
	}
}

// List returns the trainer's captures joined with species display data,
// newest first, with the display name and localized capture date filled in.
func (s *Service) List(ctx context.Context, trainerID string) ([]capture.Owned, error) {
	owned, err := s.captures.ListCapturesByTrainer(ctx, trainerID)
	if err != nil {
		return nil, errors.WrapCode(errors.CodeInternal, err, "list captures for trainer %s", trainerID)
	}
	for i := range owned {
		owned[i].DisplayName = owned[i].SpeciesName
		if owned[i].Nickname != nil && *owned[i].Nickname != "" {
			owned[i].DisplayName = *owned[i].Nickname
		}
		owned[i].CapturedOn = owned[i].CapturedAt.In(displayLocation).Format(captureDateLayout)
	}
	return owned, nil
}

// Rename sets or clears the nickname of one of the trainer's captures. An
// empty nickname reverts the display name to the species name. A capture
// that does not exist and one owned by another trainer fail identically.
func (s *Service) Rename(ctx context.Context, trainerID, captureID, nickname string) error {
	var value *string
	if trimmed := strings.TrimSpace(nickname); trimmed != "" {
		value = &trimmed
	}

	err := s.captures.UpdateNickname(ctx, captureID, trainerID, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errors.NotFound("capture %s not found", captureID)
		}
		return errors.WrapCode(errors.CodeInternal, err, "rename capture %s", captureID)
	}
	return nil
}

// Release deletes one of the trainer's captures under the same ownership
// predicate as Rename.
func (s *Service) Release(ctx context.Context, trainerID, captureID string) error {
	err := s.captures.DeleteCapture(ctx, captureID, trainerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errors.NotFound("capture %s not found", captureID)
		}
		return errors.WrapCode(errors.CodeInternal, err, "release capture %s", captureID)
	}
	s.log.WithField("capture_id", captureID).WithField("trainer_id", trainerID).Info("pokemon released")
	return nil
}

// Pokedex returns every cached species annotated with its first discoverer.
func (s *Service) Pokedex(ctx context.Context) ([]species.Entry, error) {
	entries, err := s.species.ListPokedex(ctx)
	if err != nil {
		return nil, errors.WrapCode(errors.CodeInternal, err, "list pokedex")
	}
	return entries, nil
}

// Reset irreversibly clears all captures and all cached species.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.captures.ResetPokedex(ctx); err != nil {
		return errors.WrapCode(errors.CodeInternal, err, "reset pokedex")
	}
	s.log.Warn("pokedex reset: all captures and cached species cleared")
	return nil
}
