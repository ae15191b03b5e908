// Package capture creates owned capture records with randomized attributes.
package capture

import (
	"context"
	"database/sql"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/pokecapture/service/internal/app/domain/capture"
	"github.com/pokecapture/service/internal/app/domain/species"
	"github.com/pokecapture/service/internal/app/metrics"
	"github.com/pokecapture/service/internal/app/storage"
	"github.com/pokecapture/service/internal/errors"
	"github.com/pokecapture/service/pkg/logger"
)

// genders a capture rolls between.
var genders = []string{"M", "F"}

// natures is the fixed flavor-trait vocabulary, one of which every capture
// gets at random.
var natures = []string{
	"Fuerte", "Huérfana", "Audaz", "Firme", "Pícara",
	"Osada", "Dócil", "Plácida", "Agitada", "Floja",
	"Miedosa", "Activa", "Seria", "Alegre", "Ingenua",
	"Modesta", "Afable", "Mansa", "Tímida", "Alocada",
	"Serena", "Amable", "Grosera", "Cauta", "Rara",
}

// Resolver yields species reference data for a capture.
type Resolver interface {
	Resolve(ctx context.Context, id int) (species.Species, error)
}

// Service creates captures for trainers.
type Service struct {
	trainers storage.TrainerStore
	captures storage.CaptureStore
	resolver Resolver
	log      *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// New constructs a capture service. A nil rng gets a time-seeded source; a
// seeded one makes attribute generation deterministic for tests.
func New(trainers storage.TrainerStore, captures storage.CaptureStore, resolver Resolver, rng *rand.Rand, log *logger.Logger) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = logger.NewDefault("capture")
	}
	return &Service{
		trainers: trainers,
		captures: captures,
		resolver: resolver,
		log:      log,
		rng:      rng,
	}
}

// Capture resolves the species, rolls the instance attributes and persists
// the capture row. The species row is guaranteed to exist before the capture
// row is written.
func (s *Service) Capture(ctx context.Context, trainerID string, speciesID int, nickname string) (capture.CapturedPokemon, error) {
	if strings.TrimSpace(trainerID) == "" {
		return capture.CapturedPokemon{}, errors.InvalidArgument("trainer id is required")
	}
	if speciesID < 1 {
		return capture.CapturedPokemon{}, errors.InvalidArgument("species id is required")
	}

	if _, err := s.trainers.GetTrainer(ctx, trainerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return capture.CapturedPokemon{}, errors.InvalidArgument("trainer %s does not exist", trainerID)
		}
		return capture.CapturedPokemon{}, errors.WrapCode(errors.CodeInternal, err, "look up trainer %s", trainerID)
	}

	sp, err := s.resolver.Resolve(ctx, speciesID)
	if err != nil {
		return capture.CapturedPokemon{}, err
	}

	c := capture.CapturedPokemon{
		TrainerID: trainerID,
		SpeciesID: sp.ID,
		CurrentHP: sp.BaseHP,
	}
	if trimmed := strings.TrimSpace(nickname); trimmed != "" {
		c.Nickname = &trimmed
	}
	s.roll(&c, sp)

	created, err := s.captures.CreateCapture(ctx, c)
	if err != nil {
		return capture.CapturedPokemon{}, errors.WrapCode(errors.CodeInternal, err, "persist capture for species %d", sp.ID)
	}
	metrics.RecordCapture()

	s.log.WithField("trainer_id", trainerID).
		WithField("species_id", sp.ID).
		WithField("capture_id", created.ID).
		Info("pokemon captured")
	return created, nil
}

// roll fills the randomized instance attributes: level uniform in [1,5],
// gender and nature uniform over their vocabularies, height and weight
// jittered from the species base by a factor in [0.8, 1.2].
func (s *Service) roll(c *capture.CapturedPokemon, sp species.Species) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.Level = s.rng.Intn(5) + 1
	c.Gender = genders[s.rng.Intn(len(genders))]
	c.Nature = natures[s.rng.Intn(len(natures))]
	c.HeightM = round2(sp.HeightM * jitter(s.rng))
	c.WeightKG = round2(sp.WeightKG * jitter(s.rng))
}

func jitter(rng *rand.Rand) float64 {
	return 0.8 + rng.Float64()*0.4
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Natures exposes the nature vocabulary for validation and tests.
func Natures() []string {
	out := make([]string, len(natures))
	copy(out, natures)
	return out
}
