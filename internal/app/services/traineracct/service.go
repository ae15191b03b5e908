// Package traineracct implements trainer registration, login, and
// profile management.
package traineracct

import (
	"context"
	"database/sql"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/pokecapture/service/internal/app/auth"
	"github.com/pokecapture/service/internal/app/domain/trainer"
	"github.com/pokecapture/service/internal/app/storage"
	"github.com/pokecapture/service/internal/errors"
	"github.com/pokecapture/service/pkg/logger"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Password  string
}

// Session is the result of a successful login.
type Session struct {
	Token   string          `json:"token"`
	Trainer trainer.Trainer `json:"trainer"`
}

// Service manages trainer accounts.
type Service struct {
	store  storage.TrainerStore
	tokens *auth.Manager
	log    *logger.Logger
}

// New builds the account service.
func New(store storage.TrainerStore, tokens *auth.Manager, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("traineracct")
	}
	return &Service{store: store, tokens: tokens, log: log}
}

// Register creates a trainer account. Usernames are unique; a taken
// username fails with ALREADY_EXISTS and writes nothing.
func (s *Service) Register(ctx context.Context, in RegisterInput) (trainer.Trainer, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Username = strings.TrimSpace(in.Username)
	if in.FirstName == "" || in.LastName == "" || in.Username == "" || in.Password == "" {
		return trainer.Trainer{}, errors.InvalidArgument("first name, last name, username, and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return trainer.Trainer{}, errors.WrapCode(errors.CodeInternal, err, "hash password")
	}

	created, err := s.store.CreateTrainer(ctx, trainer.Trainer{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return trainer.Trainer{}, errors.AlreadyExists("username %q is taken", in.Username)
		}
		return trainer.Trainer{}, errors.WrapCode(errors.CodeInternal, err, "create trainer")
	}

	s.log.WithField("trainer_id", created.ID).Info("trainer registered")
	return created, nil
}

// Login checks credentials and issues a session token. An unknown
// username and a wrong password produce the same error so the response
// does not reveal which usernames exist.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, errors.InvalidArgument("username and password are required")
	}

	tr, err := s.store.GetTrainerByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, errors.Unauthenticated("invalid credentials")
		}
		return Session{}, errors.WrapCode(errors.CodeInternal, err, "look up trainer")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(tr.PasswordHash), []byte(password)); err != nil {
		return Session{}, errors.Unauthenticated("invalid credentials")
	}

	token, err := s.tokens.Issue(tr.ID, tr.Username)
	if err != nil {
		return Session{}, err
	}

	s.log.WithField("trainer_id", tr.ID).Info("trainer logged in")
	return Session{Token: token, Trainer: tr}, nil
}

// Get returns a trainer profile by id.
func (s *Service) Get(ctx context.Context, id string) (trainer.Trainer, error) {
	tr, err := s.store.GetTrainer(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return trainer.Trainer{}, errors.NotFound("trainer %s not found", id)
		}
		return trainer.Trainer{}, errors.WrapCode(errors.CodeInternal, err, "get trainer")
	}
	return tr, nil
}

// List returns every registered trainer.
func (s *Service) List(ctx context.Context) ([]trainer.Trainer, error) {
	trainers, err := s.store.ListTrainers(ctx)
	if err != nil {
		return nil, errors.WrapCode(errors.CodeInternal, err, "list trainers")
	}
	return trainers, nil
}

// Update changes the mutable profile fields of a trainer.
func (s *Service) Update(ctx context.Context, id, firstName, lastName string) (trainer.Trainer, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return trainer.Trainer{}, errors.InvalidArgument("first name and last name are required")
	}
	tr, err := s.store.UpdateTrainer(ctx, id, firstName, lastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return trainer.Trainer{}, errors.NotFound("trainer %s not found", id)
		}
		return trainer.Trainer{}, errors.WrapCode(errors.CodeInternal, err, "update trainer")
	}
	return tr, nil
}

// Delete removes a trainer account and everything it owns.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTrainer(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errors.NotFound("trainer %s not found", id)
		}
		return errors.WrapCode(errors.CodeInternal, err, "delete trainer")
	}
	s.log.WithField("trainer_id", id).Info("trainer deleted")
	return nil
}
