package traineracct

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pokecapture/service/internal/app/auth"
	"github.com/pokecapture/service/internal/app/storage/memory"
	"github.com/pokecapture/service/internal/errors"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	return New(store, auth.NewManager("test-secret", time.Hour), nil), store
}

func register(t *testing.T, svc *Service, username string) {
	t.Helper()
	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Ash", LastName: "Ketchum", Username: username, Password: "pikachu123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, store := newTestService(t)
	register(t, svc, "ash")

	tr, err := store.GetTrainerByUsername(context.Background(), "ash")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if tr.PasswordHash == "pikachu123" {
		t.Fatal("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(tr.PasswordHash), []byte("pikachu123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, store := newTestService(t)
	register(t, svc, "ash")

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Gary", LastName: "Oak", Username: "ash", Password: "eevee456",
	})
	if !errors.IsCode(err, errors.CodeAlreadyExists) {
		t.Fatalf("expected ALREADY_EXISTS, got %v", err)
	}
	trainers, err := store.ListTrainers(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(trainers) != 1 {
		t.Fatalf("duplicate register created a row: %d trainers", len(trainers))
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	inputs := []RegisterInput{
		{LastName: "Ketchum", Username: "ash", Password: "x"},
		{FirstName: "Ash", Username: "ash", Password: "x"},
		{FirstName: "Ash", LastName: "Ketchum", Password: "x"},
		{FirstName: "Ash", LastName: "Ketchum", Username: "ash"},
		{FirstName: "  ", LastName: "Ketchum", Username: "ash", Password: "x"},
	}
	for i, in := range inputs {
		if _, err := svc.Register(context.Background(), in); !errors.IsCode(err, errors.CodeInvalidArgument) {
			t.Errorf("input %d: expected INVALID_ARGUMENT, got %v", i, err)
		}
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	tokens := auth.NewManager("test-secret", time.Hour)
	store := memory.New()
	svc := New(store, tokens, nil)
	register(t, svc, "ash")

	session, err := svc.Login(context.Background(), "ash", "pikachu123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := tokens.Verify(session.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.TrainerID != session.Trainer.ID {
		t.Errorf("token trainer id = %q, want %q", claims.TrainerID, session.Trainer.ID)
	}
	if claims.Username != "ash" {
		t.Errorf("token username = %q, want ash", claims.Username)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "ash")

	_, wrongPass := svc.Login(context.Background(), "ash", "wrong")
	_, noUser := svc.Login(context.Background(), "nobody", "pikachu123")

	if !errors.IsCode(wrongPass, errors.CodeUnauthenticated) {
		t.Fatalf("wrong password: expected UNAUTHENTICATED, got %v", wrongPass)
	}
	if !errors.IsCode(noUser, errors.CodeUnauthenticated) {
		t.Fatalf("unknown user: expected UNAUTHENTICATED, got %v", noUser)
	}
	if wrongPass.Error() != noUser.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPass, noUser)
	}
}

func TestUpdateAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Ash", LastName: "Ketchum", Username: "ash", Password: "pikachu123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, "Satoshi", "Red")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.FirstName != "Satoshi" || updated.LastName != "Red" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.Username != "ash" {
		t.Fatalf("update changed the username: %q", updated.Username)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FirstName != "Satoshi" {
		t.Fatalf("get returned stale profile: %+v", got)
	}
}

func TestDeleteMissingTrainer(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.Delete(context.Background(), "no-such-id"); !errors.IsCode(err, errors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
