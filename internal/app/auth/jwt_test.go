package auth

import (
	"testing"
	"time"

	"github.com/pokecapture/service/internal/errors"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Issue("trainer-1", "ash")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.TrainerID != "trainer-1" {
		t.Errorf("trainer id = %q, want trainer-1", claims.TrainerID)
	}
	if claims.Username != "ash" {
		t.Errorf("username = %q, want ash", claims.Username)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Issue("trainer-1", "ash")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_, err = NewManager("secret-b", time.Hour).Verify(token)
	if !errors.IsCode(err, errors.CodeUnauthenticated) {
		t.Fatalf("expected UNAUTHENTICATED, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	issuedAt := time.Now().Add(-3 * time.Hour)
	m.now = func() time.Time { return issuedAt }

	token, err := m.Issue("trainer-1", "ash")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	m.now = time.Now
	_, err = m.Verify(token)
	if !errors.IsCode(err, errors.CodeUnauthenticated) {
		t.Fatalf("expected UNAUTHENTICATED, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Verify(tok); !errors.IsCode(err, errors.CodeUnauthenticated) {
			t.Errorf("Verify(%q): expected UNAUTHENTICATED, got %v", tok, err)
		}
	}
}

func TestDefaultTTL(t *testing.T) {
	m := NewManager("test-secret", 0)
	if m.ttl != 2*time.Hour {
		t.Fatalf("default ttl = %v, want 2h", m.ttl)
	}
}
