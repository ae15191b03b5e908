// Package auth issues and verifies the bearer tokens that protect
// trainer-scoped endpoints.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pokecapture/service/internal/errors"
)

// Claims are the token claims carried by a trainer session.
type Claims struct {
	TrainerID string `json:"trainer_id"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager builds a token manager. A non-positive ttl falls back to
// two hours.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for the given trainer.
func (m *Manager) Issue(trainerID, username string) (string, error) {
	now := m.now().UTC()
	claims := Claims{
		TrainerID: trainerID,
		Username:  username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   trainerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", errors.WrapCode(errors.CodeInternal, err, "sign session token")
	}
	return signed, nil
}

// Verify parses a token string and returns its claims. Expired,
// malformed, or wrongly signed tokens yield UNAUTHENTICATED.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Unauthenticated("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil {
		return nil, errors.WrapCode(errors.CodeUnauthenticated, err, "invalid token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TrainerID == "" {
		return nil, errors.Unauthenticated("invalid token")
	}
	return claims, nil
}
