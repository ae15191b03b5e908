// Package middleware provides the HTTP middleware shared by the API router.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pokecapture/service/internal/app/auth"
	"github.com/pokecapture/service/internal/errors"
	"github.com/pokecapture/service/pkg/logger"
)

type contextKey string

const claimsKey contextKey = "auth.claims"

// Authenticator validates bearer tokens and stashes the session claims
// in the request context.
type Authenticator struct {
	tokens *auth.Manager
	log    *logger.Logger
}

// NewAuthenticator builds the auth middleware.
func NewAuthenticator(tokens *auth.Manager, log *logger.Logger) *Authenticator {
	if log == nil {
		log = logger.NewDefault("auth")
	}
	return &Authenticator{tokens: tokens, log: log}
}

// Handler rejects requests without a valid Authorization bearer token.
func (a *Authenticator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeAuthError(w, errors.Unauthenticated("missing Authorization header"))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			writeAuthError(w, errors.Unauthenticated("malformed Authorization header"))
			return
		}

		claims, err := a.tokens.Verify(parts[1])
		if err != nil {
			a.log.WithError(err).Warn("token rejected")
			writeAuthError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFrom returns the session claims stored by Handler, or nil.
func ClaimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// TrainerID returns the authenticated trainer id, or "".
func TrainerID(ctx context.Context) string {
	if claims := ClaimsFrom(ctx); claims != nil {
		return claims.TrainerID
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code.HTTPStatus())
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
		"code":  code.String(),
	})
}
