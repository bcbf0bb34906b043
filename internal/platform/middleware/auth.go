// Package middleware carries the HTTP cross-cutting concerns: bearer-token
// authentication and request metadata. The auth middleware is the only place
// that reads ambient session state; everything downstream receives the
// resolved holder through the request context.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	id "cardledger/pkg/domain"
	"cardledger/pkg/requestcontext"
)

// Claims are the token claims this service understands. Subject is the
// holder ID; Role gates the admin surface.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator validates bearer tokens and resolves the holder into the
// request context.
type Authenticator struct {
	signingKey []byte
	logger     *slog.Logger
}

func NewAuthenticator(signingKey string, logger *slog.Logger) *Authenticator {
	return &Authenticator{signingKey: []byte(signingKey), logger: logger}
}

// Require rejects requests without a valid bearer token. On success the
// holder ID and role claims are injected into the context.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return a.signingKey, nil
		})
		if err != nil || !token.Valid {
			if a.logger != nil {
				a.logger.Debug("token rejected", "error", err)
			}
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		holderID, err := id.ParseHolderID(claims.Subject)
		if err != nil {
			http.Error(w, "invalid token subject", http.StatusUnauthorized)
			return
		}

		ctx := requestcontext.WithHolderID(r.Context(), holderID)
		ctx = requestcontext.WithRole(ctx, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route subtree on the role claim. Must run after
// Require.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requestcontext.Role(r.Context()) != role {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SignToken issues a token for the holder. Used by tooling and tests; token
// issuance for real clients lives outside this service.
func SignToken(signingKey string, holderID id.HolderID, role string, ttl time.Duration) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   holderID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(signingKey))
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
