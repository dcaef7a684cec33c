// internal/app/system/auth/token.go

// Package auth issues and verifies bearer tokens and carries the middleware
// that turns a valid token into a request identity. Authorization decisions
// live elsewhere; this package only answers "who is calling".
package auth

import (
	"errors"
	"time"

	"github.com/dalemusser/fundops/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the token payload. Subject holds the user id hex; the username
// is informational only and never trusted for lookups.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
}

// TokenManager signs and verifies the API's bearer tokens (HS256).
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), expiry: expiry}
}

// Issue creates a signed token for the user.
func (tm *TokenManager) Issue(u models.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiry)),
		},
		Username: u.Username,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// Verify parses and validates a token string. Only HS256 is accepted; any
// parse, signature, or expiry problem comes back as ErrInvalidToken.
func (tm *TokenManager) Verify(token string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
