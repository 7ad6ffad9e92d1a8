// Package auth holds the session token shared by every storefront hook and
// client.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fivetwenty-io/storefront/internal/constants"
)

// Token is a session token with its expiry, when known.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// NewToken builds a Token, reading the expiry from the JWT exp claim when
// raw is a JWT. Opaque tokens have no expiry.
func NewToken(raw string) *Token {
	token := &Token{AccessToken: raw}

	expiresAt, err := ParseExpiry(raw)
	if err == nil {
		token.ExpiresAt = expiresAt
	}

	return token
}

// Valid reports whether the token is non-empty and not about to expire.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(constants.TokenExpiryBuffer).Before(t.ExpiresAt)
}

// ParseExpiry returns the exp claim of a JWT without verifying its
// signature. Verification is the backend's job.
func ParseExpiry(raw string) (time.Time, error) {
	if strings.Count(raw, ".") != 2 {
		return time.Time{}, constants.ErrInvalidJWTFormat
	}

	claims := jwt.MapClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(raw, claims)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", constants.ErrInvalidJWTFormat, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", constants.ErrInvalidJWTFormat, err)
	}

	if exp == nil {
		return time.Time{}, constants.ErrNoExpirationClaim
	}

	return exp.Time, nil
}
