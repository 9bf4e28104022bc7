package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Inspect decodes the claims of a token WITHOUT verifying its signature.
// Clients use it to show when their session expires; never use it to make an
// authorization decision.
func Inspect(raw string) (Claims, error) {
	var c Claims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &c); err != nil {
		return Claims{}, ErrMalformed
	}
	return c, nil
}

// ExpiresAt returns the exp claim of raw, or false when the token is opaque
// or carries no exp.
func ExpiresAt(raw string) (time.Time, bool) {
	c, err := Inspect(raw)
	if err != nil || c.ExpiresAt == nil {
		return time.Time{}, false
	}
	return c.ExpiresAt.Time, true
}
