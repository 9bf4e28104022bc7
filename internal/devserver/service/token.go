package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/eventcart/internal/devserver/store"
	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
	"github.com/aussiebroadwan/eventcart/pkg/jwtx"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenRevoked   = errors.New("token revoked")
	ErrRefreshExpired = errors.New("token too old to refresh")
)

// TokenService issues and rotates access tokens. There are no refresh tokens:
// an access token can be exchanged for a new one up to RefreshGrace after it
// expires, and each exchange revokes the old token.
type TokenService struct {
	Signer       *jwtx.HS256
	Store        *store.Store
	AccessTTL    time.Duration
	RefreshGrace time.Duration
	Now          func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Issue signs a fresh access token for u.
func (s *TokenService) Issue(u cartsdk.User) (string, error) {
	claims := jwtx.NewAccessClaims(u.ID, u.Email, u.IsAdmin, s.Signer.Issuer(), s.AccessTTL, s.now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return token, nil
}

// Verify reports whether raw is a current, unrevoked access token.
func (s *TokenService) Verify(raw string) bool {
	c, err := s.Signer.Verify(raw)
	if err != nil {
		return false
	}
	return !s.Store.IsRevoked(c.ID)
}

// IsRevoked adapts the store for httpx.AuthnMiddleware.
func (s *TokenService) IsRevoked(jti string) bool {
	return s.Store.IsRevoked(jti)
}

// Refresh exchanges old for a new token. The token must have been issued to
// email and must not be revoked or past its grace window.
func (s *TokenService) Refresh(ctx context.Context, email, old string) (string, error) {
	c, err := s.Signer.VerifySignature(old)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !strings.EqualFold(c.Email, email) {
		return "", fmt.Errorf("%w: email mismatch", ErrInvalidToken)
	}
	if s.Store.IsRevoked(c.ID) {
		return "", ErrTokenRevoked
	}
	if c.ExpiresAt != nil && s.now().After(c.ExpiresAt.Add(s.RefreshGrace)) {
		return "", ErrRefreshExpired
	}

	rec, err := s.Store.UserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("%w: unknown user", ErrInvalidToken)
	}

	// Claiming the old token and checking it was unclaimed is one step, so
	// only one of several concurrent exchanges can win.
	if !s.Store.RevokeIfAbsent(ctx, c.ID, s.forgetAfter(c)) {
		return "", ErrTokenRevoked
	}
	return s.Issue(rec.User)
}

// Revoke denies raw from now on. Tokens with a bad signature are ignored.
func (s *TokenService) Revoke(ctx context.Context, raw string) {
	c, err := s.Signer.VerifySignature(raw)
	if err != nil {
		return
	}
	s.revoke(ctx, c)
}

func (s *TokenService) revoke(ctx context.Context, c jwtx.Claims) {
	s.Store.Revoke(ctx, c.ID, s.forgetAfter(c))
}

// forgetAfter is when a revocation of c stops mattering: the end of its
// refresh grace window.
func (s *TokenService) forgetAfter(c jwtx.Claims) time.Time {
	if c.ExpiresAt != nil {
		return c.ExpiresAt.Add(s.RefreshGrace)
	}
	return s.now().Add(s.AccessTTL + s.RefreshGrace)
}
