package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// HS256 signs and verifies tokens with a shared secret. The devserver is the
// only issuer so asymmetric keys buy nothing here.
type HS256 struct {
	secret []byte
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// Option configures an HS256.
type Option func(*HS256)

// WithClock overrides the time source used for exp and nbf checks.
func WithClock(now func() time.Time) Option {
	return func(h *HS256) { h.now = now }
}

// WithLeeway sets the allowed clock skew. Default 5s.
func WithLeeway(d time.Duration) Option {
	return func(h *HS256) { h.leeway = d }
}

// NewHS256 creates a signer/verifier. The secret must be at least 32 bytes.
func NewHS256(secret []byte, issuer string, opts ...Option) (*HS256, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwtx: secret must be at least 32 bytes, got %d", len(secret))
	}
	h := &HS256{
		secret: secret,
		issuer: issuer,
		leeway: 5 * time.Second,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Issuer returns the configured iss claim.
func (h *HS256) Issuer() string { return h.issuer }

// Sign serializes claims into a compact JWS.
func (h *HS256) Sign(c Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(h.secret)
}

// Verify checks signature, issuer, exp and nbf.
func (h *HS256) Verify(raw string) (Claims, error) {
	c, err := h.VerifySignature(raw)
	if err != nil {
		return Claims{}, err
	}
	if err := c.ValidateExpiryWithLeeway(h.now(), h.leeway); err != nil {
		return Claims{}, err
	}
	return c, nil
}

// VerifySignature checks signature and issuer only. The refresh endpoint uses
// it to accept an expired token within its grace window.
func (h *HS256) VerifySignature(raw string) (Claims, error) {
	var c Claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		return h.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, fmt.Errorf("jwtx: %w", err)
		}
	}

	if h.issuer != "" && c.Issuer != h.issuer {
		return Claims{}, ErrIssuer
	}
	return c, nil
}
