package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long a storefront session token stays valid.
const DefaultSessionTTL = 24 * time.Hour

// Authentication method references carried in the "amr" claim.
const (
	AMRPassword = "pwd"
	AMROTP      = "otp"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrUnknownKID  = errors.New("jwtx: unknown kid")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// Claims are the session-token claims. Identity fields are duplicated into
// the token so admin checks do not need a database round trip.
type Claims struct {
	jwt.RegisteredClaims

	Email string   `json:"email,omitempty"`
	Name  string   `json:"name,omitempty"`
	Admin bool     `json:"admin,omitempty"`
	AMR   []string `json:"amr,omitempty"`
}

// SessionSubject is the identity a session token is minted for.
type SessionSubject struct {
	UserID string
	Email  string
	Name   string
	Admin  bool
	AMR    []string
}

// NewSessionClaims builds claims for subject valid from now for ttl.
func NewSessionClaims(subject SessionSubject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email: subject.Email,
		Name:  subject.Name,
		Admin: subject.Admin,
		AMR:   subject.AMR,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// HasAMR reports whether the token was minted with the given method.
func (c Claims) HasAMR(method string) bool {
	for _, m := range c.AMR {
		if m == method {
			return true
		}
	}
	return false
}

// validate checks iss, exp and nbf with a small leeway for clock skew.
func (c Claims) validate(issuer string, now time.Time, leeway time.Duration) error {
	if issuer != "" && c.Issuer != issuer {
		return ErrIssuer
	}
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
