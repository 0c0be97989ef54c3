package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/storefront/internal/shop/domain"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

// SessionIssuer mints session tokens for users that have finished signing in.
type SessionIssuer struct {
	Signer jwtx.Signer
	Issuer string
	TTL    time.Duration
}

// Issue signs a token for u carrying the given authentication methods.
func (s *SessionIssuer) Issue(u domain.User, amr ...string) (domain.Session, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	if len(amr) == 0 {
		amr = []string{jwtx.AMRPassword}
	}

	now := time.Now()
	claims := jwtx.NewSessionClaims(jwtx.SessionSubject{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Admin:  u.IsAdmin,
		AMR:    amr,
	}, s.Issuer, ttl, now)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.Session{}, fmt.Errorf("sign session token: %w", err)
	}

	return domain.Session{
		UserID:           u.ID,
		Name:             u.Name,
		Email:            u.Email,
		IsAdmin:          u.IsAdmin,
		TwoFactorEnabled: u.TwoFactorEnabled,
		Token:            token,
		ExpiresAt:        claims.ExpiresAt.Time,
	}, nil
}
