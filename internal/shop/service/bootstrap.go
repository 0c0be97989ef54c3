package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/storefront/internal/shop/domain"
	"github.com/aussiebroadwan/storefront/internal/shop/store"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

var (
	ErrBootstrapDisabled     = errors.New("bootstrap not enabled")
	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)

// BootstrapService creates the first admin account. It is only usable while
// a bootstrap token is configured and the user table is empty.
type BootstrapService struct {
	Store    store.Store
	Token    string
	Sessions *SessionIssuer
}

func (s *BootstrapService) Enabled() bool { return s.Token != "" }

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

func (s *BootstrapService) Bootstrap(ctx context.Context, token string, req NewAccount) (domain.Session, error) {
	l := slogx.FromContext(ctx)

	if !s.Enabled() {
		return domain.Session{}, ErrBootstrapDisabled
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return domain.Session{}, ErrBootstrapUnauthorized
	}

	bootstrapped, err := s.IsBootstrapped(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to check bootstrap state: %w", err)
	}
	if bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.Session{}, ErrBootstrapAlready
	}

	u, err := createUser(ctx, s.Store, req, true)
	if err != nil {
		return domain.Session{}, err
	}

	l.Info("successfully bootstrapped system", slog.String("admin_user_id", u.ID))
	return s.Sessions.Issue(u)
}
