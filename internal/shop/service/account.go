package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/shop/domain"
	"github.com/aussiebroadwan/storefront/internal/shop/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// MinPasswordLength applies to every password a user chooses.
const MinPasswordLength = 8

var (
	ErrNameRequired = errors.New("name is required")
	ErrWeakPassword = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrEmailTaken   = errors.New("email already registered")
)

// NewAccount is the input for sign-up and bootstrap.
type NewAccount struct {
	Name     string
	Email    string
	Password string
}

// validate normalizes the email in place.
func (a *NewAccount) validate() error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return ErrNameRequired
	}
	a.Email = domain.NormalizeEmail(a.Email)
	if err := domain.ValidateEmail(a.Email); err != nil {
		return err
	}
	if len(a.Password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

type AccountService struct {
	Store    store.Store
	Sessions *SessionIssuer
}

// SignUp creates a regular (non-admin) account and signs it in.
func (s *AccountService) SignUp(ctx context.Context, req NewAccount) (domain.Session, error) {
	u, err := createUser(ctx, s.Store, req, false)
	if err != nil {
		return domain.Session{}, err
	}
	slogx.FromContext(ctx).Info("account created", slog.String("user_id", u.ID))
	return s.Sessions.Issue(u)
}

// Me returns the account behind userID.
func (s *AccountService) Me(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func createUser(ctx context.Context, st store.Store, req NewAccount, admin bool) (domain.User, error) {
	if err := req.validate(); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.NewAt(now).String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		IsAdmin:      admin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := st.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}
