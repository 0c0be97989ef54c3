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
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

var ErrPasswordsDoNotMatch = errors.New("passwords do not match")

// ProfileUpdate is a partial update. Empty Name or Email keep the current
// value, an empty Password keeps the current password, and a nil
// EnableTwoFactor leaves 2FA alone.
type ProfileUpdate struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	EnableTwoFactor *bool
}

// ProfileResult carries the refreshed session and, when 2FA enrolment was
// requested, the pending secret the user must confirm.
type ProfileResult struct {
	Session        domain.Session
	TwoFactorSetup *domain.TwoFactorEnrollment
}

type ProfileService struct {
	Store     store.Store
	Sessions  *SessionIssuer
	TwoFactor *TwoFactorService
}

// UpdateProfile applies upd to the account and re-issues the session so the
// token reflects the new name and email. amr is carried over from the
// caller's current session.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate, amr []string) (ProfileResult, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ProfileResult{}, ErrUserNotFound
		}
		return ProfileResult{}, fmt.Errorf("failed to get user: %w", err)
	}

	name := strings.TrimSpace(upd.Name)
	if name == "" {
		name = u.Name
	}
	email := domain.NormalizeEmail(upd.Email)
	if email == "" {
		email = u.Email
	}
	if err := domain.ValidateEmail(email); err != nil {
		return ProfileResult{}, err
	}

	var newHash string
	if upd.Password != "" {
		if upd.Password != upd.ConfirmPassword {
			return ProfileResult{}, ErrPasswordsDoNotMatch
		}
		if len(upd.Password) < MinPasswordLength {
			return ProfileResult{}, ErrWeakPassword
		}
		if newHash, err = cryptox.HashPassword(upd.Password); err != nil {
			return ProfileResult{}, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	enable := upd.EnableTwoFactor != nil && *upd.EnableTwoFactor && !u.TwoFactorEnabled
	revoke := upd.EnableTwoFactor != nil && !*upd.EnableTwoFactor && (u.TwoFactorEnabled || u.TwoFactorSecret != "")

	// The 2FA step commits or rolls back together with the profile fields.
	var res ProfileResult
	now := time.Now()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdateProfile(ctx, userID, name, email, now); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return fmt.Errorf("failed to update profile: %w", err)
		}
		if newHash != "" {
			if err := tx.Users().UpdatePasswordHash(ctx, userID, newHash, now); err != nil {
				return fmt.Errorf("failed to update password: %w", err)
			}
		}

		switch {
		case enable:
			enrollment, err := s.TwoFactor.enroll(ctx, tx, userID, email, now)
			if err != nil {
				return err
			}
			res.TwoFactorSetup = &enrollment
		case revoke:
			return revokeTwoFactor(ctx, tx, userID, now)
		}
		return nil
	})
	if err != nil {
		return ProfileResult{}, err
	}

	switch {
	case enable:
		s.TwoFactor.Metrics.RecordTwoFactorChange("enroll")
	case revoke:
		s.TwoFactor.Metrics.RecordTwoFactorChange("disable")
	}

	updated, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return ProfileResult{}, fmt.Errorf("failed to reload user: %w", err)
	}
	if res.Session, err = s.Sessions.Issue(updated, amr...); err != nil {
		return ProfileResult{}, err
	}

	l.Info("profile updated",
		slog.String("user_id", userID),
		slog.Bool("password_changed", newHash != ""),
		slog.Bool("two_factor_enabled", updated.TwoFactorEnabled),
	)
	return res, nil
}
