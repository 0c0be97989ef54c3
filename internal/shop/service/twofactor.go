package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/storefront/internal/shop/domain"
	"github.com/aussiebroadwan/storefront/internal/shop/metrics"
	"github.com/aussiebroadwan/storefront/internal/shop/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	backupCodeCount = 10
	totpPeriod      = 30
	totpSkew        = 1
)

var (
	ErrInvalidTOTPCode         = errors.New("invalid TOTP code")
	ErrTwoFactorNotEnrolled    = errors.New("two-factor enrolment not started")
	ErrTwoFactorNotEnabled     = errors.New("two-factor authentication not enabled")
	ErrTwoFactorAlreadyEnabled = errors.New("two-factor authentication already enabled")
	ErrUserNotFound            = errors.New("user not found")
)

var totpOpts = totp.ValidateOpts{
	Period:    totpPeriod,
	Skew:      totpSkew,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// validateTOTP checks code against secret, allowing one step of clock drift
// either way.
func validateTOTP(code, secret string, now time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, now, totpOpts)
	return err == nil && ok
}

// TwoFactorService manages TOTP enrolment and backup codes. A secret is
// issued first and only takes effect once a code generated from it is
// confirmed.
type TwoFactorService struct {
	Store   store.Store
	Issuer  string
	Metrics *metrics.Metrics
}

// Enroll issues a fresh pending secret, replacing any earlier pending one.
func (s *TwoFactorService) Enroll(ctx context.Context, userID string) (domain.TwoFactorEnrollment, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return domain.TwoFactorEnrollment{}, err
	}
	if u.TwoFactorEnabled {
		return domain.TwoFactorEnrollment{}, ErrTwoFactorAlreadyEnabled
	}

	enrollment, err := s.enroll(ctx, s.Store, userID, u.Email, time.Now())
	if err != nil {
		return domain.TwoFactorEnrollment{}, err
	}

	slogx.FromContext(ctx).Info("two-factor enrolment started", slog.String("user_id", userID))
	s.Metrics.RecordTwoFactorChange("enroll")
	return enrollment, nil
}

// enroll generates a secret labelled with account and stores it as pending
// through st, which may be a transaction.
func (s *TwoFactorService) enroll(ctx context.Context, st store.Store, userID, account string, now time.Time) (domain.TwoFactorEnrollment, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: account,
		Period:      totpPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.TwoFactorEnrollment{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	if err := st.Users().SetTwoFactorSecret(ctx, userID, key.Secret(), now); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TwoFactorEnrollment{}, ErrTwoFactorAlreadyEnabled
		}
		return domain.TwoFactorEnrollment{}, fmt.Errorf("failed to store TOTP secret: %w", err)
	}

	return domain.TwoFactorEnrollment{
		Secret:     key.Secret(),
		OTPAuthURL: key.URL(),
		Issuer:     s.Issuer,
		Account:    account,
	}, nil
}

// Confirm turns 2FA on once code matches the pending secret and returns the
// plaintext backup codes. They are never shown again.
func (s *TwoFactorService) Confirm(ctx context.Context, userID, code string) ([]string, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.TwoFactorEnabled {
		return nil, ErrTwoFactorAlreadyEnabled
	}
	if u.TwoFactorSecret == "" {
		return nil, ErrTwoFactorNotEnrolled
	}
	if !validateTOTP(code, u.TwoFactorSecret, time.Now()) {
		return nil, ErrInvalidTOTPCode
	}

	codes, err := generateBackupCodes()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := replaceBackupCodes(ctx, tx, userID, codes, now); err != nil {
			return err
		}
		if err := tx.Users().EnableTwoFactor(ctx, userID, now); err != nil {
			return fmt.Errorf("failed to enable two-factor: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slogx.FromContext(ctx).Info("two-factor enabled", slog.String("user_id", userID))
	s.Metrics.RecordTwoFactorChange("enable")
	return codes, nil
}

// RegenerateBackupCodes replaces every backup code after a TOTP check.
func (s *TwoFactorService) RegenerateBackupCodes(ctx context.Context, userID, code string) ([]string, error) {
	if _, err := s.verifyEnabled(ctx, userID, code); err != nil {
		return nil, err
	}

	codes, err := generateBackupCodes()
	if err != nil {
		return nil, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return replaceBackupCodes(ctx, tx, userID, codes, time.Now())
	})
	if err != nil {
		return nil, err
	}

	s.Metrics.RecordTwoFactorChange("regenerate")
	return codes, nil
}

// BackupCodesRemaining reports how many unused backup codes the user holds.
func (s *TwoFactorService) BackupCodesRemaining(ctx context.Context, userID string) (int, error) {
	return s.Store.BackupCodes().CountUnusedBackupCodes(ctx, userID)
}

// Disable turns 2FA off after a TOTP check.
func (s *TwoFactorService) Disable(ctx context.Context, userID, code string) error {
	if _, err := s.verifyEnabled(ctx, userID, code); err != nil {
		return err
	}
	return s.Revoke(ctx, userID)
}

// Revoke turns 2FA off and drops any pending secret, backup codes and open
// challenges. The caller is responsible for having authenticated the user.
func (s *TwoFactorService) Revoke(ctx context.Context, userID string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return revokeTwoFactor(ctx, tx, userID, time.Now())
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("two-factor disabled", slog.String("user_id", userID))
	s.Metrics.RecordTwoFactorChange("disable")
	return nil
}

func revokeTwoFactor(ctx context.Context, tx store.Tx, userID string, now time.Time) error {
	if err := tx.BackupCodes().DeleteAllBackupCodes(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete backup codes: %w", err)
	}
	if err := tx.Challenges().DeleteChallengesForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete challenges: %w", err)
	}
	if err := tx.Users().DisableTwoFactor(ctx, userID, now); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to disable two-factor: %w", err)
	}
	return nil
}

func (s *TwoFactorService) verifyEnabled(ctx context.Context, userID, code string) (domain.User, error) {
	u, err := s.getUser(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	if !u.TwoFactorEnabled || u.TwoFactorSecret == "" {
		return domain.User{}, ErrTwoFactorNotEnabled
	}
	if !validateTOTP(code, u.TwoFactorSecret, time.Now()) {
		return domain.User{}, ErrInvalidTOTPCode
	}
	return u, nil
}

func (s *TwoFactorService) getUser(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func generateBackupCodes() ([]string, error) {
	codes := make([]string, backupCodeCount)
	for i := range backupCodeCount {
		code, err := cryptox.GenerateBackupCode()
		if err != nil {
			return nil, err
		}
		codes[i] = code
	}
	return codes, nil
}

// Only fingerprints are stored.
func replaceBackupCodes(ctx context.Context, tx store.Tx, userID string, codes []string, now time.Time) error {
	if err := tx.BackupCodes().DeleteAllBackupCodes(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete old backup codes: %w", err)
	}
	for _, code := range codes {
		if err := tx.BackupCodes().CreateBackupCode(ctx, userID, cryptox.FingerprintToken(code), now); err != nil {
			return fmt.Errorf("failed to store backup code: %w", err)
		}
	}
	return nil
}
