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
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

const (
	// ChallengeTTL is how long a pending second-factor challenge stays open.
	ChallengeTTL = 5 * time.Minute

	// MaxChallengeAttempts failed codes close a challenge for good.
	MaxChallengeAttempts = 5
)

// ErrInvalidCredentials covers every sign-in rejection: unknown email, wrong
// password, wrong or missing code, no open challenge. Callers cannot tell
// which check failed.
var ErrInvalidCredentials = errors.New("invalid email, password or code")

// SignInService is the sign-in authority. It never mutates an account on a
// failed attempt.
type SignInService struct {
	Store    store.Store
	Sessions *SessionIssuer
	Metrics  *metrics.Metrics
}

// AuthenticatePrimary checks email and password. Accounts without 2FA get a
// session straight away; accounts with 2FA get a challenge and no session.
func (s *SignInService) AuthenticatePrimary(ctx context.Context, email, password string) (domain.SignInResult, error) {
	l := slogx.FromContext(ctx)

	u, err := s.checkPrimary(ctx, email, password)
	if err != nil {
		s.record(metrics.StagePrimary, err)
		return domain.SignInResult{}, err
	}

	if u.TwoFactorEnabled {
		if err := s.openChallenge(ctx, u.ID); err != nil {
			s.Metrics.RecordSignIn(metrics.StagePrimary, metrics.OutcomeError)
			return domain.SignInResult{}, err
		}
		l.Info("second factor required", slog.String("user_id", u.ID))
		s.Metrics.RecordSignIn(metrics.StagePrimary, metrics.OutcomeChallenge)
		return domain.SignInResult{ChallengeRequired: true}, nil
	}

	sess, err := s.Sessions.Issue(u, jwtx.AMRPassword)
	if err != nil {
		s.Metrics.RecordSignIn(metrics.StagePrimary, metrics.OutcomeError)
		return domain.SignInResult{}, err
	}
	l.Info("signed in", slog.String("user_id", u.ID))
	s.Metrics.RecordSignIn(metrics.StagePrimary, metrics.OutcomeSession)
	return domain.SignInResult{Session: &sess}, nil
}

// AuthenticateWithSecondFactor re-checks email and password and then the
// token, which may be a TOTP code or an unused backup code. Both must pass,
// and for 2FA accounts the token answers the challenge opened by
// AuthenticatePrimary, spending one of its attempts when wrong. Accounts
// without 2FA ignore the token.
func (s *SignInService) AuthenticateWithSecondFactor(ctx context.Context, email, password, token string) (domain.SignInResult, error) {
	u, err := s.checkPrimary(ctx, email, password)
	if err != nil {
		s.record(metrics.StageSecond, err)
		return domain.SignInResult{}, err
	}

	if !u.TwoFactorEnabled {
		return s.finalize(ctx, metrics.StageSecond, u, []string{jwtx.AMRPassword})
	}
	return s.answerChallenge(ctx, metrics.StageSecond, u, token)
}

// VerifyChallenge answers an open challenge with a code alone. It only works
// after AuthenticatePrimary opened a challenge for this email, so it can
// never stand in for the password.
func (s *SignInService) VerifyChallenge(ctx context.Context, email, token string) (domain.SignInResult, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.record(metrics.StageChallenge, ErrInvalidCredentials)
			return domain.SignInResult{}, ErrInvalidCredentials
		}
		s.Metrics.RecordSignIn(metrics.StageChallenge, metrics.OutcomeError)
		return domain.SignInResult{}, fmt.Errorf("lookup user: %w", err)
	}
	if !u.TwoFactorEnabled {
		s.record(metrics.StageChallenge, ErrInvalidCredentials)
		return domain.SignInResult{}, ErrInvalidCredentials
	}

	return s.answerChallenge(ctx, metrics.StageChallenge, u, token)
}

// answerChallenge checks token against the user's live challenge. Wrong
// tokens burn an attempt; MaxChallengeAttempts of them close the challenge
// until the next primary round.
func (s *SignInService) answerChallenge(ctx context.Context, stage string, u domain.User, token string) (domain.SignInResult, error) {
	ch, err := s.Store.Challenges().GetActiveChallengeForUser(ctx, u.ID, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.record(stage, ErrInvalidCredentials)
			return domain.SignInResult{}, ErrInvalidCredentials
		}
		s.Metrics.RecordSignIn(stage, metrics.OutcomeError)
		return domain.SignInResult{}, fmt.Errorf("lookup challenge: %w", err)
	}

	if err := s.checkSecondFactor(ctx, u, token); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.burnAttempt(ctx, ch)
		}
		s.record(stage, err)
		return domain.SignInResult{}, err
	}

	slogx.FromContext(ctx).Debug("challenge answered", slog.String("challenge_id", ch.ID))
	return s.finalize(ctx, stage, u, []string{jwtx.AMRPassword, jwtx.AMROTP})
}

// checkPrimary resolves the account and verifies the password. Unknown
// accounts still pay for one Argon2id verification.
func (s *SignInService) checkPrimary(ctx context.Context, email, password string) (domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		cryptox.VerifyDummy(password)
		return domain.User{}, ErrInvalidCredentials
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.VerifyDummy(password)
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("verify password: %w", err)
	}
	return u, nil
}

// checkSecondFactor accepts a current TOTP code or spends a backup code.
func (s *SignInService) checkSecondFactor(ctx context.Context, u domain.User, token string) error {
	if token == "" || u.TwoFactorSecret == "" {
		return ErrInvalidCredentials
	}
	if validateTOTP(token, u.TwoFactorSecret, time.Now()) {
		return nil
	}

	err := s.Store.BackupCodes().ConsumeBackupCode(ctx, u.ID,
		cryptox.FingerprintToken(cryptox.NormalizeBackupCode(token)), time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("consume backup code: %w", err)
	}
	slogx.FromContext(ctx).Info("backup code used", slog.String("user_id", u.ID))
	return nil
}

// openChallenge replaces any earlier challenge so only the newest counts.
func (s *SignInService) openChallenge(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Challenges().DeleteChallengesForUser(ctx, userID); err != nil {
			return fmt.Errorf("clear challenges: %w", err)
		}
		err := tx.Challenges().CreateChallenge(ctx, domain.SignInChallenge{
			ID:        idx.NewAt(now).String(),
			UserID:    userID,
			CreatedAt: now,
			ExpiresAt: now.Add(ChallengeTTL),
		})
		if err != nil {
			return fmt.Errorf("create challenge: %w", err)
		}
		return nil
	})
}

func (s *SignInService) burnAttempt(ctx context.Context, ch domain.SignInChallenge) {
	l := slogx.FromContext(ctx)

	updated, err := s.Store.Challenges().IncrementAttempts(ctx, ch.ID)
	if err != nil {
		l.Error("failed to count challenge attempt", slog.String("challenge_id", ch.ID), slog.Any("error", err))
		return
	}
	if updated.Attempts >= MaxChallengeAttempts {
		if err := s.Store.Challenges().DeleteChallenge(ctx, ch.ID); err != nil {
			l.Error("failed to close challenge", slog.String("challenge_id", ch.ID), slog.Any("error", err))
			return
		}
		l.Warn("challenge closed after too many attempts", slog.String("user_id", ch.UserID))
	}
}

func (s *SignInService) finalize(ctx context.Context, stage string, u domain.User, amr []string) (domain.SignInResult, error) {
	if err := s.Store.Challenges().DeleteChallengesForUser(ctx, u.ID); err != nil {
		s.Metrics.RecordSignIn(stage, metrics.OutcomeError)
		return domain.SignInResult{}, fmt.Errorf("clear challenges: %w", err)
	}

	sess, err := s.Sessions.Issue(u, amr...)
	if err != nil {
		s.Metrics.RecordSignIn(stage, metrics.OutcomeError)
		return domain.SignInResult{}, err
	}
	slogx.FromContext(ctx).Info("signed in", slog.String("user_id", u.ID), slog.Any("amr", amr))
	s.Metrics.RecordSignIn(stage, metrics.OutcomeSession)
	return domain.SignInResult{Session: &sess}, nil
}

func (s *SignInService) record(stage string, err error) {
	if errors.Is(err, ErrInvalidCredentials) {
		s.Metrics.RecordSignIn(stage, metrics.OutcomeRejected)
		return
	}
	s.Metrics.RecordSignIn(stage, metrics.OutcomeError)
}
