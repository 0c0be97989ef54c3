package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTwoFactorEnrolment(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	u := env.createUser(t, "user@example.com", "correct-horse", false)

	t.Run("confirm before enrol", func(t *testing.T) {
		_, err := env.twoFactor.Confirm(ctx, u.ID, "123456")
		require.ErrorIs(t, err, ErrTwoFactorNotEnrolled)
	})

	first, err := env.twoFactor.Enroll(ctx, u.ID)
	require.NoError(t, err)
	require.NotEmpty(t, first.Secret)
	require.True(t, strings.HasPrefix(first.OTPAuthURL, "otpauth://totp/"))
	require.Equal(t, "user@example.com", first.Account)

	t.Run("re-enrolling replaces the pending secret", func(t *testing.T) {
		second, err := env.twoFactor.Enroll(ctx, u.ID)
		require.NoError(t, err)
		require.NotEqual(t, first.Secret, second.Secret)

		_, err = env.twoFactor.Confirm(ctx, u.ID, currentCode(t, first.Secret))
		require.ErrorIs(t, err, ErrInvalidTOTPCode)

		codes, err := env.twoFactor.Confirm(ctx, u.ID, currentCode(t, second.Secret))
		require.NoError(t, err)
		require.Len(t, codes, backupCodeCount)

		got, err := env.store.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, got.TwoFactorEnabled)
		first = second
	})

	t.Run("enrol while enabled", func(t *testing.T) {
		_, err := env.twoFactor.Enroll(ctx, u.ID)
		require.ErrorIs(t, err, ErrTwoFactorAlreadyEnabled)
	})

	t.Run("regenerate backup codes", func(t *testing.T) {
		_, err := env.twoFactor.RegenerateBackupCodes(ctx, u.ID, wrongCode(t, first.Secret))
		require.ErrorIs(t, err, ErrInvalidTOTPCode)

		codes, err := env.twoFactor.RegenerateBackupCodes(ctx, u.ID, currentCode(t, first.Secret))
		require.NoError(t, err)
		require.Len(t, codes, backupCodeCount)

		n, err := env.twoFactor.BackupCodesRemaining(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, backupCodeCount, n)
	})

	t.Run("disable needs a valid code", func(t *testing.T) {
		require.ErrorIs(t, env.twoFactor.Disable(ctx, u.ID, wrongCode(t, first.Secret)), ErrInvalidTOTPCode)
		require.NoError(t, env.twoFactor.Disable(ctx, u.ID, currentCode(t, first.Secret)))

		got, err := env.store.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.False(t, got.TwoFactorEnabled)
		require.Empty(t, got.TwoFactorSecret)

		n, err := env.twoFactor.BackupCodesRemaining(ctx, u.ID)
		require.NoError(t, err)
		require.Zero(t, n)

		require.ErrorIs(t, env.twoFactor.Disable(ctx, u.ID, "123456"), ErrTwoFactorNotEnabled)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := env.twoFactor.Enroll(ctx, "01JUNKNOWNUSER0000000000000")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}
