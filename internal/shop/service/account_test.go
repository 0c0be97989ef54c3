package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/storefront/internal/shop/domain"
	"github.com/stretchr/testify/require"
)

func TestSignUp(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	sess, err := env.accounts.SignUp(ctx, NewAccount{Name: "Ada", Email: "Ada@Example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", sess.Email)
	require.False(t, sess.IsAdmin)
	require.NotEmpty(t, sess.Token)

	me, err := env.accounts.Me(ctx, sess.UserID)
	require.NoError(t, err)
	require.Equal(t, "Ada", me.Name)

	tests := []struct {
		name string
		req  NewAccount
		err  error
	}{
		{"duplicate email", NewAccount{Name: "Ada", Email: "ada@example.com", Password: "correct-horse"}, ErrEmailTaken},
		{"missing name", NewAccount{Email: "b@example.com", Password: "correct-horse"}, ErrNameRequired},
		{"bad email", NewAccount{Name: "B", Email: "not-an-email", Password: "correct-horse"}, domain.ErrInvalidEmail},
		{"short password", NewAccount{Name: "B", Email: "b@example.com", Password: "short"}, ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.accounts.SignUp(ctx, tt.req)
			require.ErrorIs(t, err, tt.err)
		})
	}

	_, err = env.accounts.Me(ctx, "missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	admin := NewAccount{Name: "Admin", Email: "admin@example.com", Password: "correct-horse"}

	t.Run("disabled without a token", func(t *testing.T) {
		svc := &BootstrapService{Store: env.store, Sessions: env.sessions}
		_, err := svc.Bootstrap(ctx, "", admin)
		require.ErrorIs(t, err, ErrBootstrapDisabled)
	})

	svc := &BootstrapService{Store: env.store, Token: "s3cret", Sessions: env.sessions}

	t.Run("wrong token", func(t *testing.T) {
		_, err := svc.Bootstrap(ctx, "nope", admin)
		require.ErrorIs(t, err, ErrBootstrapUnauthorized)
	})

	t.Run("creates the first admin once", func(t *testing.T) {
		sess, err := svc.Bootstrap(ctx, "s3cret", admin)
		require.NoError(t, err)
		require.True(t, sess.IsAdmin)

		done, err := svc.IsBootstrapped(ctx)
		require.NoError(t, err)
		require.True(t, done)

		_, err = svc.Bootstrap(ctx, "s3cret", NewAccount{Name: "Other", Email: "other@example.com", Password: "correct-horse"})
		require.ErrorIs(t, err, ErrBootstrapAlready)
	})
}
