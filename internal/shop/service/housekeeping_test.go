package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/internal/shop/domain"
	"github.com/aussiebroadwan/storefront/internal/shop/metrics"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingCleanup(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	u := env.createUser(t, "user@example.com", "correct-horse", false)

	now := time.Now().UTC()
	for _, expires := range []time.Time{now.Add(-time.Minute), now.Add(-time.Hour), now.Add(time.Minute)} {
		require.NoError(t, env.store.Challenges().CreateChallenge(ctx, domain.SignInChallenge{
			ID:        idx.New().String(),
			UserID:    u.ID,
			CreatedAt: expires.Add(-ChallengeTTL),
			ExpiresAt: expires,
		}))
	}

	m := metrics.New(metrics.NewRegistry())
	hk := NewHousekeepingService(env.store, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour, m)

	require.EqualValues(t, 2, hk.Cleanup(ctx))
	require.EqualValues(t, 0, hk.Cleanup(ctx))
	require.Equal(t, 2.0, testutil.ToFloat64(m.HousekeepingDeleted.WithLabelValues("challenges")))

	_, err := env.store.Challenges().GetActiveChallengeForUser(ctx, u.ID, now)
	require.NoError(t, err)
}

func TestHousekeepingStartStop(t *testing.T) {
	env := newTestEnv(t)
	hk := NewHousekeepingService(env.store, slog.New(slog.NewTextHandler(io.Discard, nil)), 0, nil)
	require.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	hk.Stop()
}
