package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/storefront/internal/shop/domain"
	"github.com/aussiebroadwan/storefront/internal/shop/store/drivers/sqlite/queries"
)

type challengesRepo struct {
	q *queries.Queries
}

func (r *challengesRepo) CreateChallenge(ctx context.Context, c domain.SignInChallenge) error {
	return mapConstraint(r.q.CreateChallenge(ctx, queries.SigninChallenge{
		ID:        c.ID,
		UserID:    c.UserID,
		Attempts:  int64(c.Attempts),
		CreatedAt: c.CreatedAt,
		ExpiresAt: c.ExpiresAt,
	}))
}

func (r *challengesRepo) GetActiveChallengeForUser(ctx context.Context, userID string, now time.Time) (domain.SignInChallenge, error) {
	row, err := r.q.GetLatestChallengeForUser(ctx, userID, now)
	if err != nil {
		return domain.SignInChallenge{}, mapNotFound(err)
	}
	return mapChallenge(row), nil
}

func (r *challengesRepo) IncrementAttempts(ctx context.Context, id string) (domain.SignInChallenge, error) {
	row, err := r.q.IncrementChallengeAttempts(ctx, id)
	if err != nil {
		return domain.SignInChallenge{}, mapNotFound(err)
	}
	return mapChallenge(row), nil
}

func (r *challengesRepo) DeleteChallenge(ctx context.Context, id string) error {
	return r.q.DeleteChallenge(ctx, id)
}

func (r *challengesRepo) DeleteChallengesForUser(ctx context.Context, userID string) error {
	return r.q.DeleteChallengesForUser(ctx, userID)
}

func (r *challengesRepo) DeleteExpiredChallenges(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredChallenges(ctx, now)
}
