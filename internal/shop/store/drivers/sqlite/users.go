package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/storefront/internal/shop/domain"
	"github.com/aussiebroadwan/storefront/internal/shop/store/drivers/sqlite/queries"
)

type usersRepo struct {
	q *queries.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	err := r.q.CreateUser(ctx, queries.User{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		PasswordHash:     u.PasswordHash,
		IsAdmin:          u.IsAdmin,
		TwoFactorEnabled: u.TwoFactorEnabled,
		TwoFactorSecret:  mapStringNull(u.TwoFactorSecret),
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	})
	return mapConstraint(err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID, name, email string, now time.Time) error {
	return requireAffected(r.q.UpdateUserProfile(ctx, userID, name, email, now))
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, hash string, now time.Time) error {
	return requireAffected(r.q.UpdateUserPasswordHash(ctx, userID, hash, now))
}

func (r *usersRepo) SetTwoFactorSecret(ctx context.Context, userID, secret string, now time.Time) error {
	return requireAffected(r.q.SetUserTwoFactorSecret(ctx, userID, mapStringNull(secret), now))
}

func (r *usersRepo) EnableTwoFactor(ctx context.Context, userID string, now time.Time) error {
	return requireAffected(r.q.EnableUserTwoFactor(ctx, userID, now))
}

func (r *usersRepo) DisableTwoFactor(ctx context.Context, userID string, now time.Time) error {
	return requireAffected(r.q.DisableUserTwoFactor(ctx, userID, now))
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	count, err := r.q.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
