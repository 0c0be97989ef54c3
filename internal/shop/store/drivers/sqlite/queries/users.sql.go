package queries

import (
	"context"
	"database/sql"
	"time"
)

const userColumns = `id, name, email, password_hash, is_admin, two_factor_enabled, two_factor_secret, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.TwoFactorEnabled,
		&u.TwoFactorSecret,
		(*timestamp)(&u.CreatedAt),
		(*timestamp)(&u.UpdatedAt),
	)
	return u, err
}

const getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = ?`

func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByID, id))
}

const getUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = ?`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByEmail, email))
}

const createUser = `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateUser(ctx context.Context, u User) error {
	_, err := q.db.ExecContext(ctx, createUser,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.IsAdmin,
		u.TwoFactorEnabled,
		u.TwoFactorSecret,
		ts(u.CreatedAt),
		ts(u.UpdatedAt),
	)
	return err
}

const updateUserProfile = `UPDATE users SET name = ?, email = ?, updated_at = ? WHERE id = ?`

func (q *Queries) UpdateUserProfile(ctx context.Context, id, name, email string, now time.Time) (int64, error) {
	return q.execAffected(ctx, updateUserProfile, name, email, ts(now), id)
}

const updateUserPasswordHash = `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`

func (q *Queries) UpdateUserPasswordHash(ctx context.Context, id, hash string, now time.Time) (int64, error) {
	return q.execAffected(ctx, updateUserPasswordHash, hash, ts(now), id)
}

const setUserTwoFactorSecret = `UPDATE users SET two_factor_secret = ?, updated_at = ? WHERE id = ? AND two_factor_enabled = 0`

func (q *Queries) SetUserTwoFactorSecret(ctx context.Context, id string, secret sql.NullString, now time.Time) (int64, error) {
	return q.execAffected(ctx, setUserTwoFactorSecret, secret, ts(now), id)
}

const enableUserTwoFactor = `UPDATE users SET two_factor_enabled = 1, updated_at = ? WHERE id = ? AND two_factor_secret IS NOT NULL`

func (q *Queries) EnableUserTwoFactor(ctx context.Context, id string, now time.Time) (int64, error) {
	return q.execAffected(ctx, enableUserTwoFactor, ts(now), id)
}

const disableUserTwoFactor = `UPDATE users SET two_factor_enabled = 0, two_factor_secret = NULL, updated_at = ? WHERE id = ?`

func (q *Queries) DisableUserTwoFactor(ctx context.Context, id string, now time.Time) (int64, error) {
	return q.execAffected(ctx, disableUserTwoFactor, ts(now), id)
}

const countUsers = `SELECT COUNT(*) FROM users`

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countUsers).Scan(&n)
	return n, err
}
