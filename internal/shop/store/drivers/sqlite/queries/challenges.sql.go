package queries

import (
	"context"
	"time"
)

const challengeColumns = `id, user_id, attempts, created_at, expires_at`

func scanChallenge(row interface{ Scan(...any) error }) (SigninChallenge, error) {
	var c SigninChallenge
	err := row.Scan(&c.ID, &c.UserID, &c.Attempts, (*timestamp)(&c.CreatedAt), (*timestamp)(&c.ExpiresAt))
	return c, err
}

const createChallenge = `INSERT INTO signin_challenges (` + challengeColumns + `) VALUES (?, ?, ?, ?, ?)`

func (q *Queries) CreateChallenge(ctx context.Context, c SigninChallenge) error {
	_, err := q.db.ExecContext(ctx, createChallenge, c.ID, c.UserID, c.Attempts, ts(c.CreatedAt), ts(c.ExpiresAt))
	return err
}

const getLatestChallengeForUser = `SELECT ` + challengeColumns + ` FROM signin_challenges
WHERE user_id = ? AND expires_at > ?
ORDER BY created_at DESC, id DESC
LIMIT 1`

func (q *Queries) GetLatestChallengeForUser(ctx context.Context, userID string, now time.Time) (SigninChallenge, error) {
	return scanChallenge(q.db.QueryRowContext(ctx, getLatestChallengeForUser, userID, ts(now)))
}

const incrementChallengeAttempts = `UPDATE signin_challenges SET attempts = attempts + 1 WHERE id = ?
RETURNING ` + challengeColumns

func (q *Queries) IncrementChallengeAttempts(ctx context.Context, id string) (SigninChallenge, error) {
	return scanChallenge(q.db.QueryRowContext(ctx, incrementChallengeAttempts, id))
}

const deleteChallenge = `DELETE FROM signin_challenges WHERE id = ?`

func (q *Queries) DeleteChallenge(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteChallenge, id)
	return err
}

const deleteChallengesForUser = `DELETE FROM signin_challenges WHERE user_id = ?`

func (q *Queries) DeleteChallengesForUser(ctx context.Context, userID string) error {
	_, err := q.db.ExecContext(ctx, deleteChallengesForUser, userID)
	return err
}

const deleteExpiredChallenges = `DELETE FROM signin_challenges WHERE expires_at <= ?`

func (q *Queries) DeleteExpiredChallenges(ctx context.Context, now time.Time) (int64, error) {
	return q.execAffected(ctx, deleteExpiredChallenges, ts(now))
}
