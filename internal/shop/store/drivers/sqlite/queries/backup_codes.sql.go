package queries

import (
	"context"
	"time"
)

const createBackupCode = `INSERT INTO backup_codes (user_id, code_hash, created_at) VALUES (?, ?, ?)`

func (q *Queries) CreateBackupCode(ctx context.Context, userID, codeHash string, now time.Time) error {
	_, err := q.db.ExecContext(ctx, createBackupCode, userID, codeHash, ts(now))
	return err
}

const consumeBackupCode = `UPDATE backup_codes SET used_at = ?
WHERE user_id = ? AND code_hash = ? AND used_at IS NULL`

func (q *Queries) ConsumeBackupCode(ctx context.Context, userID, codeHash string, now time.Time) (int64, error) {
	return q.execAffected(ctx, consumeBackupCode, ts(now), userID, codeHash)
}

const countUnusedBackupCodes = `SELECT COUNT(*) FROM backup_codes WHERE user_id = ? AND used_at IS NULL`

func (q *Queries) CountUnusedBackupCodes(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countUnusedBackupCodes, userID).Scan(&n)
	return n, err
}

const deleteAllBackupCodes = `DELETE FROM backup_codes WHERE user_id = ?`

func (q *Queries) DeleteAllBackupCodes(ctx context.Context, userID string) error {
	_, err := q.db.ExecContext(ctx, deleteAllBackupCodes, userID)
	return err
}
