package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/storefront/internal/shop/store/drivers/sqlite/queries"
)

type backupCodesRepo struct {
	q *queries.Queries
}

func (r *backupCodesRepo) CreateBackupCode(ctx context.Context, userID, codeHash string, now time.Time) error {
	return mapConstraint(r.q.CreateBackupCode(ctx, userID, codeHash, now))
}

func (r *backupCodesRepo) ConsumeBackupCode(ctx context.Context, userID, codeHash string, now time.Time) error {
	return requireAffected(r.q.ConsumeBackupCode(ctx, userID, codeHash, now))
}

func (r *backupCodesRepo) CountUnusedBackupCodes(ctx context.Context, userID string) (int, error) {
	count, err := r.q.CountUnusedBackupCodes(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *backupCodesRepo) DeleteAllBackupCodes(ctx context.Context, userID string) error {
	return r.q.DeleteAllBackupCodes(ctx, userID)
}
