package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/storefront/internal/shop/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers implement it and expose
// sub-repositories so a Tx-scoped Store can hand out the same repos bound to
// the transaction.
type Store interface {
	Users() Users
	Categories() Categories
	Challenges() Challenges
	BackupCodes() BackupCodes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction, committing when fn returns nil
	// and rolling back otherwise. Inside fn only the tx may be used.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail expects an address already passed through
	// domain.NormalizeEmail.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile sets name and email. ErrAlreadyExists when the email
	// belongs to someone else.
	UpdateProfile(ctx context.Context, userID, name, email string, now time.Time) error

	UpdatePasswordHash(ctx context.Context, userID, hash string, now time.Time) error

	// SetTwoFactorSecret stores a pending secret. It refuses (ErrNotFound)
	// when 2FA is already enabled so a live secret is never replaced.
	SetTwoFactorSecret(ctx context.Context, userID, secret string, now time.Time) error

	// EnableTwoFactor flips the flag once a pending secret has been confirmed.
	EnableTwoFactor(ctx context.Context, userID string, now time.Time) error

	// DisableTwoFactor clears both the flag and the secret.
	DisableTwoFactor(ctx context.Context, userID string, now time.Time) error

	IsEmpty(ctx context.Context) (bool, error)
}

type Categories interface {
	// ListCategories returns every category ordered by name.
	ListCategories(ctx context.Context) ([]domain.Category, error)

	GetCategoryByID(ctx context.Context, id string) (domain.Category, error)

	// TakenSlugs returns the slugs equal to base or of the form base-N,
	// ignoring the category excludeID (empty for none).
	TakenSlugs(ctx context.Context, base, excludeID string) ([]string, error)

	// CreateCategory returns ErrAlreadyExists on a duplicate name or slug.
	CreateCategory(ctx context.Context, c domain.Category) error

	UpdateCategory(ctx context.Context, id, name, slug string, now time.Time) error

	DeleteCategory(ctx context.Context, id string) error
}

type Challenges interface {
	CreateChallenge(ctx context.Context, c domain.SignInChallenge) error

	// GetActiveChallengeForUser returns the newest unexpired challenge.
	GetActiveChallengeForUser(ctx context.Context, userID string, now time.Time) (domain.SignInChallenge, error)

	// IncrementAttempts bumps the failed attempt counter and returns the
	// updated challenge.
	IncrementAttempts(ctx context.Context, id string) (domain.SignInChallenge, error)

	DeleteChallenge(ctx context.Context, id string) error
	DeleteChallengesForUser(ctx context.Context, userID string) error

	// DeleteExpiredChallenges is housekeeping; it reports how many rows went.
	DeleteExpiredChallenges(ctx context.Context, now time.Time) (int64, error)
}

type BackupCodes interface {
	CreateBackupCode(ctx context.Context, userID, codeHash string, now time.Time) error

	// ConsumeBackupCode marks an unused code as used. ErrNotFound when the
	// code does not exist or was already spent.
	ConsumeBackupCode(ctx context.Context, userID, codeHash string, now time.Time) error

	CountUnusedBackupCodes(ctx context.Context, userID string) (int, error)

	DeleteAllBackupCodes(ctx context.Context, userID string) error
}
