package queries

import (
	"database/sql"
	"time"
)

type User struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string
	IsAdmin          bool
	TwoFactorEnabled bool
	TwoFactorSecret  sql.NullString
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Category struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SigninChallenge struct {
	ID        string
	UserID    string
	Attempts  int64
	CreatedAt time.Time
	ExpiresAt time.Time
}
