package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

var ErrInvalidEmail = errors.New("invalid email address")

// User is a storefront account. Admins manage the catalogue; everyone can
// manage their own profile.
type User struct {
	ID           string
	Name         string
	Email        string // normalized, unique
	PasswordHash string // argon2id PHC string
	IsAdmin      bool

	// TwoFactorSecret is set as soon as enrolment starts. TwoFactorEnabled
	// only flips once a code generated from it has been confirmed.
	TwoFactorEnabled bool
	TwoFactorSecret  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail trims and lower-cases an address. Lookups and uniqueness
// checks always go through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail reports whether email is a bare, already normalized address.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || strings.ToLower(addr.Address) != email {
		return ErrInvalidEmail
	}
	return nil
}
