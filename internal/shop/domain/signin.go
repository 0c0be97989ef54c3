package domain

import "time"

// Session is a finalized sign-in: the identity fields the admin UI shows plus
// the bearer token for later requests.
type Session struct {
	UserID           string
	Name             string
	Email            string
	IsAdmin          bool
	TwoFactorEnabled bool
	Token            string
	ExpiresAt        time.Time
}

// SignInResult is either a Session or a second-factor challenge, never both.
type SignInResult struct {
	Session           *Session
	ChallengeRequired bool
}

// Finalized reports whether the result carries a session.
func (r SignInResult) Finalized() bool { return r.Session != nil && !r.ChallengeRequired }

// SignInChallenge records that primary credentials passed for a 2FA account
// and the account now owes a second factor.
type SignInChallenge struct {
	ID        string
	UserID    string
	Attempts  int
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the challenge can no longer be answered at now.
func (c SignInChallenge) Expired(now time.Time) bool { return !now.Before(c.ExpiresAt) }
