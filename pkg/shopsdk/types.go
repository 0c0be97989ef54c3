package shopsdk

import (
	"time"

	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message" example:"Invalid email, password or code"`
}

// ============================================================================
// Sign-in Types
// ============================================================================

// SignInRequest is the body of POST /api/users/signin. TwoFactorToken is only
// sent on the second round, after the server asked for it.
type SignInRequest struct {
	Email          string `json:"email" example:"user@example.com"`
	Password       string `json:"password" example:"correct-horse"`
	TwoFactorToken string `json:"twoFactorToken,omitempty" example:"654321"`
}

// VerifyTwoFactorRequest is the body of POST /api/users/verify-2fa.
type VerifyTwoFactorRequest struct {
	Email          string `json:"email" example:"user@example.com"`
	TwoFactorToken string `json:"twoFactorToken" example:"654321"`
}

// Session is a finalized sign-in. It is what the server returns, what the
// client persists under the "userInfo" key, and what other requests take
// their bearer token from.
type Session struct {
	ID               string    `json:"_id" example:"01JC8Z6X7R8ZQ9M2B5N4V3C2X1"`
	Name             string    `json:"name" example:"Ada Lovelace"`
	Email            string    `json:"email" example:"user@example.com"`
	IsAdmin          bool      `json:"isAdmin"`
	TwoFactorEnabled bool      `json:"twoFactorEnabled"`
	Token            string    `json:"token"`
	ExpiresAt        time.Time `json:"expiresAt,omitzero"`
}

// SignInResponse is either a Session or a bare {"require2FA": true}.
type SignInResponse struct {
	Session
	Require2FA bool `json:"require2FA,omitempty"`
}

// ============================================================================
// Account Types
// ============================================================================

// SignUpRequest is the body of POST /api/users/signup and POST /api/bootstrap.
type SignUpRequest struct {
	Name     string `json:"name" example:"Ada Lovelace"`
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"correct-horse"`
}

// UserResponse is returned by GET /api/users/me.
type UserResponse struct {
	ID               string    `json:"_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	IsAdmin          bool      `json:"isAdmin"`
	TwoFactorEnabled bool      `json:"twoFactorEnabled"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ProfileUpdateRequest is the body of PUT /api/users/profile. Empty strings
// keep the current value; a nil Enable2FA leaves 2FA alone.
type ProfileUpdateRequest struct {
	Name            string `json:"name,omitempty"`
	Email           string `json:"email,omitempty"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
	Enable2FA       *bool  `json:"enable2FA,omitempty"`
}

// ProfileUpdateResponse is the refreshed session plus, when 2FA enrolment
// was requested, the pending secret.
type ProfileUpdateResponse struct {
	Session
	TwoFactorSetup *TwoFactorSetup `json:"twoFactorSetup,omitempty"`
}

// ============================================================================
// Two-factor Types
// ============================================================================

// TwoFactorSetup is a pending TOTP secret. It takes effect once a code from
// it is confirmed.
type TwoFactorSetup struct {
	Secret     string `json:"secret" example:"JBSWY3DPEHPK3PXP"`
	OTPAuthURL string `json:"otpauthUrl" example:"otpauth://totp/Storefront:user@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Storefront"`
	Issuer     string `json:"issuer,omitempty" example:"Storefront"`
	Account    string `json:"account,omitempty" example:"user@example.com"`
}

// TwoFactorCodeRequest carries a TOTP code for confirm, regenerate and
// disable.
type TwoFactorCodeRequest struct {
	Code string `json:"code" example:"123456"`
}

// BackupCodesResponse lists freshly issued backup codes. They are shown once.
type BackupCodesResponse struct {
	BackupCodes []string `json:"backupCodes"`
}

// ============================================================================
// Catalogue Types
// ============================================================================

type Category struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name" example:"Shoes"`
	Slug      string    `json:"slug" example:"shoes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryRequest is the body of category create and update.
type CategoryRequest struct {
	Name string `json:"name" example:"Shoes"`
}

// CategoryResponse is returned by category writes.
type CategoryResponse struct {
	Message  string   `json:"message" example:"Category Created"`
	Category Category `json:"category"`
}

// UploadResponse is returned by POST /api/upload.
type UploadResponse struct {
	Path string `json:"path" example:"/images/1700000000000-shoe.png"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz; only readyz fills Checks.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// JWKSResponse contains the public keys session tokens are signed with.
type JWKSResponse jwtx.JWKS
