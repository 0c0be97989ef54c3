package domain

// TwoFactorEnrollment is handed to the user once, when a TOTP secret is
// issued. The otpauth URL is what authenticator apps scan.
type TwoFactorEnrollment struct {
	Secret     string
	OTPAuthURL string
	Issuer     string
	Account    string
}
