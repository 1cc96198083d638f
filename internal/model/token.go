package model

import "time"

// TokenPurpose distinguishes single-use tokens from general bearer tokens.
type TokenPurpose string

const (
	// PurposeAccess marks a general bearer token issued at login.
	PurposeAccess TokenPurpose = "access"
	// PurposeEmailVerification marks a token mailed at registration.
	PurposeEmailVerification TokenPurpose = "email_verification"
	// PurposePasswordReset marks a short-lived password reset token.
	PurposePasswordReset TokenPurpose = "password_reset"
)

// TokenClaims is the validated content of a token.
type TokenClaims struct {
	Subject   string
	Purpose   TokenPurpose
	ExpiresAt time.Time
}

// TokenManager issues and validates signed, time-bounded tokens.
// A ttl of zero selects the manager's default lifetime.
type TokenManager interface {
	Issue(subject string, purpose TokenPurpose, ttl time.Duration) (string, error)
	Validate(token string) (TokenClaims, error)
}
