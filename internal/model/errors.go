package model

import "errors"

var (
	// ErrNotFound is returned when a resource is absent or not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint is violated.
	ErrConflict = errors.New("already exists")
	// ErrValidation is returned for malformed client input.
	ErrValidation = errors.New("validation error")

	// ErrInvalidToken covers bad signatures, malformed tokens and unresolvable subjects.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned when a token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidTokenPurpose is returned when a token carries the wrong purpose tag.
	ErrInvalidTokenPurpose = errors.New("invalid token type")
	// ErrMissingToken is returned when no bearer token was presented.
	ErrMissingToken = errors.New("missing authorization token")

	// ErrInvalidCredentials is returned for an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailNotVerified is returned when an unverified user tries to log in.
	ErrEmailNotVerified = errors.New("email not verified")
	// ErrForbidden is returned when the caller's role is insufficient.
	ErrForbidden = errors.New("not enough permissions")

	// ErrUpstream is returned when an external collaborator (media host, mail) fails.
	ErrUpstream = errors.New("upstream failure")
	// ErrRateLimited is returned when a client exceeded its request limit.
	ErrRateLimited = errors.New("rate limited")
)
