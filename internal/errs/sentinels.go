// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels shared by the client core and the server.
var (
	// ErrNotFound indicates the requested entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a locally rejected draft (short text, bad rating).
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates the server rejected the bearer token (401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAuthFailed indicates a wrong password during verification.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrAuthRequired indicates an operation was deferred pending a password challenge.
	ErrAuthRequired = errors.New("authentication required")

	// ErrRateLimited indicates a temporary lock on password verification attempts.
	ErrRateLimited = errors.New("rate limited")
)
