// Package common defines shared sentinel errors used across the Proyection
// API layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal   = errors.New("internal error")
	ErrValidation = errors.New("validation error")

	// Credential errors. ErrInvalidCredentials covers both unknown email and
	// wrong password so the two cases stay indistinguishable to clients.
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")

	// Token lifecycle errors.
	ErrMissingToken     = errors.New("missing token")
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenNotYetValid = errors.New("token not yet valid")
	ErrTokenGeneration  = errors.New("token generation failed")

	// ErrUserNotFound signals that a verified token's subject no longer
	// resolves to a usable account.
	ErrUserNotFound = errors.New("user not found")
)
