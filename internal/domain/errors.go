package domain

import "errors"

// Sentinel errors mapped to HTTP responses at the handler boundary.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPhoneTaken         = errors.New("phone already registered")
	ErrContactPhoneTaken  = errors.New("contact phone already registered for this user")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidCode        = errors.New("invalid recovery code")
	ErrExpiredCode        = errors.New("recovery code expired")
)

// ValidationError reports out-of-policy input with a human-readable reason.
// It is returned from explicit checks at write boundaries, never used for
// control flow elsewhere.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func Invalid(reason string) error {
	return &ValidationError{Reason: reason}
}
