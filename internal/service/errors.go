package service

import "errors"

// Service-level errors. Handlers translate these into HTTP status codes and
// user-facing messages; everything else surfaces as an internal error.
var (
	ErrAccountExists     = errors.New("account already exists")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrWeakPassword      = errors.New("weak password")
	ErrEmailNotConfirmed = errors.New("email is not confirmed")
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrUserNotFound      = errors.New("user not found")
	ErrContactExists     = errors.New("contact already exists")
	ErrContactNotFound   = errors.New("contact not found")
)
