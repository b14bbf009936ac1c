package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found or not owned by the caller
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when trying to create a user with an existing email
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrDuplicateContact is returned when a contact email or phone is already
	// used inside the owner's address book
	ErrDuplicateContact = errors.New("contact with this email or phone already exists")

	// ErrStoreUnavailable wraps database failures that are not constraint
	// violations; the raw driver error never crosses the repository boundary
	ErrStoreUnavailable = errors.New("store unavailable")
)
