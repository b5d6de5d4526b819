package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidRole is returned when a user role is not one of the
	// four recognized roles.
	ErrInvalidRole = errors.New("invalid user role")

	// ErrInvalidGrowthState is returned when a plant instance carries a
	// growth state outside the in_progress/at_risk/completed variants.
	ErrInvalidGrowthState = errors.New("invalid growth state")

	// ErrInvalidTransactionType is returned when a ledger entry carries an
	// unrecognized type tag.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrUnauthorized is returned when an operation is not permitted for
	// the acting user.
	ErrUnauthorized = errors.New("unauthorized operation")
)
