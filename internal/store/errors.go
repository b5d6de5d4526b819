package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a second plant instance for the same
	// user/species pair).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or references a row that does not exist. Check the
	// wrapped error for specifics.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrInsufficientPoints is returned by checked ledger debits when the
	// user's balance is below the requested amount. Unchecked debits (the
	// step-1 penalty) never return it.
	ErrInsufficientPoints = errors.New("insufficient points")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrSpeciesNotFound indicates that the requested species does not exist.
	ErrSpeciesNotFound = fmt.Errorf("%w: species", ErrNotFound)

	// ErrStepNotFound indicates that no quiz step exists at the requested
	// position for the species.
	ErrStepNotFound = fmt.Errorf("%w: quiz step", ErrNotFound)

	// ErrPlantNotFound indicates that the requested plant instance does not exist.
	ErrPlantNotFound = fmt.Errorf("%w: plant instance", ErrNotFound)

	// ErrTipNotFound indicates that the requested expert tip does not exist.
	ErrTipNotFound = fmt.Errorf("%w: expert tip", ErrNotFound)

	// ErrApplicationNotFound indicates that no expert application exists
	// for the user.
	ErrApplicationNotFound = fmt.Errorf("%w: expert application", ErrNotFound)

	// ErrPlantRequestNotFound indicates that the requested plant request
	// does not exist.
	ErrPlantRequestNotFound = fmt.Errorf("%w: plant request", ErrNotFound)

	// ErrConfigKeyNotFound indicates that a game config key is absent.
	// After startup seeding this should never surface for the known keys.
	ErrConfigKeyNotFound = fmt.Errorf("%w: config key", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrPlantExists indicates that the user already grows this species.
	ErrPlantExists = fmt.Errorf("%w: plant instance", ErrDuplicate)

	// ErrStepOrderExists indicates that the species already has a step at
	// the given order.
	ErrStepOrderExists = fmt.Errorf("%w: step order", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
