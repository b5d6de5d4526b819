package service

import "errors"

// Common service-layer errors.
var (
	// ErrInvalidCredentials is returned when an email/password pair does
	// not match a stored account. Deliberately indistinguishable between
	// "no such user" and "wrong password".
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnknownConfigKey is returned when a config update names a key
	// outside the known economy settings.
	ErrUnknownConfigKey = errors.New("unknown config key")

	// ErrConfigValueInvalid is returned when a config update carries a
	// non-positive value.
	ErrConfigValueInvalid = errors.New("config value must be positive")

	// ErrApplicationPending is returned when a user re-applies while their
	// expert application is still pending.
	ErrApplicationPending = errors.New("expert application already pending")

	// ErrAlreadyExpert is returned when a user applies for a role surface
	// they already hold.
	ErrAlreadyExpert = errors.New("user already holds the expert surface")

	// ErrRequestAlreadyProcessed is returned when a plant request is
	// processed a second time.
	ErrRequestAlreadyProcessed = errors.New("plant request already processed")
)
