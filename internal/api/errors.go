package api

import (
	"errors"
	"net/http"

	"github.com/SonJH7/Pium/internal/api/shared"
	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/service"
	"github.com/SonJH7/Pium/internal/service/auth"
	"github.com/SonJH7/Pium/internal/service/growth"
	"github.com/SonJH7/Pium/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, growth.ErrPlantNotOwned),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	// Payment errors
	case errors.Is(err, growth.ErrInsufficientFunds):
		return http.StatusPaymentRequired

	// Not found errors (includes catalog holes under in-flight games)
	case errors.Is(err, growth.ErrContentMissing),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors: duplicates and state machine refusals
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, growth.ErrChoicePending),
		errors.Is(err, growth.ErrNotAtRisk),
		errors.Is(err, growth.ErrAlreadyCompleted),
		errors.Is(err, service.ErrApplicationPending),
		errors.Is(err, service.ErrAlreadyExpert),
		errors.Is(err, service.ErrRequestAlreadyProcessed):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrUnknownConfigKey),
		errors.Is(err, service.ErrConfigValueInvalid):
		return http.StatusBadRequest

	// Default: internal server error (covers growth.ErrPersistence)
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password"

	// Authorization errors
	case errors.Is(err, growth.ErrPlantNotOwned):
		return "You do not own this plant"

	case errors.Is(err, domain.ErrUnauthorized):
		return "You are not allowed to do that"

	// Growth engine refusals
	case errors.Is(err, growth.ErrInsufficientFunds):
		return "Not enough points"

	case errors.Is(err, growth.ErrContentMissing):
		return "No quiz step exists at this stage yet"

	case errors.Is(err, growth.ErrChoicePending):
		return "This plant is at risk; choose to pay or reset first"

	case errors.Is(err, growth.ErrNotAtRisk):
		return "This plant is not at risk"

	case errors.Is(err, growth.ErrAlreadyCompleted):
		return "This plant has already completed its growth"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrSpeciesNotFound):
		return "Species not found"
	case errors.Is(err, store.ErrStepNotFound):
		return "Quiz step not found"
	case errors.Is(err, store.ErrPlantNotFound):
		return "Plant not found"
	case errors.Is(err, store.ErrTipNotFound):
		return "Tip not found"
	case errors.Is(err, store.ErrApplicationNotFound):
		return "Expert application not found"
	case errors.Is(err, store.ErrPlantRequestNotFound):
		return "Plant request not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	// Conflicts
	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"
	case errors.Is(err, store.ErrPlantExists):
		return "You are already growing this plant"
	case errors.Is(err, store.ErrStepOrderExists):
		return "A quiz step already exists at this position"
	case errors.Is(err, service.ErrApplicationPending):
		return "Your expert application is still under review"
	case errors.Is(err, service.ErrAlreadyExpert):
		return "You already have expert access"
	case errors.Is(err, service.ErrRequestAlreadyProcessed):
		return "This plant request was already processed"

	// Bad requests
	case errors.Is(err, service.ErrUnknownConfigKey):
		return "Unknown configuration key"
	case errors.Is(err, service.ErrConfigValueInvalid):
		return "Configuration value must be positive"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	// Default: generic message for unexpected errors
	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError maps a service error to an HTTP response, logging the
// underlying error while sending only the safe message to the client.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
