package api

import (
	"github.com/SonJH7/Pium/internal/domain"
	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email      string `json:"email"      validate:"required,email"`
	Password   string `json:"password"   validate:"required,min=8,max=72"`
	Name       string `json:"name"       validate:"required,max=100"`
	StudentID  string `json:"student_id" validate:"max=32"`
	Department string `json:"department" validate:"max=100"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Role is the user's role, so clients can pick the right surface
	Role domain.Role `json:"role"`

	// Points is the user's current balance
	Points int64 `json:"points"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// StartGrowingRequest defines the payload for creating a plant instance.
type StartGrowingRequest struct {
	SpeciesID uuid.UUID `json:"species_id" validate:"required"`
}

// SubmitAnswerRequest defines the payload for an O/X quiz submission.
// Answer is a pointer so that a missing field fails validation instead of
// silently reading as false.
type SubmitAnswerRequest struct {
	Answer *bool `json:"answer" validate:"required"`
}

// PlantRequestRequest defines the payload for requesting a missing species.
type PlantRequestRequest struct {
	PlantName string `json:"plant_name" validate:"required,max=100"`
}

// ExpertApplicationRequest defines the payload for applying for the expert
// role.
type ExpertApplicationRequest struct {
	RequestText string `json:"request_text" validate:"required,max=2000"`
}

// TipRequest defines the payload for creating or editing a care tip.
type TipRequest struct {
	SpeciesID uuid.UUID `json:"species_id"`
	Title     string    `json:"title"   validate:"required,max=200"`
	Content   string    `json:"content" validate:"required,max=4000"`
}

// SpeciesRequest defines the payload for creating or editing a species.
type SpeciesRequest struct {
	CommonName  string `json:"common_name" validate:"required,max=100"`
	Category    string `json:"category"    validate:"required,oneof=leaf flower fruit succulent"`
	Difficulty  int    `json:"difficulty"  validate:"required,min=1,max=5"`
	SunLevel    string `json:"sun_level"   validate:"required,oneof=low mid high"`
	ImageURL    string `json:"image_url"   validate:"omitempty,url"`
	Description string `json:"description" validate:"max=4000"`
}

// StepRequest defines the payload for creating or editing a quiz step.
type StepRequest struct {
	StepOrder     int    `json:"step_order"  validate:"required,min=1"`
	StageName     string `json:"stage_name"  validate:"required,max=100"`
	Question      string `json:"question"    validate:"required,max=1000"`
	CorrectAnswer *bool  `json:"correct_answer" validate:"required"`
	Explanation   string `json:"explanation" validate:"required,max=2000"`
}

// ConfigUpdateRequest defines the payload for changing an economy setting.
type ConfigUpdateRequest struct {
	Key   string `json:"key"   validate:"required"`
	Value int64  `json:"value" validate:"required"`
}

// TipVisibilityRequest defines the payload for tip moderation.
type TipVisibilityRequest struct {
	Hidden *bool `json:"hidden" validate:"required"`
}

// DecisionRequest defines the payload for approving or rejecting an
// expert application or a plant request.
type DecisionRequest struct {
	Approve *bool `json:"approve" validate:"required"`
}
