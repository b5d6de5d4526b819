package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Plant instance validation errors
var (
	ErrPlantIDEmpty      = errors.New("plant instance ID cannot be empty")
	ErrPlantUserIDEmpty  = errors.New("plant instance user ID cannot be empty")
	ErrPlantSpeciesEmpty = errors.New("plant instance species ID cannot be empty")
	ErrPlantStepInvalid  = errors.New("plant instance current step must be at least 1")
	ErrAttemptIDEmpty    = errors.New("attempt record ID cannot be empty")
	ErrAttemptPlantEmpty = errors.New("attempt record plant instance ID cannot be empty")
	ErrAttemptStepEmpty  = errors.New("attempt record step ID cannot be empty")
)

// GrowthState is the tagged state of a plant instance. It lives on the
// instance record itself so the state survives across requests and
// processes; it is never tracked in session storage.
type GrowthState string

const (
	// GrowthInProgress means the instance is waiting for a quiz answer on
	// its current step.
	GrowthInProgress GrowthState = "in_progress"

	// GrowthAtRisk is entered after a wrong answer on any step past the
	// first. The only accepted inputs in this state are the two recovery
	// choices: pay to pass or reset to the first step.
	GrowthAtRisk GrowthState = "at_risk"

	// GrowthCompleted is terminal. Current step is frozen; adding higher
	// steps to the species later never un-completes the instance.
	GrowthCompleted GrowthState = "completed"
)

// Valid reports whether the growth state is one of the three variants.
func (g GrowthState) Valid() bool {
	switch g {
	case GrowthInProgress, GrowthAtRisk, GrowthCompleted:
		return true
	default:
		return false
	}
}

// PlantInstance is one user's growth attempt at one species. At most one
// instance exists per (user, species) pair.
type PlantInstance struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	SpeciesID   uuid.UUID   `json:"species_id"`
	CurrentStep int         `json:"current_step"`
	State       GrowthState `json:"state"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewPlantInstance creates a fresh instance at step 1, in progress.
func NewPlantInstance(userID, speciesID uuid.UUID) (*PlantInstance, error) {
	p := &PlantInstance{
		ID:          uuid.New(),
		UserID:      userID,
		SpeciesID:   speciesID,
		CurrentStep: 1,
		State:       GrowthInProgress,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the PlantInstance has valid data.
func (p *PlantInstance) Validate() error {
	if p.ID == uuid.Nil {
		return ErrPlantIDEmpty
	}
	if p.UserID == uuid.Nil {
		return ErrPlantUserIDEmpty
	}
	if p.SpeciesID == uuid.Nil {
		return ErrPlantSpeciesEmpty
	}
	if p.CurrentStep < 1 {
		return ErrPlantStepInvalid
	}
	if !p.State.Valid() {
		return ErrInvalidGrowthState
	}
	return nil
}

// Completed reports whether the instance has graduated.
func (p *PlantInstance) Completed() bool {
	return p.State == GrowthCompleted
}

// AttemptRecord is the append-only log of one quiz submission (or recovery
// choice) against a plant instance. Records are never updated or deleted.
type AttemptRecord struct {
	ID           uuid.UUID `json:"id"`
	PlantID      uuid.UUID `json:"plant_id"`
	StepID       uuid.UUID `json:"step_id"`
	Correct      bool      `json:"correct"`
	UsedContinue bool      `json:"used_continue"` // true when a paid rescue skipped this step
	CreatedAt    time.Time `json:"created_at"`
}

// NewAttemptRecord creates an attempt record for a plant instance and step.
func NewAttemptRecord(plantID, stepID uuid.UUID, correct, usedContinue bool) (*AttemptRecord, error) {
	a := &AttemptRecord{
		ID:           uuid.New(),
		PlantID:      plantID,
		StepID:       stepID,
		Correct:      correct,
		UsedContinue: usedContinue,
		CreatedAt:    time.Now().UTC(),
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate checks if the AttemptRecord has valid data.
func (a *AttemptRecord) Validate() error {
	if a.ID == uuid.Nil {
		return ErrAttemptIDEmpty
	}
	if a.PlantID == uuid.Nil {
		return ErrAttemptPlantEmpty
	}
	if a.StepID == uuid.Nil {
		return ErrAttemptStepEmpty
	}
	return nil
}
