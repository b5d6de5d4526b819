// Package growth implements the quiz-driven growth engine: answer
// submissions, paid rescues and resets, and the point movements they
// cause. Every mutation runs in a single database transaction with a row
// lock on the plant instance, so concurrent submissions for the same
// plant serialize and the balance, ledger, attempt log and instance state
// always move together.
package growth

import (
	"context"
	"errors"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/google/uuid"
)

// Growth engine errors. Handlers map these to HTTP statuses; anything
// else coming out of the engine is a persistence failure.
var (
	// ErrContentMissing indicates no quiz step exists at the instance's
	// current position. This happens when the catalog is edited under an
	// in-flight game.
	ErrContentMissing = errors.New("no quiz step at current position")

	// ErrInsufficientFunds indicates the user's balance does not cover the
	// revive cost. The balance and ledger are left untouched.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrChoicePending indicates an answer was submitted while the
	// instance is at risk. The only accepted inputs are the two recovery
	// choices.
	ErrChoicePending = errors.New("recovery choice pending")

	// ErrNotAtRisk indicates a recovery choice was made while the instance
	// is not at risk.
	ErrNotAtRisk = errors.New("instance is not at risk")

	// ErrAlreadyCompleted indicates the instance has graduated and accepts
	// no further input.
	ErrAlreadyCompleted = errors.New("instance already completed")

	// ErrPlantNotOwned indicates the plant instance belongs to another
	// user.
	ErrPlantNotOwned = errors.New("plant instance not owned by user")

	// ErrPersistence wraps unexpected storage failures. The transaction is
	// rolled back; no partial effect remains.
	ErrPersistence = errors.New("growth engine persistence failure")
)

// SubmitResult describes the outcome of one answer submission.
type SubmitResult struct {
	// Correct reports whether the answer matched.
	Correct bool `json:"correct"`

	// Explanation is the step's teaching text, returned on every submission
	// so the user learns something either way.
	Explanation string `json:"explanation"`

	// PointsDelta is the signed balance change this submission caused:
	// the configured reward when correct, minus the fixed penalty on a
	// wrong first-step answer, zero on a wrong answer past step 1.
	PointsDelta int64 `json:"points_delta"`

	// State is the instance's growth state after the submission.
	State domain.GrowthState `json:"state"`

	// CurrentStep is the instance's step after the submission. Frozen at
	// the final step when the instance completes.
	CurrentStep int `json:"current_step"`

	// Completed reports whether this submission finished the growth.
	Completed bool `json:"completed"`

	// Balance is the user's point balance after the submission.
	Balance int64 `json:"balance"`
}

// RecoveryResult describes the outcome of a recovery choice (pay to pass
// or reset to start).
type RecoveryResult struct {
	// PointsDelta is the signed balance change: minus the revive cost for
	// a paid pass, zero for a reset.
	PointsDelta int64 `json:"points_delta"`

	// State is the instance's growth state after the choice.
	State domain.GrowthState `json:"state"`

	// CurrentStep is the instance's step after the choice.
	CurrentStep int `json:"current_step"`

	// Completed reports whether a paid pass on the final step finished the
	// growth.
	Completed bool `json:"completed"`

	// Balance is the user's point balance after the choice.
	Balance int64 `json:"balance"`
}

// InstanceView is a plant instance with its current quiz step and the
// owner's balance, assembled for the growing screen. Step is nil when the
// instance has completed. The step's correct answer never leaves the
// service.
type InstanceView struct {
	Instance *domain.PlantInstance `json:"instance"`
	Step     *StepView             `json:"step,omitempty"`
	MaxStep  int                   `json:"max_step"`
	Balance  int64                 `json:"balance"`
}

// StepView is the client-safe projection of a quiz step.
type StepView struct {
	ID        uuid.UUID `json:"id"`
	StepOrder int       `json:"step_order"`
	StageName string    `json:"stage_name"`
	Question  string    `json:"question"`
}

// GrowthService drives plant growth through quiz answers and recovery
// choices.
type GrowthService interface {
	// SubmitAnswer evaluates the user's O/X answer against the instance's
	// current quiz step and applies the full outcome atomically: attempt
	// log, point movement, and step or state change.
	// Returns ErrChoicePending while the instance is at risk and
	// ErrAlreadyCompleted once it has graduated.
	SubmitAnswer(ctx context.Context, userID, plantID uuid.UUID, answer bool) (*SubmitResult, error)

	// PayToPass spends the configured revive cost to skip the current step
	// of an at-risk instance. Returns ErrInsufficientFunds when the
	// balance does not cover the cost, leaving everything untouched.
	PayToPass(ctx context.Context, userID, plantID uuid.UUID) (*RecoveryResult, error)

	// ResetToStart sends an at-risk instance back to step 1 for free.
	ResetToStart(ctx context.Context, userID, plantID uuid.UUID) (*RecoveryResult, error)

	// GetInstance returns the instance with its current step and the
	// owner's balance. Returns ErrContentMissing when an in-progress
	// instance points at a step the catalog no longer has.
	GetInstance(ctx context.Context, userID, plantID uuid.UUID) (*InstanceView, error)
}
