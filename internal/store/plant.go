package store

import (
	"context"
	"database/sql"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/google/uuid"
)

// PlantSummary pairs a plant instance with the species name for list views.
type PlantSummary struct {
	Instance    *domain.PlantInstance
	SpeciesName string
}

// SpeciesCompletionStat is one row of the admin dashboard's per-species
// completion statistics.
type SpeciesCompletionStat struct {
	SpeciesID      uuid.UUID
	SpeciesName    string
	TotalGrowers   int
	CompletedCount int
}

// PlantStore defines the interface for plant instance and attempt record
// persistence.
type PlantStore interface {
	// Create saves a new plant instance.
	// Returns ErrPlantExists if the user already grows this species, and
	// ErrInvalidEntity if the user or species does not exist.
	Create(ctx context.Context, plant *domain.PlantInstance) error

	// GetByID retrieves a plant instance by ID.
	// Returns ErrPlantNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PlantInstance, error)

	// GetForUpdate retrieves a plant instance with a row-level lock using
	// SELECT FOR UPDATE. Use inside a transaction before mutating the
	// instance so duplicate-tab submissions serialize on the row.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.PlantInstance, error)

	// ListByUser returns the user's plant instances, newest first, with
	// species names attached.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*PlantSummary, error)

	// UpdateProgress persists a changed current step and growth state.
	// Returns ErrPlantNotFound if the instance does not exist.
	UpdateProgress(ctx context.Context, plant *domain.PlantInstance) error

	// CreateAttempt appends an attempt record. Records are immutable; no
	// update or delete exists.
	CreateAttempt(ctx context.Context, attempt *domain.AttemptRecord) error

	// CompletionStats returns per-species grower and completion counts for
	// the admin dashboard.
	CompletionStats(ctx context.Context) ([]*SpeciesCompletionStat, error)

	// WithTx returns a new PlantStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) PlantStore
}
