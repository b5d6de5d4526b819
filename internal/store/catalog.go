package store

import (
	"context"
	"database/sql"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/google/uuid"
)

// CatalogStore defines the interface for the plant catalog: species and
// their ordered quiz steps. The growth engine only reads from it; content
// managers write through it.
type CatalogStore interface {
	// CreateSpecies saves a new species to the catalog.
	// Returns validation errors from the domain Species if data is invalid.
	CreateSpecies(ctx context.Context, species *domain.Species) error

	// GetSpecies retrieves a species by ID.
	// Returns ErrSpeciesNotFound if it does not exist.
	GetSpecies(ctx context.Context, id uuid.UUID) (*domain.Species, error)

	// SearchSpecies returns species whose common name contains the search
	// term (case-insensitive), up to limit rows. An empty term lists the
	// catalog up to limit.
	SearchSpecies(ctx context.Context, term string, limit int) ([]*domain.Species, error)

	// UpdateSpecies modifies an existing species.
	// Returns ErrSpeciesNotFound if it does not exist.
	UpdateSpecies(ctx context.Context, species *domain.Species) error

	// DeleteSpecies removes a species and, through the schema's cascades,
	// its steps, tips and every plant instance grown from it.
	// Returns ErrSpeciesNotFound if it does not exist.
	DeleteSpecies(ctx context.Context, id uuid.UUID) error

	// CountGrowers returns how many plant instances currently reference
	// the species. Used to warn before a cascading delete.
	CountGrowers(ctx context.Context, speciesID uuid.UUID) (int, error)

	// CreateStep adds a quiz step to a species.
	// Returns ErrStepOrderExists if the species already has a step at that
	// order, and ErrInvalidEntity if the species does not exist.
	CreateStep(ctx context.Context, step *domain.QuizStep) error

	// GetStep retrieves a quiz step by its ID.
	// Returns ErrStepNotFound if it does not exist.
	GetStep(ctx context.Context, id uuid.UUID) (*domain.QuizStep, error)

	// UpdateStep modifies an existing quiz step.
	// Returns ErrStepNotFound if it does not exist.
	UpdateStep(ctx context.Context, step *domain.QuizStep) error

	// GetStepAt retrieves the quiz step at the given 1-based order for a
	// species. Returns ErrStepNotFound if no step is defined there.
	GetStepAt(ctx context.Context, speciesID uuid.UUID, stepOrder int) (*domain.QuizStep, error)

	// ListSteps returns all steps for a species ordered by step order.
	ListSteps(ctx context.Context, speciesID uuid.UUID) ([]*domain.QuizStep, error)

	// MaxStep returns the highest step order registered for the species at
	// this moment, or 0 when the species has no steps. Callers that gate
	// completion on it must call it inside the same transaction as the
	// advance so the check reflects live catalog edits.
	MaxStep(ctx context.Context, speciesID uuid.UUID) (int, error)

	// WithTx returns a new CatalogStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) CatalogStore
}
