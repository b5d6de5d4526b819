package store

import (
	"context"
	"database/sql"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/google/uuid"
)

// TipWithAuthor pairs a tip with the author's name for moderation views.
type TipWithAuthor struct {
	Tip        *domain.ExpertTip
	AuthorName string
}

// TipStore defines the interface for expert tip persistence.
type TipStore interface {
	// Create saves a new tip.
	// Returns ErrInvalidEntity if the expert or species does not exist.
	Create(ctx context.Context, tip *domain.ExpertTip) error

	// GetByID retrieves a tip by ID.
	// Returns ErrTipNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ExpertTip, error)

	// Update modifies a tip's title and content.
	// Returns ErrTipNotFound if it does not exist.
	Update(ctx context.Context, tip *domain.ExpertTip) error

	// Delete removes a tip permanently. Moderation should prefer SetHidden.
	// Returns ErrTipNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByExpert returns the expert's tips, newest first.
	ListByExpert(ctx context.Context, expertID uuid.UUID) ([]*domain.ExpertTip, error)

	// ListBySpecies returns tips for a species, newest first. When
	// visibleOnly is true, hidden tips are excluded.
	ListBySpecies(ctx context.Context, speciesID uuid.UUID, visibleOnly bool) ([]*domain.ExpertTip, error)

	// ListAll returns every tip with author names, newest first, for the
	// moderation surface.
	ListAll(ctx context.Context) ([]*TipWithAuthor, error)

	// SetHidden flips the moderation flag on a tip.
	// Returns ErrTipNotFound if it does not exist.
	SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error

	// WithTx returns a new TipStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) TipStore
}
