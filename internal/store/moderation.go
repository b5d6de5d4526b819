package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/google/uuid"
)

// ApplicationWithUser pairs an expert application with applicant details
// for the admin review queue.
type ApplicationWithUser struct {
	Application *domain.ExpertApplication
	Name        string
	StudentID   string
	Department  string
}

// ApplicationStore defines the interface for expert application persistence.
type ApplicationStore interface {
	// Upsert creates the user's application or, when one already exists,
	// resets it to the given pending text (re-apply after rejection).
	Upsert(ctx context.Context, app *domain.ExpertApplication) error

	// GetByUser retrieves the user's application.
	// Returns ErrApplicationNotFound if none exists.
	GetByUser(ctx context.Context, userID uuid.UUID) (*domain.ExpertApplication, error)

	// ListPending returns all pending applications with applicant details,
	// oldest first.
	ListPending(ctx context.Context) ([]*ApplicationWithUser, error)

	// Decide sets the application's status and decision time.
	// Returns ErrApplicationNotFound if none exists for the user.
	Decide(ctx context.Context, userID uuid.UUID, status domain.ApplicationStatus, decidedAt time.Time) error

	// WithTx returns a new ApplicationStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) ApplicationStore
}

// RequestWithUser pairs a plant request with requester details.
type RequestWithUser struct {
	Request    *domain.PlantRequest
	Name       string
	Department string
}

// PlantRequestStore defines the interface for plant request persistence.
type PlantRequestStore interface {
	// Create saves a new pending request.
	Create(ctx context.Context, req *domain.PlantRequest) error

	// GetByID retrieves a request by ID.
	// Returns ErrPlantRequestNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PlantRequest, error)

	// ListPending returns all pending requests with requester details,
	// newest first.
	ListPending(ctx context.Context) ([]*RequestWithUser, error)

	// Process marks a request done or rejected and records who did it.
	// Returns ErrPlantRequestNotFound if it does not exist.
	Process(ctx context.Context, id uuid.UUID, status domain.RequestStatus, processedBy uuid.UUID) error

	// WithTx returns a new PlantRequestStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) PlantRequestStore
}

// AuditWithActor pairs an audit entry with the actor's name and department.
type AuditWithActor struct {
	Entry      *domain.AuditLogEntry
	ActorName  string
	Department string
}

// AuditLogStore defines the interface for the append-only audit trail.
type AuditLogStore interface {
	// Append writes an audit entry. Entries are never updated or deleted.
	Append(ctx context.Context, entry *domain.AuditLogEntry) error

	// ListRecent returns the most recent entries with actor details,
	// newest first, up to limit rows.
	ListRecent(ctx context.Context, limit int) ([]*AuditWithActor, error)

	// WithTx returns a new AuditLogStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) AuditLogStore
}
