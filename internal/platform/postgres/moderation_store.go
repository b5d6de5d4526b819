package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/platform/logger"
	"github.com/SonJH7/Pium/internal/store"
	"github.com/google/uuid"
)

// PostgresApplicationStore implements the store.ApplicationStore interface
// using a PostgreSQL database as the storage backend.
type PostgresApplicationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresApplicationStore creates a new PostgreSQL implementation of
// the ApplicationStore interface. If logger is nil, a default logger will
// be used.
func NewPostgresApplicationStore(db store.DBTX, logger *slog.Logger) *PostgresApplicationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresApplicationStore{
		db:     db,
		logger: logger.With(slog.String("component", "application_store")),
	}
}

// Ensure PostgresApplicationStore implements store.ApplicationStore interface
var _ store.ApplicationStore = (*PostgresApplicationStore)(nil)

// WithTx returns a new ApplicationStore that runs against the given
// transaction.
func (s *PostgresApplicationStore) WithTx(tx *sql.Tx) store.ApplicationStore {
	return NewPostgresApplicationStore(tx, s.logger)
}

// Upsert implements store.ApplicationStore.Upsert
// A re-application overwrites the previous row and resets it to pending.
func (s *PostgresApplicationStore) Upsert(ctx context.Context, app *domain.ExpertApplication) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := app.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO expert_applications (user_id, request_text, status, created_at, decided_at)
		VALUES ($1, $2, $3, $4, NULL)
		ON CONFLICT (user_id) DO UPDATE
		SET request_text = EXCLUDED.request_text,
		    status = EXCLUDED.status,
		    created_at = EXCLUDED.created_at,
		    decided_at = NULL
	`
	_, err := s.db.ExecContext(ctx, query, app.UserID, app.RequestText, app.Status, app.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrInvalidEntity
		}
		log.Error("failed to upsert expert application",
			slog.String("error", err.Error()),
			slog.String("user_id", app.UserID.String()))
		return err
	}

	log.Info("expert application submitted", slog.String("user_id", app.UserID.String()))
	return nil
}

// GetByUser implements store.ApplicationStore.GetByUser
// Returns store.ErrApplicationNotFound if none exists.
func (s *PostgresApplicationStore) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.ExpertApplication, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var app domain.ExpertApplication
	var status string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT user_id, request_text, status, created_at, decided_at FROM expert_applications WHERE user_id = $1`,
		userID,
	).Scan(&app.UserID, &app.RequestText, &status, &app.CreatedAt, &app.DecidedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrApplicationNotFound
		}
		log.Error("failed to get expert application",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	app.Status = domain.ApplicationStatus(status)
	return &app, nil
}

// ListPending implements store.ApplicationStore.ListPending
func (s *PostgresApplicationStore) ListPending(ctx context.Context) ([]*store.ApplicationWithUser, error) {
	query := `
		SELECT a.user_id, a.request_text, a.status, a.created_at, a.decided_at,
		       u.name, u.student_id, u.department
		FROM expert_applications a
		JOIN users u ON u.id = a.user_id
		WHERE a.status = 'pending'
		ORDER BY a.created_at
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var apps []*store.ApplicationWithUser
	for rows.Next() {
		var app domain.ExpertApplication
		var status string
		var withUser store.ApplicationWithUser
		err := rows.Scan(
			&app.UserID,
			&app.RequestText,
			&status,
			&app.CreatedAt,
			&app.DecidedAt,
			&withUser.Name,
			&withUser.StudentID,
			&withUser.Department,
		)
		if err != nil {
			return nil, err
		}
		app.Status = domain.ApplicationStatus(status)
		withUser.Application = &app
		apps = append(apps, &withUser)
	}
	return apps, rows.Err()
}

// Decide implements store.ApplicationStore.Decide
// Returns store.ErrApplicationNotFound if none exists for the user.
func (s *PostgresApplicationStore) Decide(ctx context.Context, userID uuid.UUID, status domain.ApplicationStatus, decidedAt time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.Valid() {
		return domain.ErrInvalidApplicationStatus
	}

	result, err := s.db.ExecContext(
		ctx,
		`UPDATE expert_applications SET status = $1, decided_at = $2 WHERE user_id = $3`,
		status,
		decidedAt,
		userID,
	)
	if err != nil {
		log.Error("failed to decide expert application",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrApplicationNotFound
	}

	log.Info("expert application decided",
		slog.String("user_id", userID.String()),
		slog.String("status", string(status)))
	return nil
}

// PostgresPlantRequestStore implements the store.PlantRequestStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPlantRequestStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPlantRequestStore creates a new PostgreSQL implementation of
// the PlantRequestStore interface. If logger is nil, a default logger will
// be used.
func NewPostgresPlantRequestStore(db store.DBTX, logger *slog.Logger) *PostgresPlantRequestStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPlantRequestStore{
		db:     db,
		logger: logger.With(slog.String("component", "plant_request_store")),
	}
}

// Ensure PostgresPlantRequestStore implements store.PlantRequestStore interface
var _ store.PlantRequestStore = (*PostgresPlantRequestStore)(nil)

// WithTx returns a new PlantRequestStore that runs against the given
// transaction.
func (s *PostgresPlantRequestStore) WithTx(tx *sql.Tx) store.PlantRequestStore {
	return NewPostgresPlantRequestStore(tx, s.logger)
}

// Create implements store.PlantRequestStore.Create
func (s *PostgresPlantRequestStore) Create(ctx context.Context, req *domain.PlantRequest) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := req.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO plant_requests (id, requester_id, plant_name, status, processed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query, req.ID, req.RequesterID, req.PlantName, req.Status, req.ProcessedBy, req.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrInvalidEntity
		}
		log.Error("failed to create plant request",
			slog.String("error", err.Error()),
			slog.String("request_id", req.ID.String()))
		return err
	}

	log.Info("plant request created",
		slog.String("request_id", req.ID.String()),
		slog.String("plant_name", req.PlantName))
	return nil
}

// GetByID implements store.PlantRequestStore.GetByID
// Returns store.ErrPlantRequestNotFound if it does not exist.
func (s *PostgresPlantRequestStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.PlantRequest, error) {
	var req domain.PlantRequest
	var status string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT id, requester_id, plant_name, status, processed_by, created_at FROM plant_requests WHERE id = $1`,
		id,
	).Scan(&req.ID, &req.RequesterID, &req.PlantName, &status, &req.ProcessedBy, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPlantRequestNotFound
		}
		return nil, err
	}
	req.Status = domain.RequestStatus(status)
	return &req, nil
}

// ListPending implements store.PlantRequestStore.ListPending
func (s *PostgresPlantRequestStore) ListPending(ctx context.Context) ([]*store.RequestWithUser, error) {
	query := `
		SELECT r.id, r.requester_id, r.plant_name, r.status, r.processed_by, r.created_at,
		       u.name, u.department
		FROM plant_requests r
		JOIN users u ON u.id = r.requester_id
		WHERE r.status = 'pending'
		ORDER BY r.created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var requests []*store.RequestWithUser
	for rows.Next() {
		var req domain.PlantRequest
		var status string
		var withUser store.RequestWithUser
		err := rows.Scan(
			&req.ID,
			&req.RequesterID,
			&req.PlantName,
			&status,
			&req.ProcessedBy,
			&req.CreatedAt,
			&withUser.Name,
			&withUser.Department,
		)
		if err != nil {
			return nil, err
		}
		req.Status = domain.RequestStatus(status)
		withUser.Request = &req
		requests = append(requests, &withUser)
	}
	return requests, rows.Err()
}

// Process implements store.PlantRequestStore.Process
// Returns store.ErrPlantRequestNotFound if it does not exist.
func (s *PostgresPlantRequestStore) Process(ctx context.Context, id uuid.UUID, status domain.RequestStatus, processedBy uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.Valid() {
		return domain.ErrInvalidRequestStatus
	}

	result, err := s.db.ExecContext(
		ctx,
		`UPDATE plant_requests SET status = $1, processed_by = $2 WHERE id = $3`,
		status,
		processedBy,
		id,
	)
	if err != nil {
		log.Error("failed to process plant request",
			slog.String("error", err.Error()),
			slog.String("request_id", id.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrPlantRequestNotFound
	}

	log.Info("plant request processed",
		slog.String("request_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// PostgresAuditLogStore implements the store.AuditLogStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAuditLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAuditLogStore creates a new PostgreSQL implementation of the
// AuditLogStore interface. If logger is nil, a default logger will be used.
func NewPostgresAuditLogStore(db store.DBTX, logger *slog.Logger) *PostgresAuditLogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAuditLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "audit_log_store")),
	}
}

// Ensure PostgresAuditLogStore implements store.AuditLogStore interface
var _ store.AuditLogStore = (*PostgresAuditLogStore)(nil)

// WithTx returns a new AuditLogStore that runs against the given
// transaction.
func (s *PostgresAuditLogStore) WithTx(tx *sql.Tx) store.AuditLogStore {
	return NewPostgresAuditLogStore(tx, s.logger)
}

// Append implements store.AuditLogStore.Append
func (s *PostgresAuditLogStore) Append(ctx context.Context, entry *domain.AuditLogEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO audit_log (id, actor_id, action, target_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query, entry.ID, entry.ActorID, entry.Action, entry.TargetID, entry.Details, entry.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrInvalidEntity
		}
		log.Error("failed to append audit entry",
			slog.String("error", err.Error()),
			slog.String("action", string(entry.Action)))
		return err
	}
	return nil
}

// ListRecent implements store.AuditLogStore.ListRecent
func (s *PostgresAuditLogStore) ListRecent(ctx context.Context, limit int) ([]*store.AuditWithActor, error) {
	query := `
		SELECT a.id, a.actor_id, a.action, a.target_id, a.details, a.created_at,
		       u.name, u.department
		FROM audit_log a
		JOIN users u ON u.id = a.actor_id
		ORDER BY a.created_at DESC, a.id
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []*store.AuditWithActor
	for rows.Next() {
		var entry domain.AuditLogEntry
		var action string
		var withActor store.AuditWithActor
		err := rows.Scan(
			&entry.ID,
			&entry.ActorID,
			&action,
			&entry.TargetID,
			&entry.Details,
			&entry.CreatedAt,
			&withActor.ActorName,
			&withActor.Department,
		)
		if err != nil {
			return nil, err
		}
		entry.Action = domain.AuditAction(action)
		withActor.Entry = &entry
		entries = append(entries, &withActor)
	}
	return entries, rows.Err()
}
