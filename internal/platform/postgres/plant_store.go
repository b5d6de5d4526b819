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

// PostgresPlantStore implements the store.PlantStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPlantStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPlantStore creates a new PostgreSQL implementation of the
// PlantStore interface. If logger is nil, a default logger will be used.
func NewPostgresPlantStore(db store.DBTX, logger *slog.Logger) *PostgresPlantStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPlantStore{
		db:     db,
		logger: logger.With(slog.String("component", "plant_store")),
	}
}

// Ensure PostgresPlantStore implements store.PlantStore interface
var _ store.PlantStore = (*PostgresPlantStore)(nil)

// WithTx returns a new PlantStore that runs against the given transaction.
func (s *PostgresPlantStore) WithTx(tx *sql.Tx) store.PlantStore {
	return NewPostgresPlantStore(tx, s.logger)
}

// Create implements store.PlantStore.Create
// Returns store.ErrPlantExists if the user is already growing the species
// and store.ErrInvalidEntity if the user or species does not exist.
func (s *PostgresPlantStore) Create(ctx context.Context, plant *domain.PlantInstance) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := plant.Validate(); err != nil {
		log.Warn("plant validation failed during create",
			slog.String("error", err.Error()),
			slog.String("plant_id", plant.ID.String()))
		return err
	}

	query := `
		INSERT INTO user_plants (id, user_id, species_id, current_step, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		plant.ID,
		plant.UserID,
		plant.SpeciesID,
		plant.CurrentStep,
		plant.State,
		plant.CreatedAt,
		plant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("user already grows this species",
				slog.String("user_id", plant.UserID.String()),
				slog.String("species_id", plant.SpeciesID.String()))
			return store.ErrPlantExists
		}
		if isForeignKeyViolation(err) {
			return store.ErrInvalidEntity
		}
		log.Error("failed to create plant instance",
			slog.String("error", err.Error()),
			slog.String("plant_id", plant.ID.String()))
		return err
	}

	log.Info("plant instance created",
		slog.String("plant_id", plant.ID.String()),
		slog.String("user_id", plant.UserID.String()),
		slog.String("species_id", plant.SpeciesID.String()))
	return nil
}

const plantColumns = `id, user_id, species_id, current_step, state, created_at, updated_at`

func scanPlantRow(scan func(dest ...any) error) (*domain.PlantInstance, error) {
	var plant domain.PlantInstance
	var state string
	err := scan(
		&plant.ID,
		&plant.UserID,
		&plant.SpeciesID,
		&plant.CurrentStep,
		&state,
		&plant.CreatedAt,
		&plant.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	plant.State = domain.GrowthState(state)
	return &plant, nil
}

// GetByID implements store.PlantStore.GetByID
// Returns store.ErrPlantNotFound if the plant instance does not exist.
func (s *PostgresPlantStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.PlantInstance, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + plantColumns + ` FROM user_plants WHERE id = $1`
	plant, err := scanPlantRow(s.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("plant instance not found", slog.String("plant_id", id.String()))
			return nil, store.ErrPlantNotFound
		}
		log.Error("failed to get plant instance",
			slog.String("error", err.Error()),
			slog.String("plant_id", id.String()))
		return nil, err
	}

	return plant, nil
}

// GetForUpdate implements store.PlantStore.GetForUpdate
// Acquires a row lock for the duration of the surrounding transaction so
// concurrent answer submissions for the same plant serialize.
func (s *PostgresPlantStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.PlantInstance, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + plantColumns + ` FROM user_plants WHERE id = $1 FOR UPDATE`
	plant, err := scanPlantRow(s.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPlantNotFound
		}
		log.Error("failed to lock plant instance",
			slog.String("error", err.Error()),
			slog.String("plant_id", id.String()))
		return nil, err
	}

	return plant, nil
}

// ListByUser implements store.PlantStore.ListByUser
// Returns plant instances joined with species names, newest first.
func (s *PostgresPlantStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*store.PlantSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT p.id, p.user_id, p.species_id, p.current_step, p.state,
		       p.created_at, p.updated_at, sp.common_name
		FROM user_plants p
		JOIN plant_species sp ON sp.id = p.species_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list plants",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var summaries []*store.PlantSummary
	for rows.Next() {
		var plant domain.PlantInstance
		var state string
		var sum store.PlantSummary
		err := rows.Scan(
			&plant.ID,
			&plant.UserID,
			&plant.SpeciesID,
			&plant.CurrentStep,
			&state,
			&plant.CreatedAt,
			&plant.UpdatedAt,
			&sum.SpeciesName,
		)
		if err != nil {
			return nil, err
		}
		plant.State = domain.GrowthState(state)
		sum.Instance = &plant
		summaries = append(summaries, &sum)
	}
	return summaries, rows.Err()
}

// UpdateProgress implements store.PlantStore.UpdateProgress
// Returns store.ErrPlantNotFound if the plant instance does not exist.
func (s *PostgresPlantStore) UpdateProgress(ctx context.Context, plant *domain.PlantInstance) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE user_plants
		SET current_step = $1, state = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := s.db.ExecContext(ctx, query, plant.CurrentStep, plant.State, time.Now().UTC(), plant.ID)
	if err != nil {
		log.Error("failed to update plant progress",
			slog.String("error", err.Error()),
			slog.String("plant_id", plant.ID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrPlantNotFound
	}

	log.Debug("plant progress updated",
		slog.String("plant_id", plant.ID.String()),
		slog.Int("current_step", plant.CurrentStep),
		slog.String("state", string(plant.State)))
	return nil
}

// CreateAttempt implements store.PlantStore.CreateAttempt
func (s *PostgresPlantStore) CreateAttempt(ctx context.Context, attempt *domain.AttemptRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := attempt.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO quiz_attempts (id, plant_id, step_id, correct, used_continue, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		attempt.ID,
		attempt.PlantID,
		attempt.StepID,
		attempt.Correct,
		attempt.UsedContinue,
		attempt.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrInvalidEntity
		}
		log.Error("failed to record quiz attempt",
			slog.String("error", err.Error()),
			slog.String("plant_id", attempt.PlantID.String()))
		return err
	}
	return nil
}

// CompletionStats implements store.PlantStore.CompletionStats
// Per-species counts of total and completed plant instances for dashboards.
func (s *PostgresPlantStore) CompletionStats(ctx context.Context) ([]*store.SpeciesCompletionStat, error) {
	query := `
		SELECT sp.id, sp.common_name,
		       COUNT(p.id) AS total_growers,
		       COUNT(p.id) FILTER (WHERE p.state = 'completed') AS completed_count
		FROM plant_species sp
		LEFT JOIN user_plants p ON p.species_id = sp.id
		GROUP BY sp.id, sp.common_name
		ORDER BY total_growers DESC, sp.common_name
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var stats []*store.SpeciesCompletionStat
	for rows.Next() {
		var st store.SpeciesCompletionStat
		if err := rows.Scan(&st.SpeciesID, &st.SpeciesName, &st.TotalGrowers, &st.CompletedCount); err != nil {
			return nil, err
		}
		stats = append(stats, &st)
	}
	return stats, rows.Err()
}
