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

// PostgresCatalogStore implements the store.CatalogStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCatalogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCatalogStore creates a new PostgreSQL implementation of the
// CatalogStore interface. If logger is nil, a default logger will be used.
func NewPostgresCatalogStore(db store.DBTX, logger *slog.Logger) *PostgresCatalogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCatalogStore{
		db:     db,
		logger: logger.With(slog.String("component", "catalog_store")),
	}
}

// Ensure PostgresCatalogStore implements store.CatalogStore interface
var _ store.CatalogStore = (*PostgresCatalogStore)(nil)

// WithTx returns a new CatalogStore that runs against the given transaction.
func (s *PostgresCatalogStore) WithTx(tx *sql.Tx) store.CatalogStore {
	return NewPostgresCatalogStore(tx, s.logger)
}

// CreateSpecies implements store.CatalogStore.CreateSpecies
func (s *PostgresCatalogStore) CreateSpecies(ctx context.Context, species *domain.Species) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := species.Validate(); err != nil {
		log.Warn("species validation failed during create",
			slog.String("error", err.Error()),
			slog.String("species_id", species.ID.String()))
		return err
	}

	query := `
		INSERT INTO plant_species (id, common_name, category, difficulty, sun_level, image_url, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		species.ID,
		species.CommonName,
		species.Category,
		species.Difficulty,
		species.SunLevel,
		species.ImageURL,
		species.Description,
		species.CreatedAt,
		species.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create species",
			slog.String("error", err.Error()),
			slog.String("species_id", species.ID.String()))
		return err
	}

	log.Info("species created",
		slog.String("species_id", species.ID.String()),
		slog.String("common_name", species.CommonName))
	return nil
}

const speciesColumns = `id, common_name, category, difficulty, sun_level, image_url, description, created_at, updated_at`

func scanSpeciesRow(scan func(dest ...any) error) (*domain.Species, error) {
	var sp domain.Species
	var category, sunLevel string
	err := scan(
		&sp.ID,
		&sp.CommonName,
		&category,
		&sp.Difficulty,
		&sunLevel,
		&sp.ImageURL,
		&sp.Description,
		&sp.CreatedAt,
		&sp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	sp.Category = domain.Category(category)
	sp.SunLevel = domain.SunLevel(sunLevel)
	return &sp, nil
}

// GetSpecies implements store.CatalogStore.GetSpecies
// Returns store.ErrSpeciesNotFound if the species does not exist.
func (s *PostgresCatalogStore) GetSpecies(ctx context.Context, id uuid.UUID) (*domain.Species, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + speciesColumns + ` FROM plant_species WHERE id = $1`
	sp, err := scanSpeciesRow(s.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("species not found", slog.String("species_id", id.String()))
			return nil, store.ErrSpeciesNotFound
		}
		log.Error("failed to get species",
			slog.String("error", err.Error()),
			slog.String("species_id", id.String()))
		return nil, err
	}

	return sp, nil
}

// SearchSpecies implements store.CatalogStore.SearchSpecies
func (s *PostgresCatalogStore) SearchSpecies(ctx context.Context, term string, limit int) ([]*domain.Species, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + speciesColumns + `
		FROM plant_species
		WHERE ($1 = '' OR common_name ILIKE '%' || $1 || '%')
		ORDER BY common_name
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, term, limit)
	if err != nil {
		log.Error("failed to search species", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var result []*domain.Species
	for rows.Next() {
		sp, err := scanSpeciesRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, sp)
	}
	return result, rows.Err()
}

// UpdateSpecies implements store.CatalogStore.UpdateSpecies
// Returns store.ErrSpeciesNotFound if the species does not exist.
func (s *PostgresCatalogStore) UpdateSpecies(ctx context.Context, species *domain.Species) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := species.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE plant_species
		SET common_name = $1, category = $2, difficulty = $3, sun_level = $4,
		    image_url = $5, description = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		species.CommonName,
		species.Category,
		species.Difficulty,
		species.SunLevel,
		species.ImageURL,
		species.Description,
		time.Now().UTC(),
		species.ID,
	)
	if err != nil {
		log.Error("failed to update species",
			slog.String("error", err.Error()),
			slog.String("species_id", species.ID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrSpeciesNotFound
	}
	return nil
}

// DeleteSpecies implements store.CatalogStore.DeleteSpecies
// Steps, tips and plant instances go with it via ON DELETE CASCADE.
func (s *PostgresCatalogStore) DeleteSpecies(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM plant_species WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete species",
			slog.String("error", err.Error()),
			slog.String("species_id", id.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrSpeciesNotFound
	}

	log.Info("species deleted", slog.String("species_id", id.String()))
	return nil
}

// CountGrowers implements store.CatalogStore.CountGrowers
func (s *PostgresCatalogStore) CountGrowers(ctx context.Context, speciesID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM user_plants WHERE species_id = $1`,
		speciesID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CreateStep implements store.CatalogStore.CreateStep
// Returns store.ErrStepOrderExists on a duplicate (species, order) pair and
// store.ErrInvalidEntity when the species does not exist.
func (s *PostgresCatalogStore) CreateStep(ctx context.Context, step *domain.QuizStep) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := step.Validate(); err != nil {
		log.Warn("quiz step validation failed during create",
			slog.String("error", err.Error()),
			slog.String("step_id", step.ID.String()))
		return err
	}

	query := `
		INSERT INTO species_steps (id, species_id, step_order, stage_name, question, correct_answer, explanation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		step.ID,
		step.SpeciesID,
		step.StepOrder,
		step.StageName,
		step.Question,
		step.CorrectAnswer,
		step.Explanation,
		step.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrStepOrderExists
		}
		if isForeignKeyViolation(err) {
			return store.ErrInvalidEntity
		}
		log.Error("failed to create quiz step",
			slog.String("error", err.Error()),
			slog.String("step_id", step.ID.String()))
		return err
	}

	log.Info("quiz step created",
		slog.String("species_id", step.SpeciesID.String()),
		slog.Int("step_order", step.StepOrder))
	return nil
}

// GetStep implements store.CatalogStore.GetStep
// Returns store.ErrStepNotFound if the step does not exist.
func (s *PostgresCatalogStore) GetStep(ctx context.Context, id uuid.UUID) (*domain.QuizStep, error) {
	query := `SELECT ` + stepColumns + ` FROM species_steps WHERE id = $1`
	step, err := scanStepRow(s.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStepNotFound
		}
		return nil, err
	}
	return step, nil
}

// UpdateStep implements store.CatalogStore.UpdateStep
// Returns store.ErrStepNotFound if the step does not exist.
func (s *PostgresCatalogStore) UpdateStep(ctx context.Context, step *domain.QuizStep) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := step.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE species_steps
		SET step_order = $1, stage_name = $2, question = $3, correct_answer = $4, explanation = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		step.StepOrder,
		step.StageName,
		step.Question,
		step.CorrectAnswer,
		step.Explanation,
		step.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrStepOrderExists
		}
		log.Error("failed to update quiz step",
			slog.String("error", err.Error()),
			slog.String("step_id", step.ID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrStepNotFound
	}
	return nil
}

const stepColumns = `id, species_id, step_order, stage_name, question, correct_answer, explanation, created_at`

func scanStepRow(scan func(dest ...any) error) (*domain.QuizStep, error) {
	var step domain.QuizStep
	err := scan(
		&step.ID,
		&step.SpeciesID,
		&step.StepOrder,
		&step.StageName,
		&step.Question,
		&step.CorrectAnswer,
		&step.Explanation,
		&step.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &step, nil
}

// GetStepAt implements store.CatalogStore.GetStepAt
// Returns store.ErrStepNotFound when no step is defined at the position.
func (s *PostgresCatalogStore) GetStepAt(ctx context.Context, speciesID uuid.UUID, stepOrder int) (*domain.QuizStep, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + stepColumns + ` FROM species_steps WHERE species_id = $1 AND step_order = $2`
	step, err := scanStepRow(s.db.QueryRowContext(ctx, query, speciesID, stepOrder).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("quiz step not found",
				slog.String("species_id", speciesID.String()),
				slog.Int("step_order", stepOrder))
			return nil, store.ErrStepNotFound
		}
		log.Error("failed to get quiz step",
			slog.String("error", err.Error()),
			slog.String("species_id", speciesID.String()))
		return nil, err
	}

	return step, nil
}

// ListSteps implements store.CatalogStore.ListSteps
func (s *PostgresCatalogStore) ListSteps(ctx context.Context, speciesID uuid.UUID) ([]*domain.QuizStep, error) {
	query := `SELECT ` + stepColumns + ` FROM species_steps WHERE species_id = $1 ORDER BY step_order`
	rows, err := s.db.QueryContext(ctx, query, speciesID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var steps []*domain.QuizStep
	for rows.Next() {
		step, err := scanStepRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, rows.Err()
}

// MaxStep implements store.CatalogStore.MaxStep
// Returns 0 when the species has no steps. Computed fresh on every call:
// the growth engine deliberately reads the live value rather than caching.
func (s *PostgresCatalogStore) MaxStep(ctx context.Context, speciesID uuid.UUID) (int, error) {
	var max sql.NullInt64
	err := s.db.QueryRowContext(
		ctx,
		`SELECT MAX(step_order) FROM species_steps WHERE species_id = $1`,
		speciesID,
	).Scan(&max)
	if err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64), nil
}
