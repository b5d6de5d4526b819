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

// PostgresTipStore implements the store.TipStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTipStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTipStore creates a new PostgreSQL implementation of the
// TipStore interface. If logger is nil, a default logger will be used.
func NewPostgresTipStore(db store.DBTX, logger *slog.Logger) *PostgresTipStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTipStore{
		db:     db,
		logger: logger.With(slog.String("component", "tip_store")),
	}
}

// Ensure PostgresTipStore implements store.TipStore interface
var _ store.TipStore = (*PostgresTipStore)(nil)

// WithTx returns a new TipStore that runs against the given transaction.
func (s *PostgresTipStore) WithTx(tx *sql.Tx) store.TipStore {
	return NewPostgresTipStore(tx, s.logger)
}

// Create implements store.TipStore.Create
// Returns store.ErrInvalidEntity if the expert or species does not exist.
func (s *PostgresTipStore) Create(ctx context.Context, tip *domain.ExpertTip) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tip.Validate(); err != nil {
		log.Warn("tip validation failed during create",
			slog.String("error", err.Error()),
			slog.String("tip_id", tip.ID.String()))
		return err
	}

	query := `
		INSERT INTO expert_tips (id, expert_id, species_id, title, content, hidden, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		tip.ID,
		tip.ExpertID,
		tip.SpeciesID,
		tip.Title,
		tip.Content,
		tip.Hidden,
		tip.CreatedAt,
		tip.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrInvalidEntity
		}
		log.Error("failed to create tip",
			slog.String("error", err.Error()),
			slog.String("tip_id", tip.ID.String()))
		return err
	}

	log.Info("tip created",
		slog.String("tip_id", tip.ID.String()),
		slog.String("expert_id", tip.ExpertID.String()),
		slog.String("species_id", tip.SpeciesID.String()))
	return nil
}

const tipColumns = `id, expert_id, species_id, title, content, hidden, created_at, updated_at`

func scanTipRow(scan func(dest ...any) error) (*domain.ExpertTip, error) {
	var tip domain.ExpertTip
	err := scan(
		&tip.ID,
		&tip.ExpertID,
		&tip.SpeciesID,
		&tip.Title,
		&tip.Content,
		&tip.Hidden,
		&tip.CreatedAt,
		&tip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tip, nil
}

// GetByID implements store.TipStore.GetByID
// Returns store.ErrTipNotFound if the tip does not exist.
func (s *PostgresTipStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExpertTip, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + tipColumns + ` FROM expert_tips WHERE id = $1`
	tip, err := scanTipRow(s.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("tip not found", slog.String("tip_id", id.String()))
			return nil, store.ErrTipNotFound
		}
		log.Error("failed to get tip",
			slog.String("error", err.Error()),
			slog.String("tip_id", id.String()))
		return nil, err
	}

	return tip, nil
}

// Update implements store.TipStore.Update
// Returns store.ErrTipNotFound if the tip does not exist.
func (s *PostgresTipStore) Update(ctx context.Context, tip *domain.ExpertTip) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tip.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE expert_tips
		SET title = $1, content = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := s.db.ExecContext(ctx, query, tip.Title, tip.Content, time.Now().UTC(), tip.ID)
	if err != nil {
		log.Error("failed to update tip",
			slog.String("error", err.Error()),
			slog.String("tip_id", tip.ID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrTipNotFound
	}
	return nil
}

// Delete implements store.TipStore.Delete
// Returns store.ErrTipNotFound if the tip does not exist.
func (s *PostgresTipStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM expert_tips WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete tip",
			slog.String("error", err.Error()),
			slog.String("tip_id", id.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrTipNotFound
	}

	log.Info("tip deleted", slog.String("tip_id", id.String()))
	return nil
}

// ListByExpert implements store.TipStore.ListByExpert
func (s *PostgresTipStore) ListByExpert(ctx context.Context, expertID uuid.UUID) ([]*domain.ExpertTip, error) {
	query := `SELECT ` + tipColumns + ` FROM expert_tips WHERE expert_id = $1 ORDER BY created_at DESC`
	return s.listTips(ctx, query, expertID)
}

// ListBySpecies implements store.TipStore.ListBySpecies
func (s *PostgresTipStore) ListBySpecies(ctx context.Context, speciesID uuid.UUID, visibleOnly bool) ([]*domain.ExpertTip, error) {
	query := `
		SELECT ` + tipColumns + `
		FROM expert_tips
		WHERE species_id = $1 AND ($2 = FALSE OR hidden = FALSE)
		ORDER BY created_at DESC
	`
	return s.listTips(ctx, query, speciesID, visibleOnly)
}

func (s *PostgresTipStore) listTips(ctx context.Context, query string, args ...any) ([]*domain.ExpertTip, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tips []*domain.ExpertTip
	for rows.Next() {
		tip, err := scanTipRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		tips = append(tips, tip)
	}
	return tips, rows.Err()
}

// ListAll implements store.TipStore.ListAll
func (s *PostgresTipStore) ListAll(ctx context.Context) ([]*store.TipWithAuthor, error) {
	query := `
		SELECT t.id, t.expert_id, t.species_id, t.title, t.content, t.hidden,
		       t.created_at, t.updated_at, u.name
		FROM expert_tips t
		JOIN users u ON u.id = t.expert_id
		ORDER BY t.created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tips []*store.TipWithAuthor
	for rows.Next() {
		var tip domain.ExpertTip
		var withAuthor store.TipWithAuthor
		err := rows.Scan(
			&tip.ID,
			&tip.ExpertID,
			&tip.SpeciesID,
			&tip.Title,
			&tip.Content,
			&tip.Hidden,
			&tip.CreatedAt,
			&tip.UpdatedAt,
			&withAuthor.AuthorName,
		)
		if err != nil {
			return nil, err
		}
		withAuthor.Tip = &tip
		tips = append(tips, &withAuthor)
	}
	return tips, rows.Err()
}

// SetHidden implements store.TipStore.SetHidden
// Returns store.ErrTipNotFound if the tip does not exist.
func (s *PostgresTipStore) SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`UPDATE expert_tips SET hidden = $1, updated_at = $2 WHERE id = $3`,
		hidden,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		log.Error("failed to set tip visibility",
			slog.String("error", err.Error()),
			slog.String("tip_id", id.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrTipNotFound
	}

	log.Info("tip visibility changed",
		slog.String("tip_id", id.String()),
		slog.Bool("hidden", hidden))
	return nil
}
