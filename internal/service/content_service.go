package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/store"
	"github.com/google/uuid"
)

// SpeciesInput carries the editable fields of a species.
type SpeciesInput struct {
	CommonName  string
	Category    domain.Category
	Difficulty  int
	SunLevel    domain.SunLevel
	ImageURL    string
	Description string
}

// StepInput carries the editable fields of a quiz step.
type StepInput struct {
	StepOrder     int
	StageName     string
	Question      string
	CorrectAnswer bool
	Explanation   string
}

// ContentService is the content-manager surface: catalog curation, quiz
// steps, economy settings, tip moderation and plant request processing.
// Every write lands an audit entry in the same transaction, so the trail
// cannot drift from the data.
type ContentService interface {
	// AddSpecies creates a catalog species.
	AddSpecies(ctx context.Context, actorID uuid.UUID, input SpeciesInput) (*domain.Species, error)

	// UpdateSpecies edits a species.
	// Returns store.ErrSpeciesNotFound if it does not exist.
	UpdateSpecies(ctx context.Context, actorID, speciesID uuid.UUID, input SpeciesInput) (*domain.Species, error)

	// DeleteSpecies removes a species and everything hanging off it.
	// Returns the number of plant instances the cascade took with it.
	DeleteSpecies(ctx context.Context, actorID, speciesID uuid.UUID) (int, error)

	// AddStep appends a quiz step to a species.
	// Returns store.ErrStepOrderExists on an occupied position.
	AddStep(ctx context.Context, actorID, speciesID uuid.UUID, input StepInput) (*domain.QuizStep, error)

	// UpdateStep edits a quiz step.
	// Returns store.ErrStepNotFound if it does not exist.
	UpdateStep(ctx context.Context, actorID, stepID uuid.UUID, input StepInput) (*domain.QuizStep, error)

	// ListSteps returns a species' steps, answers included, for the
	// content editing surface.
	ListSteps(ctx context.Context, speciesID uuid.UUID) ([]*domain.QuizStep, error)

	// EconomyConfig returns the current economy settings.
	EconomyConfig(ctx context.Context) (map[string]int64, error)

	// UpdateEconomyConfig changes one economy setting. Only the known keys
	// are accepted and values must be positive. The new value applies to
	// in-flight games immediately.
	UpdateEconomyConfig(ctx context.Context, actorID uuid.UUID, key string, value int64) error

	// ListAllTips returns every tip with author names for moderation.
	ListAllTips(ctx context.Context) ([]*store.TipWithAuthor, error)

	// SetTipHidden flips a tip's moderation flag.
	// Returns store.ErrTipNotFound if it does not exist.
	SetTipHidden(ctx context.Context, actorID, tipID uuid.UUID, hidden bool) error

	// ListPendingRequests returns unprocessed plant requests.
	ListPendingRequests(ctx context.Context) ([]*store.RequestWithUser, error)

	// ProcessRequest marks a plant request done or rejected.
	// Returns ErrRequestAlreadyProcessed if it was already decided.
	ProcessRequest(ctx context.Context, actorID, requestID uuid.UUID, done bool) error
}

// contentServiceImpl implements the ContentService interface.
type contentServiceImpl struct {
	db       *sql.DB
	catalog  store.CatalogStore
	tips     store.TipStore
	requests store.PlantRequestStore
	audit    store.AuditLogStore
	config   store.GameConfigStore
	logger   *slog.Logger
}

// Ensure contentServiceImpl implements ContentService interface
var _ ContentService = (*contentServiceImpl)(nil)

// NewContentService creates a new ContentService.
// It returns an error if any of the required dependencies are nil.
func NewContentService(
	db *sql.DB,
	catalog store.CatalogStore,
	tips store.TipStore,
	requests store.PlantRequestStore,
	audit store.AuditLogStore,
	config store.GameConfigStore,
	logger *slog.Logger,
) (ContentService, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}
	if tips == nil {
		return nil, fmt.Errorf("tips cannot be nil")
	}
	if requests == nil {
		return nil, fmt.Errorf("requests cannot be nil")
	}
	if audit == nil {
		return nil, fmt.Errorf("audit cannot be nil")
	}
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &contentServiceImpl{
		db:       db,
		catalog:  catalog,
		tips:     tips,
		requests: requests,
		audit:    audit,
		config:   config,
		logger:   logger.With(slog.String("component", "content_service")),
	}, nil
}

// appendAudit writes an audit entry inside the caller's transaction.
func appendAudit(ctx context.Context, audit store.AuditLogStore, actorID uuid.UUID, action domain.AuditAction, target uuid.UUID, details string) error {
	entry, err := domain.NewAuditLogEntry(actorID, action, target, details)
	if err != nil {
		return err
	}
	return audit.Append(ctx, entry)
}

// AddSpecies implements ContentService.AddSpecies
func (s *contentServiceImpl) AddSpecies(ctx context.Context, actorID uuid.UUID, input SpeciesInput) (*domain.Species, error) {
	species, err := domain.NewSpecies(input.CommonName, input.Category, input.Difficulty, input.SunLevel, input.ImageURL, input.Description)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.catalog.WithTx(tx).CreateSpecies(ctx, species); err != nil {
			return err
		}
		return appendAudit(ctx, s.audit.WithTx(tx), actorID, domain.AuditAddSpecies, species.ID, species.CommonName)
	})
	if err != nil {
		return nil, err
	}

	return species, nil
}

// UpdateSpecies implements ContentService.UpdateSpecies
func (s *contentServiceImpl) UpdateSpecies(ctx context.Context, actorID, speciesID uuid.UUID, input SpeciesInput) (*domain.Species, error) {
	species, err := s.catalog.GetSpecies(ctx, speciesID)
	if err != nil {
		return nil, err
	}

	species.CommonName = strings.TrimSpace(input.CommonName)
	species.Category = input.Category
	species.Difficulty = input.Difficulty
	species.SunLevel = input.SunLevel
	species.ImageURL = strings.TrimSpace(input.ImageURL)
	species.Description = strings.TrimSpace(input.Description)
	if err := species.Validate(); err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.catalog.WithTx(tx).UpdateSpecies(ctx, species); err != nil {
			return err
		}
		return appendAudit(ctx, s.audit.WithTx(tx), actorID, domain.AuditEditSpecies, species.ID, species.CommonName)
	})
	if err != nil {
		return nil, err
	}

	return species, nil
}

// DeleteSpecies implements ContentService.DeleteSpecies
func (s *contentServiceImpl) DeleteSpecies(ctx context.Context, actorID, speciesID uuid.UUID) (int, error) {
	var growers int

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		catalog := s.catalog.WithTx(tx)

		species, err := catalog.GetSpecies(ctx, speciesID)
		if err != nil {
			return err
		}

		growers, err = catalog.CountGrowers(ctx, speciesID)
		if err != nil {
			return err
		}

		if err := catalog.DeleteSpecies(ctx, speciesID); err != nil {
			return err
		}
		return appendAudit(ctx, s.audit.WithTx(tx), actorID, domain.AuditDeleteSpecies, speciesID,
			fmt.Sprintf("%s (%d growers)", species.CommonName, growers))
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("species deleted",
		slog.String("species_id", speciesID.String()),
		slog.Int("growers_lost", growers))
	return growers, nil
}

// AddStep implements ContentService.AddStep
func (s *contentServiceImpl) AddStep(ctx context.Context, actorID, speciesID uuid.UUID, input StepInput) (*domain.QuizStep, error) {
	step, err := domain.NewQuizStep(speciesID, input.StepOrder, input.StageName, input.Question, input.CorrectAnswer, input.Explanation)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.catalog.WithTx(tx).CreateStep(ctx, step); err != nil {
			return err
		}
		return appendAudit(ctx, s.audit.WithTx(tx), actorID, domain.AuditAddStep, step.ID,
			fmt.Sprintf("step %d: %s", step.StepOrder, step.StageName))
	})
	if err != nil {
		return nil, err
	}

	return step, nil
}

// UpdateStep implements ContentService.UpdateStep
func (s *contentServiceImpl) UpdateStep(ctx context.Context, actorID, stepID uuid.UUID, input StepInput) (*domain.QuizStep, error) {
	var updated *domain.QuizStep

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		catalog := s.catalog.WithTx(tx)

		step, err := catalog.GetStep(ctx, stepID)
		if err != nil {
			return err
		}

		step.StepOrder = input.StepOrder
		step.StageName = strings.TrimSpace(input.StageName)
		step.Question = strings.TrimSpace(input.Question)
		step.CorrectAnswer = input.CorrectAnswer
		step.Explanation = strings.TrimSpace(input.Explanation)
		if err := step.Validate(); err != nil {
			return err
		}

		if err := catalog.UpdateStep(ctx, step); err != nil {
			return err
		}
		updated = step
		return appendAudit(ctx, s.audit.WithTx(tx), actorID, domain.AuditEditStep, stepID,
			fmt.Sprintf("step %d: %s", step.StepOrder, step.StageName))
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// ListSteps implements ContentService.ListSteps
func (s *contentServiceImpl) ListSteps(ctx context.Context, speciesID uuid.UUID) ([]*domain.QuizStep, error) {
	return s.catalog.ListSteps(ctx, speciesID)
}

// EconomyConfig implements ContentService.EconomyConfig
func (s *contentServiceImpl) EconomyConfig(ctx context.Context) (map[string]int64, error) {
	return s.config.All(ctx)
}

// UpdateEconomyConfig implements ContentService.UpdateEconomyConfig
func (s *contentServiceImpl) UpdateEconomyConfig(ctx context.Context, actorID uuid.UUID, key string, value int64) error {
	if key != domain.ConfigKeyQuizReward && key != domain.ConfigKeyReviveCost {
		return ErrUnknownConfigKey
	}
	if value <= 0 {
		return ErrConfigValueInvalid
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.config.WithTx(tx).Set(ctx, key, value); err != nil {
			return err
		}
		return appendAudit(ctx, s.audit.WithTx(tx), actorID, domain.AuditUpdateConfig, uuid.Nil,
			fmt.Sprintf("%s=%d", key, value))
	})
	if err != nil {
		return err
	}

	s.logger.Info("economy config updated",
		slog.String("key", key),
		slog.Int64("value", value))
	return nil
}

// ListAllTips implements ContentService.ListAllTips
func (s *contentServiceImpl) ListAllTips(ctx context.Context) ([]*store.TipWithAuthor, error) {
	return s.tips.ListAll(ctx)
}

// SetTipHidden implements ContentService.SetTipHidden
func (s *contentServiceImpl) SetTipHidden(ctx context.Context, actorID, tipID uuid.UUID, hidden bool) error {
	action := domain.AuditUnhideTip
	if hidden {
		action = domain.AuditHideTip
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.tips.WithTx(tx).SetHidden(ctx, tipID, hidden); err != nil {
			return err
		}
		return appendAudit(ctx, s.audit.WithTx(tx), actorID, action, tipID, "")
	})
}

// ListPendingRequests implements ContentService.ListPendingRequests
func (s *contentServiceImpl) ListPendingRequests(ctx context.Context) ([]*store.RequestWithUser, error) {
	return s.requests.ListPending(ctx)
}

// ProcessRequest implements ContentService.ProcessRequest
func (s *contentServiceImpl) ProcessRequest(ctx context.Context, actorID, requestID uuid.UUID, done bool) error {
	status := domain.RequestRejected
	action := domain.AuditRequestReject
	if done {
		status = domain.RequestDone
		action = domain.AuditRequestDone
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		requests := s.requests.WithTx(tx)

		req, err := requests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != domain.RequestPending {
			return ErrRequestAlreadyProcessed
		}

		if err := requests.Process(ctx, requestID, status, actorID); err != nil {
			return err
		}
		return appendAudit(ctx, s.audit.WithTx(tx), actorID, action, requestID, req.PlantName)
	})
}
