package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/store"
	"github.com/google/uuid"
)

// TipService lets experts publish and manage their own care tips. Hiding
// tips is a moderation action and lives in the content service.
type TipService interface {
	// CreateTip publishes a tip for a species under the expert's name.
	// Returns store.ErrSpeciesNotFound if the species does not exist.
	CreateTip(ctx context.Context, expertID, speciesID uuid.UUID, title, content string) (*domain.ExpertTip, error)

	// UpdateTip edits a tip's title and content. Only the author may edit;
	// anyone else gets domain.ErrUnauthorized.
	UpdateTip(ctx context.Context, expertID, tipID uuid.UUID, title, content string) (*domain.ExpertTip, error)

	// DeleteTip removes a tip permanently. Only the author may delete.
	DeleteTip(ctx context.Context, expertID, tipID uuid.UUID) error

	// ListMine returns the expert's tips, newest first.
	ListMine(ctx context.Context, expertID uuid.UUID) ([]*domain.ExpertTip, error)
}

// tipServiceImpl implements the TipService interface.
type tipServiceImpl struct {
	tips    store.TipStore
	catalog store.CatalogStore
	logger  *slog.Logger
}

// Ensure tipServiceImpl implements TipService interface
var _ TipService = (*tipServiceImpl)(nil)

// NewTipService creates a new TipService.
// It returns an error if any of the required dependencies are nil.
func NewTipService(
	tips store.TipStore,
	catalog store.CatalogStore,
	logger *slog.Logger,
) (TipService, error) {
	if tips == nil {
		return nil, fmt.Errorf("tips cannot be nil")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &tipServiceImpl{
		tips:    tips,
		catalog: catalog,
		logger:  logger.With(slog.String("component", "tip_service")),
	}, nil
}

// CreateTip implements TipService.CreateTip
func (s *tipServiceImpl) CreateTip(ctx context.Context, expertID, speciesID uuid.UUID, title, content string) (*domain.ExpertTip, error) {
	if _, err := s.catalog.GetSpecies(ctx, speciesID); err != nil {
		return nil, err
	}

	tip, err := domain.NewExpertTip(expertID, speciesID, title, content)
	if err != nil {
		return nil, err
	}

	if err := s.tips.Create(ctx, tip); err != nil {
		return nil, err
	}

	s.logger.Info("tip published",
		slog.String("tip_id", tip.ID.String()),
		slog.String("expert_id", expertID.String()))
	return tip, nil
}

// ownedTip loads a tip and verifies the caller authored it.
func (s *tipServiceImpl) ownedTip(ctx context.Context, expertID, tipID uuid.UUID) (*domain.ExpertTip, error) {
	tip, err := s.tips.GetByID(ctx, tipID)
	if err != nil {
		return nil, err
	}
	if tip.ExpertID != expertID {
		return nil, domain.ErrUnauthorized
	}
	return tip, nil
}

// UpdateTip implements TipService.UpdateTip
func (s *tipServiceImpl) UpdateTip(ctx context.Context, expertID, tipID uuid.UUID, title, content string) (*domain.ExpertTip, error) {
	tip, err := s.ownedTip(ctx, expertID, tipID)
	if err != nil {
		return nil, err
	}

	tip.Title = strings.TrimSpace(title)
	tip.Content = strings.TrimSpace(content)
	if err := tip.Validate(); err != nil {
		return nil, err
	}

	if err := s.tips.Update(ctx, tip); err != nil {
		return nil, err
	}
	return tip, nil
}

// DeleteTip implements TipService.DeleteTip
func (s *tipServiceImpl) DeleteTip(ctx context.Context, expertID, tipID uuid.UUID) error {
	if _, err := s.ownedTip(ctx, expertID, tipID); err != nil {
		return err
	}

	if err := s.tips.Delete(ctx, tipID); err != nil {
		return err
	}

	s.logger.Info("tip deleted",
		slog.String("tip_id", tipID.String()),
		slog.String("expert_id", expertID.String()))
	return nil
}

// ListMine implements TipService.ListMine
func (s *tipServiceImpl) ListMine(ctx context.Context, expertID uuid.UUID) ([]*domain.ExpertTip, error) {
	return s.tips.ListByExpert(ctx, expertID)
}
