package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/store"
	"github.com/google/uuid"
)

// GardenService manages a user's collection of plant instances. The
// growing itself (answers, rescues, resets) lives in the growth package.
type GardenService interface {
	// ListGarden returns the user's plant instances with species names,
	// newest first.
	ListGarden(ctx context.Context, userID uuid.UUID) ([]*store.PlantSummary, error)

	// StartGrowing creates a fresh instance of the species at step 1.
	// Returns store.ErrSpeciesNotFound if the species does not exist and
	// store.ErrPlantExists if the user already grows it.
	StartGrowing(ctx context.Context, userID, speciesID uuid.UUID) (*domain.PlantInstance, error)
}

// gardenServiceImpl implements the GardenService interface.
type gardenServiceImpl struct {
	plantStore store.PlantStore
	catalog    store.CatalogStore
	logger     *slog.Logger
}

// Ensure gardenServiceImpl implements GardenService interface
var _ GardenService = (*gardenServiceImpl)(nil)

// NewGardenService creates a new GardenService.
// It returns an error if any of the required dependencies are nil.
func NewGardenService(
	plantStore store.PlantStore,
	catalog store.CatalogStore,
	logger *slog.Logger,
) (GardenService, error) {
	if plantStore == nil {
		return nil, fmt.Errorf("plantStore cannot be nil")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &gardenServiceImpl{
		plantStore: plantStore,
		catalog:    catalog,
		logger:     logger.With(slog.String("component", "garden_service")),
	}, nil
}

// ListGarden implements GardenService.ListGarden
func (s *gardenServiceImpl) ListGarden(ctx context.Context, userID uuid.UUID) ([]*store.PlantSummary, error) {
	return s.plantStore.ListByUser(ctx, userID)
}

// StartGrowing implements GardenService.StartGrowing
func (s *gardenServiceImpl) StartGrowing(ctx context.Context, userID, speciesID uuid.UUID) (*domain.PlantInstance, error) {
	// Resolve the species first so a bad ID surfaces as not-found rather
	// than as a foreign key violation.
	if _, err := s.catalog.GetSpecies(ctx, speciesID); err != nil {
		return nil, err
	}

	plant, err := domain.NewPlantInstance(userID, speciesID)
	if err != nil {
		return nil, err
	}

	if err := s.plantStore.Create(ctx, plant); err != nil {
		return nil, err
	}

	s.logger.Info("started growing",
		slog.String("user_id", userID.String()),
		slog.String("species_id", speciesID.String()),
		slog.String("plant_id", plant.ID.String()))
	return plant, nil
}
