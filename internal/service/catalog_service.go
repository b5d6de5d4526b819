package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/store"
	"github.com/google/uuid"
)

// defaultSearchLimit caps catalog searches when the caller does not page.
const defaultSearchLimit = 50

// StageSummary is the client-safe projection of a quiz step for catalog
// detail pages: stage names and questions, never the answers.
type StageSummary struct {
	StepOrder int    `json:"step_order"`
	StageName string `json:"stage_name"`
	Question  string `json:"question"`
}

// SpeciesDetail is a species with its growth stages, visible tips and
// grower count, assembled for the catalog detail page.
type SpeciesDetail struct {
	Species *domain.Species     `json:"species"`
	Stages  []*StageSummary     `json:"stages"`
	Tips    []*domain.ExpertTip `json:"tips"`
	Growers int                 `json:"growers"`
}

// CatalogService provides the public, read-only view of the plant catalog
// plus plant requests for species it lacks.
type CatalogService interface {
	// Search returns species matching the term, or the whole catalog for
	// an empty term, up to limit rows (a non-positive limit uses the
	// default).
	Search(ctx context.Context, term string, limit int) ([]*domain.Species, error)

	// Detail returns the species with its stages, visible tips and grower
	// count. Returns store.ErrSpeciesNotFound if it does not exist.
	Detail(ctx context.Context, speciesID uuid.UUID) (*SpeciesDetail, error)

	// RequestPlant files a request for a species missing from the catalog.
	RequestPlant(ctx context.Context, userID uuid.UUID, plantName string) (*domain.PlantRequest, error)
}

// catalogServiceImpl implements the CatalogService interface.
type catalogServiceImpl struct {
	catalog  store.CatalogStore
	tips     store.TipStore
	requests store.PlantRequestStore
	logger   *slog.Logger
}

// Ensure catalogServiceImpl implements CatalogService interface
var _ CatalogService = (*catalogServiceImpl)(nil)

// NewCatalogService creates a new CatalogService.
// It returns an error if any of the required dependencies are nil.
func NewCatalogService(
	catalog store.CatalogStore,
	tips store.TipStore,
	requests store.PlantRequestStore,
	logger *slog.Logger,
) (CatalogService, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}
	if tips == nil {
		return nil, fmt.Errorf("tips cannot be nil")
	}
	if requests == nil {
		return nil, fmt.Errorf("requests cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &catalogServiceImpl{
		catalog:  catalog,
		tips:     tips,
		requests: requests,
		logger:   logger.With(slog.String("component", "catalog_service")),
	}, nil
}

// Search implements CatalogService.Search
func (s *catalogServiceImpl) Search(ctx context.Context, term string, limit int) ([]*domain.Species, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return s.catalog.SearchSpecies(ctx, term, limit)
}

// Detail implements CatalogService.Detail
func (s *catalogServiceImpl) Detail(ctx context.Context, speciesID uuid.UUID) (*SpeciesDetail, error) {
	species, err := s.catalog.GetSpecies(ctx, speciesID)
	if err != nil {
		return nil, err
	}

	steps, err := s.catalog.ListSteps(ctx, speciesID)
	if err != nil {
		return nil, err
	}
	stages := make([]*StageSummary, 0, len(steps))
	for _, step := range steps {
		stages = append(stages, &StageSummary{
			StepOrder: step.StepOrder,
			StageName: step.StageName,
			Question:  step.Question,
		})
	}

	tips, err := s.tips.ListBySpecies(ctx, speciesID, true)
	if err != nil {
		return nil, err
	}

	growers, err := s.catalog.CountGrowers(ctx, speciesID)
	if err != nil {
		return nil, err
	}

	return &SpeciesDetail{
		Species: species,
		Stages:  stages,
		Tips:    tips,
		Growers: growers,
	}, nil
}

// RequestPlant implements CatalogService.RequestPlant
func (s *catalogServiceImpl) RequestPlant(ctx context.Context, userID uuid.UUID, plantName string) (*domain.PlantRequest, error) {
	req, err := domain.NewPlantRequest(userID, plantName)
	if err != nil {
		return nil, err
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("plant request filed",
		slog.String("user_id", userID.String()),
		slog.String("plant_name", req.PlantName))
	return req, nil
}
