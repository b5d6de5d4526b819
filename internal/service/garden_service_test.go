package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/store"
)

func newGardenService(t *testing.T) (GardenService, *MockPlantStore, *MockCatalogStore) {
	t.Helper()

	plants := new(MockPlantStore)
	catalog := new(MockCatalogStore)

	svc, err := NewGardenService(plants, catalog, slog.Default())
	require.NoError(t, err)
	return svc, plants, catalog
}

func TestListGarden_ReturnsSummaries(t *testing.T) {
	svc, plants, _ := newGardenService(t)
	userID := uuid.New()
	summaries := []*store.PlantSummary{
		{Instance: &domain.PlantInstance{CurrentStep: 2, State: domain.GrowthInProgress}, SpeciesName: "Monstera"},
		{Instance: &domain.PlantInstance{CurrentStep: 4, State: domain.GrowthCompleted}, SpeciesName: "Basil"},
	}

	plants.On("ListByUser", mock.Anything, userID).Return(summaries, nil)

	result, err := svc.ListGarden(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestStartGrowing_CreatesInstanceAtStepOne(t *testing.T) {
	svc, plants, catalog := newGardenService(t)
	userID := uuid.New()
	speciesID := uuid.New()

	catalog.On("GetSpecies", mock.Anything, speciesID).Return(&domain.Species{ID: speciesID, CommonName: "Monstera"}, nil)
	plants.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.PlantInstance) bool {
		return p.UserID == userID && p.SpeciesID == speciesID &&
			p.CurrentStep == 1 && p.State == domain.GrowthInProgress
	})).Return(nil)

	plant, err := svc.StartGrowing(context.Background(), userID, speciesID)
	require.NoError(t, err)
	assert.Equal(t, 1, plant.CurrentStep)
	assert.Equal(t, domain.GrowthInProgress, plant.State)
}

func TestStartGrowing_UnknownSpecies(t *testing.T) {
	svc, plants, catalog := newGardenService(t)
	speciesID := uuid.New()

	catalog.On("GetSpecies", mock.Anything, speciesID).Return(nil, store.ErrSpeciesNotFound)

	_, err := svc.StartGrowing(context.Background(), uuid.New(), speciesID)
	assert.ErrorIs(t, err, store.ErrSpeciesNotFound)
	plants.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStartGrowing_AlreadyGrowing(t *testing.T) {
	svc, plants, catalog := newGardenService(t)
	speciesID := uuid.New()

	catalog.On("GetSpecies", mock.Anything, speciesID).Return(&domain.Species{ID: speciesID}, nil)
	plants.On("Create", mock.Anything, mock.Anything).Return(store.ErrPlantExists)

	_, err := svc.StartGrowing(context.Background(), uuid.New(), speciesID)
	assert.ErrorIs(t, err, store.ErrPlantExists)
}
