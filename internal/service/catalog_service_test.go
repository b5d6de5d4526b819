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

func newCatalogService(t *testing.T) (CatalogService, *MockCatalogStore, *MockTipStore, *MockPlantRequestStore) {
	t.Helper()

	catalog := new(MockCatalogStore)
	tips := new(MockTipStore)
	requests := new(MockPlantRequestStore)

	svc, err := NewCatalogService(catalog, tips, requests, slog.Default())
	require.NoError(t, err)
	return svc, catalog, tips, requests
}

func TestSearch_DefaultsLimit(t *testing.T) {
	svc, catalog, _, _ := newCatalogService(t)

	catalog.On("SearchSpecies", mock.Anything, "monstera", defaultSearchLimit).
		Return([]*domain.Species{{CommonName: "Monstera"}}, nil)

	result, err := svc.Search(context.Background(), "monstera", 0)
	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestSearch_HonorsExplicitLimit(t *testing.T) {
	svc, catalog, _, _ := newCatalogService(t)

	catalog.On("SearchSpecies", mock.Anything, "", 5).Return([]*domain.Species{}, nil)

	_, err := svc.Search(context.Background(), "", 5)
	require.NoError(t, err)
	catalog.AssertExpectations(t)
}

func TestDetail_AssemblesPageWithoutAnswers(t *testing.T) {
	svc, catalog, tips, _ := newCatalogService(t)
	speciesID := uuid.New()
	species := &domain.Species{ID: speciesID, CommonName: "Monstera"}
	steps := []*domain.QuizStep{
		{SpeciesID: speciesID, StepOrder: 1, StageName: "Seed", Question: "Keep it dark?", CorrectAnswer: true},
		{SpeciesID: speciesID, StepOrder: 2, StageName: "Sprout", Question: "Water daily?", CorrectAnswer: false},
	}
	visible := []*domain.ExpertTip{{ID: uuid.New(), SpeciesID: speciesID, Title: "Light"}}

	catalog.On("GetSpecies", mock.Anything, speciesID).Return(species, nil)
	catalog.On("ListSteps", mock.Anything, speciesID).Return(steps, nil)
	tips.On("ListBySpecies", mock.Anything, speciesID, true).Return(visible, nil)
	catalog.On("CountGrowers", mock.Anything, speciesID).Return(12, nil)

	detail, err := svc.Detail(context.Background(), speciesID)
	require.NoError(t, err)

	assert.Equal(t, species, detail.Species)
	assert.Equal(t, 12, detail.Growers)
	require.Len(t, detail.Stages, 2)
	assert.Equal(t, "Seed", detail.Stages[0].StageName)
	assert.Equal(t, "Keep it dark?", detail.Stages[0].Question)
	assert.Len(t, detail.Tips, 1)
}

func TestDetail_UnknownSpecies(t *testing.T) {
	svc, catalog, _, _ := newCatalogService(t)
	speciesID := uuid.New()

	catalog.On("GetSpecies", mock.Anything, speciesID).Return(nil, store.ErrSpeciesNotFound)

	_, err := svc.Detail(context.Background(), speciesID)
	assert.ErrorIs(t, err, store.ErrSpeciesNotFound)
}

func TestRequestPlant_FilesPending(t *testing.T) {
	svc, _, _, requests := newCatalogService(t)
	userID := uuid.New()

	requests.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.PlantRequest) bool {
		return r.RequesterID == userID && r.PlantName == "String of Pearls" && r.Status == domain.RequestPending
	})).Return(nil)

	req, err := svc.RequestPlant(context.Background(), userID, "  String of Pearls  ")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, req.Status)
	assert.Equal(t, "String of Pearls", req.PlantName)
}

func TestRequestPlant_EmptyName(t *testing.T) {
	svc, _, _, requests := newCatalogService(t)

	_, err := svc.RequestPlant(context.Background(), uuid.New(), "   ")
	assert.Error(t, err)
	requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
