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

func newTipService(t *testing.T) (TipService, *MockTipStore, *MockCatalogStore) {
	t.Helper()

	tips := new(MockTipStore)
	catalog := new(MockCatalogStore)

	svc, err := NewTipService(tips, catalog, slog.Default())
	require.NoError(t, err)
	return svc, tips, catalog
}

func TestCreateTip_PublishesVisible(t *testing.T) {
	svc, tips, catalog := newTipService(t)
	expertID := uuid.New()
	speciesID := uuid.New()

	catalog.On("GetSpecies", mock.Anything, speciesID).Return(&domain.Species{ID: speciesID}, nil)
	tips.On("Create", mock.Anything, mock.MatchedBy(func(tip *domain.ExpertTip) bool {
		return tip.ExpertID == expertID && tip.SpeciesID == speciesID && !tip.Hidden
	})).Return(nil)

	tip, err := svc.CreateTip(context.Background(), expertID, speciesID, "Watering", "Let the topsoil dry out first.")
	require.NoError(t, err)
	assert.False(t, tip.Hidden)
	assert.Equal(t, "Watering", tip.Title)
}

func TestCreateTip_UnknownSpecies(t *testing.T) {
	svc, tips, catalog := newTipService(t)
	speciesID := uuid.New()

	catalog.On("GetSpecies", mock.Anything, speciesID).Return(nil, store.ErrSpeciesNotFound)

	_, err := svc.CreateTip(context.Background(), uuid.New(), speciesID, "Watering", "content")
	assert.ErrorIs(t, err, store.ErrSpeciesNotFound)
	tips.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateTip_AuthorEdits(t *testing.T) {
	svc, tips, _ := newTipService(t)
	expertID := uuid.New()
	tipID := uuid.New()
	stored := &domain.ExpertTip{ID: tipID, ExpertID: expertID, Title: "Old", Content: "Old content"}

	tips.On("GetByID", mock.Anything, tipID).Return(stored, nil)
	tips.On("Update", mock.Anything, mock.MatchedBy(func(tip *domain.ExpertTip) bool {
		return tip.ID == tipID && tip.Title == "New" && tip.Content == "New content"
	})).Return(nil)

	tip, err := svc.UpdateTip(context.Background(), expertID, tipID, "  New  ", "New content")
	require.NoError(t, err)
	assert.Equal(t, "New", tip.Title)
}

func TestUpdateTip_NotAuthor(t *testing.T) {
	svc, tips, _ := newTipService(t)
	tipID := uuid.New()
	stored := &domain.ExpertTip{ID: tipID, ExpertID: uuid.New(), Title: "Theirs", Content: "content"}

	tips.On("GetByID", mock.Anything, tipID).Return(stored, nil)

	_, err := svc.UpdateTip(context.Background(), uuid.New(), tipID, "Mine now", "content")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	tips.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteTip_AuthorDeletes(t *testing.T) {
	svc, tips, _ := newTipService(t)
	expertID := uuid.New()
	tipID := uuid.New()
	stored := &domain.ExpertTip{ID: tipID, ExpertID: expertID}

	tips.On("GetByID", mock.Anything, tipID).Return(stored, nil)
	tips.On("Delete", mock.Anything, tipID).Return(nil)

	err := svc.DeleteTip(context.Background(), expertID, tipID)
	require.NoError(t, err)
	tips.AssertExpectations(t)
}

func TestDeleteTip_NotAuthor(t *testing.T) {
	svc, tips, _ := newTipService(t)
	tipID := uuid.New()
	stored := &domain.ExpertTip{ID: tipID, ExpertID: uuid.New()}

	tips.On("GetByID", mock.Anything, tipID).Return(stored, nil)

	err := svc.DeleteTip(context.Background(), uuid.New(), tipID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	tips.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteTip_NotFound(t *testing.T) {
	svc, tips, _ := newTipService(t)
	tipID := uuid.New()

	tips.On("GetByID", mock.Anything, tipID).Return(nil, store.ErrTipNotFound)

	err := svc.DeleteTip(context.Background(), uuid.New(), tipID)
	assert.ErrorIs(t, err, store.ErrTipNotFound)
}

func TestListMine_ReturnsOwnTips(t *testing.T) {
	svc, tips, _ := newTipService(t)
	expertID := uuid.New()
	own := []*domain.ExpertTip{
		{ID: uuid.New(), ExpertID: expertID, Title: "Light"},
		{ID: uuid.New(), ExpertID: expertID, Title: "Soil", Hidden: true},
	}

	tips.On("ListByExpert", mock.Anything, expertID).Return(own, nil)

	result, err := svc.ListMine(context.Background(), expertID)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}
