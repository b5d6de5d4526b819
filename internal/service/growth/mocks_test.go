package growth

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/store"
)

// MockPlantStore is a mock implementation of store.PlantStore
type MockPlantStore struct {
	mock.Mock
}

func (m *MockPlantStore) Create(ctx context.Context, plant *domain.PlantInstance) error {
	args := m.Called(ctx, plant)
	return args.Error(0)
}

func (m *MockPlantStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.PlantInstance, error) {
	args := m.Called(ctx, id)
	plant, _ := args.Get(0).(*domain.PlantInstance)
	return plant, args.Error(1)
}

func (m *MockPlantStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.PlantInstance, error) {
	args := m.Called(ctx, id)
	plant, _ := args.Get(0).(*domain.PlantInstance)
	return plant, args.Error(1)
}

func (m *MockPlantStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*store.PlantSummary, error) {
	args := m.Called(ctx, userID)
	summaries, _ := args.Get(0).([]*store.PlantSummary)
	return summaries, args.Error(1)
}

func (m *MockPlantStore) UpdateProgress(ctx context.Context, plant *domain.PlantInstance) error {
	args := m.Called(ctx, plant)
	return args.Error(0)
}

func (m *MockPlantStore) CreateAttempt(ctx context.Context, attempt *domain.AttemptRecord) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockPlantStore) CompletionStats(ctx context.Context) ([]*store.SpeciesCompletionStat, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).([]*store.SpeciesCompletionStat)
	return stats, args.Error(1)
}

func (m *MockPlantStore) WithTx(tx *sql.Tx) store.PlantStore {
	return m
}

// MockCatalogStore is a mock implementation of store.CatalogStore
type MockCatalogStore struct {
	mock.Mock
}

func (m *MockCatalogStore) CreateSpecies(ctx context.Context, species *domain.Species) error {
	args := m.Called(ctx, species)
	return args.Error(0)
}

func (m *MockCatalogStore) GetSpecies(ctx context.Context, id uuid.UUID) (*domain.Species, error) {
	args := m.Called(ctx, id)
	species, _ := args.Get(0).(*domain.Species)
	return species, args.Error(1)
}

func (m *MockCatalogStore) SearchSpecies(ctx context.Context, term string, limit int) ([]*domain.Species, error) {
	args := m.Called(ctx, term, limit)
	result, _ := args.Get(0).([]*domain.Species)
	return result, args.Error(1)
}

func (m *MockCatalogStore) UpdateSpecies(ctx context.Context, species *domain.Species) error {
	args := m.Called(ctx, species)
	return args.Error(0)
}

func (m *MockCatalogStore) DeleteSpecies(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogStore) CountGrowers(ctx context.Context, speciesID uuid.UUID) (int, error) {
	args := m.Called(ctx, speciesID)
	return args.Int(0), args.Error(1)
}

func (m *MockCatalogStore) CreateStep(ctx context.Context, step *domain.QuizStep) error {
	args := m.Called(ctx, step)
	return args.Error(0)
}

func (m *MockCatalogStore) GetStep(ctx context.Context, id uuid.UUID) (*domain.QuizStep, error) {
	args := m.Called(ctx, id)
	step, _ := args.Get(0).(*domain.QuizStep)
	return step, args.Error(1)
}

func (m *MockCatalogStore) UpdateStep(ctx context.Context, step *domain.QuizStep) error {
	args := m.Called(ctx, step)
	return args.Error(0)
}

func (m *MockCatalogStore) GetStepAt(ctx context.Context, speciesID uuid.UUID, stepOrder int) (*domain.QuizStep, error) {
	args := m.Called(ctx, speciesID, stepOrder)
	step, _ := args.Get(0).(*domain.QuizStep)
	return step, args.Error(1)
}

func (m *MockCatalogStore) ListSteps(ctx context.Context, speciesID uuid.UUID) ([]*domain.QuizStep, error) {
	args := m.Called(ctx, speciesID)
	steps, _ := args.Get(0).([]*domain.QuizStep)
	return steps, args.Error(1)
}

func (m *MockCatalogStore) MaxStep(ctx context.Context, speciesID uuid.UUID) (int, error) {
	args := m.Called(ctx, speciesID)
	return args.Int(0), args.Error(1)
}

func (m *MockCatalogStore) WithTx(tx *sql.Tx) store.CatalogStore {
	return m
}

// MockLedgerStore is a mock implementation of store.LedgerStore
type MockLedgerStore struct {
	mock.Mock
}

func (m *MockLedgerStore) ApplyDelta(ctx context.Context, userID uuid.UUID, amount int64, txType domain.TransactionType) error {
	args := m.Called(ctx, userID, amount, txType)
	return args.Error(0)
}

func (m *MockLedgerStore) ApplyCheckedDebit(ctx context.Context, userID uuid.UUID, cost int64, txType domain.TransactionType) error {
	args := m.Called(ctx, userID, cost, txType)
	return args.Error(0)
}

func (m *MockLedgerStore) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, limit)
	entries, _ := args.Get(0).([]*domain.LedgerEntry)
	return entries, args.Error(1)
}

func (m *MockLedgerStore) ListRecent(ctx context.Context, limit int) ([]*store.LedgerActivity, error) {
	args := m.Called(ctx, limit)
	activity, _ := args.Get(0).([]*store.LedgerActivity)
	return activity, args.Error(1)
}

func (m *MockLedgerStore) WithTx(tx *sql.Tx) store.LedgerStore {
	return m
}

// MockGameConfigStore is a mock implementation of store.GameConfigStore
type MockGameConfigStore struct {
	mock.Mock
}

func (m *MockGameConfigStore) GetInt64(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGameConfigStore) Set(ctx context.Context, key string, value int64) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockGameConfigStore) All(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	values, _ := args.Get(0).(map[string]int64)
	return values, args.Error(1)
}

func (m *MockGameConfigStore) EnsureDefaults(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGameConfigStore) WithTx(tx *sql.Tx) store.GameConfigStore {
	return m
}
