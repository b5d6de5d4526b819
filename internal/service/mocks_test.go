package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/store"
)

// MockUserStore is a mock implementation of store.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserStore) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
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

// MockApplicationStore is a mock implementation of store.ApplicationStore
type MockApplicationStore struct {
	mock.Mock
}

func (m *MockApplicationStore) Upsert(ctx context.Context, app *domain.ExpertApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationStore) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.ExpertApplication, error) {
	args := m.Called(ctx, userID)
	app, _ := args.Get(0).(*domain.ExpertApplication)
	return app, args.Error(1)
}

func (m *MockApplicationStore) ListPending(ctx context.Context) ([]*store.ApplicationWithUser, error) {
	args := m.Called(ctx)
	apps, _ := args.Get(0).([]*store.ApplicationWithUser)
	return apps, args.Error(1)
}

func (m *MockApplicationStore) Decide(ctx context.Context, userID uuid.UUID, status domain.ApplicationStatus, decidedAt time.Time) error {
	args := m.Called(ctx, userID, status, decidedAt)
	return args.Error(0)
}

func (m *MockApplicationStore) WithTx(tx *sql.Tx) store.ApplicationStore {
	return m
}

// MockPasswordVerifier is a mock implementation of auth.PasswordVerifier
type MockPasswordVerifier struct {
	mock.Mock
}

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
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

// MockTipStore is a mock implementation of store.TipStore
type MockTipStore struct {
	mock.Mock
}

func (m *MockTipStore) Create(ctx context.Context, tip *domain.ExpertTip) error {
	args := m.Called(ctx, tip)
	return args.Error(0)
}

func (m *MockTipStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExpertTip, error) {
	args := m.Called(ctx, id)
	tip, _ := args.Get(0).(*domain.ExpertTip)
	return tip, args.Error(1)
}

func (m *MockTipStore) Update(ctx context.Context, tip *domain.ExpertTip) error {
	args := m.Called(ctx, tip)
	return args.Error(0)
}

func (m *MockTipStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTipStore) ListByExpert(ctx context.Context, expertID uuid.UUID) ([]*domain.ExpertTip, error) {
	args := m.Called(ctx, expertID)
	tips, _ := args.Get(0).([]*domain.ExpertTip)
	return tips, args.Error(1)
}

func (m *MockTipStore) ListBySpecies(ctx context.Context, speciesID uuid.UUID, visibleOnly bool) ([]*domain.ExpertTip, error) {
	args := m.Called(ctx, speciesID, visibleOnly)
	tips, _ := args.Get(0).([]*domain.ExpertTip)
	return tips, args.Error(1)
}

func (m *MockTipStore) ListAll(ctx context.Context) ([]*store.TipWithAuthor, error) {
	args := m.Called(ctx)
	tips, _ := args.Get(0).([]*store.TipWithAuthor)
	return tips, args.Error(1)
}

func (m *MockTipStore) SetHidden(ctx context.Context, id uuid.UUID, hidden bool) error {
	args := m.Called(ctx, id, hidden)
	return args.Error(0)
}

func (m *MockTipStore) WithTx(tx *sql.Tx) store.TipStore {
	return m
}

// MockPlantRequestStore is a mock implementation of store.PlantRequestStore
type MockPlantRequestStore struct {
	mock.Mock
}

func (m *MockPlantRequestStore) Create(ctx context.Context, req *domain.PlantRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockPlantRequestStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.PlantRequest, error) {
	args := m.Called(ctx, id)
	req, _ := args.Get(0).(*domain.PlantRequest)
	return req, args.Error(1)
}

func (m *MockPlantRequestStore) ListPending(ctx context.Context) ([]*store.RequestWithUser, error) {
	args := m.Called(ctx)
	requests, _ := args.Get(0).([]*store.RequestWithUser)
	return requests, args.Error(1)
}

func (m *MockPlantRequestStore) Process(ctx context.Context, id uuid.UUID, status domain.RequestStatus, processedBy uuid.UUID) error {
	args := m.Called(ctx, id, status, processedBy)
	return args.Error(0)
}

func (m *MockPlantRequestStore) WithTx(tx *sql.Tx) store.PlantRequestStore {
	return m
}

// MockAuditLogStore is a mock implementation of store.AuditLogStore
type MockAuditLogStore struct {
	mock.Mock
}

func (m *MockAuditLogStore) Append(ctx context.Context, entry *domain.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogStore) ListRecent(ctx context.Context, limit int) ([]*store.AuditWithActor, error) {
	args := m.Called(ctx, limit)
	entries, _ := args.Get(0).([]*store.AuditWithActor)
	return entries, args.Error(1)
}

func (m *MockAuditLogStore) WithTx(tx *sql.Tx) store.AuditLogStore {
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
