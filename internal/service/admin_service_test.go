package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/store"
)

// adminFixture bundles the mocked dependencies behind an AdminService.
type adminFixture struct {
	svc          AdminService
	sqlMock      sqlmock.Sqlmock
	users        *MockUserStore
	applications *MockApplicationStore
	plants       *MockPlantStore
	ledger       *MockLedgerStore
	audit        *MockAuditLogStore
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &adminFixture{
		sqlMock:      sqlMock,
		users:        new(MockUserStore),
		applications: new(MockApplicationStore),
		plants:       new(MockPlantStore),
		ledger:       new(MockLedgerStore),
		audit:        new(MockAuditLogStore),
	}

	f.svc, err = NewAdminService(db, f.users, f.applications, f.plants, f.ledger, f.audit, slog.Default())
	require.NoError(t, err)
	return f
}

func (f *adminFixture) expectCommit() {
	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectCommit()
}

func (f *adminFixture) expectRollback() {
	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectRollback()
}

func TestListPendingApplications(t *testing.T) {
	f := newAdminFixture(t)
	pending := []*store.ApplicationWithUser{
		{Application: &domain.ExpertApplication{UserID: uuid.New(), Status: domain.ApplicationPending}, Name: "Mina"},
	}

	f.applications.On("ListPending", mock.Anything).Return(pending, nil)

	result, err := f.svc.ListPendingApplications(context.Background())
	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestDecideApplication_ApprovePromotesUser(t *testing.T) {
	f := newAdminFixture(t)
	adminID := uuid.New()
	userID := uuid.New()

	f.expectCommit()
	f.applications.On("Decide", mock.Anything, userID, domain.ApplicationApproved, mock.Anything).Return(nil)
	f.users.On("UpdateRole", mock.Anything, userID, domain.RoleExpert).Return(nil)
	f.audit.On("Append", mock.Anything, mock.MatchedBy(func(e *domain.AuditLogEntry) bool {
		return e.ActorID == adminID && e.Action == domain.AuditApproveExpert
	})).Return(nil)

	err := f.svc.DecideApplication(context.Background(), adminID, userID, true)
	require.NoError(t, err)
	require.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestDecideApplication_RejectLeavesRole(t *testing.T) {
	f := newAdminFixture(t)
	adminID := uuid.New()
	userID := uuid.New()

	f.expectCommit()
	f.applications.On("Decide", mock.Anything, userID, domain.ApplicationRejected, mock.Anything).Return(nil)
	f.audit.On("Append", mock.Anything, mock.MatchedBy(func(e *domain.AuditLogEntry) bool {
		return e.Action == domain.AuditRejectExpert
	})).Return(nil)

	err := f.svc.DecideApplication(context.Background(), adminID, userID, false)
	require.NoError(t, err)
	f.users.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	require.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestDecideApplication_NotFoundRollsBack(t *testing.T) {
	f := newAdminFixture(t)
	userID := uuid.New()

	f.expectRollback()
	f.applications.On("Decide", mock.Anything, userID, domain.ApplicationApproved, mock.Anything).
		Return(store.ErrApplicationNotFound)

	err := f.svc.DecideApplication(context.Background(), uuid.New(), userID, true)
	assert.ErrorIs(t, err, store.ErrApplicationNotFound)
	f.users.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	require.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestDashboard_AssemblesStats(t *testing.T) {
	f := newAdminFixture(t)
	completion := []*store.SpeciesCompletionStat{
		{SpeciesID: uuid.New(), SpeciesName: "Monstera", TotalGrowers: 10, CompletedCount: 3},
	}
	recentLedger := []*store.LedgerActivity{
		{Entry: &domain.LedgerEntry{Type: domain.TxQuizReward, Amount: 100}, UserName: "Mina"},
	}
	recentAudit := []*store.AuditWithActor{
		{Entry: &domain.AuditLogEntry{Action: domain.AuditAddSpecies}, ActorName: "Admin"},
	}

	f.plants.On("CompletionStats", mock.Anything).Return(completion, nil)
	f.ledger.On("ListRecent", mock.Anything, dashboardActivityLimit).Return(recentLedger, nil)
	f.audit.On("ListRecent", mock.Anything, dashboardActivityLimit).Return(recentAudit, nil)

	stats, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, stats.Completion, 1)
	assert.Len(t, stats.RecentLedger, 1)
	assert.Len(t, stats.RecentAudit, 1)
}

func TestListAudit_DefaultsNonPositiveLimit(t *testing.T) {
	f := newAdminFixture(t)

	f.audit.On("ListRecent", mock.Anything, dashboardActivityLimit).Return([]*store.AuditWithActor{}, nil)

	_, err := f.svc.ListAudit(context.Background(), 0)
	require.NoError(t, err)
	f.audit.AssertExpectations(t)
}

func TestListAudit_HonorsExplicitLimit(t *testing.T) {
	f := newAdminFixture(t)

	f.audit.On("ListRecent", mock.Anything, 100).Return([]*store.AuditWithActor{}, nil)

	_, err := f.svc.ListAudit(context.Background(), 100)
	require.NoError(t, err)
	f.audit.AssertExpectations(t)
}
