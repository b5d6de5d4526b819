package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/store"
	"github.com/google/uuid"
)

// dashboardActivityLimit caps the recent-activity lists on the dashboard.
const dashboardActivityLimit = 20

// DashboardStats is the admin dashboard payload: per-species completion
// numbers plus the latest point movements and audit entries.
type DashboardStats struct {
	Completion   []*store.SpeciesCompletionStat `json:"completion"`
	RecentLedger []*store.LedgerActivity        `json:"recent_ledger"`
	RecentAudit  []*store.AuditWithActor        `json:"recent_audit"`
}

// AdminService is the admin surface: expert application review, the
// dashboard and the audit trail.
type AdminService interface {
	// ListPendingApplications returns applications waiting for review,
	// oldest first.
	ListPendingApplications(ctx context.Context) ([]*store.ApplicationWithUser, error)

	// DecideApplication approves or rejects a user's expert application.
	// Approval promotes the user to the expert role in the same
	// transaction. Returns store.ErrApplicationNotFound if none exists.
	DecideApplication(ctx context.Context, adminID, userID uuid.UUID, approve bool) error

	// Dashboard assembles the admin dashboard statistics.
	Dashboard(ctx context.Context) (*DashboardStats, error)

	// ListAudit returns the most recent audit entries, up to limit rows
	// (a non-positive limit uses the dashboard default).
	ListAudit(ctx context.Context, limit int) ([]*store.AuditWithActor, error)
}

// adminServiceImpl implements the AdminService interface.
type adminServiceImpl struct {
	db           *sql.DB
	userStore    store.UserStore
	applications store.ApplicationStore
	plantStore   store.PlantStore
	ledger       store.LedgerStore
	audit        store.AuditLogStore
	logger       *slog.Logger
}

// Ensure adminServiceImpl implements AdminService interface
var _ AdminService = (*adminServiceImpl)(nil)

// NewAdminService creates a new AdminService.
// It returns an error if any of the required dependencies are nil.
func NewAdminService(
	db *sql.DB,
	userStore store.UserStore,
	applications store.ApplicationStore,
	plantStore store.PlantStore,
	ledger store.LedgerStore,
	audit store.AuditLogStore,
	logger *slog.Logger,
) (AdminService, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if userStore == nil {
		return nil, fmt.Errorf("userStore cannot be nil")
	}
	if applications == nil {
		return nil, fmt.Errorf("applications cannot be nil")
	}
	if plantStore == nil {
		return nil, fmt.Errorf("plantStore cannot be nil")
	}
	if ledger == nil {
		return nil, fmt.Errorf("ledger cannot be nil")
	}
	if audit == nil {
		return nil, fmt.Errorf("audit cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &adminServiceImpl{
		db:           db,
		userStore:    userStore,
		applications: applications,
		plantStore:   plantStore,
		ledger:       ledger,
		audit:        audit,
		logger:       logger.With(slog.String("component", "admin_service")),
	}, nil
}

// ListPendingApplications implements AdminService.ListPendingApplications
func (s *adminServiceImpl) ListPendingApplications(ctx context.Context) ([]*store.ApplicationWithUser, error) {
	return s.applications.ListPending(ctx)
}

// DecideApplication implements AdminService.DecideApplication
func (s *adminServiceImpl) DecideApplication(ctx context.Context, adminID, userID uuid.UUID, approve bool) error {
	status := domain.ApplicationRejected
	action := domain.AuditRejectExpert
	if approve {
		status = domain.ApplicationApproved
		action = domain.AuditApproveExpert
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		applications := s.applications.WithTx(tx)

		if err := applications.Decide(ctx, userID, status, time.Now().UTC()); err != nil {
			return err
		}
		if approve {
			if err := s.userStore.WithTx(tx).UpdateRole(ctx, userID, domain.RoleExpert); err != nil {
				return err
			}
		}

		entry, err := domain.NewAuditLogEntry(adminID, action, userID, "")
		if err != nil {
			return err
		}
		return s.audit.WithTx(tx).Append(ctx, entry)
	})
	if err != nil {
		return err
	}

	s.logger.Info("expert application decided",
		slog.String("user_id", userID.String()),
		slog.Bool("approved", approve))
	return nil
}

// Dashboard implements AdminService.Dashboard
func (s *adminServiceImpl) Dashboard(ctx context.Context) (*DashboardStats, error) {
	completion, err := s.plantStore.CompletionStats(ctx)
	if err != nil {
		return nil, err
	}

	recentLedger, err := s.ledger.ListRecent(ctx, dashboardActivityLimit)
	if err != nil {
		return nil, err
	}

	recentAudit, err := s.audit.ListRecent(ctx, dashboardActivityLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Completion:   completion,
		RecentLedger: recentLedger,
		RecentAudit:  recentAudit,
	}, nil
}

// ListAudit implements AdminService.ListAudit
func (s *adminServiceImpl) ListAudit(ctx context.Context, limit int) ([]*store.AuditWithActor, error) {
	if limit <= 0 {
		limit = dashboardActivityLimit
	}
	return s.audit.ListRecent(ctx, limit)
}
