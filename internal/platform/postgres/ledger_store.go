package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/platform/logger"
	"github.com/SonJH7/Pium/internal/store"
	"github.com/google/uuid"
)

// PostgresLedgerStore implements the store.LedgerStore interface
// using a PostgreSQL database as the storage backend. Balance mutations
// and ledger inserts run as separate statements, so callers must invoke
// the mutating methods inside a transaction (via WithTx) to keep balance
// and ledger consistent.
type PostgresLedgerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLedgerStore creates a new PostgreSQL implementation of the
// LedgerStore interface. If logger is nil, a default logger will be used.
func NewPostgresLedgerStore(db store.DBTX, logger *slog.Logger) *PostgresLedgerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLedgerStore{
		db:     db,
		logger: logger.With(slog.String("component", "ledger_store")),
	}
}

// Ensure PostgresLedgerStore implements store.LedgerStore interface
var _ store.LedgerStore = (*PostgresLedgerStore)(nil)

// WithTx returns a new LedgerStore that runs against the given transaction.
func (s *PostgresLedgerStore) WithTx(tx *sql.Tx) store.LedgerStore {
	return NewPostgresLedgerStore(tx, s.logger)
}

func (s *PostgresLedgerStore) insertEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	query := `
		INSERT INTO point_ledger (id, user_id, tx_type, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query, entry.ID, entry.UserID, entry.Type, entry.Amount, entry.CreatedAt)
	return err
}

// ApplyDelta implements store.LedgerStore.ApplyDelta
// The delta is unchecked: debits may push the balance negative.
func (s *PostgresLedgerStore) ApplyDelta(ctx context.Context, userID uuid.UUID, amount int64, txType domain.TransactionType) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entry, err := domain.NewLedgerEntry(userID, txType, amount)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(
		ctx,
		`UPDATE users SET points = points + $1, updated_at = NOW() WHERE id = $2`,
		amount,
		userID,
	)
	if err != nil {
		log.Error("failed to apply point delta",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrUserNotFound
	}

	if err := s.insertEntry(ctx, entry); err != nil {
		log.Error("failed to append ledger entry",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("tx_type", string(txType)))
		return err
	}

	log.Debug("point delta applied",
		slog.String("user_id", userID.String()),
		slog.String("tx_type", string(txType)),
		slog.Int64("amount", amount))
	return nil
}

// ApplyCheckedDebit implements store.LedgerStore.ApplyCheckedDebit
// The conditional UPDATE only matches when the balance covers the cost, so
// the floor check and the debit are one atomic statement.
func (s *PostgresLedgerStore) ApplyCheckedDebit(ctx context.Context, userID uuid.UUID, cost int64, txType domain.TransactionType) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if cost <= 0 {
		return domain.ErrLedgerZeroAmount
	}

	entry, err := domain.NewLedgerEntry(userID, txType, -cost)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(
		ctx,
		`UPDATE users SET points = points - $1, updated_at = NOW() WHERE id = $2 AND points >= $1`,
		cost,
		userID,
	)
	if err != nil {
		log.Error("failed to apply checked debit",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Either the user is missing or the balance is short. Tell them apart
		// so callers can surface the right error.
		var exists bool
		if err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return store.ErrUserNotFound
		}
		log.Info("checked debit refused",
			slog.String("user_id", userID.String()),
			slog.String("tx_type", string(txType)),
			slog.Int64("cost", cost))
		return store.ErrInsufficientPoints
	}

	if err := s.insertEntry(ctx, entry); err != nil {
		log.Error("failed to append ledger entry",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("tx_type", string(txType)))
		return err
	}

	log.Debug("checked debit applied",
		slog.String("user_id", userID.String()),
		slog.String("tx_type", string(txType)),
		slog.Int64("cost", cost))
	return nil
}

// GetBalance implements store.LedgerStore.GetBalance
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresLedgerStore) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance int64
	err := s.db.QueryRowContext(ctx, `SELECT points FROM users WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, store.ErrUserNotFound
		}
		return 0, err
	}
	return balance, nil
}

const ledgerColumns = `id, user_id, tx_type, amount, created_at`

func scanLedgerRow(scan func(dest ...any) error) (*domain.LedgerEntry, error) {
	var entry domain.LedgerEntry
	var txType string
	err := scan(&entry.ID, &entry.UserID, &txType, &entry.Amount, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}
	entry.Type = domain.TransactionType(txType)
	return &entry, nil
}

// ListByUser implements store.LedgerStore.ListByUser
func (s *PostgresLedgerStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM point_ledger
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		entry, err := scanLedgerRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ListRecent implements store.LedgerStore.ListRecent
func (s *PostgresLedgerStore) ListRecent(ctx context.Context, limit int) ([]*store.LedgerActivity, error) {
	query := `
		SELECT l.id, l.user_id, l.tx_type, l.amount, l.created_at, u.name
		FROM point_ledger l
		JOIN users u ON u.id = l.user_id
		ORDER BY l.created_at DESC, l.id
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var activities []*store.LedgerActivity
	for rows.Next() {
		var entry domain.LedgerEntry
		var txType string
		var act store.LedgerActivity
		err := rows.Scan(&entry.ID, &entry.UserID, &txType, &entry.Amount, &entry.CreatedAt, &act.UserName)
		if err != nil {
			return nil, err
		}
		entry.Type = domain.TransactionType(txType)
		act.Entry = &entry
		activities = append(activities, &act)
	}
	return activities, rows.Err()
}
