package store

import (
	"context"
	"database/sql"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/google/uuid"
)

// LedgerActivity pairs a ledger entry with the user's name for the admin
// dashboard's recent-transactions view.
type LedgerActivity struct {
	Entry    *domain.LedgerEntry
	UserName string
}

// LedgerStore owns the point economy's write path: every balance mutation
// goes through it and is mirrored into exactly one append-only ledger
// entry within the same statement sequence. No other code path touches the
// points column.
type LedgerStore interface {
	// ApplyDelta applies a signed delta to the user's balance and appends
	// the matching ledger entry. The delta is unchecked: debits may push
	// the balance negative (the step-1 penalty relies on this).
	// Returns ErrUserNotFound if the user does not exist.
	ApplyDelta(ctx context.Context, userID uuid.UUID, amount int64, txType domain.TransactionType) error

	// ApplyCheckedDebit debits cost from the user's balance only when the
	// balance covers it, and appends the matching ledger entry. cost must
	// be positive. Returns ErrInsufficientPoints when the balance is below
	// cost, leaving balance and ledger untouched.
	// Returns ErrUserNotFound if the user does not exist.
	ApplyCheckedDebit(ctx context.Context, userID uuid.UUID, cost int64, txType domain.TransactionType) error

	// GetBalance returns the user's current point balance.
	// Returns ErrUserNotFound if the user does not exist.
	GetBalance(ctx context.Context, userID uuid.UUID) (int64, error)

	// ListByUser returns the user's ledger entries, newest first, up to
	// limit rows.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.LedgerEntry, error)

	// ListRecent returns the most recent ledger entries across all users
	// with user names attached, newest first, up to limit rows.
	ListRecent(ctx context.Context, limit int) ([]*LedgerActivity, error)

	// WithTx returns a new LedgerStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) LedgerStore
}
