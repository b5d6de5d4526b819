package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Ledger validation errors
var (
	ErrLedgerIDEmpty    = errors.New("ledger entry ID cannot be empty")
	ErrLedgerUserEmpty  = errors.New("ledger entry user ID cannot be empty")
	ErrLedgerZeroAmount = errors.New("ledger entry amount cannot be zero")
)

// TransactionType tags a ledger entry with the event that caused it.
type TransactionType string

const (
	// TxQuizReward credits the configured reward for a correct answer.
	TxQuizReward TransactionType = "QUIZ_REWARD"

	// TxPenaltyStep1 debits the fixed penalty for a wrong answer on the
	// first step. This debit is unchecked: the balance may go negative.
	TxPenaltyStep1 TransactionType = "PENALTY_STEP1"

	// TxForcePass debits the configured revive cost for a paid rescue.
	TxForcePass TransactionType = "FORCE_PASS"
)

// Valid reports whether the transaction type is recognized.
func (t TransactionType) Valid() bool {
	switch t {
	case TxQuizReward, TxPenaltyStep1, TxForcePass:
		return true
	default:
		return false
	}
}

// Step1Penalty is the fixed debit for a wrong answer on the first step.
// Unlike the reward and revive cost it is not configurable.
const Step1Penalty int64 = 50

// Economy configuration keys stored in game_config. Values are read at
// decision time on every growth-engine operation so edits apply to
// in-flight games immediately.
const (
	ConfigKeyQuizReward = "quiz_reward"
	ConfigKeyReviveCost = "revive_cost"
)

// Defaults seeded into game_config at startup. Reads are guaranteed to
// succeed afterwards, so business logic never falls back to inline
// literals.
const (
	DefaultQuizReward int64 = 100
	DefaultReviveCost int64 = 300
)

// LedgerEntry mirrors one signed point-balance delta. Entries are
// append-only: every balance mutation writes exactly one entry and no
// entry exists without a mutation.
type LedgerEntry struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Type      TransactionType `json:"type"`
	Amount    int64           `json:"amount"` // signed: credits positive, debits negative
	CreatedAt time.Time       `json:"created_at"`
}

// NewLedgerEntry creates a ledger entry for a signed delta.
func NewLedgerEntry(userID uuid.UUID, txType TransactionType, amount int64) (*LedgerEntry, error) {
	e := &LedgerEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      txType,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}

// Validate checks if the LedgerEntry has valid data.
func (e *LedgerEntry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrLedgerIDEmpty
	}
	if e.UserID == uuid.Nil {
		return ErrLedgerUserEmpty
	}
	if !e.Type.Valid() {
		return ErrInvalidTransactionType
	}
	if e.Amount == 0 {
		return ErrLedgerZeroAmount
	}
	return nil
}
