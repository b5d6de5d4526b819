package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewLedgerEntry(t *testing.T) {
	userID := uuid.New()

	entry, err := NewLedgerEntry(userID, TxQuizReward, 100)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if entry.Amount != 100 {
		t.Errorf("Expected amount 100, got %d", entry.Amount)
	}
	if entry.Type != TxQuizReward {
		t.Errorf("Expected type %s, got %s", TxQuizReward, entry.Type)
	}

	// Debits stay signed; the ledger never stores magnitudes.
	debit, err := NewLedgerEntry(userID, TxForcePass, -300)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if debit.Amount != -300 {
		t.Errorf("Expected amount -300, got %d", debit.Amount)
	}

	if _, err := NewLedgerEntry(uuid.Nil, TxQuizReward, 100); err != ErrLedgerUserEmpty {
		t.Errorf("Expected error %v, got %v", ErrLedgerUserEmpty, err)
	}
	if _, err := NewLedgerEntry(userID, TxQuizReward, 0); err != ErrLedgerZeroAmount {
		t.Errorf("Expected error %v, got %v", ErrLedgerZeroAmount, err)
	}
	if _, err := NewLedgerEntry(userID, TransactionType("GIFT"), 10); err != ErrInvalidTransactionType {
		t.Errorf("Expected error %v, got %v", ErrInvalidTransactionType, err)
	}
}

func TestTransactionTypeValidity(t *testing.T) {
	for _, txType := range []TransactionType{TxQuizReward, TxPenaltyStep1, TxForcePass} {
		if !txType.Valid() {
			t.Errorf("Expected type %s to be valid", txType)
		}
	}
	if TransactionType("REFUND").Valid() {
		t.Error("Expected unknown type to be invalid")
	}
}
