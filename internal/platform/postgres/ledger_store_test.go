package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/store"
)

func newLedgerStore(t *testing.T) (*PostgresLedgerStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresLedgerStore(db, nil), mock
}

func TestApplyDelta_CreditsAndAppendsEntry(t *testing.T) {
	s, mock := newLedgerStore(t)
	userID := uuid.New()

	mock.ExpectExec(`UPDATE users SET points = points \+ \$1`).
		WithArgs(int64(100), userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO point_ledger`).
		WithArgs(sqlmock.AnyArg(), userID, domain.TxQuizReward, int64(100), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.ApplyDelta(context.Background(), userID, 100, domain.TxQuizReward)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyDelta_UnknownUser(t *testing.T) {
	s, mock := newLedgerStore(t)
	userID := uuid.New()

	mock.ExpectExec(`UPDATE users SET points = points \+ \$1`).
		WithArgs(int64(-50), userID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.ApplyDelta(context.Background(), userID, -50, domain.TxPenaltyStep1)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestApplyDelta_RejectsZeroAmount(t *testing.T) {
	s, _ := newLedgerStore(t)

	err := s.ApplyDelta(context.Background(), uuid.New(), 0, domain.TxQuizReward)
	assert.ErrorIs(t, err, domain.ErrLedgerZeroAmount)
}

func TestApplyCheckedDebit_Applies(t *testing.T) {
	s, mock := newLedgerStore(t)
	userID := uuid.New()

	mock.ExpectExec(`UPDATE users SET points = points - \$1, updated_at = NOW\(\) WHERE id = \$2 AND points >= \$1`).
		WithArgs(int64(300), userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO point_ledger`).
		WithArgs(sqlmock.AnyArg(), userID, domain.TxForcePass, int64(-300), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.ApplyCheckedDebit(context.Background(), userID, 300, domain.TxForcePass)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyCheckedDebit_InsufficientBalance(t *testing.T) {
	s, mock := newLedgerStore(t)
	userID := uuid.New()

	mock.ExpectExec(`UPDATE users SET points = points - \$1`).
		WithArgs(int64(300), userID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err := s.ApplyCheckedDebit(context.Background(), userID, 300, domain.TxForcePass)
	assert.ErrorIs(t, err, store.ErrInsufficientPoints)
}

func TestApplyCheckedDebit_UnknownUser(t *testing.T) {
	s, mock := newLedgerStore(t)
	userID := uuid.New()

	mock.ExpectExec(`UPDATE users SET points = points - \$1`).
		WithArgs(int64(300), userID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := s.ApplyCheckedDebit(context.Background(), userID, 300, domain.TxForcePass)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestApplyCheckedDebit_RejectsNonPositiveCost(t *testing.T) {
	s, _ := newLedgerStore(t)

	err := s.ApplyCheckedDebit(context.Background(), uuid.New(), 0, domain.TxForcePass)
	assert.ErrorIs(t, err, domain.ErrLedgerZeroAmount)

	err = s.ApplyCheckedDebit(context.Background(), uuid.New(), -10, domain.TxForcePass)
	assert.ErrorIs(t, err, domain.ErrLedgerZeroAmount)
}

func TestGetBalance(t *testing.T) {
	s, mock := newLedgerStore(t)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT points FROM users WHERE id = \$1`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(int64(250)))

	balance, err := s.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(250), balance)
}

func TestGetBalance_UnknownUser(t *testing.T) {
	s, mock := newLedgerStore(t)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT points FROM users WHERE id = \$1`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"points"}))

	_, err := s.GetBalance(context.Background(), userID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
