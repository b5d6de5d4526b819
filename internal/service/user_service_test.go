package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/store"
)

func newUserService(t *testing.T) (UserService, *MockUserStore, *MockLedgerStore, *MockApplicationStore, *MockPasswordVerifier) {
	t.Helper()

	users := new(MockUserStore)
	ledger := new(MockLedgerStore)
	applications := new(MockApplicationStore)
	verifier := new(MockPasswordVerifier)

	svc, err := NewUserService(users, ledger, applications, verifier, slog.Default())
	require.NoError(t, err)
	return svc, users, ledger, applications, verifier
}

func TestNewUserService_NilDependencies(t *testing.T) {
	users := new(MockUserStore)
	ledger := new(MockLedgerStore)
	applications := new(MockApplicationStore)
	verifier := new(MockPasswordVerifier)

	_, err := NewUserService(nil, ledger, applications, verifier, slog.Default())
	assert.Error(t, err)

	_, err = NewUserService(users, nil, applications, verifier, slog.Default())
	assert.Error(t, err)

	_, err = NewUserService(users, ledger, nil, verifier, slog.Default())
	assert.Error(t, err)

	_, err = NewUserService(users, ledger, applications, nil, slog.Default())
	assert.Error(t, err)

	// A nil logger is tolerated.
	_, err = NewUserService(users, ledger, applications, verifier, nil)
	assert.NoError(t, err)
}

func TestRegister_CreatesDefaultAccount(t *testing.T) {
	svc, users, _, _, _ := newUserService(t)

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "mina@example.com" && u.Role == domain.RoleUser && u.Points == domain.StartingPoints
	})).Return(nil)

	user, err := svc.Register(context.Background(), "mina@example.com", "password123", "Mina", "20231234", "Horticulture")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, domain.StartingPoints, user.Points)
	users.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, users, _, _, _ := newUserService(t)

	users.On("Create", mock.Anything, mock.Anything).Return(store.ErrEmailExists)

	_, err := svc.Register(context.Background(), "taken@example.com", "password123", "Mina", "", "")
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestRegister_InvalidInput(t *testing.T) {
	svc, users, _, _, _ := newUserService(t)

	_, err := svc.Register(context.Background(), "mina@example.com", "short", "Mina", "", "")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthenticate_Succeeds(t *testing.T) {
	svc, users, _, _, verifier := newUserService(t)
	stored := &domain.User{
		ID:             uuid.New(),
		Email:          "mina@example.com",
		HashedPassword: "hashed",
		Name:           "Mina",
		Role:           domain.RoleUser,
	}

	users.On("GetByEmail", mock.Anything, "mina@example.com").Return(stored, nil)
	verifier.On("Compare", "hashed", "password123").Return(nil)

	user, err := svc.Authenticate(context.Background(), "mina@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	svc, users, _, _, _ := newUserService(t)

	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, store.ErrUserNotFound)

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc, users, _, _, verifier := newUserService(t)
	stored := &domain.User{ID: uuid.New(), Email: "mina@example.com", HashedPassword: "hashed"}

	users.On("GetByEmail", mock.Anything, "mina@example.com").Return(stored, nil)
	verifier.On("Compare", "hashed", "wrong").Return(errors.New("mismatch"))

	_, err := svc.Authenticate(context.Background(), "mina@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_StoreFailurePassesThrough(t *testing.T) {
	svc, users, _, _, _ := newUserService(t)
	storeErr := errors.New("connection reset")

	users.On("GetByEmail", mock.Anything, "mina@example.com").Return(nil, storeErr)

	_, err := svc.Authenticate(context.Background(), "mina@example.com", "password123")
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetProfile_IncludesHistory(t *testing.T) {
	svc, users, ledger, _, _ := newUserService(t)
	userID := uuid.New()
	stored := &domain.User{ID: userID, Email: "mina@example.com", Name: "Mina", Points: 750}
	history := []*domain.LedgerEntry{
		{ID: uuid.New(), UserID: userID, Type: domain.TxQuizReward, Amount: 100},
		{ID: uuid.New(), UserID: userID, Type: domain.TxForcePass, Amount: -300},
	}

	users.On("GetByID", mock.Anything, userID).Return(stored, nil)
	ledger.On("ListByUser", mock.Anything, userID, historyLimit).Return(history, nil)

	profile, err := svc.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, stored, profile.User)
	assert.Len(t, profile.History, 2)
}

func TestGetProfile_UnknownUser(t *testing.T) {
	svc, users, _, _, _ := newUserService(t)
	userID := uuid.New()

	users.On("GetByID", mock.Anything, userID).Return(nil, store.ErrUserNotFound)

	_, err := svc.GetProfile(context.Background(), userID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestSubmitExpertApplication_FilesPending(t *testing.T) {
	svc, users, _, applications, _ := newUserService(t)
	userID := uuid.New()

	users.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID, Role: domain.RoleUser}, nil)
	applications.On("GetByUser", mock.Anything, userID).Return(nil, store.ErrApplicationNotFound)
	applications.On("Upsert", mock.Anything, mock.MatchedBy(func(a *domain.ExpertApplication) bool {
		return a.UserID == userID && a.Status == domain.ApplicationPending
	})).Return(nil)

	app, err := svc.SubmitExpertApplication(context.Background(), userID, "I run a campus greenhouse.")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationPending, app.Status)
}

func TestSubmitExpertApplication_RefilesAfterRejection(t *testing.T) {
	svc, users, _, applications, _ := newUserService(t)
	userID := uuid.New()
	decided := time.Now().UTC()
	rejected := &domain.ExpertApplication{
		UserID:    userID,
		Status:    domain.ApplicationRejected,
		DecidedAt: &decided,
	}

	users.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID, Role: domain.RoleUser}, nil)
	applications.On("GetByUser", mock.Anything, userID).Return(rejected, nil)
	applications.On("Upsert", mock.Anything, mock.MatchedBy(func(a *domain.ExpertApplication) bool {
		return a.Status == domain.ApplicationPending
	})).Return(nil)

	app, err := svc.SubmitExpertApplication(context.Background(), userID, "Second attempt, now with credentials.")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationPending, app.Status)
}

func TestSubmitExpertApplication_AlreadyExpert(t *testing.T) {
	svc, users, _, applications, _ := newUserService(t)
	userID := uuid.New()

	users.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID, Role: domain.RoleExpert}, nil)

	_, err := svc.SubmitExpertApplication(context.Background(), userID, "again")
	assert.ErrorIs(t, err, ErrAlreadyExpert)
	applications.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSubmitExpertApplication_StillPending(t *testing.T) {
	svc, users, _, applications, _ := newUserService(t)
	userID := uuid.New()
	pending := &domain.ExpertApplication{UserID: userID, Status: domain.ApplicationPending}

	users.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID, Role: domain.RoleUser}, nil)
	applications.On("GetByUser", mock.Anything, userID).Return(pending, nil)

	_, err := svc.SubmitExpertApplication(context.Background(), userID, "impatient")
	assert.ErrorIs(t, err, ErrApplicationPending)
	applications.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestGetExpertApplication_NotFound(t *testing.T) {
	svc, _, _, applications, _ := newUserService(t)
	userID := uuid.New()

	applications.On("GetByUser", mock.Anything, userID).Return(nil, store.ErrApplicationNotFound)

	_, err := svc.GetExpertApplication(context.Background(), userID)
	assert.ErrorIs(t, err, store.ErrApplicationNotFound)
}
