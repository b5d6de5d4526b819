package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/service/auth"
	"github.com/SonJH7/Pium/internal/store"
	"github.com/google/uuid"
)

// historyLimit caps the ledger entries returned with a profile.
const historyLimit = 50

// Profile is a user with their point history, assembled for the account
// screen.
type Profile struct {
	User    *domain.User          `json:"user"`
	History []*domain.LedgerEntry `json:"history"`
}

// UserService provides account registration, authentication and profile
// operations.
type UserService interface {
	// Register creates a new account with the default role and starting
	// balance. Returns store.ErrEmailExists if the email is taken.
	Register(ctx context.Context, email, password, name, studentID, department string) (*domain.User, error)

	// Authenticate checks an email/password pair against the store.
	// Returns ErrInvalidCredentials when either does not match.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetProfile returns the user with their recent point history.
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)

	// SubmitExpertApplication files (or, after a rejection, re-files) the
	// user's application for the expert role. Returns ErrAlreadyExpert if
	// the user already holds the surface and ErrApplicationPending if an
	// application is still under review.
	SubmitExpertApplication(ctx context.Context, userID uuid.UUID, requestText string) (*domain.ExpertApplication, error)

	// GetExpertApplication returns the user's application.
	// Returns store.ErrApplicationNotFound if none exists.
	GetExpertApplication(ctx context.Context, userID uuid.UUID) (*domain.ExpertApplication, error)
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	userStore    store.UserStore
	ledger       store.LedgerStore
	applications store.ApplicationStore
	verifier     auth.PasswordVerifier
	logger       *slog.Logger
}

// Ensure userServiceImpl implements UserService interface
var _ UserService = (*userServiceImpl)(nil)

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	userStore store.UserStore,
	ledger store.LedgerStore,
	applications store.ApplicationStore,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) (UserService, error) {
	if userStore == nil {
		return nil, fmt.Errorf("userStore cannot be nil")
	}
	if ledger == nil {
		return nil, fmt.Errorf("ledger cannot be nil")
	}
	if applications == nil {
		return nil, fmt.Errorf("applications cannot be nil")
	}
	if verifier == nil {
		return nil, fmt.Errorf("verifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		userStore:    userStore,
		ledger:       ledger,
		applications: applications,
		verifier:     verifier,
		logger:       logger.With(slog.String("component", "user_service")),
	}, nil
}

// Register implements UserService.Register
func (s *userServiceImpl) Register(ctx context.Context, email, password, name, studentID, department string) (*domain.User, error) {
	user, err := domain.NewUser(email, password, name, studentID, department)
	if err != nil {
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("user_id", user.ID.String()))
	return user, nil
}

// Authenticate implements UserService.Authenticate
func (s *userServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("password mismatch",
			slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetProfile implements UserService.GetProfile
func (s *userServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.ledger.ListByUser(ctx, userID, historyLimit)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:    user,
		History: history,
	}, nil
}

// SubmitExpertApplication implements UserService.SubmitExpertApplication
func (s *userServiceImpl) SubmitExpertApplication(ctx context.Context, userID uuid.UUID, requestText string) (*domain.ExpertApplication, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role.AtLeastExpert() {
		return nil, ErrAlreadyExpert
	}

	existing, err := s.applications.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrApplicationNotFound) {
		return nil, err
	}
	if existing != nil && existing.Status == domain.ApplicationPending {
		return nil, ErrApplicationPending
	}

	app, err := domain.NewExpertApplication(userID, requestText)
	if err != nil {
		return nil, err
	}
	if err := s.applications.Upsert(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info("expert application submitted",
		slog.String("user_id", userID.String()))
	return app, nil
}

// GetExpertApplication implements UserService.GetExpertApplication
func (s *userServiceImpl) GetExpertApplication(ctx context.Context, userID uuid.UUID) (*domain.ExpertApplication, error) {
	return s.applications.GetByUser(ctx, userID)
}
