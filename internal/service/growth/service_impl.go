package growth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/store"
	"github.com/google/uuid"
)

// growthServiceImpl implements the GrowthService interface.
type growthServiceImpl struct {
	db         *sql.DB
	plantStore store.PlantStore
	catalog    store.CatalogStore
	ledger     store.LedgerStore
	gameConfig store.GameConfigStore
	logger     *slog.Logger
}

// Ensure growthServiceImpl implements GrowthService interface
var _ GrowthService = (*growthServiceImpl)(nil)

// NewGrowthService creates a new GrowthService.
// It returns an error if any of the required dependencies are nil.
func NewGrowthService(
	db *sql.DB,
	plantStore store.PlantStore,
	catalog store.CatalogStore,
	ledger store.LedgerStore,
	gameConfig store.GameConfigStore,
	logger *slog.Logger,
) (GrowthService, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if plantStore == nil {
		return nil, fmt.Errorf("plantStore cannot be nil")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}
	if ledger == nil {
		return nil, fmt.Errorf("ledger cannot be nil")
	}
	if gameConfig == nil {
		return nil, fmt.Errorf("gameConfig cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &growthServiceImpl{
		db:         db,
		plantStore: plantStore,
		catalog:    catalog,
		ledger:     ledger,
		gameConfig: gameConfig,
		logger:     logger.With(slog.String("component", "growth_service")),
	}, nil
}

// expected is the set of errors the engine returns deliberately. Anything
// outside it gets wrapped as a persistence failure so handlers never leak
// raw storage errors.
func isExpected(err error) bool {
	return errors.Is(err, ErrContentMissing) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrChoicePending) ||
		errors.Is(err, ErrNotAtRisk) ||
		errors.Is(err, ErrAlreadyCompleted) ||
		errors.Is(err, ErrPlantNotOwned) ||
		errors.Is(err, store.ErrPlantNotFound)
}

func wrapUnexpected(err error) error {
	if err == nil || isExpected(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

// lockOwnedPlant loads the plant instance under a row lock and verifies
// ownership.
func lockOwnedPlant(ctx context.Context, plants store.PlantStore, userID, plantID uuid.UUID) (*domain.PlantInstance, error) {
	plant, err := plants.GetForUpdate(ctx, plantID)
	if err != nil {
		return nil, err
	}
	if plant.UserID != userID {
		return nil, ErrPlantNotOwned
	}
	return plant, nil
}

// SubmitAnswer implements GrowthService.SubmitAnswer
func (s *growthServiceImpl) SubmitAnswer(ctx context.Context, userID, plantID uuid.UUID, answer bool) (*SubmitResult, error) {
	var result *SubmitResult

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		plants := s.plantStore.WithTx(tx)
		catalog := s.catalog.WithTx(tx)
		ledger := s.ledger.WithTx(tx)
		gameConfig := s.gameConfig.WithTx(tx)

		plant, err := lockOwnedPlant(ctx, plants, userID, plantID)
		if err != nil {
			return err
		}

		switch plant.State {
		case domain.GrowthCompleted:
			return ErrAlreadyCompleted
		case domain.GrowthAtRisk:
			return ErrChoicePending
		}

		step, err := catalog.GetStepAt(ctx, plant.SpeciesID, plant.CurrentStep)
		if err != nil {
			if errors.Is(err, store.ErrStepNotFound) {
				return ErrContentMissing
			}
			return err
		}

		correct := answer == step.CorrectAnswer

		attempt, err := domain.NewAttemptRecord(plant.ID, step.ID, correct, false)
		if err != nil {
			return err
		}
		if err := plants.CreateAttempt(ctx, attempt); err != nil {
			return err
		}

		var delta int64
		if correct {
			// Reward is read fresh inside the transaction so config edits
			// apply to in-flight games immediately.
			reward, err := gameConfig.GetInt64(ctx, domain.ConfigKeyQuizReward)
			if err != nil {
				return err
			}
			if err := ledger.ApplyDelta(ctx, userID, reward, domain.TxQuizReward); err != nil {
				return err
			}
			delta = reward

			// The completion bar is the live max step, computed in the same
			// transaction as the advance so catalog edits count.
			maxStep, err := catalog.MaxStep(ctx, plant.SpeciesID)
			if err != nil {
				return err
			}
			if plant.CurrentStep >= maxStep {
				plant.State = domain.GrowthCompleted
			} else {
				plant.CurrentStep++
			}
			if err := plants.UpdateProgress(ctx, plant); err != nil {
				return err
			}
		} else if plant.CurrentStep == 1 {
			// First-step failures cost a fixed penalty instead of risking
			// the plant. The debit is unchecked: the balance may go
			// negative.
			if err := ledger.ApplyDelta(ctx, userID, -domain.Step1Penalty, domain.TxPenaltyStep1); err != nil {
				return err
			}
			delta = -domain.Step1Penalty
		} else {
			plant.State = domain.GrowthAtRisk
			if err := plants.UpdateProgress(ctx, plant); err != nil {
				return err
			}
		}

		balance, err := ledger.GetBalance(ctx, userID)
		if err != nil {
			return err
		}

		result = &SubmitResult{
			Correct:     correct,
			Explanation: step.Explanation,
			PointsDelta: delta,
			State:       plant.State,
			CurrentStep: plant.CurrentStep,
			Completed:   plant.Completed(),
			Balance:     balance,
		}
		return nil
	})
	if err != nil {
		return nil, wrapUnexpected(err)
	}

	s.logger.Info("answer submitted",
		slog.String("plant_id", plantID.String()),
		slog.Bool("correct", result.Correct),
		slog.String("state", string(result.State)),
		slog.Int("current_step", result.CurrentStep))
	return result, nil
}

// PayToPass implements GrowthService.PayToPass
func (s *growthServiceImpl) PayToPass(ctx context.Context, userID, plantID uuid.UUID) (*RecoveryResult, error) {
	var result *RecoveryResult

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		plants := s.plantStore.WithTx(tx)
		catalog := s.catalog.WithTx(tx)
		ledger := s.ledger.WithTx(tx)
		gameConfig := s.gameConfig.WithTx(tx)

		plant, err := lockOwnedPlant(ctx, plants, userID, plantID)
		if err != nil {
			return err
		}

		if plant.State == domain.GrowthCompleted {
			return ErrAlreadyCompleted
		}
		if plant.State != domain.GrowthAtRisk {
			return ErrNotAtRisk
		}

		step, err := catalog.GetStepAt(ctx, plant.SpeciesID, plant.CurrentStep)
		if err != nil {
			if errors.Is(err, store.ErrStepNotFound) {
				return ErrContentMissing
			}
			return err
		}

		cost, err := gameConfig.GetInt64(ctx, domain.ConfigKeyReviveCost)
		if err != nil {
			return err
		}

		// The checked debit enforces the balance floor atomically. On
		// refusal nothing has been written and the instance stays at risk.
		if err := ledger.ApplyCheckedDebit(ctx, userID, cost, domain.TxForcePass); err != nil {
			if errors.Is(err, store.ErrInsufficientPoints) {
				return ErrInsufficientFunds
			}
			return err
		}

		attempt, err := domain.NewAttemptRecord(plant.ID, step.ID, false, true)
		if err != nil {
			return err
		}
		if err := plants.CreateAttempt(ctx, attempt); err != nil {
			return err
		}

		maxStep, err := catalog.MaxStep(ctx, plant.SpeciesID)
		if err != nil {
			return err
		}
		if plant.CurrentStep >= maxStep {
			plant.State = domain.GrowthCompleted
		} else {
			plant.CurrentStep++
			plant.State = domain.GrowthInProgress
		}
		if err := plants.UpdateProgress(ctx, plant); err != nil {
			return err
		}

		balance, err := ledger.GetBalance(ctx, userID)
		if err != nil {
			return err
		}

		result = &RecoveryResult{
			PointsDelta: -cost,
			State:       plant.State,
			CurrentStep: plant.CurrentStep,
			Completed:   plant.Completed(),
			Balance:     balance,
		}
		return nil
	})
	if err != nil {
		return nil, wrapUnexpected(err)
	}

	s.logger.Info("paid rescue applied",
		slog.String("plant_id", plantID.String()),
		slog.Int64("cost", -result.PointsDelta),
		slog.String("state", string(result.State)))
	return result, nil
}

// ResetToStart implements GrowthService.ResetToStart
func (s *growthServiceImpl) ResetToStart(ctx context.Context, userID, plantID uuid.UUID) (*RecoveryResult, error) {
	var result *RecoveryResult

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		plants := s.plantStore.WithTx(tx)
		catalog := s.catalog.WithTx(tx)
		ledger := s.ledger.WithTx(tx)

		plant, err := lockOwnedPlant(ctx, plants, userID, plantID)
		if err != nil {
			return err
		}

		if plant.State == domain.GrowthCompleted {
			return ErrAlreadyCompleted
		}
		if plant.State != domain.GrowthAtRisk {
			return ErrNotAtRisk
		}

		// A reset must stay possible even when the catalog lost the step
		// the plant was stuck on, so the attempt record is best effort.
		step, err := catalog.GetStepAt(ctx, plant.SpeciesID, plant.CurrentStep)
		if err != nil && !errors.Is(err, store.ErrStepNotFound) {
			return err
		}
		if step != nil {
			attempt, err := domain.NewAttemptRecord(plant.ID, step.ID, false, false)
			if err != nil {
				return err
			}
			if err := plants.CreateAttempt(ctx, attempt); err != nil {
				return err
			}
		}

		plant.CurrentStep = 1
		plant.State = domain.GrowthInProgress
		if err := plants.UpdateProgress(ctx, plant); err != nil {
			return err
		}

		balance, err := ledger.GetBalance(ctx, userID)
		if err != nil {
			return err
		}

		result = &RecoveryResult{
			PointsDelta: 0,
			State:       plant.State,
			CurrentStep: plant.CurrentStep,
			Completed:   false,
			Balance:     balance,
		}
		return nil
	})
	if err != nil {
		return nil, wrapUnexpected(err)
	}

	s.logger.Info("instance reset to start",
		slog.String("plant_id", plantID.String()))
	return result, nil
}

// GetInstance implements GrowthService.GetInstance
func (s *growthServiceImpl) GetInstance(ctx context.Context, userID, plantID uuid.UUID) (*InstanceView, error) {
	plant, err := s.plantStore.GetByID(ctx, plantID)
	if err != nil {
		return nil, wrapUnexpected(err)
	}
	if plant.UserID != userID {
		return nil, ErrPlantNotOwned
	}

	maxStep, err := s.catalog.MaxStep(ctx, plant.SpeciesID)
	if err != nil {
		return nil, wrapUnexpected(err)
	}

	balance, err := s.ledger.GetBalance(ctx, userID)
	if err != nil {
		return nil, wrapUnexpected(err)
	}

	view := &InstanceView{
		Instance: plant,
		MaxStep:  maxStep,
		Balance:  balance,
	}

	if plant.Completed() {
		return view, nil
	}

	step, err := s.catalog.GetStepAt(ctx, plant.SpeciesID, plant.CurrentStep)
	if err != nil {
		if errors.Is(err, store.ErrStepNotFound) {
			return nil, ErrContentMissing
		}
		return nil, wrapUnexpected(err)
	}

	view.Step = &StepView{
		ID:        step.ID,
		StepOrder: step.StepOrder,
		StageName: step.StageName,
		Question:  step.Question,
	}
	return view, nil
}
