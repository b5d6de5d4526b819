package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/SonJH7/Pium/internal/domain"
	"github.com/SonJH7/Pium/internal/platform/logger"
	"github.com/SonJH7/Pium/internal/store"
)

// PostgresGameConfigStore implements the store.GameConfigStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGameConfigStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGameConfigStore creates a new PostgreSQL implementation of the
// GameConfigStore interface. If logger is nil, a default logger will be used.
func NewPostgresGameConfigStore(db store.DBTX, logger *slog.Logger) *PostgresGameConfigStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresGameConfigStore{
		db:     db,
		logger: logger.With(slog.String("component", "game_config_store")),
	}
}

// Ensure PostgresGameConfigStore implements store.GameConfigStore interface
var _ store.GameConfigStore = (*PostgresGameConfigStore)(nil)

// WithTx returns a new GameConfigStore that runs against the given
// transaction.
func (s *PostgresGameConfigStore) WithTx(tx *sql.Tx) store.GameConfigStore {
	return NewPostgresGameConfigStore(tx, s.logger)
}

// GetInt64 implements store.GameConfigStore.GetInt64
// Returns store.ErrConfigKeyNotFound if the key is absent.
func (s *PostgresGameConfigStore) GetInt64(ctx context.Context, key string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var value int64
	err := s.db.QueryRowContext(ctx, `SELECT value FROM game_config WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("config key missing", slog.String("key", key))
			return 0, store.ErrConfigKeyNotFound
		}
		log.Error("failed to read config key",
			slog.String("error", err.Error()),
			slog.String("key", key))
		return 0, err
	}
	return value, nil
}

// Set implements store.GameConfigStore.Set
func (s *PostgresGameConfigStore) Set(ctx context.Context, key string, value int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO game_config (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		log.Error("failed to set config key",
			slog.String("error", err.Error()),
			slog.String("key", key))
		return err
	}

	log.Info("config key updated",
		slog.String("key", key),
		slog.Int64("value", value))
	return nil
}

// All implements store.GameConfigStore.All
func (s *PostgresGameConfigStore) All(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM game_config ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	values := make(map[string]int64)
	for rows.Next() {
		var key string
		var value int64
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, rows.Err()
}

// EnsureDefaults implements store.GameConfigStore.EnsureDefaults
// Seeds the known keys where absent; existing values win.
func (s *PostgresGameConfigStore) EnsureDefaults(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	defaults := map[string]int64{
		domain.ConfigKeyQuizReward: domain.DefaultQuizReward,
		domain.ConfigKeyReviveCost: domain.DefaultReviveCost,
	}

	query := `
		INSERT INTO game_config (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO NOTHING
	`
	for key, value := range defaults {
		if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
			log.Error("failed to seed config default",
				slog.String("error", err.Error()),
				slog.String("key", key))
			return err
		}
	}

	log.Debug("config defaults ensured")
	return nil
}
