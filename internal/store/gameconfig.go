package store

import (
	"context"
	"database/sql"
)

// GameConfigStore holds the externally mutable economy settings
// (quiz_reward, revive_cost). Values are read fresh at decision time —
// never cached — so a content manager's edit applies to in-flight games
// immediately.
type GameConfigStore interface {
	// GetInt64 returns the integer value stored under key.
	// Returns ErrConfigKeyNotFound if the key is absent; after
	// EnsureDefaults has run this cannot happen for the known keys.
	GetInt64(ctx context.Context, key string) (int64, error)

	// Set stores an integer value under key, creating the row if needed.
	Set(ctx context.Context, key string, value int64) error

	// All returns every config key and value.
	All(ctx context.Context) (map[string]int64, error)

	// EnsureDefaults seeds the known keys with their default values where
	// absent, leaving existing values untouched. Called once at startup so
	// reads are guaranteed to succeed and business logic carries no inline
	// fallback literals.
	EnsureDefaults(ctx context.Context) error

	// WithTx returns a new GameConfigStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) GameConfigStore
}
