package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// migrationsDir is the path to the goose migration files, relative to the
// working directory the server is launched from.
const migrationsDir = "migrations"

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

// runMigrations executes the given goose command against the database.
func runMigrations(db *sql.DB, command string) error {
	goose.SetLogger(&slogGooseLogger{})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	slog.Info("Executing migrations", "command", command, "dir", migrationsDir)

	var err error
	switch command {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	case "reset":
		err = goose.Reset(db, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command: %q", command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	slog.Info("Migrations completed", "command", command)
	return nil
}
