package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
//
// Game-economy values (quiz reward, revive cost) are deliberately absent:
// they live in the game_config table and are read at decision time so that
// edits apply to in-flight games immediately.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret              string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes   int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	RefreshLifetimeMinutes int    `mapstructure:"refresh_lifetime_minutes" validate:"required,gt=0"`
}
