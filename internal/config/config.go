package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Quiz     QuizConfig     `mapstructure:"quiz" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0,ltefield=MaxOpenConns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// AuthConfig contains the settings for validating bearer tokens issued by the
// identity service.
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret" validate:"required,min=32"`
	Issuer    string        `mapstructure:"issuer"`
	ClockSkew time.Duration `mapstructure:"clock_skew" validate:"gte=0"`
}

// QuizConfig contains defaults applied by the HTTP layer when a request leaves
// a quiz parameter out.
type QuizConfig struct {
	DefaultCount      int    `mapstructure:"default_count" validate:"gte=1,lte=50"`
	DefaultFreshMode  string `mapstructure:"default_fresh_mode" validate:"oneof=tr_en_typing en_tr_typing tr_en_choice en_tr_choice"`
	DefaultReviewMode string `mapstructure:"default_review_mode" validate:"oneof=tr_en_typing en_tr_typing tr_en_choice en_tr_choice"`
	// RandomSeed makes every random draw reproducible when non-zero.
	RandomSeed uint64 `mapstructure:"random_seed"`
}
