package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. WORDSPRINT_DATABASE_URL for database.url.
const EnvPrefix = "WORDSPRINT"

// Load reads configuration from defaults, an optional config file, and
// environment variables, in increasing order of precedence, then validates
// the result. When configFile is empty, a config.yaml in the working
// directory is used if present.
func Load(configFile string) (*Config, error) {
	cfg, err := read(configFile)
	if err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadDatabase loads configuration like Load but validates only the database
// section. Commands that never serve HTTP traffic use it so they do not
// require auth settings.
func LoadDatabase(configFile string) (*DatabaseConfig, error) {
	cfg, err := read(configFile)
	if err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg.Database); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	return &cfg.Database, nil
}

func read(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal, including keys without a meaningful default.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.clock_skew", "30s")

	v.SetDefault("quiz.default_count", 10)
	v.SetDefault("quiz.default_fresh_mode", "tr_en_typing")
	v.SetDefault("quiz.default_review_mode", "en_tr_typing")
	v.SetDefault("quiz.random_seed", 0)
}
