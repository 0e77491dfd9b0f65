// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Storage backend identifiers.
const (
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Storage    string `mapstructure:"STORAGE"`
	RedisURL   string `mapstructure:"REDIS_URL"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`
	KeyPrefix  string `mapstructure:"KEY_PREFIX"`
	BcryptCost int    `mapstructure:"BCRYPT_COST"`
	Env        string `mapstructure:"APP_ENV"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Set default values for development
	viper.SetDefault("STORAGE", StorageSQLite)
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("SQLITE_PATH", "uknow.db")
	viper.SetDefault("KEY_PREFIX", "uknow")
	viper.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	viper.SetDefault("APP_ENV", "development")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks configuration values for consistency.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageRedis, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}
	if c.KeyPrefix == "" {
		return errors.New("KEY_PREFIX must not be empty")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}
