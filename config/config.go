package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	defaultJWTSecret = "your-secret-key-change-this-in-production"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string
	Storage  string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	JWTSecret []byte

	CacheTTL     time.Duration
	CacheMaxCost int64

	ReconcileSchedule string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE", StoragePostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "blog")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("CACHE_MAX_COST", 10000)
	v.SetDefault("RECONCILE_SCHEDULE", "@every 60m")

	cfg := &Config{
		Port:              v.GetString("PORT"),
		Env:               v.GetString("APP_ENV"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		Storage:           v.GetString("STORAGE"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		DBHost:            v.GetString("DB_HOST"),
		DBPort:            v.GetString("DB_PORT"),
		DBUser:            v.GetString("DB_USER"),
		DBPassword:        v.GetString("DB_PASSWORD"),
		DBName:            v.GetString("DB_NAME"),
		DBSSLMode:         v.GetString("DB_SSLMODE"),
		JWTSecret:         []byte(v.GetString("JWT_SECRET")),
		CacheTTL:          v.GetDuration("CACHE_TTL"),
		CacheMaxCost:      v.GetInt64("CACHE_MAX_COST"),
		ReconcileSchedule: v.GetString("RECONCILE_SCHEDULE"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.Storage != StoragePostgres && c.Storage != StorageMemory {
		return fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage)
	}
	if c.Storage == StoragePostgres && c.DatabaseURL == "" && (c.DBHost == "" || c.DBName == "") {
		return errors.New("DB_HOST and DB_NAME are required for postgres storage")
	}
	if len(c.JWTSecret) == 0 {
		return errors.New("JWT_SECRET is required")
	}
	if c.IsProduction() && string(c.JWTSecret) == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.CacheTTL < 0 {
		return errors.New("CACHE_TTL must not be negative")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from
// the DB_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
