package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr         string
	LogLevel         string
	PriceScopeGlobal bool
	Postgres         PostgresConfig
	Redis            RedisConfig
	Cache            CacheConfig
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DB       string
	SSLMode  string
}

// DSN returns the key/value connection string understood by both pgx and
// lib/pq.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DB, p.SSLMode)
}

type RedisConfig struct {
	// Addr empty disables the Redis cache tier.
	Addr     string
	Password string
	DB       int
}

type CacheConfig struct {
	// Size zero disables the in-process cache tier.
	Size int
	TTL  time.Duration
}

// Load reads envFiles (".env" when none are given) into the process
// environment and builds the configuration from it. A missing default .env
// is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env: %w", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8484")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PRICE_SCOPE_GLOBAL", false)
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "catalog")
	v.SetDefault("POSTGRES_PASSWORD", "")
	v.SetDefault("POSTGRES_DB", "catalog")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_SIZE", 1024)
	v.SetDefault("CACHE_TTL", 5*time.Minute)

	cfg := &Config{
		HTTPAddr:         v.GetString("HTTP_ADDR"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		PriceScopeGlobal: v.GetBool("PRICE_SCOPE_GLOBAL"),
		Postgres: PostgresConfig{
			Host:     v.GetString("POSTGRES_HOST"),
			Port:     v.GetInt("POSTGRES_PORT"),
			User:     v.GetString("POSTGRES_USER"),
			Password: v.GetString("POSTGRES_PASSWORD"),
			DB:       v.GetString("POSTGRES_DB"),
			SSLMode:  v.GetString("POSTGRES_SSLMODE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Size: v.GetInt("CACHE_SIZE"),
			TTL:  v.GetDuration("CACHE_TTL"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPAddr == "" {
		return errors.New("HTTP_ADDR must not be empty")
	}
	if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
		return fmt.Errorf("POSTGRES_PORT out of range: %d", c.Postgres.Port)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("CACHE_SIZE must not be negative: %d", c.Cache.Size)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive: %s", c.Cache.TTL)
	}
	return nil
}
