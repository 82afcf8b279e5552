package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port string `env:"PORT" envDefault:"8080" validate:"required"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	// The two secrets sign distinct token classes and must never be equal,
	// otherwise a refresh token would pass access-token verification.
	JWTAccessSecret  string        `env:"JWT_ACCESS_SECRET,required"  validate:"required,min=32"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET,required" validate:"required,min=32,nefield=JWTAccessSecret"`
	JWTAccessTTL     time.Duration `env:"JWT_ACCESS_TTL" envDefault:"24h"`
	JWTRefreshTTL    time.Duration `env:"JWT_REFRESH_TTL" envDefault:"168h"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"12" validate:"min=4,max=31"`

	ReminderCron string `env:"REMINDER_CRON" envDefault:"0 8 * * *" validate:"required"`
	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
