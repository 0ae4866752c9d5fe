// Package config loads server settings from RPG_INITIATIVE_* environment
// variables. Command-line flags override individual fields.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-initiative/internal/errors"
)

// Config holds every setting the server command needs
type Config struct {
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`
	GRPCPort int `env:"GRPC_PORT" envDefault:"50051"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`
	RedisTLS  bool   `env:"REDIS_TLS" envDefault:"false"`

	SQLitePath string `env:"SQLITE_PATH" envDefault:"campaign.db"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// JWTSecret enables bearer-token checks on the HTTP API when set
	JWTSecret string `env:"JWT_SECRET"`

	OTELEndpoint string `env:"OTEL_ENDPOINT"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Load parses the environment into a Config
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "RPG_INITIATIVE_"}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings that have no safe default
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.HTTPPort <= 0 {
		vb.Field("HTTPPort", "must be positive")
	}
	if c.GRPCPort <= 0 {
		vb.Field("GRPCPort", "must be positive")
	}
	errors.ValidateRequired("RedisAddr", c.RedisAddr, vb)
	errors.ValidateRequired("SQLitePath", c.SQLitePath, vb)
	errors.ValidateEnum("LogLevel", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("LogFormat", strings.ToLower(c.LogFormat), []string{"text", "json"}, vb)

	return vb.Build()
}

// Logger builds the process logger described by LogLevel and LogFormat
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
