// Package config loads server settings from the environment
package config

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/spell-cards/internal/errors"
)

// EnvPrefix is prepended to every variable name
const EnvPrefix = "SPELLCARDS_"

// Spell book backends
const (
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config holds the server settings
type Config struct {
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`
	GRPCPort int `env:"GRPC_PORT" envDefault:"50051"`

	// Store selects where the spell book lives. Drafts always use redis.
	Store   string `env:"STORE" envDefault:"redis"`
	BookKey string `env:"BOOK_KEY" envDefault:"SpellBook"`

	// RedisURL takes precedence over the address fields when set
	RedisURL      string `env:"REDIS_URL"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	SQLitePath string `env:"SQLITE_PATH" envDefault:"spellbook.db"`

	SRDEnabled bool   `env:"SRD_ENABLED" envDefault:"true"`
	SRDBaseURL string `env:"SRD_BASE_URL"`

	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the given .env files, or ./.env when none are given, and then
// parses the environment. Missing .env files are skipped.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				slog.Debug("env file not found", "file", file)
				continue
			}
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read "+file)
		}
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	return cfg, nil
}

// Validate checks the settings
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("HTTPPort", c.HTTPPort, 1, 65535, vb)
	errors.ValidateRange("GRPCPort", c.GRPCPort, 0, 65535, vb)
	errors.ValidateEnum("Store", c.Store, []string{StoreRedis, StoreSQLite}, vb)
	errors.ValidateRequired("BookKey", c.BookKey, vb)
	if c.Store == StoreSQLite {
		errors.ValidateRequired("SQLitePath", c.SQLitePath, vb)
	}
	if c.RedisURL == "" {
		errors.ValidateRequired("RedisAddr", c.RedisAddr, vb)
	}
	errors.ValidateEnum("LogLevel", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "error"}, vb)
	if c.RequestTimeout <= 0 {
		vb.Field("RequestTimeout", "must be positive")
	}

	return vb.Build()
}

// SlogLevel returns LogLevel as a slog level
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
