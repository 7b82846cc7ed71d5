package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

type Config struct {
	PostgresDSN           string `env:"POSTGRES_DSN"`
	PostgresMigrationsDir string `env:"POSTGRES_MIGRATIONS_DIR" envDefault:"migrations/postgres"`
	DBPath                string `env:"DB_PATH"`
	DBMigrationsDir       string `env:"DB_MIGRATIONS_DIR" envDefault:"migrations/sqlite"`

	HTTPAddr         string `env:"HTTP_ADDR" envDefault:":8080"`
	OrganizerPINHash string `env:"ORGANIZER_PIN_HASH"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	CollationLocale  string `env:"COLLATION_LOCALE" envDefault:"en"`

	LambdaFunction string `env:"AWS_LAMBDA_FUNCTION_NAME"`
}

// OnLambda reports whether the process runs inside AWS Lambda.
func (c Config) OnLambda() bool {
	return c.LambdaFunction != ""
}

func (c Config) Locale() language.Tag {
	tag, err := language.Parse(c.CollationLocale)
	if err != nil {
		return language.English
	}
	return tag
}

func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Load reads .env files outside Lambda and then parses the environment.
func Load() (Config, error) {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") == "" {
		_ = godotenv.Load(".env", ".env.local")
	}
	return Parse()
}

func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)
	cfg.DBPath = strings.TrimSpace(cfg.DBPath)
	cfg.OrganizerPINHash = strings.TrimSpace(cfg.OrganizerPINHash)
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return Config{}, errors.New("HTTP_ADDR must not be empty")
	}
	if _, err := language.Parse(cfg.CollationLocale); err != nil {
		return Config{}, fmt.Errorf("COLLATION_LOCALE %q: %w", cfg.CollationLocale, err)
	}
	return cfg, nil
}
