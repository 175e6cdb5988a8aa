// Package config reads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config holds every tunable of the server and CLI.
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE"`
	Env     string `env:"ENV" envDefault:"development"`

	GameName string `env:"GAME_NAME" envDefault:"Nerdle"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"file"`
	DataDir       string `env:"DATA_DIR" envDefault:"data/devices"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"data/nerdle.db"`

	PuzzleSource          string        `env:"PUZZLE_SOURCE" envDefault:"data/puzzles"`
	WordlistSource        string        `env:"WORDLIST_SOURCE" envDefault:"data/words.txt"`
	PuzzleRefreshInterval time.Duration `env:"PUZZLE_REFRESH_INTERVAL" envDefault:"0s"`
	FetchTimeout          time.Duration `env:"FETCH_TIMEOUT" envDefault:"0s"`

	CookieMaxAge       time.Duration `env:"COOKIE_MAX_AGE" envDefault:"8760h"`
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"2h"`
	StaticCacheAge     time.Duration `env:"STATIC_CACHE_AGE" envDefault:"5m"`
	RateLimitRPS       int           `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

// IsProduction reports whether the server runs in release mode.
func (c Config) IsProduction() bool {
	return c.GinMode == "release" || c.Env == "production"
}

// Validate checks values env cannot express with tags.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case DriverFile, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (want file, sqlite or memory)", c.StorageDriver)
	}
	if strings.TrimSpace(c.GameName) == "" {
		return errors.New("GAME_NAME must not be empty")
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive, got %d", c.RateLimitBurst)
	}
	return nil
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
