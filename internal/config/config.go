package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`

	DBDriver    string `env:"DB_DRIVER" envDefault:"pgx"`
	DBDSN       string `env:"DB_DSN"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	EnableMetrics bool `env:"ENABLE_METRICS" envDefault:"false"`
	BcryptCost    int  `env:"BCRYPT_COST" envDefault:"10"`

	ImportMaxBytes int64  `env:"IMPORT_MAX_BYTES" envDefault:"20971520"`
	ImportMapping  string `env:"IMPORT_MAPPING"`
}

// Load reads the given dotenv files (".env" when none are named) and then
// the process environment. Variables already set in the environment win;
// missing dotenv files are ignored.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "pgx", "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be one of pgx, postgres, sqlite (got %q)", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("DB_DSN is required")
	}
	if c.HTTPAddr == "" {
		return errors.New("HTTP_ADDR must not be empty")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.ImportMaxBytes <= 0 {
		return errors.New("IMPORT_MAX_BYTES must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func LoadAndValidate(files ...string) (*Config, error) {
	cfg, err := Load(files...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool { return c.Environment == "production" }
