package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config captures terminal runtime configuration loaded from environment
// variables. A local .env file is honored when present.
type Config struct {
	AppName        string    `env:"ATM_APP_NAME" envDefault:"CashPoint"`
	LedgerPath     string    `env:"ATM_LEDGER_FILE" envDefault:"accounts.json"`
	LogLevel       string    `env:"ATM_LOG_LEVEL" envDefault:"info"`
	PINAttempts    int       `env:"ATM_PIN_ATTEMPTS" envDefault:"3"`
	FastCash       []float64 `env:"ATM_FAST_CASH" envDefault:"100,500,1000,2000,5000"`
	StatementLimit int       `env:"ATM_STATEMENT_LIMIT" envDefault:"10"`
}

// Load reads configuration values from the environment and validates them.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if cfg.LedgerPath == "" {
		return Config{}, fmt.Errorf("ATM_LEDGER_FILE must not be empty")
	}
	if cfg.PINAttempts <= 0 {
		return Config{}, fmt.Errorf("ATM_PIN_ATTEMPTS must be positive, got %d", cfg.PINAttempts)
	}
	if cfg.StatementLimit <= 0 {
		return Config{}, fmt.Errorf("ATM_STATEMENT_LIMIT must be positive, got %d", cfg.StatementLimit)
	}
	if len(cfg.FastCash) == 0 {
		return Config{}, fmt.Errorf("ATM_FAST_CASH must list at least one denomination")
	}
	for _, d := range cfg.FastCash {
		if d <= 0 {
			return Config{}, fmt.Errorf("ATM_FAST_CASH denominations must be positive, got %v", d)
		}
	}

	return cfg, nil
}
