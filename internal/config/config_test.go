package config

import (
	"os"
	"reflect"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ATM_APP_NAME", "ATM_LEDGER_FILE", "ATM_LOG_LEVEL",
		"ATM_PIN_ATTEMPTS", "ATM_FAST_CASH", "ATM_STATEMENT_LIMIT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LedgerPath != "accounts.json" {
		t.Fatalf("expected default ledger path, got %q", cfg.LedgerPath)
	}
	if cfg.LogLevel != "info" || cfg.PINAttempts != 3 || cfg.StatementLimit != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.FastCash, []float64{100, 500, 1000, 2000, 5000}) {
		t.Fatalf("unexpected fast cash menu: %v", cfg.FastCash)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ATM_LEDGER_FILE", "/tmp/ledger.json")
	t.Setenv("ATM_LOG_LEVEL", "DEBUG")
	t.Setenv("ATM_PIN_ATTEMPTS", "5")
	t.Setenv("ATM_FAST_CASH", "50,200")
	t.Setenv("ATM_STATEMENT_LIMIT", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LedgerPath != "/tmp/ledger.json" {
		t.Fatalf("expected overridden ledger path, got %q", cfg.LedgerPath)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level must be lowercased, got %q", cfg.LogLevel)
	}
	if cfg.PINAttempts != 5 || cfg.StatementLimit != 25 {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.FastCash, []float64{50, 200}) {
		t.Fatalf("unexpected fast cash menu: %v", cfg.FastCash)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"ATM_PIN_ATTEMPTS":    "0",
		"ATM_STATEMENT_LIMIT": "-1",
		"ATM_FAST_CASH":       "100,-500",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}
