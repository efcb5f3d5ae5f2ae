package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "LEDGER_FILE=/tmp/main.ledger\nDEFAULT_TANGERINE_CREDIT_CARD=Tangerine Mastercard\nLEDGER_PROD_MODE=false\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"LEDGER_FILE", "DEFAULT_TANGERINE_CREDIT_CARD", "LEDGER_PROD_MODE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Ledger.File != "/tmp/main.ledger" {
		t.Errorf("Ledger.File = %q", cfg.Ledger.File)
	}
	if cfg.Notifications.DefaultCreditCard != "Tangerine Mastercard" {
		t.Errorf("DefaultCreditCard = %q", cfg.Notifications.DefaultCreditCard)
	}
	if cfg.Notifications.ProdMode {
		t.Errorf("ProdMode = true, expected false")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LEDGER_PROD_MODE", "")
	t.Setenv("DEBUG", "true")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("Load() with a missing explicit env file should fail")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if !cfg.Notifications.ProdMode {
		t.Errorf("ProdMode should default to true")
	}
	if !cfg.Debug {
		t.Errorf("Debug should be read from DEBUG")
	}
}

func TestLoadInvalidProdMode(t *testing.T) {
	t.Setenv("LEDGER_PROD_MODE", "sometimes")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject a non-boolean LEDGER_PROD_MODE")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Ledger: LedgerConfig{File: "/tmp/main.ledger"}}

	if err := cfg.Validate([]string{"ledger", "file"}); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}

	err := cfg.Validate([]string{"ledger", "file"}, []string{"ledger", "aliasesFile"}, []string{"notifications", "defaultCreditCard"})
	if err == nil {
		t.Fatal("Validate() should report missing fields")
	}
	if !strings.Contains(err.Error(), "ledger.aliasesFile") || !strings.Contains(err.Error(), "notifications.defaultCreditCard") {
		t.Errorf("Validate() error = %v", err)
	}
}
