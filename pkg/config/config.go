// Package config provides configuration management for ledgercli.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Ledger        LedgerConfig
	Notifications NotificationConfig
	Debug         bool
}

// LedgerConfig represents the files ledgercli works on.
type LedgerConfig struct {
	File         string
	AliasesFile  string
	DebugLogFile string
	SettingsFile string
	DBPath       string
}

// NotificationConfig controls how imported notifications are written.
type NotificationConfig struct {
	// DefaultCreditCard replaces the placeholder account of Tangerine credit card drafts.
	DefaultCreditCard string
	// ProdMode writes to the ledger; when false only the debug log is written.
	ProdMode bool
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	// Load .env file
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	prodMode, err := parseBoolEnv("LEDGER_PROD_MODE", true)
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_PROD_MODE: %w", err)
	}

	config := &Config{
		Ledger: LedgerConfig{
			File:         os.Getenv("LEDGER_FILE"),
			AliasesFile:  os.Getenv("LEDGER_ALIASES_FILE"),
			DebugLogFile: os.Getenv("LEDGER_DEBUG_LOG_FILE"),
			SettingsFile: os.Getenv("LEDGER_SETTINGS_FILE"),
			DBPath:       os.Getenv("LEDGER_DB_PATH"),
		},
		Notifications: NotificationConfig{
			DefaultCreditCard: os.Getenv("DEFAULT_TANGERINE_CREDIT_CARD"),
			ProdMode:          prodMode,
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate validates the configuration.
// It checks if all required fields are set.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 {
			continue
		}

		var value string
		switch path[0] {
		case "ledger":
			switch path[1] {
			case "file":
				value = c.Ledger.File
			case "aliasesFile":
				value = c.Ledger.AliasesFile
			case "debugLogFile":
				value = c.Ledger.DebugLogFile
			case "settingsFile":
				value = c.Ledger.SettingsFile
			case "dbPath":
				value = c.Ledger.DBPath
			}
		case "notifications":
			switch path[1] {
			case "defaultCreditCard":
				value = c.Notifications.DefaultCreditCard
			}
		}

		if value == "" {
			missing = append(missing, strings.Join(path, "."))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// parseBoolEnv parses a bool from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean value for %s: %s", key, value)
	}

	return parsed, nil
}
