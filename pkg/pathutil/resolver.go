// Package pathutil provides centralized path management for the ledger, alias,
// debug-log and settings files and the history database.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathResolver manages the paths ledgercli reads and writes.
type PathResolver struct {
	ledgerFile   string
	aliasesFile  string
	debugLogFile string
	settingsFile string
	databasePath string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// LedgerFile is the canonical ledger (e.g., ~/finance/main.ledger)
	LedgerFile string
	// AliasesFile is the optional alias override file
	AliasesFile string
	// DebugLogFile optionally receives a copy of every import with its raw notification
	DebugLogFile string
	// SettingsFile is the optional YAML account settings file
	SettingsFile string
	// DatabasePath is the path to the SQLite database for import history
	DatabasePath string
}

// New creates a new PathResolver with the given configuration.
// If DatabasePath is empty, it defaults to {dir of LedgerFile}/.ledgercli/history.db
func New(config Config) *PathResolver {
	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(filepath.Dir(config.LedgerFile), ".ledgercli", "history.db")
	}

	return &PathResolver{
		ledgerFile:   config.LedgerFile,
		aliasesFile:  config.AliasesFile,
		debugLogFile: config.DebugLogFile,
		settingsFile: config.SettingsFile,
		databasePath: dbPath,
	}
}

// GetLedgerFile returns the ledger file path.
func (p *PathResolver) GetLedgerFile() string {
	return p.ledgerFile
}

// GetAliasesFile returns the alias override file path, or "" if none is configured.
func (p *PathResolver) GetAliasesFile() string {
	return p.aliasesFile
}

// GetDebugLogFile returns the debug log path, or "" if none is configured.
func (p *PathResolver) GetDebugLogFile() string {
	return p.debugLogFile
}

// GetSettingsFile returns the settings file path, or "" if none is configured.
func (p *PathResolver) GetSettingsFile() string {
	return p.settingsFile
}

// GetDatabasePath returns the database file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return p.EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	if filePath == "" {
		return false
	}
	_, err := os.Stat(filePath)
	return err == nil
}
