package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaultsDatabasePath(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected string
	}{
		{
			"next to the ledger",
			Config{LedgerFile: "/home/me/finance/main.ledger"},
			"/home/me/finance/.ledgercli/history.db",
		},
		{
			"explicit path",
			Config{LedgerFile: "/home/me/finance/main.ledger", DatabasePath: "/var/lib/ledgercli.db"},
			"/var/lib/ledgercli.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.config).GetDatabasePath(); got != tt.expected {
				t.Errorf("GetDatabasePath() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestFileExistsAndEnsureParentDir(t *testing.T) {
	p := New(Config{})
	path := filepath.Join(t.TempDir(), "a", "b", "file.txt")

	if p.FileExists(path) || p.FileExists("") {
		t.Fatal("FileExists() reported a missing file")
	}
	if err := p.EnsureParentDir(path); err != nil {
		t.Fatalf("EnsureParentDir() unexpected error: %v", err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if !p.FileExists(path) {
		t.Error("FileExists() = false after creating the file")
	}
}
