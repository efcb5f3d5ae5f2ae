package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/millspills/ledgercli/pkg/db"
)

func TestForgetImport(t *testing.T) {
	ctx := context.Background()
	conn, err := db.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("db.Open() unexpected error: %v", err)
	}
	defer conn.Close()

	history := db.NewImportHistory(conn)
	record := db.ImportRecord{
		Hash:    "abc123",
		Package: "com.cibc.android.mobi",
		Title:   "Purchase",
		Status:  db.StatusWritten,
		Payee:   "LOBLAWS #1002",
		Amount:  "$45.10",
	}
	if err := history.RecordImport(ctx, record); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := forgetImport(ctx, history, "abc123", &out); err != nil {
		t.Fatalf("forgetImport() unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "written notification from com.cibc.android.mobi (LOBLAWS #1002 $45.10)") {
		t.Errorf("output = %q", out.String())
	}

	imported, err := history.IsImported(ctx, "abc123")
	if err != nil || imported {
		t.Errorf("IsImported() after forget = (%v, %v), expected false", imported, err)
	}

	err = forgetImport(ctx, history, "abc123", &out)
	if err == nil || !strings.Contains(err.Error(), "no import recorded") {
		t.Errorf("second forgetImport() error = %v, expected no import recorded", err)
	}
}
