package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/millspills/ledgercli/pkg/alias"
)

func openTestDB(t *testing.T) *Connection {
	t.Helper()
	conn, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestImportHistory(t *testing.T) {
	ctx := context.Background()
	history := NewImportHistory(openTestDB(t))

	imported, err := history.IsImported(ctx, "abc")
	if err != nil || imported {
		t.Fatalf("IsImported() = (%v, %v), expected false", imported, err)
	}

	record := ImportRecord{
		Hash:       "abc",
		Package:    "com.cibc.android.mobi",
		Title:      "Purchase",
		Status:     StatusDebug,
		Payee:      "Cafe",
		Amount:     "$5.00",
		LedgerFile: "/tmp/debug.ledger",
	}
	if err := history.RecordImport(ctx, record); err != nil {
		t.Fatalf("RecordImport() unexpected error: %v", err)
	}

	record.Status = StatusWritten
	if err := history.RecordImport(ctx, record); err != nil {
		t.Fatalf("RecordImport() upsert unexpected error: %v", err)
	}
	if err := history.RecordImport(ctx, ImportRecord{Hash: "def", Package: "p", Title: "t", Status: StatusUnrouted}); err != nil {
		t.Fatal(err)
	}

	imported, err = history.IsImported(ctx, "abc")
	if err != nil || !imported {
		t.Fatalf("IsImported() = (%v, %v), expected true", imported, err)
	}

	got, err := history.GetImportRecord(ctx, "abc")
	if err != nil || got == nil {
		t.Fatalf("GetImportRecord() = (%v, %v)", got, err)
	}
	if got.Status != StatusWritten || got.Payee != "Cafe" || got.Amount != "$5.00" {
		t.Errorf("GetImportRecord() = %+v", got)
	}

	stats, err := history.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() unexpected error: %v", err)
	}
	if stats.Total != 2 || stats.ByStatus[StatusWritten] != 1 || stats.ByStatus[StatusUnrouted] != 1 {
		t.Errorf("GetStats() = %+v", stats)
	}
	if !stats.LastImport.Valid {
		t.Errorf("LastImport should be set")
	}

	deleted, err := history.DeleteImportRecord(ctx, "abc")
	if err != nil || !deleted {
		t.Errorf("DeleteImportRecord() = (%v, %v), expected true", deleted, err)
	}
	if got, _ := history.GetImportRecord(ctx, "abc"); got != nil {
		t.Errorf("record still present after delete: %+v", got)
	}
}

func TestMetadata(t *testing.T) {
	ctx := context.Background()
	history := NewImportHistory(openTestDB(t))

	value, err := history.GetMetadata(ctx, "last_rebuild")
	if err != nil || value != "" {
		t.Fatalf("GetMetadata() = (%q, %v), expected empty", value, err)
	}

	if err := history.SetMetadata(ctx, "last_rebuild", "one"); err != nil {
		t.Fatal(err)
	}
	if err := history.SetMetadata(ctx, "last_rebuild", "two"); err != nil {
		t.Fatal(err)
	}

	value, _ = history.GetMetadata(ctx, "last_rebuild")
	if value != "two" {
		t.Errorf("GetMetadata() = %q, expected %q", value, "two")
	}
}

func TestAliasSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	snapshot := NewAliasSnapshot(openTestDB(t))

	empty, err := snapshot.Load(ctx)
	if err != nil || empty.Len() != 0 {
		t.Fatalf("Load() of empty snapshot = (%d groups, %v)", empty.Len(), err)
	}

	r := alias.NewRegistry()
	loblaws := r.Group("Loblaws")
	loblaws.AddAlias("loblaws")
	loblaws.AddAlias("loblawsstore1002")
	loblaws.CountCategory("Expenses:Groceries", 4)
	loblaws.CountCategory("Expenses:Household", 1)
	landlord := r.Group("Landlord")
	landlord.AddAlias("landlord")
	landlord.ForceCategory("Expenses:Rent")

	if err := snapshot.Save(ctx, r); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	// saving twice replaces rather than duplicates
	if err := snapshot.Save(ctx, r); err != nil {
		t.Fatalf("Save() second call unexpected error: %v", err)
	}

	loaded, err := snapshot.Load(ctx)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	payees := loaded.Payees()
	if len(payees) != 2 || payees[0] != "Loblaws" || payees[1] != "Landlord" {
		t.Fatalf("Payees() = %v", payees)
	}

	g, _ := loaded.Lookup("Loblaws")
	if len(g.Aliases()) != 2 || g.Total() != 5 || g.MostUsed() != "Expenses:Groceries" {
		t.Errorf("Loblaws group = aliases %v, total %d, most used %q", g.Aliases(), g.Total(), g.MostUsed())
	}

	category, ok, confident := g.Resolve()
	if category != "Expenses:Groceries" || !ok || confident {
		t.Errorf("Resolve() = (%q, %v, %v)", category, ok, confident)
	}

	g, _ = loaded.Lookup("Landlord")
	if g.Forced() != "Expenses:Rent" {
		t.Errorf("Forced() = %q", g.Forced())
	}

	canonical, _, found := loaded.Match("LOBLAWS STORE #1002 TORONTO")
	if !found || canonical != "Loblaws" {
		t.Errorf("Match() = (%q, %v)", canonical, found)
	}
}
