package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/millspills/ledgercli/pkg/alias"
	"github.com/millspills/ledgercli/pkg/notification"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewMapper(t *testing.T) {
	path := writeSettings(t, `
default_category: Expenses:Uncategorized
credit_card: Tangerine World Mastercard
accounts:
  - notification: Income:Salary
    ledger: Income:Salary:Acme
  - notification: Tangerine Checking
    ledger: Assets:Bank:Tangerine
  - notification: ""
    ledger: Assets:Ignored
`)

	m, err := NewMapper(path)
	if err != nil {
		t.Fatalf("NewMapper() unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		draft    notification.Draft
		account  string
		category string
	}{
		{
			"credit card placeholder",
			notification.Draft{Account: notification.PlaceholderCreditCard, Category: notification.DefaultCategory},
			"Liabilities:Tangerine World Mastercard", "Expenses:Uncategorized",
		},
		{
			"settings override the built-in mapping",
			notification.Draft{Account: "Tangerine Checking", Category: notification.DefaultCategory},
			"Assets:Bank:Tangerine", "Expenses:Uncategorized",
		},
		{
			"explicit category is kept",
			notification.Draft{Account: "Income:Salary", Category: "Assets:Tangerine Checking"},
			"Income:Salary:Acme", "Assets:Tangerine Checking",
		},
		{
			"unmapped account passes through",
			notification.Draft{Account: "Liabilities:Visa 1234", Category: notification.DefaultCategory},
			"Liabilities:Visa 1234", "Expenses:Uncategorized",
		},
		{
			"no account",
			notification.Draft{Category: notification.DefaultCategory},
			"", "Expenses:Uncategorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := m.Map(tt.draft)
			if d.Account != tt.account {
				t.Errorf("Account = %q, expected %q", d.Account, tt.account)
			}
			if d.Category != tt.category {
				t.Errorf("Category = %q, expected %q", d.Category, tt.category)
			}
		})
	}

	if got := m.GetLedgerAccountWithFallback("", "none"); got != "none" {
		t.Errorf("incomplete mapping should be ignored, got %q", got)
	}
}

func TestNewMapperErrors(t *testing.T) {
	if _, err := NewMapper(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("NewMapper() should fail for a missing file")
	}
	if _, err := NewMapper(writeSettings(t, "accounts: [unterminated")); err == nil {
		t.Error("NewMapper() should fail for invalid YAML")
	}
}

func TestDefaultMapper(t *testing.T) {
	m := DefaultMapper()

	if got := m.CreditCardAccount(); got != "Liabilities:Unknown" {
		t.Errorf("CreditCardAccount() = %q, expected Liabilities:Unknown", got)
	}
	m.SetCreditCard("")
	if got := m.CreditCardAccount(); got != "Liabilities:Unknown" {
		t.Errorf("empty SetCreditCard() changed the card to %q", got)
	}
	m.SetCreditCard("Tangerine Mastercard")
	if got := m.CreditCardAccount(); got != "Liabilities:Tangerine Mastercard" {
		t.Errorf("CreditCardAccount() = %q", got)
	}

	if got := m.GetLedgerAccountWithFallback("Tangerine Checking", "x"); got != "Assets:Tangerine Checking" {
		t.Errorf("built-in mapping = %q", got)
	}
	if got := m.GetLedgerAccountWithFallback("Nope", "x"); got != "x" {
		t.Errorf("fallback = %q", got)
	}

	d := m.Map(notification.Draft{Category: notification.DefaultCategory})
	if d.Category != notification.DefaultCategory {
		t.Errorf("default category changed without settings: %q", d.Category)
	}
}

func TestResolve(t *testing.T) {
	ledgerText := "aliases\n\ncomments\n\n" +
		"2023/08/01 Loblaws\n    Expenses:Groceries    $10.00\n    Liabilities:Visa\n\n" +
		"2023/08/02 Loblaws\n    Expenses:Household    $10.00\n    Liabilities:Visa\n"
	overrides := "Landlord|Expenses:Rent\ninterac etransfer\n\nNetflix\nnetflix.com\n"

	r, errs := alias.Rebuild(ledgerText, overrides)
	if len(errs) != 0 {
		t.Fatalf("Rebuild() errors: %v", errs)
	}

	tests := []struct {
		name      string
		payee     string
		expected  string
		category  string
		confident bool
	}{
		{"split history is unconfident", "LOBLAWS #1002", "Loblaws", "Expenses:Household", false},
		{"forced category", "INTERAC ETRANSFER 42", "Landlord", "Expenses:Rent", true},
		{"alias without history keeps the category", "NETFLIX.COM", "Netflix", notification.DefaultCategory, true},
		{"no match", "TIM HORTONS", "TIM HORTONS", notification.DefaultCategory, false},
		{"unknown payee", "", "", notification.DefaultCategory, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Resolve(notification.Draft{Payee: tt.payee, Category: notification.DefaultCategory}, r)
			if d.Payee != tt.expected {
				t.Errorf("Payee = %q, expected %q", d.Payee, tt.expected)
			}
			if d.Category != tt.category {
				t.Errorf("Category = %q, expected %q", d.Category, tt.category)
			}
			if d.Confident != tt.confident {
				t.Errorf("Confident = %v, expected %v", d.Confident, tt.confident)
			}
		})
	}

	d := Resolve(notification.Draft{Payee: "LOBLAWS"}, nil)
	if d.Payee != "LOBLAWS" {
		t.Errorf("nil registry changed the payee to %q", d.Payee)
	}
}
