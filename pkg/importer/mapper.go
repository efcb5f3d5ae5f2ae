// Package importer turns bank notifications into ledger entries: it maps
// draft accounts, applies learned payee aliases and appends the result.
package importer

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/millspills/ledgercli/pkg/amount"
	"github.com/millspills/ledgercli/pkg/notification"
)

// AccountMapping maps an account produced by an extractor to a ledger account.
type AccountMapping struct {
	Notification string `yaml:"notification"`
	Ledger       string `yaml:"ledger"`
}

// Settings is the YAML account settings file.
//
//	default_category: Expenses:Uncategorized
//	credit_card: Tangerine Mastercard
//	accounts:
//	  - notification: Tangerine Checking
//	    ledger: Assets:Tangerine Checking
type Settings struct {
	DefaultCategory string           `yaml:"default_category"`
	CreditCard      string           `yaml:"credit_card"`
	Accounts        []AccountMapping `yaml:"accounts"`
}

// defaultAccounts apply unless the settings file maps the same name.
var defaultAccounts = []AccountMapping{
	{Notification: "Tangerine Checking", Ledger: "Assets:Tangerine Checking"},
}

// Mapper rewrites the accounts of drafts before they reach the ledger.
type Mapper struct {
	settings             Settings
	notificationToLedger map[string]string
}

// NewMapper creates a new Mapper from a YAML settings file.
func NewMapper(settingsPath string) (*Mapper, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return newMapper(settings), nil
}

// DefaultMapper returns a Mapper with the built-in account mappings only.
func DefaultMapper() *Mapper {
	return newMapper(Settings{})
}

func newMapper(settings Settings) *Mapper {
	m := &Mapper{
		settings:             settings,
		notificationToLedger: make(map[string]string),
	}
	for _, mapping := range defaultAccounts {
		m.notificationToLedger[mapping.Notification] = mapping.Ledger
	}
	for _, mapping := range settings.Accounts {
		if mapping.Notification == "" || mapping.Ledger == "" {
			slog.Warn("Ignoring incomplete account mapping", "notification", mapping.Notification, "ledger", mapping.Ledger)
			continue
		}
		m.notificationToLedger[mapping.Notification] = mapping.Ledger
	}
	return m
}

// SetCreditCard overrides the card injected into Tangerine credit card drafts.
// An empty card leaves the settings file value in place.
func (m *Mapper) SetCreditCard(card string) {
	if card != "" {
		m.settings.CreditCard = card
	}
}

// CreditCardAccount returns the ledger account of the default credit card.
func (m *Mapper) CreditCardAccount() string {
	card := m.settings.CreditCard
	if card == "" {
		card = amount.Unknown
	}
	return "Liabilities:" + card
}

// GetLedgerAccountWithFallback returns the ledger account name with a fallback.
func (m *Mapper) GetLedgerAccountWithFallback(name, fallback string) string {
	if account := m.notificationToLedger[name]; account != "" {
		return account
	}
	return fallback
}

// Map applies the account settings to a draft.
func (m *Mapper) Map(d notification.Draft) notification.Draft {
	if d.Account == notification.PlaceholderCreditCard {
		d.Account = m.CreditCardAccount()
		slog.Debug("Injecting default Tangerine credit card", "account", d.Account)
	} else if d.Account != "" {
		d.Account = m.GetLedgerAccountWithFallback(d.Account, d.Account)
	}

	if d.Category == notification.DefaultCategory && m.settings.DefaultCategory != "" {
		d.Category = m.settings.DefaultCategory
	}

	return d
}
