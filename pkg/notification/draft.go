// Package notification turns bank push-notification text into transaction drafts.
package notification

import (
	"strings"
	"time"

	"github.com/millspills/ledgercli/pkg/amount"
	"github.com/millspills/ledgercli/pkg/ledger"
)

// DefaultCategory is the expense account a draft starts with.
const DefaultCategory = "Expenses"

// Draft is the normalized result of reading one notification.
type Draft struct {
	Amount    string // empty when no amount could be recovered
	Payee     string // empty when unknown
	Date      time.Time
	Account   string // counter-account, empty when unknown
	Category  string
	Confident bool
}

func newDraft(dollarAmount, payee, account string) Draft {
	return Draft{
		Amount:   dollarAmount,
		Payee:    payee,
		Date:     ledger.Day(now()),
		Account:  account,
		Category: DefaultCategory,
	}
}

// HasAmount reports whether an amount was recovered.
func (d Draft) HasAmount() bool {
	return d.Amount != ""
}

// DollarAmount returns the amount, or amount.Unknown.
func (d Draft) DollarAmount() string {
	if d.Amount == "" {
		return amount.Unknown
	}
	return d.Amount
}

// PayeeName returns the payee, or amount.Unknown.
func (d Draft) PayeeName() string {
	if d.Payee == "" {
		return amount.Unknown
	}
	return d.Payee
}

// Transaction converts the draft to a ledger transaction. Unconfident drafts
// are marked unread so they get reviewed.
func (d Draft) Transaction() *ledger.Transaction {
	txn := ledger.NewTransaction(&ledger.Title{
		Date:   d.Date,
		Unread: !d.Confident,
		Payee:  d.PayeeName(),
	})
	txn.AddAccount(&ledger.Account{
		Account: d.Category,
		Amount:  amount.StripCommas(d.DollarAmount()),
	})
	if d.Account != "" {
		txn.AddAccount(&ledger.Account{Account: d.Account})
	}
	return txn
}

// LedgerLines renders the draft for appending to a ledger file, without a
// trailing newline.
func (d Draft) LedgerLines() string {
	return strings.TrimSuffix(d.Transaction().String(), "\n")
}

// CommentedLines renders the draft with every line commented out.
func (d Draft) CommentedLines() string {
	lines := strings.Split(d.LedgerLines(), "\n")
	for i, line := range lines {
		lines[i] = ";" + line
	}
	return strings.Join(lines, "\n")
}
