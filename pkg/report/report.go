// Package report totals ledger postings per account.
package report

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/millspills/ledgercli/pkg/amount"
	"github.com/millspills/ledgercli/pkg/ledger"
)

// AccountTotal is the sum of the explicit amounts posted to one account.
type AccountTotal struct {
	Account  string
	Total    decimal.Decimal
	Postings int
}

// Summarize totals every posting that carries an amount. Balancing legs
// without an amount are not inferred. The result is sorted by account.
// Postings whose amount is not a number are left out and reported.
func Summarize(file *ledger.File) ([]AccountTotal, []error) {
	totals := make(map[string]*AccountTotal)
	var skipped []error

	for i, txn := range file.Transactions {
		for _, posting := range txn.Accounts {
			if posting.Amount == "" {
				continue
			}
			value, err := amount.Parse(posting.Amount)
			if err != nil {
				slog.Warn("Skipping posting", "transaction", i+1, "payee", txn.Title.Payee, "account", posting.Account, "error", err)
				skipped = append(skipped, fmt.Errorf("transaction %d (%s): %w", i+1, txn.Title.Payee, err))
				continue
			}

			total, ok := totals[posting.Account]
			if !ok {
				total = &AccountTotal{Account: posting.Account, Total: decimal.Zero}
				totals[posting.Account] = total
			}
			total.Total = total.Total.Add(value)
			total.Postings++
		}
	}

	result := make([]AccountTotal, 0, len(totals))
	for _, total := range totals {
		result = append(result, *total)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Account < result[j].Account
	})

	return result, skipped
}

// Format renders totals as an aligned two-column table.
func Format(totals []AccountTotal) string {
	width := 0
	for _, t := range totals {
		width = max(width, len(t.Account))
	}

	var b strings.Builder
	for _, t := range totals {
		fmt.Fprintf(&b, "%-*s  %12s\n", width, t.Account, dollars(t.Total))
	}
	return b.String()
}

// dollars renders d the way ledger amounts are written, e.g. "-$15.00".
func dollars(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
