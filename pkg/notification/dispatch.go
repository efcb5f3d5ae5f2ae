package notification

import (
	"fmt"
	"strings"

	"github.com/millspills/ledgercli/pkg/amount"
)

// Package-name fragments that select a source.
const (
	SourceCIBC      = "cibc"
	SourceTangerine = "tangerine"
	// SourceTest is the messaging app used to send hand-written test notifications.
	SourceTest = "facebook"
)

// Tangerine notification titles.
const (
	TitleWithdrawal    = "Withdrawal made"
	TitleDeposit       = "Direct deposit received"
	// TitlePreauthorized has not been checked against a real Tangerine
	// notification. Pre-authorized payments with any other title are read by
	// TangerineCredit.
	TitlePreauthorized = "Pre-authorized payment made"
)

// Notification is the raw text of one posted notification.
type Notification struct {
	Package string `json:"package"`
	Title   string `json:"title"`
	Text    string `json:"text"`
	BigText string `json:"big_text"`
}

// Summary describes the notification on one line, for logs and ledger comments.
func (n Notification) Summary() string {
	return fmt.Sprintf("Notification from %s with title %q, body %q, big text body %q",
		n.Package, n.Title, n.Text, n.BigText)
}

// Route records how a notification was dispatched.
type Route struct {
	Source     string
	Extractor  string
	Test       bool
	Suppressed bool
}

var tangerineByTitle = map[string]Extractor{
	TitleWithdrawal:    TangerineWithdrawal,
	TitleDeposit:       TangerineDeposit,
	TitlePreauthorized: TangerinePreauthorized,
}

// testPrefixes route hand-written test notifications; checked in order.
var testPrefixes = []struct {
	prefix    string
	source    string
	extractor Extractor
}{
	{"test.cibc:", SourceCIBC, CIBC},
	{"test.tangerine.credit:", SourceTangerine, TangerineCredit},
	{"test.tangerine.preauth:", SourceTangerine, TangerinePreauthorized},
	{"test.tangerine.debit", SourceTangerine, TangerineWithdrawal},
	{"test.tangerine.deposit", SourceTangerine, TangerineDeposit},
}

// Extract dispatches a notification to its extractor. ok is false when no
// extractor handles the notification or when it was deliberately suppressed
// (route.Suppressed); neither case is a parse failure.
func Extract(n Notification) (d Draft, route Route, ok bool) {
	body := amount.AddZero(strings.TrimSpace(n.Text))
	bigText := amount.AddZero(strings.TrimSpace(n.BigText))

	switch {
	case strings.Contains(n.Package, SourceCIBC):
		return extractCIBC(body, Route{Source: SourceCIBC})

	case strings.Contains(n.Package, SourceTangerine):
		// Tangerine puts the full message in the expanded text.
		if bigText == "" {
			bigText = body
		}
		e, found := tangerineByTitle[n.Title]
		if !found {
			e = TangerineCredit
		}
		return e.Extract(bigText), Route{Source: SourceTangerine, Extractor: e.Name}, true

	case strings.Contains(n.Package, SourceTest):
		for _, p := range testPrefixes {
			if !strings.HasPrefix(body, p.prefix) {
				continue
			}
			rest := strings.TrimSpace(strings.TrimPrefix(body, p.prefix))
			route := Route{Source: p.source, Test: true}
			if p.source == SourceCIBC {
				return extractCIBC(rest, route)
			}
			route.Extractor = p.extractor.Name
			return p.extractor.Extract(rest), route, true
		}
	}

	return Draft{}, Route{}, false
}

// ExtractDraft is Extract for callers that only have the package, title and body.
func ExtractDraft(pkg, title, body string) (Draft, bool) {
	d, _, ok := Extract(Notification{Package: pkg, Title: title, Text: body, BigText: body})
	return d, ok
}

func extractCIBC(body string, route Route) (Draft, Route, bool) {
	route.Extractor = CIBC.Name
	if IsCIBCPayment(body) {
		route.Suppressed = true
		return Draft{}, route, false
	}
	return CIBC.Extract(body), route, true
}
