package notification

import (
	"regexp"
	"strings"
	"time"

	"github.com/millspills/ledgercli/pkg/amount"
)

// now is replaced in tests.
var now = time.Now

// PlaceholderCreditCard is the account of Tangerine credit card drafts until
// the importer substitutes the configured card.
const PlaceholderCreditCard = "Tangerine"

// Extractor reads one kind of notification. The primary pattern is tried
// first; when it does not match, the draft degrades to the first dollar amount
// in the text (or none) with the fallback payee, account and category.
type Extractor struct {
	Name             string
	primary          func(body string) (Draft, bool)
	FallbackPayee    string
	FallbackAccount  string
	FallbackCategory string
}

// Extract never fails: it returns the best draft it can build from body.
func (e Extractor) Extract(body string) Draft {
	if e.primary != nil {
		if d, ok := e.primary(body); ok {
			return d
		}
	}

	found, _ := amount.Find(body)
	d := newDraft(found, e.FallbackPayee, e.FallbackAccount)
	if e.FallbackCategory != "" {
		d.Category = e.FallbackCategory
	}
	return d
}

var (
	cibcPurchase     = regexp.MustCompile(`^(.*?, \d{4})\s([^$]*)\s(\$[\d.,]+)`)
	cibcPayment      = regexp.MustCompile(`Payment\s+\$`)
	tangerineCredit  = regexp.MustCompile(`(\$[\d.,]+).*?at (.*?) on`)
	tangerinePreauth = regexp.MustCompile(`(\$[\d.,]+).*?to (.*?) has`)
)

// IsCIBCPayment reports whether body is a credit card payment notification,
// which is not a purchase and must not be recorded.
func IsCIBCPayment(body string) bool {
	return cibcPayment.MatchString(body)
}

// CIBC reads "<card label>, <4 digits> <payee> <amount>".
var CIBC = Extractor{
	Name: "cibc",
	primary: func(body string) (Draft, bool) {
		m := cibcPurchase.FindStringSubmatch(body)
		if m == nil {
			return Draft{}, false
		}
		card := amount.StripCommas(strings.TrimSpace(m[1]))
		return newDraft(
			amount.StripCommas(strings.TrimSpace(m[3])),
			strings.TrimSpace(m[2]),
			"Liabilities:"+card,
		), true
	},
	FallbackAccount: "Liabilities:Unknown",
}

// TangerineCredit reads "<amount> ... at <payee> on". The account is a
// placeholder that the importer replaces with the configured credit card.
var TangerineCredit = Extractor{
	Name:            "tangerine-credit",
	primary:         payeePattern(tangerineCredit, PlaceholderCreditCard),
	FallbackAccount: PlaceholderCreditCard,
}

// TangerinePreauthorized reads "<amount> ... to <payee> has".
var TangerinePreauthorized = Extractor{
	Name:            "tangerine-preauthorized",
	primary:         payeePattern(tangerinePreauth, "Tangerine Checking"),
	FallbackAccount: "Tangerine Checking",
}

// TangerineWithdrawal only carries an amount.
var TangerineWithdrawal = Extractor{
	Name:            "tangerine-withdrawal",
	FallbackPayee:   "Unspecified withdrawal",
	FallbackAccount: "Assets:Tangerine Checking",
}

// TangerineDeposit only carries an amount. Money enters checking from income.
var TangerineDeposit = Extractor{
	Name:             "tangerine-deposit",
	FallbackAccount:  "Income:Salary",
	FallbackCategory: "Assets:Tangerine Checking",
}

// payeePattern builds a primary extractor for patterns capturing (amount, payee).
func payeePattern(pattern *regexp.Regexp, account string) func(string) (Draft, bool) {
	return func(body string) (Draft, bool) {
		m := pattern.FindStringSubmatch(body)
		if m == nil {
			return Draft{}, false
		}
		return newDraft(m[1], strings.TrimSpace(m[2]), account), true
	}
}
