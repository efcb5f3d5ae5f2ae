// Package amount provides the dollar-amount text primitives shared by the
// ledger parser and the notification extractors.
package amount

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Unknown is written in place of an amount or payee that could not be recovered.
const Unknown = "Unknown"

// ErrInvalidAmount is returned when a string is not a dollar amount.
var ErrInvalidAmount = errors.New("invalid dollar amount")

var (
	// Pattern matches a dollar amount anywhere in free text, e.g. "$1,977.91".
	Pattern = regexp.MustCompile(`\$[\d.,]+`)

	missingZero = regexp.MustCompile(`\$\.(\d)`)
)

// AddZero rewrites "$.x" (x a digit) to "$0.x". Some banks drop the leading
// zero for amounts under a dollar.
//
// Examples:
//
//	AddZero("paid $.12")  -> "paid $0.12"
//	AddZero("paid $1.05") -> "paid $1.05"
//	AddZero("ends with $.") -> "ends with $."
func AddZero(s string) string {
	return missingZero.ReplaceAllString(s, "$$0.$1")
}

// Find returns the first dollar amount in s.
func Find(s string) (string, bool) {
	match := Pattern.FindString(s)
	return match, match != ""
}

// StripCommas removes thousands separators.
func StripCommas(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

// Parse converts a ledger amount such as "$1,234.56", "-$5" or "$-5" to a decimal.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}
	if !strings.HasPrefix(s, "$") {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	s = StripCommas(s[1:])
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = s[1:]
	}
	if s == "" || strings.HasPrefix(s, "-") {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
