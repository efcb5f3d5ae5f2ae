package alias

import (
	"strings"

	"github.com/millspills/ledgercli/pkg/ledger"
)

// expenseMarker selects which account lines count toward a payee's category.
const expenseMarker = "Expenses"

// Registry maps canonical payee names to their groups. Iteration follows
// insertion order.
type Registry struct {
	groups map[string]*Group
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{groups: make(map[string]*Group)}
}

// Group returns the group for a canonical payee, creating it if needed.
func (r *Registry) Group(canonical string) *Group {
	if g, ok := r.groups[canonical]; ok {
		return g
	}
	g := NewGroup()
	r.Put(canonical, g)
	return g
}

// Lookup returns the group for a canonical payee if it exists.
func (r *Registry) Lookup(canonical string) (*Group, bool) {
	g, ok := r.groups[canonical]
	return g, ok
}

// Put stores g under canonical, replacing any existing group.
func (r *Registry) Put(canonical string, g *Group) {
	if _, ok := r.groups[canonical]; !ok {
		r.order = append(r.order, canonical)
	}
	r.groups[canonical] = g
}

// Payees returns the canonical names in insertion order.
func (r *Registry) Payees() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of canonical payees.
func (r *Registry) Len() int {
	return len(r.order)
}

// Learn records every transaction of a ledger: each payee aliases itself and
// every Expenses account line counts toward that payee's categories.
func (r *Registry) Learn(file *ledger.File) {
	for _, txn := range file.Transactions {
		payee := txn.Title.Payee
		g := r.Group(payee)
		g.AddAlias(Normalize(payee))

		for _, account := range txn.Accounts {
			if strings.Contains(account.Account, expenseMarker) {
				g.CountCategory(account.Account, 1)
			}
		}
	}
}

// Match finds the canonical payee whose aliases occur in the normalized payee.
// The first match in registry order wins.
func (r *Registry) Match(payee string) (string, *Group, bool) {
	normalized := Normalize(payee)
	for _, canonical := range r.order {
		g := r.groups[canonical]
		for _, a := range g.Aliases() {
			if strings.Contains(normalized, a) {
				return canonical, g, true
			}
		}
	}
	return "", nil, false
}

// Rebuild creates a registry from scratch: ledger history first, then the
// override file. Skipped ledger blocks and malformed override paragraphs are
// returned, never fatal.
func Rebuild(ledgerText, overrideText string) (*Registry, []error) {
	file, skipped := ledger.Parse(ledgerText)

	var errs []error
	for _, blockErr := range skipped {
		errs = append(errs, blockErr)
	}

	r := NewRegistry()
	r.Learn(file)
	errs = append(errs, r.ApplyOverrides(overrideText)...)

	return r, errs
}
