// Package alias learns which noisy merchant names belong to which payee and
// which expense category each payee usually lands in.
package alias

import (
	"regexp"
	"sort"
	"strings"
)

// ConfidenceThreshold is the share of a payee's postings the most used
// category must exceed before a guess is considered confident.
const ConfidenceThreshold = 0.8

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize lowercases s and drops everything outside [a-z0-9].
// "ROB'S NF #7076" becomes "robsnf7076".
func Normalize(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "")
}

// Group is the learned state of one canonical payee.
type Group struct {
	aliases    map[string]struct{}
	categories map[string]int
	total      int
	mostUsed   string
	forced     string
}

// NewGroup creates a group holding the given normalized aliases.
func NewGroup(aliases ...string) *Group {
	g := &Group{
		aliases:    make(map[string]struct{}),
		categories: make(map[string]int),
	}
	for _, a := range aliases {
		g.AddAlias(a)
	}
	return g
}

// RestoreGroup rebuilds a group from persisted state.
func RestoreGroup(aliases []string, categories map[string]int, mostUsed, forced string) *Group {
	g := NewGroup(aliases...)
	for category, count := range categories {
		if count < 1 {
			continue
		}
		g.categories[category] = count
		g.total += count
	}
	if _, ok := g.categories[mostUsed]; ok {
		g.mostUsed = mostUsed
	}
	g.forced = forced
	return g
}

// AddAlias adds a normalized alias. Adding an existing alias is a no-op.
// Empty aliases are ignored since they would match every payee.
func (g *Group) AddAlias(alias string) {
	if alias == "" {
		return
	}
	g.aliases[alias] = struct{}{}
}

// Aliases returns the aliases in lexical order.
func (g *Group) Aliases() []string {
	result := make([]string, 0, len(g.aliases))
	for a := range g.aliases {
		result = append(result, a)
	}
	sort.Strings(result)
	return result
}

// CountCategory records n more postings to category. Non-positive counts are
// ignored so the total never decreases.
func (g *Group) CountCategory(category string, n int) {
	if n < 1 || category == "" {
		return
	}
	g.categories[category] += n
	g.total += n

	// >= so that the most recent category wins a tie.
	if g.categories[category] >= g.categories[g.mostUsed] {
		g.mostUsed = category
	}
}

// Categories returns a copy of the per-category counts.
func (g *Group) Categories() map[string]int {
	result := make(map[string]int, len(g.categories))
	for k, v := range g.categories {
		result[k] = v
	}
	return result
}

// Total returns the number of counted postings.
func (g *Group) Total() int {
	return g.total
}

// MostUsed returns the category with the highest count, or "" if none.
func (g *Group) MostUsed() string {
	return g.mostUsed
}

// ForceCategory overrides the learned category.
func (g *Group) ForceCategory(category string) {
	g.forced = category
}

// Forced returns the operator override, or "".
func (g *Group) Forced() string {
	return g.forced
}

// Resolve returns the category to assign to a new transaction for this payee.
// ok is false when nothing has been counted and no category is forced; in that
// case confident is true since there is no guess to doubt.
func (g *Group) Resolve() (category string, ok bool, confident bool) {
	if g.forced != "" {
		return g.forced, true, true
	}
	if g.mostUsed == "" {
		return "", false, true
	}

	share := float64(g.categories[g.mostUsed]) / float64(g.total)
	return g.mostUsed, true, share > ConfidenceThreshold
}
