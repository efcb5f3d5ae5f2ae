package alias

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// ErrMalformedOverride is returned for an override paragraph that cannot be applied.
var ErrMalformedOverride = errors.New("malformed alias override")

var overrideBreak = regexp.MustCompile(`\n\s*\n`)

// Override is one paragraph of the alias override file:
//
//	CANONICAL_PAYEE[|FORCED_CATEGORY]
//	raw alias 1
//	raw alias 2
type Override struct {
	Canonical      string
	ForcedCategory string
	Aliases        []string // raw, not yet normalized
}

// ParseOverride parses a single override paragraph.
func ParseOverride(paragraph string) (*Override, error) {
	lines := strings.Split(strings.TrimSpace(paragraph), "\n")

	header := strings.Split(strings.TrimSpace(lines[0]), "|")
	if len(header) > 2 {
		return nil, fmt.Errorf("%w: too many '|' in %q", ErrMalformedOverride, lines[0])
	}

	o := &Override{Canonical: strings.TrimSpace(header[0])}
	if o.Canonical == "" {
		return nil, fmt.Errorf("%w: missing canonical payee", ErrMalformedOverride)
	}
	if len(header) == 2 {
		o.ForcedCategory = strings.TrimSpace(header[1])
		if o.ForcedCategory == "" {
			return nil, fmt.Errorf("%w: empty forced category for %q", ErrMalformedOverride, o.Canonical)
		}
	}

	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if Normalize(line) == "" {
			return nil, fmt.Errorf("%w: alias %q has no letters or digits", ErrMalformedOverride, line)
		}
		o.Aliases = append(o.Aliases, line)
	}

	return o, nil
}

// Apply adds the override's aliases to the registry and forces its category.
func (o *Override) Apply(r *Registry) {
	g := r.Group(o.Canonical)
	g.AddAlias(Normalize(o.Canonical))
	for _, raw := range o.Aliases {
		g.AddAlias(Normalize(raw))
	}
	if o.ForcedCategory != "" {
		g.ForceCategory(o.ForcedCategory)
	}
}

// ApplyOverrides applies every paragraph of an override file in order.
// Malformed paragraphs are logged, skipped and returned.
func (r *Registry) ApplyOverrides(text string) []error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var errs []error
	for i, paragraph := range overrideBreak.Split(text, -1) {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		o, err := ParseOverride(paragraph)
		if err != nil {
			slog.Warn("Skipping alias override", "paragraph", i, "error", err)
			errs = append(errs, fmt.Errorf("paragraph %d: %w", i, err))
			continue
		}
		o.Apply(r)
	}

	return errs
}
