package importer

import (
	"log/slog"

	"github.com/millspills/ledgercli/pkg/alias"
	"github.com/millspills/ledgercli/pkg/notification"
)

// Resolve replaces the draft's payee with the canonical name of the first
// alias group it matches and takes that group's category guess. Drafts
// without a payee are returned unchanged.
func Resolve(d notification.Draft, r *alias.Registry) notification.Draft {
	if r == nil || d.Payee == "" {
		return d
	}

	canonical, g, ok := r.Match(d.Payee)
	if !ok {
		return d
	}
	slog.Debug("Found alias", "payee", d.Payee, "canonical", canonical)
	d.Payee = canonical

	category, found, confident := g.Resolve()
	if found {
		d.Category = category
	}
	d.Confident = confident
	slog.Debug("Resolved category", "category", d.Category, "confident", confident)

	return d
}
