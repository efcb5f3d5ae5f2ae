package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/millspills/ledgercli/pkg/alias"
)

// AliasSnapshot persists the most recently rebuilt alias registry so other
// commands can use it without re-reading the ledger.
type AliasSnapshot struct {
	conn *Connection
}

// NewAliasSnapshot creates a new AliasSnapshot instance.
func NewAliasSnapshot(conn *Connection) *AliasSnapshot {
	return &AliasSnapshot{conn: conn}
}

// Save replaces the stored snapshot with r.
func (s *AliasSnapshot) Save(ctx context.Context, r *alias.Registry) error {
	return s.conn.Transaction(ctx, func(tx *sql.Tx) error {
		// entries and categories cascade
		if _, err := tx.ExecContext(ctx, `DELETE FROM alias_groups`); err != nil {
			return fmt.Errorf("failed to clear alias snapshot: %w", err)
		}

		for position, canonical := range r.Payees() {
			g, _ := r.Lookup(canonical)

			if _, err := tx.ExecContext(ctx,
				`INSERT INTO alias_groups (canonical, position, most_used, forced) VALUES (?, ?, ?, ?)`,
				canonical, position, g.MostUsed(), g.Forced(),
			); err != nil {
				return fmt.Errorf("failed to save group %q: %w", canonical, err)
			}

			for _, a := range g.Aliases() {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO alias_entries (canonical, alias) VALUES (?, ?)`,
					canonical, a,
				); err != nil {
					return fmt.Errorf("failed to save alias %q: %w", a, err)
				}
			}

			for category, count := range g.Categories() {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO alias_categories (canonical, category, count) VALUES (?, ?, ?)`,
					canonical, category, count,
				); err != nil {
					return fmt.Errorf("failed to save category %q: %w", category, err)
				}
			}
		}

		return nil
	})
}

// Load reads the stored snapshot. An empty registry is returned if nothing was saved.
func (s *AliasSnapshot) Load(ctx context.Context) (*alias.Registry, error) {
	type groupRow struct {
		canonical string
		mostUsed  string
		forced    string
	}

	rows, err := s.conn.QueryContext(ctx, `SELECT canonical, most_used, forced FROM alias_groups ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load alias groups: %w", err)
	}
	var groups []groupRow
	for rows.Next() {
		var g groupRow
		if err := rows.Scan(&g.canonical, &g.mostUsed, &g.forced); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan alias group: %w", err)
		}
		groups = append(groups, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read alias groups: %w", err)
	}

	aliases := make(map[string][]string)
	rows, err = s.conn.QueryContext(ctx, `SELECT canonical, alias FROM alias_entries`)
	if err != nil {
		return nil, fmt.Errorf("failed to load aliases: %w", err)
	}
	for rows.Next() {
		var canonical, a string
		if err := rows.Scan(&canonical, &a); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan alias: %w", err)
		}
		aliases[canonical] = append(aliases[canonical], a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read aliases: %w", err)
	}

	categories := make(map[string]map[string]int)
	rows, err = s.conn.QueryContext(ctx, `SELECT canonical, category, count FROM alias_categories`)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	for rows.Next() {
		var canonical, category string
		var count int
		if err := rows.Scan(&canonical, &category, &count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if categories[canonical] == nil {
			categories[canonical] = make(map[string]int)
		}
		categories[canonical][category] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	r := alias.NewRegistry()
	for _, g := range groups {
		r.Put(g.canonical, alias.RestoreGroup(aliases[g.canonical], categories[g.canonical], g.mostUsed, g.forced))
	}

	return r, nil
}
