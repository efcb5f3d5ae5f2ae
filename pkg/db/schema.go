// Package db provides SQLite storage for import history and alias snapshots.
package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Import history
-- One row per notification seen by the importer, keyed by a content hash
CREATE TABLE IF NOT EXISTS import_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    hash TEXT NOT NULL UNIQUE,         -- sha256 of package, title, text and big text
    package TEXT NOT NULL,
    title TEXT NOT NULL,
    status TEXT NOT NULL,              -- 'written', 'debug', 'suppressed', 'unrouted', 'unrecoverable'
    payee TEXT NOT NULL DEFAULT '',
    amount TEXT NOT NULL DEFAULT '',
    ledger_file TEXT NOT NULL DEFAULT '',
    imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_import_history_status
    ON import_history(status);

-- Alias snapshot
-- The last rebuilt alias registry, one row per payee group
CREATE TABLE IF NOT EXISTS alias_groups (
    canonical TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    most_used TEXT NOT NULL DEFAULT '',
    forced TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS alias_entries (
    canonical TEXT NOT NULL REFERENCES alias_groups(canonical) ON DELETE CASCADE,
    alias TEXT NOT NULL,
    PRIMARY KEY (canonical, alias)
);

CREATE TABLE IF NOT EXISTS alias_categories (
    canonical TEXT NOT NULL REFERENCES alias_groups(canonical) ON DELETE CASCADE,
    category TEXT NOT NULL,
    count INTEGER NOT NULL,
    PRIMARY KEY (canonical, category)
);

-- Key-value metadata
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.db.Exec(Schema); err != nil {
		return err
	}
	return nil
}
