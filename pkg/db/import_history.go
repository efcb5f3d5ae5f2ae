package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ImportStatus records what the importer did with a notification.
type ImportStatus string

const (
	// StatusWritten means the draft was appended to the ledger.
	StatusWritten ImportStatus = "written"
	// StatusDebug means the draft only went to the debug log (test notification or prod mode off).
	StatusDebug ImportStatus = "debug"
	// StatusSuppressed means the notification was recognized and deliberately ignored.
	StatusSuppressed ImportStatus = "suppressed"
	// StatusUnrouted means no extractor handles the notification.
	StatusUnrouted ImportStatus = "unrouted"
	// StatusUnrecoverable means no dollar amount could be recovered.
	StatusUnrecoverable ImportStatus = "unrecoverable"
)

// ImportRecord is one row of import history.
type ImportRecord struct {
	ID         int64
	Hash       string
	Package    string
	Title      string
	Status     ImportStatus
	Payee      string
	Amount     string
	LedgerFile string
	ImportedAt time.Time
}

// ImportHistory remembers which notifications have already been imported.
type ImportHistory struct {
	conn *Connection
}

// NewImportHistory creates a new ImportHistory instance.
func NewImportHistory(conn *Connection) *ImportHistory {
	return &ImportHistory{conn: conn}
}

// RecordImport records the outcome for a notification.
// A record with the same hash is updated in place.
func (h *ImportHistory) RecordImport(ctx context.Context, record ImportRecord) error {
	query := `
		INSERT INTO import_history (hash, package, title, status, payee, amount, ledger_file)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO UPDATE SET
			status = excluded.status,
			payee = excluded.payee,
			amount = excluded.amount,
			ledger_file = excluded.ledger_file,
			imported_at = CURRENT_TIMESTAMP
	`

	_, err := h.conn.ExecContext(ctx, query,
		record.Hash,
		record.Package,
		record.Title,
		string(record.Status),
		record.Payee,
		record.Amount,
		record.LedgerFile,
	)
	if err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}

	return nil
}

// IsImported checks if a notification hash has been seen before.
func (h *ImportHistory) IsImported(ctx context.Context, hash string) (bool, error) {
	var count int
	err := h.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM import_history WHERE hash = ?`, hash).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check if imported: %w", err)
	}

	return count > 0, nil
}

// GetImportRecord retrieves a record by hash. It returns nil if none exists.
func (h *ImportHistory) GetImportRecord(ctx context.Context, hash string) (*ImportRecord, error) {
	query := `
		SELECT id, hash, package, title, status, payee, amount, ledger_file, imported_at
		FROM import_history
		WHERE hash = ?
	`

	var record ImportRecord
	var status string

	err := h.conn.QueryRowContext(ctx, query, hash).Scan(
		&record.ID,
		&record.Hash,
		&record.Package,
		&record.Title,
		&status,
		&record.Payee,
		&record.Amount,
		&record.LedgerFile,
		&record.ImportedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get import record: %w", err)
	}

	record.Status = ImportStatus(status)
	return &record, nil
}

// DeleteImportRecord forgets a notification so the next import processes it again.
func (h *ImportHistory) DeleteImportRecord(ctx context.Context, hash string) (bool, error) {
	result, err := h.conn.ExecContext(ctx, `DELETE FROM import_history WHERE hash = ?`, hash)
	if err != nil {
		return false, fmt.Errorf("failed to delete import record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// Stats represents import statistics.
type Stats struct {
	ByStatus   map[ImportStatus]int
	Total      int
	LastImport sql.NullString
}

// GetStats retrieves import statistics.
func (h *ImportHistory) GetStats(ctx context.Context) (*Stats, error) {
	stats := Stats{ByStatus: make(map[ImportStatus]int)}

	rows, err := h.conn.QueryContext(ctx, `SELECT status, COUNT(*) FROM import_history GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to get status counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		stats.ByStatus[ImportStatus(status)] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read status counts: %w", err)
	}

	err = h.conn.QueryRowContext(ctx, `SELECT MAX(imported_at) FROM import_history`).Scan(&stats.LastImport)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last import time: %w", err)
	}

	return &stats, nil
}

// GetMetadata retrieves a metadata value.
func (h *ImportHistory) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := h.conn.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}

	return value, nil
}

// SetMetadata sets a metadata value.
func (h *ImportHistory) SetMetadata(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO metadata (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := h.conn.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}

	return nil
}
