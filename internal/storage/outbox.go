// ABOUTME: Outbox persistence for requests that failed and should be retried.
// ABOUTME: Entries are listed oldest first by their ULID.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/fitforge/internal/models"
)

// EnqueueOutbox stores a new outbox entry.
func (d *DB) EnqueueOutbox(e *models.OutboxEntry) error {
	_, err := d.db.Exec(`
		INSERT INTO outbox (id, kind, payload, attempts, last_error, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Kind), string(e.Payload), e.Attempts, nullString(e.LastError),
		e.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// UpdateOutbox records another attempt on an existing entry.
func (d *DB) UpdateOutbox(e *models.OutboxEntry) error {
	result, err := d.db.Exec(`UPDATE outbox SET attempts = ?, last_error = ? WHERE id = ?`,
		e.Attempts, nullString(e.LastError), e.ID)
	if err != nil {
		return fmt.Errorf("update outbox entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListOutbox returns all pending entries, oldest first.
func (d *DB) ListOutbox() ([]*models.OutboxEntry, error) {
	rows, err := d.db.Query(`
		SELECT id, kind, payload, attempts, last_error, created_at
		FROM outbox ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var entries []*models.OutboxEntry
	for rows.Next() {
		var e models.OutboxEntry
		var kind, payload, createdAt string
		var lastError sql.NullString
		if err := rows.Scan(&e.ID, &kind, &payload, &e.Attempts, &lastError, &createdAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		e.Kind = models.OutboxKind(kind)
		e.Payload = []byte(payload)
		if lastError.Valid {
			e.LastError = lastError.String
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// DeleteOutbox removes an entry once it has been delivered.
func (d *DB) DeleteOutbox(id string) error {
	result, err := d.db.Exec(`DELETE FROM outbox WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete outbox entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
