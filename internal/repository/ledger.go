package repository

import (
	"context"
	"fmt"

	"github.com/koolexil/koolbot/internal/models"
)

// Ledger is the append-only store of billing-affecting actions.
// Entries are never mutated or deleted.
type Ledger struct {
	db Database
}

// NewLedger creates a new Ledger over the given database.
func NewLedger(db Database) *Ledger {
	return &Ledger{db: db}
}

// EnsureSchema creates the activity table when it does not exist yet.
func (l *Ledger) EnsureSchema(ctx context.Context) error {
	_, err := l.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS activity_log (
			id BIGSERIAL PRIMARY KEY,
			ts TIMESTAMPTZ NOT NULL,
			username TEXT NOT NULL,
			action TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			meter TEXT NOT NULL DEFAULT '',
			subscriber TEXT NOT NULL DEFAULT ''
		)`)
	if err != nil {
		return fmt.Errorf("failed to create activity_log table: %w", err)
	}
	return nil
}

// Append records one action.
func (l *Ledger) Append(ctx context.Context, entry models.LedgerEntry) error {
	_, err := l.db.Exec(
		ctx,
		"INSERT INTO activity_log (ts, username, action, amount, meter, subscriber) VALUES ($1, $2, $3, $4, $5, $6)",
		entry.Timestamp, entry.User, entry.Action, entry.Amount, entry.Meter, entry.Subscriber,
	)
	if err != nil {
		return fmt.Errorf("failed to append activity entry: %w", err)
	}
	return nil
}

// List returns every recorded entry ordered by timestamp.
func (l *Ledger) List(ctx context.Context) ([]models.LedgerEntry, error) {
	rows, err := l.db.Query(
		ctx,
		"SELECT ts, username, action, amount, meter, subscriber FROM activity_log ORDER BY ts",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var entry models.LedgerEntry
		if err = rows.Scan(
			&entry.Timestamp, &entry.User, &entry.Action, &entry.Amount, &entry.Meter, &entry.Subscriber,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity entries: %w", err)
	}

	return entries, nil
}
