// Package ledger persists the set of entry IDs already emitted per feed
// source, so reruns never reprocess an entry.
package ledger

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteLedger records emitted entry IDs in a SQLite table, scoped per feed
// source so two feeds never collide.
type SQLiteLedger struct {
	db *sql.DB
}

// NewSQLiteLedger opens the database and ensures the seen_entries table
// exists. The same database file may be shared with the postings store.
func NewSQLiteLedger(db *sql.DB) (*SQLiteLedger, error) {
	createTable := `CREATE TABLE IF NOT EXISTS seen_entries (
		source     TEXT NOT NULL,
		entry_id   TEXT NOT NULL,
		first_seen DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (source, entry_id)
	)`
	if _, err := db.Exec(createTable); err != nil {
		return nil, fmt.Errorf("creating seen_entries table: %w", err)
	}
	return &SQLiteLedger{db: db}, nil
}

// HasSeen returns true if the entry ID has already been recorded for source.
func (l *SQLiteLedger) HasSeen(source, id string) (bool, error) {
	var exists int
	err := l.db.QueryRow(
		"SELECT 1 FROM seen_entries WHERE source = ? AND entry_id = ?",
		source, id,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking seen status for %s/%s: %w", source, id, err)
	}
	return true, nil
}

// Record marks an entry ID as emitted for source. Recording the same ID
// twice is a no-op.
func (l *SQLiteLedger) Record(source, id string) error {
	_, err := l.db.Exec(
		"INSERT OR IGNORE INTO seen_entries (source, entry_id) VALUES (?, ?)",
		source, id,
	)
	if err != nil {
		return fmt.Errorf("recording %s/%s: %w", source, id, err)
	}
	return nil
}

// Cleanup deletes ledger entries older than the given duration. Optional:
// IDs otherwise accumulate forever, which is acceptable for feed-sized
// inputs.
func (l *SQLiteLedger) Cleanup(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	_, err := l.db.Exec("DELETE FROM seen_entries WHERE first_seen < ?", cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up entries older than %v: %w", olderThan, err)
	}
	return nil
}
