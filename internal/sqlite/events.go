// Operation log. Every successful mutation records an event row in the
// same transaction, keyed by a UUID v7 so events sort by creation time.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emarai/bookshelf/pkg/types"
)

// Operation names recorded in the event log.
const (
	opAdd    = "add"
	opUpdate = "update"
	opDelete = "delete"
)

// recordEvent inserts an event row for a mutation inside its transaction.
func recordEvent(tx *sql.Tx, op, bookID, caller string, at time.Time) error {
	eventID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating event ID: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO events (event_id, op, book_id, account_id, created_at) VALUES (?, ?, ?, ?, ?)",
		eventID.String(), op, bookID, caller, at.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording %s event: %w", op, err)
	}
	return nil
}

// ListEvents returns the recorded mutations, newest first. When bookID is
// non-empty only that book's events are returned.
func (b *Backend) ListEvents(bookID string) ([]*types.Event, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrShelfDetached
	}

	query := "SELECT event_id, op, book_id, account_id, created_at FROM events"
	var args []any
	if bookID != "" {
		query += " WHERE book_id = ?"
		args = append(args, bookID)
	}
	// UUID v7 event ids are time-ordered; they break created_at ties.
	query += " ORDER BY created_at DESC, event_id DESC"

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}
	defer rows.Close()

	events := []*types.Event{}
	for rows.Next() {
		var e types.Event
		if err := rows.Scan(&e.EventID, &e.Op, &e.BookID, &e.AccountID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	return events, nil
}

// persistEventsJSONL writes all event rows to events.jsonl atomically.
func (b *Backend) persistEventsJSONL() error {
	return persistTableJSONL(b, "events", eventsJSONL, "created_at ASC, event_id ASC")
}

// persistSequenceJSONL writes the sequence rows to sequence.jsonl atomically.
func (b *Backend) persistSequenceJSONL() error {
	return persistTableJSONL(b, "shelf_sequence", sequenceJSONL, "name ASC")
}
