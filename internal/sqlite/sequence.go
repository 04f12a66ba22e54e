// Persistent id allocation for books. Ids are issued from a monotonic
// counter that survives restarts and is never rolled back, so an id is
// never reused even after the book it named is deleted.
package sqlite

import (
	"database/sql"
	"fmt"
	"strconv"
)

// bookSequence is the shelf_sequence row that backs book id allocation.
const bookSequence = "book_id"

// seedSequence inserts the book id counter row if it is absent, starting
// the sequence at 1. An existing row (loaded from sequence.jsonl) wins.
func seedSequence(db *sql.DB) error {
	_, err := db.Exec(
		"INSERT OR IGNORE INTO shelf_sequence (name, next_id) VALUES (?, 1)",
		bookSequence,
	)
	if err != nil {
		return fmt.Errorf("seeding %s sequence: %w", bookSequence, err)
	}
	return nil
}

// nextBookID issues the next book id inside the given transaction: it
// returns the current counter value as a decimal string and increments
// the counter. The increment commits or rolls back with the enclosing
// mutation.
func nextBookID(tx *sql.Tx) (string, error) {
	var next uint64
	err := tx.QueryRow(
		"SELECT next_id FROM shelf_sequence WHERE name = ?", bookSequence,
	).Scan(&next)
	if err != nil {
		return "", fmt.Errorf("reading %s sequence: %w", bookSequence, err)
	}

	_, err = tx.Exec(
		"UPDATE shelf_sequence SET next_id = next_id + 1 WHERE name = ?",
		bookSequence,
	)
	if err != nil {
		return "", fmt.Errorf("advancing %s sequence: %w", bookSequence, err)
	}

	return strconv.FormatUint(next, 10), nil
}
