// JSONL loading for startup. The database is rebuilt from the JSONL files
// on every Attach; loading is transactional and tolerant of malformed
// lines and unknown fields.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// jsonlTableMapping maps JSONL filenames to their SQLite tables and
// column lists.
var jsonlTableMapping = []struct {
	file    string
	table   string
	columns []string
}{
	{booksJSONL, "books", []string{"book_id", "account_id", "title", "description", "status", "image", "created_at", "updated_at"}},
	{sequenceJSONL, "shelf_sequence", []string{"name", "next_id"}},
	{eventsJSONL, "events", []string{"event_id", "op", "book_id", "account_id", "created_at"}},
}

// loadAllJSONL reads each JSONL file from dataDir and inserts records into
// the corresponding SQLite tables. Loading is transactional: all succeed
// or the database remains empty. Malformed lines are skipped; unknown
// fields in JSONL records are silently ignored.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, mapping := range jsonlTableMapping {
		path := filepath.Join(dataDir, mapping.file)
		records, err := readJSONL(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", mapping.file, err)
		}

		if len(records) == 0 {
			continue
		}

		if err := insertRecords(tx, mapping.table, mapping.columns, records); err != nil {
			return fmt.Errorf("loading %s into %s: %w", mapping.file, mapping.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}

	return nil
}

// insertRecords inserts parsed JSONL records into a SQLite table. Only the
// listed columns are extracted; extra fields do not cause errors.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) error {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	query := fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var fields map[string]any
		if err := json.Unmarshal(rec, &fields); err != nil {
			// Skip records that are valid JSON but not objects.
			continue
		}
		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = fields[col]
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("inserting %s record: %w", table, err)
		}
	}

	return nil
}
