// Book operations for the SQLite backend. Each mutation runs inside a
// single transaction, enforces ownership before touching any row, and
// mirrors the committed state to books.jsonl atomically.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/emarai/bookshelf/pkg/types"
)

const bookColumns = "book_id, account_id, title, description, status, image, created_at, updated_at"

// AddBook allocates the next id, stores a book owned by caller, and
// returns the new id. The input book's id, owner, and timestamps are
// overwritten; title must be non-empty and status, when supplied, must be
// a recognized value. An empty status defaults to "list".
func (b *Backend) AddBook(caller string, book *types.Book) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return "", types.ErrShelfDetached
	}
	if caller == "" {
		return "", types.ErrEmptyCaller
	}
	if book == nil || book.Title == "" {
		return "", types.ErrEmptyTitle
	}
	if book.Status == "" {
		book.Status = types.StatusList
	}
	if !types.ValidStatus(book.Status) {
		return "", types.ErrInvalidStatus
	}

	now := time.Now().UTC()

	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	bookID, err := nextBookID(tx)
	if err != nil {
		return "", err
	}

	_, err = tx.Exec(
		"INSERT INTO books ("+bookColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		bookID, caller, book.Title, book.Description, book.Status, book.Image,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("inserting book: %w", err)
	}

	if err := recordEvent(tx, opAdd, bookID, caller, now); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing book: %w", err)
	}

	book.BookID = bookID
	book.AccountID = caller
	book.CreatedAt = now
	book.UpdatedAt = now

	if err := b.persistBooksJSONL(); err != nil {
		return "", fmt.Errorf("persisting %s: %w", booksJSONL, err)
	}
	if err := b.persistSequenceJSONL(); err != nil {
		return "", fmt.Errorf("persisting %s: %w", sequenceJSONL, err)
	}
	if err := b.persistEventsJSONL(); err != nil {
		return "", fmt.Errorf("persisting %s: %w", eventsJSONL, err)
	}

	return bookID, nil
}

// UpdateBook overwrites the fields carried by patch on the given book.
// Returns ErrNotFound for an unknown id and ErrUnauthorized when caller is
// not the owner; the stored book is unchanged on any error.
func (b *Backend) UpdateBook(caller, bookID string, patch types.BookPatch) (*types.Book, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrShelfDetached
	}
	if caller == "" {
		return nil, types.ErrEmptyCaller
	}
	if bookID == "" {
		return nil, types.ErrInvalidID
	}

	book, err := b.getBookLocked(bookID)
	if err != nil {
		return nil, err
	}
	if book.AccountID != caller {
		return nil, types.ErrUnauthorized
	}

	if err := patch.Apply(book); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	book.UpdatedAt = now

	tx, err := b.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"UPDATE books SET title = ?, description = ?, status = ?, image = ?, updated_at = ? WHERE book_id = ?",
		book.Title, book.Description, book.Status, book.Image,
		now.Format(time.RFC3339), bookID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating book %s: %w", bookID, err)
	}

	if err := recordEvent(tx, opUpdate, bookID, caller, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing book update: %w", err)
	}

	if err := b.persistBooksJSONL(); err != nil {
		return nil, fmt.Errorf("persisting %s: %w", booksJSONL, err)
	}
	if err := b.persistEventsJSONL(); err != nil {
		return nil, fmt.Errorf("persisting %s: %w", eventsJSONL, err)
	}

	return book, nil
}

// DeleteBook removes the book permanently and returns it. The freed id is
// never reissued. Returns ErrNotFound for an unknown id and
// ErrUnauthorized when caller is not the owner.
func (b *Backend) DeleteBook(caller, bookID string) (*types.Book, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrShelfDetached
	}
	if caller == "" {
		return nil, types.ErrEmptyCaller
	}
	if bookID == "" {
		return nil, types.ErrInvalidID
	}

	book, err := b.getBookLocked(bookID)
	if err != nil {
		return nil, err
	}
	if book.AccountID != caller {
		return nil, types.ErrUnauthorized
	}

	now := time.Now().UTC()

	tx, err := b.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM books WHERE book_id = ?", bookID); err != nil {
		return nil, fmt.Errorf("deleting book %s: %w", bookID, err)
	}

	if err := recordEvent(tx, opDelete, bookID, caller, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing book deletion: %w", err)
	}

	if err := b.persistBooksJSONL(); err != nil {
		return nil, fmt.Errorf("persisting %s: %w", booksJSONL, err)
	}
	if err := b.persistEventsJSONL(); err != nil {
		return nil, fmt.Errorf("persisting %s: %w", eventsJSONL, err)
	}

	return book, nil
}

// GetBook retrieves a book by id. Read-only.
func (b *Backend) GetBook(bookID string) (*types.Book, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrShelfDetached
	}
	if bookID == "" {
		return nil, types.ErrInvalidID
	}

	return b.getBookLocked(bookID)
}

// ListBooks returns books in insertion order (ascending id). When the
// query names an account, only that owner's books are considered before
// skip and limit apply. An out-of-range skip yields an empty slice.
func (b *Backend) ListBooks(query types.ListQuery) ([]*types.Book, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrShelfDetached
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := "SELECT " + bookColumns + " FROM books"
	var args []any
	if query.AccountID != "" {
		sqlQuery += " WHERE account_id = ?"
		args = append(args, query.AccountID)
	}
	// Ids are decimal strings; cast so "10" sorts after "9".
	sqlQuery += " ORDER BY CAST(book_id AS INTEGER) ASC LIMIT ? OFFSET ?"
	args = append(args, query.Limit, query.Skip)

	rows, err := b.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching books: %w", err)
	}
	defer rows.Close()

	books := []*types.Book{}
	for rows.Next() {
		book, err := hydrateBookFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating book: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}

	return books, nil
}

// getBookLocked retrieves a book by id. The caller must hold b.mu.
func (b *Backend) getBookLocked(bookID string) (*types.Book, error) {
	row := b.db.QueryRow(
		"SELECT "+bookColumns+" FROM books WHERE book_id = ?", bookID,
	)
	book, err := hydrateBook(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting book %s: %w", bookID, err)
	}
	return book, nil
}

// scanner abstracts sql.Row and sql.Rows for hydration.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateBook converts a single SQLite row into a *types.Book.
func hydrateBook(row *sql.Row) (*types.Book, error) {
	return scanBook(row)
}

// hydrateBookFromRows converts a row from sql.Rows into a *types.Book.
func hydrateBookFromRows(rows *sql.Rows) (*types.Book, error) {
	return scanBook(rows)
}

func scanBook(s scanner) (*types.Book, error) {
	var book types.Book
	var createdAt, updatedAt string
	err := s.Scan(
		&book.BookID, &book.AccountID, &book.Title, &book.Description,
		&book.Status, &book.Image, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	book.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	book.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &book, nil
}

// bookJSONLRecord matches the JSONL format for books.
type bookJSONLRecord struct {
	BookID      string `json:"book_id"`
	AccountID   string `json:"account_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Image       string `json:"image"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// persistBooksJSONL reads all books from SQLite and writes them to
// books.jsonl using the atomic write pattern.
func (b *Backend) persistBooksJSONL() error {
	rows, err := b.db.Query(
		"SELECT " + bookColumns + " FROM books ORDER BY CAST(book_id AS INTEGER) ASC",
	)
	if err != nil {
		return fmt.Errorf("querying books for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec bookJSONLRecord
		err := rows.Scan(
			&rec.BookID, &rec.AccountID, &rec.Title, &rec.Description,
			&rec.Status, &rec.Image, &rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("scanning book for JSONL: %w", err)
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling book for JSONL: %w", err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating books for JSONL: %w", err)
	}

	return writeJSONL(filepath.Join(b.config.DataDir, booksJSONL), records)
}
