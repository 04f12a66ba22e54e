package types

import "errors"

// List pagination bounds. Limit is clamped to MaxListLimit so a single
// call cannot produce an unbounded result.
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// ListQuery selects a page of books. When AccountID is non-empty only that
// owner's books are considered; Skip and Limit apply after the filter.
type ListQuery struct {
	AccountID string
	Skip      int
	Limit     int
}

// Validate checks the query bounds. A zero Limit is replaced by
// DefaultListLimit; a Limit above MaxListLimit is clamped.
func (q *ListQuery) Validate() error {
	if q.Skip < 0 {
		return ErrInvalidSkip
	}
	if q.Limit < 0 {
		return ErrInvalidLimit
	}
	if q.Limit == 0 {
		q.Limit = DefaultListLimit
	}
	if q.Limit > MaxListLimit {
		q.Limit = MaxListLimit
	}
	return nil
}

// Event records a single successful mutation against the shelf.
type Event struct {
	EventID   string `json:"event_id"` // UUID v7, generated when recorded.
	Op        string `json:"op"`       // "add", "update", or "delete".
	BookID    string `json:"book_id"`
	AccountID string `json:"account_id"` // Caller that performed the mutation.
	CreatedAt string `json:"created_at"` // RFC 3339.
}

// Shelf defines the interface for backend-agnostic book storage.
// Callers attach to a backend, perform operations, and detach when done.
// Mutating operations take the caller identity supplied by the host
// environment; it is never part of the book input itself.
type Shelf interface {
	// Attach connects the Shelf to the backend described by config.
	// Creates the DataDir if it does not exist.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations return ErrShelfDetached.
	Detach() error

	// AddBook stores a new book owned by caller and returns its id.
	// Ids are decimal strings issued in strictly increasing order and are
	// never reused, even after deletion.
	AddBook(caller string, book *Book) (string, error)

	// UpdateBook overwrites the fields carried by patch on the book with
	// the given id. Returns ErrNotFound if the id is absent and
	// ErrUnauthorized if caller is not the owner; the book is unchanged
	// on any error. Returns the updated book.
	UpdateBook(caller, bookID string, patch BookPatch) (*Book, error)

	// DeleteBook removes the book permanently and returns it.
	// Returns ErrNotFound if the id is absent and ErrUnauthorized if
	// caller is not the owner.
	DeleteBook(caller, bookID string) (*Book, error)

	// GetBook retrieves the book with the given id.
	// Returns ErrNotFound if no book exists with that id. Read-only.
	GetBook(bookID string) (*Book, error)

	// ListBooks returns books in insertion order (ascending id), filtered
	// and paged by the query. An out-of-range skip yields an empty,
	// non-nil slice. Read-only.
	ListBooks(query ListQuery) ([]*Book, error)

	// ListEvents returns the recorded mutations, newest first. When
	// bookID is non-empty only that book's events are returned.
	ListEvents(bookID string) ([]*Event, error)
}

// Shelf lifecycle errors.
var (
	ErrShelfDetached   = errors.New("shelf is detached")
	ErrAlreadyAttached = errors.New("shelf is already attached")
)

// Operation errors.
var (
	ErrNotFound      = errors.New("book not found")
	ErrUnauthorized  = errors.New("caller does not own this book")
	ErrInvalidID     = errors.New("invalid book ID")
	ErrEmptyCaller   = errors.New("caller identity cannot be empty")
	ErrEmptyTitle    = errors.New("title cannot be empty")
	ErrInvalidStatus = errors.New("invalid status value")
	ErrInvalidSkip   = errors.New("skip cannot be negative")
	ErrInvalidLimit  = errors.New("limit cannot be negative")
)
