package sqlite

// Schema DDL for all tables.
const (
	createBooks = `CREATE TABLE books (
    book_id TEXT PRIMARY KEY,
    account_id TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    status TEXT NOT NULL,
    image TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createBooksOwnerIndex = `CREATE INDEX idx_books_account_id ON books(account_id);`

	createSequence = `CREATE TABLE shelf_sequence (
    name TEXT PRIMARY KEY,
    next_id INTEGER NOT NULL
);`

	createEvents = `CREATE TABLE events (
    event_id TEXT PRIMARY KEY,
    op TEXT NOT NULL,
    book_id TEXT NOT NULL,
    account_id TEXT NOT NULL,
    created_at TEXT NOT NULL
);`
)

// schemaSQL is the full schema executed on Attach.
const schemaSQL = createBooks + "\n" + createBooksOwnerIndex + "\n" +
	createSequence + "\n" + createEvents
