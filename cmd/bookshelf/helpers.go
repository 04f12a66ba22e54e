// Shared helpers for bookshelf CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/emarai/bookshelf/internal/sqlite"
	"github.com/emarai/bookshelf/pkg/types"
)

// attachShelf resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer shelf.Detach().
func attachShelf() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}

	shelf := sqlite.NewBackend()
	if err := shelf.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return shelf, nil
}

// resolveAccount returns the caller identity following the precedence:
// --account flag > BOOKSHELF_ACCOUNT env > config.yaml account.
// An empty result is an error for mutating commands.
func resolveAccount() (string, error) {
	if flagAccount != "" {
		return flagAccount, nil
	}
	if env := os.Getenv("BOOKSHELF_ACCOUNT"); env != "" {
		return env, nil
	}
	if configAccount != "" {
		return configAccount, nil
	}
	return "", fmt.Errorf("no account identity: set --account, BOOKSHELF_ACCOUNT, or the account config key")
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// printBook prints a single book in a human-readable form.
func printBook(book *types.Book) {
	fmt.Printf("Book %s (%s)\n", book.BookID, book.Status)
	fmt.Printf("  Owner:       %s\n", book.AccountID)
	fmt.Printf("  Title:       %s\n", book.Title)
	if book.Description != "" {
		fmt.Printf("  Description: %s\n", book.Description)
	}
	if book.Image != "" {
		fmt.Printf("  Image:       %s\n", book.Image)
	}
	fmt.Printf("  Added:       %s\n", book.CreatedAt.Format("2006-01-02"))
}

// printBookTable prints books in a human-readable table format.
func printBookTable(books []*types.Book) {
	if len(books) == 0 {
		fmt.Println("No books found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tOWNER\tADDED")
	fmt.Fprintln(w, "--\t-----\t------\t-----\t-----")
	for _, book := range books {
		title := book.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			book.BookID,
			title,
			book.Status,
			book.AccountID,
			book.CreatedAt.Format("2006-01-02"),
		)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(output, "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d book(s)\n", len(books))
}
