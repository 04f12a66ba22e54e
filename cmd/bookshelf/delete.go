// Delete command permanently removes a book the caller owns.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete BOOK_ID",
	Short: "Delete a book you own",
	Long: `Delete permanently removes a book. Only the book's owner may delete
it, and the freed id is never reused.

Example:
  bookshelf delete 1`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	caller, err := resolveAccount()
	if err != nil {
		return err
	}

	shelf, err := attachShelf()
	if err != nil {
		return err
	}
	defer shelf.Detach()

	book, err := shelf.DeleteBook(caller, args[0])
	if err != nil {
		return fmt.Errorf("delete book %s: %w", args[0], err)
	}

	if flagJSON {
		return printJSON(book)
	}
	fmt.Printf("Deleted book %s: %s\n", book.BookID, book.Title)
	return nil
}
