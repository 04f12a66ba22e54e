// Get command retrieves a single book by id.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get BOOK_ID",
	Short: "Show a book by id",
	Long: `Get retrieves a single book by its id.

Example:
  bookshelf get 1
  bookshelf get 1 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	shelf, err := attachShelf()
	if err != nil {
		return err
	}
	defer shelf.Detach()

	book, err := shelf.GetBook(args[0])
	if err != nil {
		return fmt.Errorf("get book %s: %w", args[0], err)
	}

	if flagJSON {
		return printJSON(book)
	}
	printBook(book)
	return nil
}
