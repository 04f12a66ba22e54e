// Add command creates a new book owned by the caller.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emarai/bookshelf/pkg/types"
)

var (
	addTitle       string
	addDescription string
	addStatus      string
	addImage       string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new book to your shelf",
	Long: `Add creates a new book owned by the calling account.

The book starts with status "list" unless --status is given.

Example:
  bookshelf add --title "Motorcycle Mechanics 101"
  bookshelf add --title "Dune" --status reading --image https://example.com/dune.png
  bookshelf add --title "Hyperion" --json`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addTitle, "title", "", "book title (required)")
	addCmd.Flags().StringVar(&addDescription, "description", "", "book description")
	addCmd.Flags().StringVar(&addStatus, "status", "", "initial status: list, reading, or read (default: list)")
	addCmd.Flags().StringVar(&addImage, "image", "", "cover image URL")
	_ = addCmd.MarkFlagRequired("title")
}

func runAdd(cmd *cobra.Command, args []string) error {
	caller, err := resolveAccount()
	if err != nil {
		return err
	}

	shelf, err := attachShelf()
	if err != nil {
		return err
	}
	defer shelf.Detach()

	book := &types.Book{
		Title:       addTitle,
		Description: addDescription,
		Status:      addStatus,
		Image:       addImage,
	}

	id, err := shelf.AddBook(caller, book)
	if err != nil {
		return fmt.Errorf("add book: %w", err)
	}

	if flagJSON {
		return printJSON(book)
	}
	fmt.Printf("Added book %s: %s\n", id, book.Title)
	return nil
}
