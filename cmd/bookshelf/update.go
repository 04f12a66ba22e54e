// Update command overwrites selected fields on a book the caller owns.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emarai/bookshelf/pkg/types"
)

var (
	updateTitle       string
	updateDescription string
	updateStatus      string
	updateImage       string
)

var updateCmd = &cobra.Command{
	Use:   "update BOOK_ID",
	Short: "Update fields on a book you own",
	Long: `Update overwrites only the fields given by flags; all other fields are
left unchanged. Only the book's owner may update it.

Example:
  bookshelf update 1 --status reading
  bookshelf update 1 --title "Dune (reread)" --status read`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "new description")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "new status: list, reading, or read")
	updateCmd.Flags().StringVar(&updateImage, "image", "", "new cover image URL")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	caller, err := resolveAccount()
	if err != nil {
		return err
	}

	// Only flags the user actually set become part of the patch, so an
	// empty --description clears the field but an omitted flag does not.
	var patch types.BookPatch
	if cmd.Flags().Changed("title") {
		patch.Title = &updateTitle
	}
	if cmd.Flags().Changed("description") {
		patch.Description = &updateDescription
	}
	if cmd.Flags().Changed("status") {
		patch.Status = &updateStatus
	}
	if cmd.Flags().Changed("image") {
		patch.Image = &updateImage
	}
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to update: give at least one of --title, --description, --status, --image")
	}

	shelf, err := attachShelf()
	if err != nil {
		return err
	}
	defer shelf.Detach()

	book, err := shelf.UpdateBook(caller, args[0], patch)
	if err != nil {
		return fmt.Errorf("update book %s: %w", args[0], err)
	}

	if flagJSON {
		return printJSON(book)
	}
	fmt.Printf("Updated book %s: %s (%s)\n", book.BookID, book.Title, book.Status)
	return nil
}
