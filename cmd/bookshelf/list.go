// List command pages through books, optionally filtered by owner.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emarai/bookshelf/pkg/types"
)

var (
	listOwner string
	listSkip  int
	listLimit int
	listMine  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List books in insertion order",
	Long: `List pages through books in insertion order (ascending id).

Use --owner to restrict to a single account's books, or --mine for the
calling account. Skip and limit apply after the owner filter.

Example:
  bookshelf list
  bookshelf list --owner gnaor.testnet --skip 1 --limit 1
  bookshelf list --mine --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listOwner, "owner", "", "filter by owner account")
	listCmd.Flags().BoolVar(&listMine, "mine", false, "filter by the calling account")
	listCmd.Flags().IntVar(&listSkip, "skip", 0, "number of books to skip")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum number of results (default 50, capped at 100)")
}

func runList(cmd *cobra.Command, args []string) error {
	owner := listOwner
	if listMine {
		if owner != "" {
			return fmt.Errorf("--owner and --mine are mutually exclusive")
		}
		caller, err := resolveAccount()
		if err != nil {
			return err
		}
		owner = caller
	}

	shelf, err := attachShelf()
	if err != nil {
		return err
	}
	defer shelf.Detach()

	books, err := shelf.ListBooks(types.ListQuery{
		AccountID: owner,
		Skip:      listSkip,
		Limit:     listLimit,
	})
	if err != nil {
		return fmt.Errorf("list books: %w", err)
	}

	if flagJSON {
		return printJSON(books)
	}
	printBookTable(books)
	return nil
}
