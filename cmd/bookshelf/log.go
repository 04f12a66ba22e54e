// Log command shows the recorded mutations, newest first.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emarai/bookshelf/pkg/types"
)

var logBook string

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the mutation log",
	Long: `Log lists the recorded mutations (add, update, delete), newest first.

Use --book to restrict the log to a single book id.

Example:
  bookshelf log
  bookshelf log --book 1 --json`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVar(&logBook, "book", "", "filter by book id")
}

func runLog(cmd *cobra.Command, args []string) error {
	shelf, err := attachShelf()
	if err != nil {
		return err
	}
	defer shelf.Detach()

	events, err := shelf.ListEvents(logBook)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}

	if flagJSON {
		return printJSON(events)
	}
	printEventTable(events)
	return nil
}

// printEventTable prints events in a human-readable table format.
func printEventTable(events []*types.Event) {
	if len(events) == 0 {
		fmt.Println("No events recorded.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "WHEN\tOP\tBOOK\tACCOUNT")
	fmt.Fprintln(w, "----\t--\t----\t-------")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.CreatedAt, e.Op, e.BookID, e.AccountID)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(output, "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d event(s)\n", len(events))
}
