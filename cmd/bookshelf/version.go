// Version command for the bookshelf CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emarai/bookshelf/pkg/bookshelf"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the bookshelf version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("bookshelf", bookshelf.Version)
	},
}
