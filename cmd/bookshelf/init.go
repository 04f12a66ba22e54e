// Init command creates the configuration and data directories.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize bookshelf configuration and storage",
	Long: `Init creates the configuration directory with a default config.yaml
and initializes the data directory with the storage backend's files.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		// Attaching creates the data directory and its JSONL files.
		shelf, err := attachShelf()
		if err != nil {
			return err
		}
		if err := shelf.Detach(); err != nil {
			return fmt.Errorf("detach backend: %w", err)
		}

		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}

		fmt.Printf("Initialized bookshelf.\n")
		fmt.Printf("  Config dir: %s\n", configDir)
		fmt.Printf("  Data dir:   %s\n", dataDir)
		return nil
	},
}
