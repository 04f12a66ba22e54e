// Root command for the bookshelf CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/emarai/bookshelf/internal/paths"
	"github.com/emarai/bookshelf/pkg/bookshelf"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagAccount   string
	flagJSON      bool
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them.
var (
	configDataDir string
	configAccount string
)

var rootCmd = &cobra.Command{
	Use:   "bookshelf",
	Short: "Bookshelf is a persistent book-tracking record store",
	Long: `Bookshelf tracks books per account: add books to your list, move them
through reading to read, and page through any account's shelf.`,
	Version: bookshelf.Version,
	// Subcommand errors are reported by main; do not repeat usage.
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configAccount = cfg.GetString(cfgKeyAccount)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.bookshelf-db)")
	rootCmd.PersistentFlags().StringVar(&flagAccount, "account", "", "caller account identity (default: $BOOKSHELF_ACCOUNT or config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(logCmd)
}

// resolveDataDir returns the data directory path following the precedence:
// --data-dir flag > config.yaml data_dir > BOOKSHELF_DATA_DIR env >
// default $(CWD)/.bookshelf-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > BOOKSHELF_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
