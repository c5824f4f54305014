package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corebank-dev/corebank/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:     "corebank",
		Short:   "Retail banking transaction & interest engine",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dir, "dir", ".", "bank directory (holds corebank.yaml)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newHolderCommand(&dir))
	rootCmd.AddCommand(newAccountCommand(&dir))
	rootCmd.AddCommand(newDepositCommand(&dir))
	rootCmd.AddCommand(newWithdrawCommand(&dir))
	rootCmd.AddCommand(newAccrueCommand(&dir))
	rootCmd.AddCommand(newHistoryCommand(&dir))

	return rootCmd
}
