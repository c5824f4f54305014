package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/corebank-dev/corebank/internal/config"
	"github.com/corebank-dev/corebank/internal/store"
)

func newInitCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new bank directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "bank name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runInit(dir, name string) error {
	for _, d := range []string{"", "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfgPath := filepath.Join(dir, "corebank.yaml")
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	cfg := config.Default(name)
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Create the store up front so migrations run once, here.
	st, err := store.OpenSQLite(filepath.Join(dir, cfg.Store.Path))
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	if err := st.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}

	fmt.Printf("Initialized %s at %s\n", name, dir)
	return nil
}
