package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/corebank-dev/corebank/internal/model"
)

func newHolderCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holder",
		Short: "Manage account holders",
	}
	cmd.AddCommand(newHolderAddCommand(dir))
	cmd.AddCommand(newHolderShowCommand(dir))
	return cmd
}

func newHolderAddCommand(dir *string) *cobra.Command {
	var name string
	var birthDate string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new account holder",
		RunE: func(cmd *cobra.Command, args []string) error {
			birth, err := time.Parse("2006-01-02", birthDate)
			if err != nil {
				return fmt.Errorf("parsing birth date: %w", err)
			}

			e, err := openEnv(*dir)
			if err != nil {
				return err
			}
			defer e.close()

			h := &model.AccountHolder{Name: name, BirthDate: birth}
			if err := e.st.SaveHolder(h); err != nil {
				return err
			}
			fmt.Printf("Holder %d: %s (born %s)\n", h.ID, h.Name, birthDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "holder name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&birthDate, "birth-date", "", "birth date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("birth-date")

	return cmd
}

func newHolderShowCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <holder-id>",
		Short: "Show an account holder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			e, err := openEnv(*dir)
			if err != nil {
				return err
			}
			defer e.close()

			h, err := e.svc.FindHolder(id)
			if err != nil {
				return err
			}
			fmt.Printf("Holder %d: %s (born %s)\n", h.ID, h.Name, h.BirthDate.Format("2006-01-02"))
			return nil
		},
	}
}
