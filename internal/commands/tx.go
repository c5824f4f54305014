package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newDepositCommand(dir *string) *cobra.Command {
	var user, account int
	var amount string

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit into an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount: %w", err)
			}

			e, err := openEnv(*dir)
			if err != nil {
				return err
			}
			defer e.close()

			tx, err := e.svc.Deposit(user, account, value)
			e.audit("deposit", user, account, amount, err)
			if err != nil {
				return err
			}

			a, err := e.svc.FindAccount(account)
			if err != nil {
				return err
			}
			fmt.Printf("Deposited %s into account %d (transaction %s); balance %s\n",
				tx.Amount.StringFixed(2), account, tx.ID, a.Balance)
			return nil
		},
	}

	addTxFlags(cmd, &user, &account, &amount)
	return cmd
}

func newWithdrawCommand(dir *string) *cobra.Command {
	var user, account int
	var amount string

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw from an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount: %w", err)
			}

			e, err := openEnv(*dir)
			if err != nil {
				return err
			}
			defer e.close()

			tx, err := e.svc.Withdraw(user, account, value)
			e.audit("withdraw", user, account, amount, err)
			if err != nil {
				return err
			}

			a, err := e.svc.FindAccount(account)
			if err != nil {
				return err
			}
			fmt.Printf("Withdrew %s from account %d (transaction %s); balance %s\n",
				tx.Amount.Neg().StringFixed(2), account, tx.ID, a.Balance)
			return nil
		},
	}

	addTxFlags(cmd, &user, &account, &amount)
	return cmd
}

func addTxFlags(cmd *cobra.Command, user, account *int, amount *string) {
	cmd.Flags().IntVar(user, "user", 0, "acting holder id (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().IntVar(account, "account", 0, "account id (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(amount, "amount", "", "amount (required)")
	_ = cmd.MarkFlagRequired("amount")
}

func newAccrueCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accrue",
		Short: "Apply due interest to an account",
	}

	var savingsAccount int
	savings := &cobra.Command{
		Use:   "savings",
		Short: "Accrue yearly interest on a savings account",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*dir)
			if err != nil {
				return err
			}
			defer e.close()

			err = e.svc.AccrueSavingsInterest(savingsAccount)
			e.audit("accrue-savings", 0, savingsAccount, "", err)
			if err != nil {
				return err
			}
			a, err := e.svc.FindAccount(savingsAccount)
			if err != nil {
				return err
			}
			fmt.Printf("Account %d balance %s\n", a.ID, a.Balance)
			return nil
		},
	}
	savings.Flags().IntVar(&savingsAccount, "account", 0, "account id (required)")
	_ = savings.MarkFlagRequired("account")

	var cardAccount int
	card := &cobra.Command{
		Use:   "credit-card",
		Short: "Accrue monthly interest on a credit-card account",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*dir)
			if err != nil {
				return err
			}
			defer e.close()

			err = e.svc.AccrueCreditCardInterest(cardAccount)
			e.audit("accrue-credit-card", 0, cardAccount, "", err)
			if err != nil {
				return err
			}
			a, err := e.svc.FindAccount(cardAccount)
			if err != nil {
				return err
			}
			fmt.Printf("Account %d balance %s\n", a.ID, a.Balance)
			return nil
		},
	}
	card.Flags().IntVar(&cardAccount, "account", 0, "account id (required)")
	_ = card.MarkFlagRequired("account")

	cmd.AddCommand(savings)
	cmd.AddCommand(card)
	return cmd
}

func newHistoryCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history <account-id>",
		Short: "List an account's transactions",
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

			txs, err := e.svc.History(id)
			if err != nil {
				return err
			}
			if len(txs) == 0 {
				fmt.Printf("Account %d has no transactions\n", id)
				return nil
			}
			for _, tx := range txs {
				fmt.Printf("%s  %10s  by holder %d  (%s)\n",
					tx.Time().UTC().Format("2006-01-02 15:04:05"),
					tx.Amount.StringFixed(2), tx.UserID, tx.ID)
			}
			return nil
		},
	}
}
