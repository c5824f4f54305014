package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/corebank-dev/corebank/internal/bank"
	"github.com/corebank-dev/corebank/internal/model"
)

func newAccountCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Create and inspect accounts",
	}
	cmd.AddCommand(newAccountCheckingCommand(dir))
	cmd.AddCommand(newAccountSavingsCommand(dir))
	cmd.AddCommand(newAccountCreditCardCommand(dir))
	cmd.AddCommand(newAccountShowCommand(dir))
	return cmd
}

func newAccountCheckingCommand(dir *string) *cobra.Command {
	var owner, secondary int
	var balance, secretKey, status string

	cmd := &cobra.Command{
		Use:   "checking",
		Short: "Create a checking account (student checking for owners under 24)",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(balance)
			if err != nil {
				return fmt.Errorf("parsing balance: %w", err)
			}
			key, err := resolveSecretKey(secretKey)
			if err != nil {
				return err
			}

			e, err := openEnv(*dir)
			if err != nil {
				return err
			}
			defer e.close()

			a, err := e.svc.CreateChecking(bank.CheckingParams{
				OwnerID:          owner,
				InitialBalance:   amount,
				SecretKey:        key,
				Status:           status,
				SecondaryOwnerID: secondary,
			})
			e.audit("create-checking", owner, accountIDOf(a), balance, err)
			if err != nil {
				return err
			}
			printAccount(a)
			return nil
		},
	}

	cmd.Flags().IntVar(&owner, "owner", 0, "primary owner id (required)")
	_ = cmd.MarkFlagRequired("owner")
	cmd.Flags().StringVar(&balance, "balance", "0", "initial balance")
	cmd.Flags().StringVar(&secretKey, "secret-key", "", "account secret key (prompted when omitted)")
	cmd.Flags().StringVar(&status, "status", "active", "account status: active or frozen")
	cmd.Flags().IntVar(&secondary, "secondary-owner", 0, "secondary owner id")

	return cmd
}

func newAccountSavingsCommand(dir *string) *cobra.Command {
	var owner, secondary int
	var balance, minBalance, rate, secretKey, status string

	cmd := &cobra.Command{
		Use:   "savings",
		Short: "Create a savings account",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(balance)
			if err != nil {
				return fmt.Errorf("parsing balance: %w", err)
			}
			minimum, err := decimal.NewFromString(minBalance)
			if err != nil {
				return fmt.Errorf("parsing minimum balance: %w", err)
			}
			interest, err := decimal.NewFromString(rate)
			if err != nil {
				return fmt.Errorf("parsing interest rate: %w", err)
			}
			key, err := resolveSecretKey(secretKey)
			if err != nil {
				return err
			}

			e, err := openEnv(*dir)
			if err != nil {
				return err
			}
			defer e.close()

			a, err := e.svc.CreateSavings(bank.SavingsParams{
				OwnerID:          owner,
				InitialBalance:   amount,
				MinimumBalance:   minimum,
				InterestRate:     interest,
				SecretKey:        key,
				Status:           status,
				SecondaryOwnerID: secondary,
			})
			e.audit("create-savings", owner, accountIDOf(a), balance, err)
			if err != nil {
				return err
			}
			printAccount(a)
			return nil
		},
	}

	cmd.Flags().IntVar(&owner, "owner", 0, "primary owner id (required)")
	_ = cmd.MarkFlagRequired("owner")
	cmd.Flags().StringVar(&balance, "balance", "0", "initial balance")
	cmd.Flags().StringVar(&minBalance, "minimum-balance", "1000", "minimum balance, 100 to 1000")
	cmd.Flags().StringVar(&rate, "interest-rate", "0.0025", "yearly interest rate, 0.0025 to 0.5")
	cmd.Flags().StringVar(&secretKey, "secret-key", "", "account secret key (prompted when omitted)")
	cmd.Flags().StringVar(&status, "status", "active", "account status: active or frozen")
	cmd.Flags().IntVar(&secondary, "secondary-owner", 0, "secondary owner id")

	return cmd
}

func newAccountCreditCardCommand(dir *string) *cobra.Command {
	var owner, secondary int
	var balance, limit, rate string

	cmd := &cobra.Command{
		Use:   "credit-card",
		Short: "Create a credit-card account",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(balance)
			if err != nil {
				return fmt.Errorf("parsing balance: %w", err)
			}
			creditLimit, err := decimal.NewFromString(limit)
			if err != nil {
				return fmt.Errorf("parsing credit limit: %w", err)
			}
			interest, err := decimal.NewFromString(rate)
			if err != nil {
				return fmt.Errorf("parsing interest rate: %w", err)
			}

			e, err := openEnv(*dir)
			if err != nil {
				return err
			}
			defer e.close()

			a, err := e.svc.CreateCreditCard(bank.CreditCardParams{
				OwnerID:          owner,
				InitialBalance:   amount,
				CreditLimit:      creditLimit,
				InterestRate:     interest,
				SecondaryOwnerID: secondary,
			})
			e.audit("create-credit-card", owner, accountIDOf(a), balance, err)
			if err != nil {
				return err
			}
			printAccount(a)
			return nil
		},
	}

	cmd.Flags().IntVar(&owner, "owner", 0, "primary owner id (required)")
	_ = cmd.MarkFlagRequired("owner")
	cmd.Flags().StringVar(&balance, "balance", "0", "initial balance")
	cmd.Flags().StringVar(&limit, "credit-limit", "100", "credit limit, 100 to 100000")
	cmd.Flags().StringVar(&rate, "interest-rate", "0.2", "monthly interest rate, 0.1 to 0.2")
	cmd.Flags().IntVar(&secondary, "secondary-owner", 0, "secondary owner id")

	return cmd
}

func newAccountShowCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <account-id>",
		Short: "Show an account",
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

			a, err := e.svc.FindAccount(id)
			if err != nil {
				return err
			}
			printAccount(a)
			return nil
		},
	}
}

func printAccount(a *model.Account) {
	fmt.Printf("Account %d (%s): balance %s, status %s\n", a.ID, a.Type, a.Balance, a.Status)
	pol := a.Policy()
	if pol.HasMinimumBalance {
		fmt.Printf("  minimum balance %s, penalty fee %s\n", a.MinimumBalance, a.PenaltyFee)
	}
	if pol.Accrual != model.AccrualNone {
		fmt.Printf("  interest rate %s\n", a.InterestRate)
	}
	if pol.HasCreditLimit {
		fmt.Printf("  credit limit %s\n", a.CreditLimit)
	}
}

func accountIDOf(a *model.Account) int {
	if a == nil {
		return 0
	}
	return a.ID
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}

// resolveSecretKey prompts for the key without echo when the flag is
// empty and stdin is a terminal; piped input is read as a plain line.
func resolveSecretKey(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Print("Secret key: ")
	if term.IsTerminal(int(os.Stdin.Fd())) {
		key, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading secret key: %w", err)
		}
		return string(key), nil
	}
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading secret key: %w", err)
	}
	return "", nil
}
