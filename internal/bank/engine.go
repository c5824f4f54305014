package bank

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/corebank-dev/corebank/internal/model"
)

// Withdraw debits an account on behalf of one of its owners. For
// interest-bearing accounts any due interest is accrued first, so the
// accrual sees the pre-withdrawal balance; accounts with a minimum
// balance are charged their penalty fee when the debit leaves them
// below it. The fraud screen runs as a pre-commit gate: a rejected
// withdrawal leaves no trace in the ledger or the account.
func (s *Service) Withdraw(userID, accountID int, amount decimal.Decimal) (*model.Transaction, error) {
	lock := s.lockAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	holder, err := s.holders.GetHolder(userID)
	if err != nil {
		return nil, fmt.Errorf("loading account holder %d: %w", userID, err)
	}
	if holder == nil {
		return nil, fmt.Errorf("account holder %d: %w", userID, ErrNotFound)
	}
	a, err := s.accounts.GetAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("loading account %d: %w", accountID, err)
	}
	if a == nil {
		return nil, fmt.Errorf("account %d: %w", accountID, ErrNotFound)
	}

	if !a.OwnedBy(holder.ID) {
		return nil, fmt.Errorf("%w: holder %d cannot withdraw from account %d", ErrForbidden, userID, accountID)
	}

	now := s.now()
	accrue(a, now)

	if err := a.Balance.Decrease(amount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	pol := a.Policy()
	if pol.HasMinimumBalance && a.Balance.LessThan(a.MinimumBalance) {
		_ = a.Balance.Decrease(a.PenaltyFee.Amount())
	}
	if pol.HasCreditLimit && a.Balance.Amount().LessThan(a.CreditLimit.Amount().Neg()) {
		return nil, fmt.Errorf("account %d: %w", accountID, ErrCreditLimitExceeded)
	}

	tx := model.Transaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		AccountID: accountID,
		Amount:    amount.Neg(),
		Timestamp: now.UnixMilli(),
	}
	if err := s.commit(a, tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// Deposit credits an account. Any existing holder may deposit to any
// account; ownership is not checked. Deposits are recorded with a
// positive signed amount.
func (s *Service) Deposit(userID, accountID int, amount decimal.Decimal) (*model.Transaction, error) {
	lock := s.lockAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	holder, err := s.holders.GetHolder(userID)
	if err != nil {
		return nil, fmt.Errorf("loading account holder %d: %w", userID, err)
	}
	if holder == nil {
		return nil, fmt.Errorf("account holder %d: %w", userID, ErrNotFound)
	}
	a, err := s.accounts.GetAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("loading account %d: %w", accountID, err)
	}
	if a == nil {
		return nil, fmt.Errorf("account %d: %w", accountID, ErrNotFound)
	}

	if err := a.Balance.Increase(amount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	now := s.now()
	tx := model.Transaction{
		ID:        uuid.NewString(),
		UserID:    userID,
		AccountID: accountID,
		Amount:    amount,
		Timestamp: now.UnixMilli(),
	}
	if err := s.commit(a, tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// commit runs the fraud gate, then appends the transaction and
// persists the mutated account. Nothing is persisted when the gate
// rejects.
func (s *Service) commit(a *model.Account, tx model.Transaction) error {
	suspicious, err := s.detector.Suspicious(tx)
	if err != nil {
		return fmt.Errorf("screening transaction: %w", err)
	}
	if suspicious {
		return fmt.Errorf("account %d: %w", a.ID, ErrFraudSuspected)
	}

	if err := s.ledger.Append(tx); err != nil {
		return fmt.Errorf("recording transaction: %w", err)
	}
	a.LastModified = tx.Time()
	if err := s.accounts.SaveAccount(a); err != nil {
		return fmt.Errorf("saving account %d: %w", a.ID, err)
	}
	return nil
}
