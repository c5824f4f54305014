package bank

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank-dev/corebank/internal/model"
)

const (
	daysPerYear  = 365
	daysPerMonth = 30
)

// AccrueSavingsInterest applies compound interest to a savings account
// for the whole years elapsed since its last modification. Calling it
// again within the same period is a no-op.
func (s *Service) AccrueSavingsInterest(accountID int) error {
	return s.accrueByType(accountID, model.AccountTypeSavings)
}

// AccrueCreditCardInterest applies compound interest to a credit-card
// account for the whole months elapsed since its last modification.
func (s *Service) AccrueCreditCardInterest(accountID int) error {
	return s.accrueByType(accountID, model.AccountTypeCreditCard)
}

func (s *Service) accrueByType(accountID int, want model.AccountType) error {
	lock := s.lockAccount(accountID)
	lock.Lock()
	defer lock.Unlock()

	a, err := s.accounts.GetAccount(accountID)
	if err != nil {
		return fmt.Errorf("loading account %d: %w", accountID, err)
	}
	if a == nil || a.Type != want {
		return fmt.Errorf("%s account %d: %w", want, accountID, ErrNotFound)
	}

	if !accrue(a, s.now()) {
		return nil
	}
	if err := s.accounts.SaveAccount(a); err != nil {
		return fmt.Errorf("saving account %d: %w", accountID, err)
	}
	return nil
}

// accrue compounds interest in place and reports whether anything
// changed. Interest accrues only on whole-period boundaries: years for
// savings, months for credit cards, both counted in elapsed days. The
// compound factor is built by repeated multiplication so results are
// exact for the decimal representation. A negative credit-card balance
// grows more negative: interest charged on debt grows the debt.
func accrue(a *model.Account, now time.Time) bool {
	var periodDays int64
	switch a.Policy().Accrual {
	case model.AccrualYearly:
		periodDays = daysPerYear
	case model.AccrualMonthly:
		periodDays = daysPerMonth
	default:
		return false
	}

	elapsed := now.Sub(a.LastModified)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	periods := int64(elapsed.Hours()/24) / periodDays
	if periods <= 0 {
		return false
	}

	one := decimal.NewFromInt(1)
	factor := one
	for i := int64(0); i < periods; i++ {
		factor = factor.Mul(one.Add(a.InterestRate))
	}

	oldBalance := a.Balance.Amount()
	delta := oldBalance.Mul(factor).Sub(oldBalance)
	if delta.IsNegative() {
		_ = a.Balance.Decrease(delta.Neg())
	} else {
		_ = a.Balance.Increase(delta)
	}
	a.LastModified = now
	return true
}
