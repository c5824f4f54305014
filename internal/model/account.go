package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corebank-dev/corebank/internal/money"
)

// AccountType tags the account variant.
type AccountType string

const (
	AccountTypeChecking        AccountType = "checking"
	AccountTypeStudentChecking AccountType = "student_checking"
	AccountTypeSavings         AccountType = "savings"
	AccountTypeCreditCard      AccountType = "credit_card"
)

// Status is the account lifecycle state.
type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusFrozen Status = "FROZEN"
)

// ParseStatus normalizes a status string, accepting any casing.
func ParseStatus(s string) (Status, error) {
	switch strings.ToUpper(s) {
	case string(StatusActive):
		return StatusActive, nil
	case string(StatusFrozen):
		return StatusFrozen, nil
	}
	return "", fmt.Errorf("status must be either Active or Frozen, got %q", s)
}

// AccrualPeriod is the compounding unit for interest-bearing accounts.
type AccrualPeriod int

const (
	AccrualNone    AccrualPeriod = iota
	AccrualYearly                // whole years, elapsed days / 365
	AccrualMonthly               // whole months, elapsed days / 30
)

// Policy is the per-variant behavior record: which balance rules the
// transaction engine applies for an account of this type.
type Policy struct {
	HasMinimumBalance bool
	Accrual           AccrualPeriod
	HasCreditLimit    bool
}

var policies = map[AccountType]Policy{
	AccountTypeChecking:        {HasMinimumBalance: true},
	AccountTypeStudentChecking: {},
	AccountTypeSavings:         {HasMinimumBalance: true, Accrual: AccrualYearly},
	AccountTypeCreditCard:      {Accrual: AccrualMonthly, HasCreditLimit: true},
}

// Account is a bank account. The Type tag selects the Policy; variant
// fields (MinimumBalance, PenaltyFee, InterestRate, CreditLimit) are
// meaningful only where the policy says so.
type Account struct {
	ID               int
	Type             AccountType
	Balance          money.Money
	PrimaryOwnerID   int
	SecondaryOwnerID int // 0 = none
	Status           Status
	SecretKeyHash    string
	CreatedAt        time.Time
	LastModified     time.Time

	MinimumBalance money.Money
	PenaltyFee     money.Money
	InterestRate   decimal.Decimal
	CreditLimit    money.Money
}

// Policy returns the behavior record for the account's variant.
func (a *Account) Policy() Policy {
	return policies[a.Type]
}

// OwnedBy reports whether the holder is the primary or secondary owner.
func (a *Account) OwnedBy(holderID int) bool {
	return a.PrimaryOwnerID == holderID ||
		(a.SecondaryOwnerID != 0 && a.SecondaryOwnerID == holderID)
}
