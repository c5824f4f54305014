package bank

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/corebank-dev/corebank/internal/model"
	"github.com/corebank-dev/corebank/internal/money"
)

// minorAgeLimit routes checking requests: primary owners younger than
// this get a student checking account, exempt from minimum-balance
// penalties.
const minorAgeLimit = 24

// Bounds for savings and credit-card creation.
var (
	savingsMinBalanceFloor = decimal.NewFromInt(100)
	savingsMinBalanceCeil  = decimal.NewFromInt(1000)
	savingsRateFloor       = decimal.RequireFromString("0.0025")
	savingsRateCeil        = decimal.RequireFromString("0.5")

	creditLimitFloor = decimal.NewFromInt(100)
	creditLimitCeil  = decimal.NewFromInt(100000)
	creditRateFloor  = decimal.RequireFromString("0.1")
	creditRateCeil   = decimal.RequireFromString("0.2")
)

// CheckingParams holds parameters for creating a checking account.
type CheckingParams struct {
	OwnerID          int
	InitialBalance   decimal.Decimal
	SecretKey        string
	Status           string
	SecondaryOwnerID int // 0 = none
}

// CreateChecking validates the request and constructs either a
// checking account or, when the primary owner is under 24, a student
// checking account with no minimum balance or penalty fee.
func (s *Service) CreateChecking(p CheckingParams) (*model.Account, error) {
	owner, err := s.holders.GetHolder(p.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("loading primary owner: %w", err)
	}
	if owner == nil {
		return nil, fmt.Errorf("primary owner %d: %w", p.OwnerID, ErrNotFound)
	}

	status, err := model.ParseStatus(p.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	now := s.now()
	a := &model.Account{
		Type:           model.AccountTypeStudentChecking,
		Balance:        money.New(p.InitialBalance),
		PrimaryOwnerID: owner.ID,
		Status:         status,
		CreatedAt:      now,
		LastModified:   now,
	}
	if owner.AgeOn(now) >= minorAgeLimit {
		a.Type = model.AccountTypeChecking
		a.MinimumBalance = s.policy.CheckingMinimumBalance
		a.PenaltyFee = s.policy.CheckingPenaltyFee
	}

	if a.SecretKeyHash, err = hashSecretKey(p.SecretKey); err != nil {
		return nil, err
	}
	if err := s.attachSecondaryOwner(a, p.SecondaryOwnerID); err != nil {
		return nil, err
	}
	if err := s.accounts.SaveAccount(a); err != nil {
		return nil, fmt.Errorf("saving checking account: %w", err)
	}
	return a, nil
}

// SavingsParams holds parameters for creating a savings account.
type SavingsParams struct {
	OwnerID          int
	InitialBalance   decimal.Decimal
	MinimumBalance   decimal.Decimal
	InterestRate     decimal.Decimal
	SecretKey        string
	Status           string
	SecondaryOwnerID int
}

// CreateSavings validates bounds and constructs a savings account.
func (s *Service) CreateSavings(p SavingsParams) (*model.Account, error) {
	owner, err := s.holders.GetHolder(p.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("loading primary owner: %w", err)
	}
	if owner == nil {
		return nil, fmt.Errorf("primary owner %d: %w", p.OwnerID, ErrNotFound)
	}

	if p.MinimumBalance.LessThan(savingsMinBalanceFloor) || p.MinimumBalance.GreaterThan(savingsMinBalanceCeil) {
		return nil, fmt.Errorf("%w: minimum balance must be a value between 100 and 1000", ErrInvalidArgument)
	}
	if p.InterestRate.LessThan(savingsRateFloor) || p.InterestRate.GreaterThan(savingsRateCeil) {
		return nil, fmt.Errorf("%w: interest rate must be a value between 0.0025 and 0.5", ErrInvalidArgument)
	}
	status, err := model.ParseStatus(p.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	now := s.now()
	a := &model.Account{
		Type:           model.AccountTypeSavings,
		Balance:        money.New(p.InitialBalance),
		PrimaryOwnerID: owner.ID,
		Status:         status,
		CreatedAt:      now,
		LastModified:   now,
		MinimumBalance: money.New(p.MinimumBalance),
		PenaltyFee:     s.policy.CheckingPenaltyFee,
		InterestRate:   p.InterestRate,
	}
	if a.SecretKeyHash, err = hashSecretKey(p.SecretKey); err != nil {
		return nil, err
	}
	if err := s.attachSecondaryOwner(a, p.SecondaryOwnerID); err != nil {
		return nil, err
	}
	if err := s.accounts.SaveAccount(a); err != nil {
		return nil, fmt.Errorf("saving savings account: %w", err)
	}
	return a, nil
}

// CreditCardParams holds parameters for creating a credit-card account.
type CreditCardParams struct {
	OwnerID          int
	InitialBalance   decimal.Decimal
	CreditLimit      decimal.Decimal
	InterestRate     decimal.Decimal
	SecondaryOwnerID int
}

// CreateCreditCard validates bounds and constructs a credit-card
// account. Credit cards are created active; their balance may run
// negative down to the negated credit limit.
func (s *Service) CreateCreditCard(p CreditCardParams) (*model.Account, error) {
	owner, err := s.holders.GetHolder(p.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("loading primary owner: %w", err)
	}
	if owner == nil {
		return nil, fmt.Errorf("primary owner %d: %w", p.OwnerID, ErrNotFound)
	}

	if p.CreditLimit.LessThan(creditLimitFloor) || p.CreditLimit.GreaterThan(creditLimitCeil) {
		return nil, fmt.Errorf("%w: credit limit must be a value between 100 and 100000", ErrInvalidArgument)
	}
	if p.InterestRate.LessThan(creditRateFloor) || p.InterestRate.GreaterThan(creditRateCeil) {
		return nil, fmt.Errorf("%w: interest rate must be a value between 0.1 and 0.2", ErrInvalidArgument)
	}

	now := s.now()
	a := &model.Account{
		Type:           model.AccountTypeCreditCard,
		Balance:        money.New(p.InitialBalance),
		PrimaryOwnerID: owner.ID,
		Status:         model.StatusActive,
		CreatedAt:      now,
		LastModified:   now,
		CreditLimit:    money.New(p.CreditLimit),
		InterestRate:   p.InterestRate,
	}
	if err := s.attachSecondaryOwner(a, p.SecondaryOwnerID); err != nil {
		return nil, err
	}
	if err := s.accounts.SaveAccount(a); err != nil {
		return nil, fmt.Errorf("saving credit card account: %w", err)
	}
	return a, nil
}

// attachSecondaryOwner resolves and attaches an optional joint owner.
func (s *Service) attachSecondaryOwner(a *model.Account, secondaryID int) error {
	if secondaryID == 0 {
		return nil
	}
	secondary, err := s.holders.GetHolder(secondaryID)
	if err != nil {
		return fmt.Errorf("loading secondary owner: %w", err)
	}
	if secondary == nil {
		return fmt.Errorf("secondary owner %d: %w", secondaryID, ErrNotFound)
	}
	if secondary.ID == a.PrimaryOwnerID {
		return fmt.Errorf("%w: secondary owner must differ from primary owner", ErrInvalidArgument)
	}
	a.SecondaryOwnerID = secondary.ID
	return nil
}

func hashSecretKey(key string) (string, error) {
	if key == "" {
		return "", nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing secret key: %w", err)
	}
	return string(hash), nil
}

// VerifySecretKey reports whether the key matches the account's
// stored hash.
func VerifySecretKey(a *model.Account, key string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.SecretKeyHash), []byte(key)) == nil
}
