// Package bank implements the transaction and interest engine: the
// account factory, deposits and withdrawals with penalty fees, lazy
// compound-interest accrual, and the fraud pre-commit gate. The HTTP
// layer, authentication, and persistence plumbing live elsewhere; the
// engine only assumes the store contracts and that the caller is
// already authenticated.
package bank

import (
	"fmt"
	"sync"
	"time"

	"github.com/corebank-dev/corebank/internal/config"
	"github.com/corebank-dev/corebank/internal/fraud"
	"github.com/corebank-dev/corebank/internal/model"
	"github.com/corebank-dev/corebank/internal/money"
	"github.com/corebank-dev/corebank/internal/store"
)

// Policy holds the bank-wide defaults the factory applies to checking
// accounts.
type Policy struct {
	CheckingMinimumBalance money.Money
	CheckingPenaltyFee     money.Money
}

// PolicyFromConfig parses the configured policy amounts.
func PolicyFromConfig(cfg config.PolicyConfig) (Policy, error) {
	minBalance, err := money.FromString(cfg.CheckingMinimumBalance)
	if err != nil {
		return Policy{}, fmt.Errorf("checking minimum balance: %w", err)
	}
	penalty, err := money.FromString(cfg.CheckingPenaltyFee)
	if err != nil {
		return Policy{}, fmt.Errorf("checking penalty fee: %w", err)
	}
	return Policy{CheckingMinimumBalance: minBalance, CheckingPenaltyFee: penalty}, nil
}

// Service is the banking engine. All balance mutations on one account
// are serialized by a per-account mutex held across
// load -> accrue -> mutate -> screen -> append -> persist; operations
// on different accounts proceed in parallel.
type Service struct {
	accounts store.AccountStore
	holders  store.HolderStore
	ledger   store.TransactionStore
	detector *fraud.Detector
	policy   Policy

	now func() time.Time

	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

// NewService creates the engine over its collaborators.
func NewService(st store.Store, detector *fraud.Detector, policy Policy) *Service {
	return &Service{
		accounts: st,
		holders:  st,
		ledger:   st,
		detector: detector,
		policy:   policy,
		now:      time.Now,
		locks:    make(map[int]*sync.Mutex),
	}
}

// lockAccount returns the mutex serializing operations on one account.
func (s *Service) lockAccount(id int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// FindAccount returns an account by id.
func (s *Service) FindAccount(id int) (*model.Account, error) {
	a, err := s.accounts.GetAccount(id)
	if err != nil {
		return nil, fmt.Errorf("loading account %d: %w", id, err)
	}
	if a == nil {
		return nil, fmt.Errorf("account %d: %w", id, ErrNotFound)
	}
	return a, nil
}

// FindHolder returns an account holder by id.
func (s *Service) FindHolder(id int) (*model.AccountHolder, error) {
	h, err := s.holders.GetHolder(id)
	if err != nil {
		return nil, fmt.Errorf("loading account holder %d: %w", id, err)
	}
	if h == nil {
		return nil, fmt.Errorf("account holder %d: %w", id, ErrNotFound)
	}
	return h, nil
}

// History returns the account's transactions in chronological order.
func (s *Service) History(accountID int) ([]model.Transaction, error) {
	if _, err := s.FindAccount(accountID); err != nil {
		return nil, err
	}
	txs, err := s.ledger.ListByAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("loading history for account %d: %w", accountID, err)
	}
	return txs, nil
}
