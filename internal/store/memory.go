package store

import (
	"sync"

	"github.com/corebank-dev/corebank/internal/model"
)

// Memory is an in-process Store backed by maps. Safe for concurrent
// use. Accounts and holders are stored by value so callers cannot
// mutate store state through retained pointers.
type Memory struct {
	mu           sync.RWMutex
	nextAcctID   int
	nextHolderID int
	accounts     map[int]model.Account
	holders      map[int]model.AccountHolder
	transactions []model.Transaction
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		accounts: make(map[int]model.Account),
		holders:  make(map[int]model.AccountHolder),
	}
}

// GetAccount returns a copy of the account, or nil if absent.
func (m *Memory) GetAccount(id int) (*model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// SaveAccount upserts the account, assigning the next id when zero.
func (m *Memory) SaveAccount(a *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == 0 {
		m.nextAcctID++
		a.ID = m.nextAcctID
	} else if a.ID > m.nextAcctID {
		m.nextAcctID = a.ID
	}
	m.accounts[a.ID] = *a
	return nil
}

// GetHolder returns a copy of the holder, or nil if absent.
func (m *Memory) GetHolder(id int) (*model.AccountHolder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.holders[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

// SaveHolder upserts the holder, assigning the next id when zero.
func (m *Memory) SaveHolder(h *model.AccountHolder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h.ID == 0 {
		m.nextHolderID++
		h.ID = m.nextHolderID
	} else if h.ID > m.nextHolderID {
		m.nextHolderID = h.ID
	}
	m.holders[h.ID] = *h
	return nil
}

// Append records a transaction at the end of the ledger.
func (m *Memory) Append(tx model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, tx)
	return nil
}

// ListByAccount returns the account's transactions in insertion order.
func (m *Memory) ListByAccount(accountID int) ([]model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Transaction
	for _, tx := range m.transactions {
		if tx.AccountID == accountID {
			out = append(out, tx)
		}
	}
	return out, nil
}

// ListByDateRange returns transactions with startMs <= timestamp <= endMs.
func (m *Memory) ListByDateRange(startMs, endMs int64) ([]model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Transaction
	for _, tx := range m.transactions {
		if tx.Timestamp >= startMs && tx.Timestamp <= endMs {
			out = append(out, tx)
		}
	}
	return out, nil
}
