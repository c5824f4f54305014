// Package store defines the persistence contracts consumed by the
// banking engine, plus in-memory and SQLite implementations. A Get on
// any store returns (nil, nil) when the entity is absent; mapping that
// to a domain error is the caller's job.
package store

import "github.com/corebank-dev/corebank/internal/model"

// AccountStore persists accounts keyed by integer id.
type AccountStore interface {
	// GetAccount returns the account, or nil if absent.
	GetAccount(id int) (*model.Account, error)
	// SaveAccount upserts the account, assigning an id when it is zero.
	SaveAccount(a *model.Account) error
}

// HolderStore persists account holders keyed by integer id.
type HolderStore interface {
	GetHolder(id int) (*model.AccountHolder, error)
	SaveHolder(h *model.AccountHolder) error
}

// TransactionStore is the append-only transaction ledger.
type TransactionStore interface {
	// Append records an immutable transaction.
	Append(tx model.Transaction) error
	// ListByAccount returns the account's transactions in insertion order.
	ListByAccount(accountID int) ([]model.Transaction, error)
	// ListByDateRange returns all transactions with startMs <= timestamp <= endMs.
	ListByDateRange(startMs, endMs int64) ([]model.Transaction, error)
}

// Store bundles the three contracts; both implementations satisfy it.
type Store interface {
	AccountStore
	HolderStore
	TransactionStore
}
