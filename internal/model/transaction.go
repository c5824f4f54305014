package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one immutable row in the append-only ledger: a signed
// money movement on an account. Amount is negative for withdrawals and
// positive for deposits; Timestamp is epoch milliseconds.
type Transaction struct {
	ID        string
	UserID    int
	AccountID int
	Amount    decimal.Decimal
	Timestamp int64
}

// Time returns the transaction timestamp as a time.Time.
func (t Transaction) Time() time.Time {
	return time.UnixMilli(t.Timestamp)
}
