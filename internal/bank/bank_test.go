package bank

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/corebank-dev/corebank/internal/fraud"
	"github.com/corebank-dev/corebank/internal/model"
	"github.com/corebank-dev/corebank/internal/money"
	"github.com/corebank-dev/corebank/internal/store"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// newTestService wires the engine over a memory store with a fixed
// clock and a roomy fraud baseline; individual tests override both.
func newTestService(t *testing.T) (*Service, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	detector := fraud.NewDetector(st, 1000, 1000)
	svc := NewService(st, detector, Policy{
		CheckingMinimumBalance: money.New(dec("250")),
		CheckingPenaltyFee:     money.New(dec("40")),
	})
	svc.now = func() time.Time { return date(2026, 9, 1) }
	return svc, st
}

func addHolder(t *testing.T, st *store.Memory, name string, birth time.Time) int {
	t.Helper()
	h := &model.AccountHolder{Name: name, BirthDate: birth}
	require.NoError(t, st.SaveHolder(h))
	return h.ID
}

// seedAccount bypasses the factory so interest/engine tests can set an
// arbitrary accrual anchor.
func seedAccount(t *testing.T, st *store.Memory, a model.Account) int {
	t.Helper()
	require.NoError(t, st.SaveAccount(&a))
	return a.ID
}
