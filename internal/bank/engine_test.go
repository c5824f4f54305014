package bank

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebank-dev/corebank/internal/fraud"
	"github.com/corebank-dev/corebank/internal/model"
	"github.com/corebank-dev/corebank/internal/money"
	"github.com/corebank-dev/corebank/internal/store"
)

func TestWithdrawRequiresOwnership(t *testing.T) {
	svc, st := newTestService(t)
	owner := addHolder(t, st, "Rosa Diaz", date(1990, 5, 20))
	joint := addHolder(t, st, "Max Diaz", date(1988, 2, 2))
	stranger := addHolder(t, st, "Ivy Chen", date(1992, 7, 7))
	now := date(2026, 9, 1)
	id := seedAccount(t, st, model.Account{
		Type: model.AccountTypeChecking, Balance: money.New(dec("1000")),
		PrimaryOwnerID: owner, SecondaryOwnerID: joint, Status: model.StatusActive,
		MinimumBalance: money.New(dec("250")), PenaltyFee: money.New(dec("40")),
		CreatedAt: now, LastModified: now,
	})

	_, err := svc.Withdraw(stranger, id, dec("10"))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Withdraw(joint, id, dec("10"))
	assert.NoError(t, err, "secondary owner may withdraw")

	_, err = svc.Withdraw(owner, 404, dec("10"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Withdraw(404, id, dec("10"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWithdrawPenaltyBelowMinimum(t *testing.T) {
	svc, st := newTestService(t)
	owner := addHolder(t, st, "Rosa Diaz", date(1990, 5, 20))
	now := date(2026, 9, 1)
	id := seedAccount(t, st, model.Account{
		Type: model.AccountTypeChecking, Balance: money.New(dec("300")),
		PrimaryOwnerID: owner, Status: model.StatusActive,
		MinimumBalance: money.New(dec("250")), PenaltyFee: money.New(dec("40")),
		CreatedAt: now, LastModified: now,
	})

	tx, err := svc.Withdraw(owner, id, dec("100"))
	require.NoError(t, err)
	assert.True(t, tx.Amount.Equal(dec("-100")), "withdrawal recorded with negative sign")

	got, err := svc.FindAccount(id)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(money.New(dec("160"))), "amount + penalty deducted, got %s", got.Balance)
}

func TestWithdrawNoPenaltyAtMinimum(t *testing.T) {
	svc, st := newTestService(t)
	owner := addHolder(t, st, "Rosa Diaz", date(1990, 5, 20))
	now := date(2026, 9, 1)
	id := seedAccount(t, st, model.Account{
		Type: model.AccountTypeChecking, Balance: money.New(dec("350")),
		PrimaryOwnerID: owner, Status: model.StatusActive,
		MinimumBalance: money.New(dec("250")), PenaltyFee: money.New(dec("40")),
		CreatedAt: now, LastModified: now,
	})

	_, err := svc.Withdraw(owner, id, dec("100"))
	require.NoError(t, err)

	got, err := svc.FindAccount(id)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(money.New(dec("250"))), "landing exactly on the minimum is fine")
}

func TestStudentCheckingNeverPenalized(t *testing.T) {
	svc, st := newTestService(t)
	owner := addHolder(t, st, "Theo Park", date(2005, 1, 10))
	now := date(2026, 9, 1)
	id := seedAccount(t, st, model.Account{
		Type: model.AccountTypeStudentChecking, Balance: money.New(dec("50")),
		PrimaryOwnerID: owner, Status: model.StatusActive,
		CreatedAt: now, LastModified: now,
	})

	_, err := svc.Withdraw(owner, id, dec("40"))
	require.NoError(t, err)

	got, err := svc.FindAccount(id)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(money.New(dec("10"))))
}

func TestWithdrawSavingsAccruesBeforeDebit(t *testing.T) {
	svc, st := newTestService(t)
	owner := addHolder(t, st, "Rosa Diaz", date(1990, 5, 20))
	now := date(2026, 9, 1)
	// 400 idle days: one whole year of interest is due.
	id := seedAccount(t, st, model.Account{
		Type: model.AccountTypeSavings, Balance: money.New(dec("500")),
		PrimaryOwnerID: owner, Status: model.StatusActive,
		MinimumBalance: money.New(dec("200")), PenaltyFee: money.New(dec("40")),
		InterestRate:   dec("0.05"),
		CreatedAt:      now.AddDate(0, 0, -400), LastModified: now.AddDate(0, 0, -400),
	})

	_, err := svc.Withdraw(owner, id, dec("10"))
	require.NoError(t, err)

	got, err := svc.FindAccount(id)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(money.New(dec("515"))),
		"500 * 1.05 - 10, no penalty at 515 >= 200, got %s", got.Balance)
	assert.True(t, got.LastModified.Equal(now))
}

func TestWithdrawSavingsPenalty(t *testing.T) {
	svc, st := newTestService(t)
	owner := addHolder(t, st, "Rosa Diaz", date(1990, 5, 20))
	now := date(2026, 9, 1)
	id := seedAccount(t, st, model.Account{
		Type: model.AccountTypeSavings, Balance: money.New(dec("300")),
		PrimaryOwnerID: owner, Status: model.StatusActive,
		MinimumBalance: money.New(dec("200")), PenaltyFee: money.New(dec("40")),
		InterestRate:   dec("0.05"),
		CreatedAt:      now, LastModified: now,
	})

	_, err := svc.Withdraw(owner, id, dec("150"))
	require.NoError(t, err)

	got, err := svc.FindAccount(id)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(money.New(dec("110"))), "300 - 150 - 40 penalty, got %s", got.Balance)
}

func TestCreditCardLimitEnforced(t *testing.T) {
	svc, st := newTestService(t)
	owner := addHolder(t, st, "Rosa Diaz", date(1990, 5, 20))
	now := date(2026, 9, 1)
	id := seedAccount(t, st, model.Account{
		Type: model.AccountTypeCreditCard, Balance: money.New(dec("0")),
		PrimaryOwnerID: owner, Status: model.StatusActive,
		InterestRate: dec("0.12"), CreditLimit: money.New(dec("100")),
		CreatedAt: now, LastModified: now,
	})

	// Down to the floor is allowed.
	_, err := svc.Withdraw(owner, id, dec("100"))
	require.NoError(t, err)
	got, err := svc.FindAccount(id)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(money.New(dec("-100"))))

	// Past the floor is rejected with no side effects.
	_, err = svc.Withdraw(owner, id, dec("1"))
	assert.ErrorIs(t, err, ErrCreditLimitExceeded)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err = svc.FindAccount(id)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(money.New(dec("-100"))), "rejected withdrawal must not change the balance")
	txs, err := svc.History(id)
	require.NoError(t, err)
	assert.Len(t, txs, 1, "rejected withdrawal must not reach the ledger")
}

func TestDepositRecordsPositiveAmount(t *testing.T) {
	svc, st := newTestService(t)
	owner := addHolder(t, st, "Rosa Diaz", date(1990, 5, 20))
	other := addHolder(t, st, "Ivy Chen", date(1992, 7, 7))
	now := date(2026, 9, 1)
	id := seedAccount(t, st, model.Account{
		Type: model.AccountTypeChecking, Balance: money.New(dec("100")),
		PrimaryOwnerID: owner, Status: model.StatusActive,
		MinimumBalance: money.New(dec("250")), PenaltyFee: money.New(dec("40")),
		CreatedAt: now, LastModified: now,
	})

	// Any existing holder may deposit; no ownership check.
	tx, err := svc.Deposit(other, id, dec("50"))
	require.NoError(t, err)
	assert.True(t, tx.Amount.Equal(dec("50")), "deposits carry a positive signed amount")
	assert.Equal(t, other, tx.UserID)

	got, err := svc.FindAccount(id)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(money.New(dec("150"))))
}

func TestDepositMissingEntities(t *testing.T) {
	svc, st := newTestService(t)
	owner := addHolder(t, st, "Rosa Diaz", date(1990, 5, 20))
	now := date(2026, 9, 1)
	id := seedAccount(t, st, model.Account{
		Type: model.AccountTypeChecking, Balance: money.New(dec("100")),
		PrimaryOwnerID: owner, Status: model.StatusActive,
		CreatedAt: now, LastModified: now,
	})

	_, err := svc.Deposit(404, id, dec("50"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Deposit(owner, 404, dec("50"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNegativeAmountsRejected(t *testing.T) {
	svc, st := newTestService(t)
	owner := addHolder(t, st, "Rosa Diaz", date(1990, 5, 20))
	now := date(2026, 9, 1)
	id := seedAccount(t, st, model.Account{
		Type: model.AccountTypeChecking, Balance: money.New(dec("100")),
		PrimaryOwnerID: owner, Status: model.StatusActive,
		CreatedAt: now, LastModified: now,
	})

	_, err := svc.Withdraw(owner, id, dec("-5"))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Deposit(owner, id, dec("-5"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFraudGateLeavesNoTrace(t *testing.T) {
	svc, st := newTestService(t)
	owner := addHolder(t, st, "Rosa Diaz", date(1990, 5, 20))
	now := date(2026, 9, 1)
	id := seedAccount(t, st, model.Account{
		Type: model.AccountTypeChecking, Balance: money.New(dec("1000")),
		PrimaryOwnerID: owner, Status: model.StatusActive,
		MinimumBalance: money.New(dec("250")), PenaltyFee: money.New(dec("40")),
		CreatedAt: now, LastModified: now,
	})

	// Two prior transactions just before the clock: the next one lands
	// within the velocity window of the first.
	nowMs := now.UnixMilli()
	require.NoError(t, st.Append(model.Transaction{ID: "t1", UserID: owner, AccountID: id, Amount: dec("-1"), Timestamp: nowMs - 500}))
	require.NoError(t, st.Append(model.Transaction{ID: "t2", UserID: owner, AccountID: id, Amount: dec("-1"), Timestamp: nowMs - 300}))

	_, err := svc.Withdraw(owner, id, dec("10"))
	assert.ErrorIs(t, err, ErrFraudSuspected)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.FindAccount(id)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(money.New(dec("1000"))), "gated withdrawal must not mutate the balance")
	txs, err := svc.History(id)
	require.NoError(t, err)
	assert.Len(t, txs, 2, "gated withdrawal must not reach the ledger")
}

func TestHistory(t *testing.T) {
	svc, st := newTestService(t)
	owner := addHolder(t, st, "Rosa Diaz", date(1990, 5, 20))
	now := date(2026, 9, 1)
	id := seedAccount(t, st, model.Account{
		Type: model.AccountTypeChecking, Balance: money.New(dec("1000")),
		PrimaryOwnerID: owner, Status: model.StatusActive,
		CreatedAt: now, LastModified: now,
	})

	_, err := svc.Deposit(owner, id, dec("5"))
	require.NoError(t, err)

	txs, err := svc.History(id)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Amount.Equal(dec("5")))

	_, err = svc.History(404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentWithdrawalsSerialize(t *testing.T) {
	st := store.NewMemory()
	// Roomy baseline so the volume heuristic never engages.
	detector := fraud.NewDetector(st, 1_000_000, 1000)
	svc := NewService(st, detector, Policy{
		CheckingMinimumBalance: money.New(dec("250")),
		CheckingPenaltyFee:     money.New(dec("40")),
	})

	// Advance the clock 2s per call so timestamps stay spread out.
	var tick atomic.Int64
	base := date(2026, 9, 1)
	svc.now = func() time.Time {
		return base.Add(time.Duration(tick.Add(1)) * 2 * time.Second)
	}

	owner := addHolder(t, st, "Rosa Diaz", date(1990, 5, 20))
	id := seedAccount(t, st, model.Account{
		Type: model.AccountTypeChecking, Balance: money.New(dec("1000")),
		PrimaryOwnerID: owner, Status: model.StatusActive,
		MinimumBalance: money.New(dec("250")), PenaltyFee: money.New(dec("40")),
		CreatedAt: base, LastModified: base,
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Withdraw(owner, id, dec("10"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := svc.FindAccount(id)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(money.New(dec("900"))), "no lost updates, got %s", got.Balance)
	txs, err := svc.History(id)
	require.NoError(t, err)
	assert.Len(t, txs, 10)
}
