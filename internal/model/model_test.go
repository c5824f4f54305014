package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"ACTIVE", StatusActive, false},
		{"active", StatusActive, false},
		{"Frozen", StatusFrozen, false},
		{"frozen", StatusFrozen, false},
		{"closed", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseStatus(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseStatus(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestAgeOn(t *testing.T) {
	h := AccountHolder{BirthDate: date(2000, 6, 15)}

	assert.Equal(t, 23, h.AgeOn(date(2024, 6, 14)), "day before birthday")
	assert.Equal(t, 24, h.AgeOn(date(2024, 6, 15)), "on the birthday")
	assert.Equal(t, 24, h.AgeOn(date(2024, 12, 31)))
}

func TestOwnedBy(t *testing.T) {
	a := Account{PrimaryOwnerID: 1, SecondaryOwnerID: 2}
	assert.True(t, a.OwnedBy(1))
	assert.True(t, a.OwnedBy(2))
	assert.False(t, a.OwnedBy(3))

	solo := Account{PrimaryOwnerID: 1}
	assert.False(t, solo.OwnedBy(0), "zero id must never match the empty secondary slot")
}

func TestPolicyTable(t *testing.T) {
	assert.True(t, (&Account{Type: AccountTypeChecking}).Policy().HasMinimumBalance)
	assert.False(t, (&Account{Type: AccountTypeStudentChecking}).Policy().HasMinimumBalance)

	savings := (&Account{Type: AccountTypeSavings}).Policy()
	assert.True(t, savings.HasMinimumBalance)
	assert.Equal(t, AccrualYearly, savings.Accrual)

	cc := (&Account{Type: AccountTypeCreditCard}).Policy()
	assert.Equal(t, AccrualMonthly, cc.Accrual)
	assert.True(t, cc.HasCreditLimit)
	assert.False(t, cc.HasMinimumBalance)
}

func TestTransactionTime(t *testing.T) {
	tx := Transaction{Timestamp: 1700000000000}
	assert.Equal(t, int64(1700000000000), tx.Time().UnixMilli())
}
