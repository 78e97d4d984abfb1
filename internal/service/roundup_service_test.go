package service

import (
	"testing"

	"roundvest/internal/domain"
	"roundvest/internal/models"
	"roundvest/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRoundupAmount(t *testing.T) {
	tests := []struct {
		name        string
		amountPaise int64
		unitPaise   int64
		want        int64
	}{
		{name: "234.50 to nearest rupee", amountPaise: 23450, unitPaise: 100, want: 50},
		{name: "exact rupee multiple", amountPaise: 23400, unitPaise: 100, want: 0},
		{name: "one paisa over", amountPaise: 101, unitPaise: 100, want: 99},
		{name: "exact ten rupee multiple", amountPaise: 5000, unitPaise: 1000, want: 0},
		{name: "9.50 to nearest ten rupees", amountPaise: 950, unitPaise: 1000, want: 50},
		{name: "smallest spend", amountPaise: 1, unitPaise: 100, want: 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundupAmount(tt.amountPaise, tt.unitPaise)
			assert.Equal(t, tt.want, got)
			if got != 0 {
				assert.Less(t, got, tt.unitPaise)
				assert.Zero(t, (tt.amountPaise+got)%tt.unitPaise)
			}
		})
	}
}

func newRoundupStack(db *gorm.DB) (*RoundupService, *repository.AccountRepository) {
	accounts := repository.NewAccountRepository(db)
	transactions := repository.NewTransactionRepository(db)
	milestones := NewMilestoneService(repository.NewMilestoneRepository(db), accounts, testLogger())
	return NewRoundupService(db, accounts, transactions, milestones, testLogger()), accounts
}

func TestRoundupCreateCreditsPool(t *testing.T) {
	db := newTestDB(t)
	svc, accounts := newRoundupStack(db)
	account := newTestAccount(t, db, "roundup@example.com", domain.RiskMedium)

	txn, err := svc.Create(account.ID, 23450, 100, "coffee")
	require.NoError(t, err)
	assert.Equal(t, int64(50), txn.RoundupAmountPaise)

	fresh := reloadAccount(t, db, account.ID)
	assert.Equal(t, int64(50), fresh.RoundupPoolPaise)
	assert.Equal(t, int64(50), fresh.TotalRoundupsPaise)
	assert.Equal(t, int64(0), fresh.WalletBalancePaise)

	ok, err := accounts.CheckConservation(account.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRoundupCreateExactMultipleSkipsCredit(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newRoundupStack(db)
	account := newTestAccount(t, db, "roundup@example.com", domain.RiskMedium)

	txn, err := svc.Create(account.ID, 50000, 1000, "rent share")
	require.NoError(t, err)
	assert.Zero(t, txn.RoundupAmountPaise)

	fresh := reloadAccount(t, db, account.ID)
	assert.Zero(t, fresh.RoundupPoolPaise)
	assert.Zero(t, fresh.TotalRoundupsPaise)

	var entries int64
	require.NoError(t, db.Model(&models.LedgerEntry{}).Where("account_id = ?", account.ID).Count(&entries).Error)
	assert.Zero(t, entries)
}

func TestRoundupCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newRoundupStack(db)
	account := newTestAccount(t, db, "roundup@example.com", domain.RiskMedium)

	_, err := svc.Create(account.ID, 0, 100, "")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.Create(account.ID, -500, 100, "")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.Create(account.ID, 500, 250, "unsupported unit")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestRoundupDeleteReversesCredit(t *testing.T) {
	db := newTestDB(t)
	svc, accounts := newRoundupStack(db)
	account := newTestAccount(t, db, "roundup@example.com", domain.RiskMedium)

	txn, err := svc.Create(account.ID, 23450, 100, "coffee")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(account.ID, txn.ID))

	fresh := reloadAccount(t, db, account.ID)
	assert.Zero(t, fresh.RoundupPoolPaise)
	// Lifetime counter never goes down.
	assert.Equal(t, int64(50), fresh.TotalRoundupsPaise)

	ok, err := accounts.CheckConservation(account.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	txns, err := svc.List(account.ID)
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestRoundupDeleteRejectedWhenPoolSpent(t *testing.T) {
	db := newTestDB(t)
	svc, accounts := newRoundupStack(db)
	account := newTestAccount(t, db, "roundup@example.com", domain.RiskMedium)

	txn, err := svc.Create(account.ID, 23450, 100, "coffee")
	require.NoError(t, err)

	// Spend the pool so the reversal cannot be covered.
	require.NoError(t, accounts.DebitPool(db, account.ID, 50, domain.EntryInvestDebit, "invest:TEST"))

	err = svc.Delete(account.ID, txn.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientPoolFunds)

	// The rejected deletion left everything in place.
	txns, err := svc.List(account.ID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, txn.ID, txns[0].ID)
}

func TestRoundupDeleteUnknownTransaction(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newRoundupStack(db)
	account := newTestAccount(t, db, "roundup@example.com", domain.RiskMedium)
	other := newTestAccount(t, db, "other@example.com", domain.RiskMedium)

	txn, err := svc.Create(other.ID, 23450, 100, "coffee")
	require.NoError(t, err)

	// Transactions are scoped to the owning account.
	err = svc.Delete(account.ID, txn.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
