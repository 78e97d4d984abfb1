package repository

import (
	"testing"

	"roundvest/internal/database"
	"roundvest/internal/domain"
	"roundvest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func newAccount(t *testing.T, db *gorm.DB) *models.Account {
	t.Helper()
	user := &models.User{Email: "ledger@example.com", PasswordHash: "x", RiskProfile: domain.RiskMedium}
	require.NoError(t, db.Create(user).Error)
	account := &models.Account{UserID: user.ID}
	require.NoError(t, db.Create(account).Error)
	return account
}

func TestWalletDebitGuard(t *testing.T) {
	db := newTestDB(t)
	repo := NewAccountRepository(db)
	account := newAccount(t, db)

	require.NoError(t, repo.CreditWallet(db, account.ID, 1000, domain.EntryDepositCredit, "deposit:o1"))

	err := repo.DebitWallet(db, account.ID, 1001, domain.EntryTransferDebit, "transfer:t1")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	require.NoError(t, repo.DebitWallet(db, account.ID, 1000, domain.EntryTransferDebit, "transfer:t1"))

	// Down to zero; the next debit fails.
	err = repo.DebitWallet(db, account.ID, 1, domain.EntryTransferDebit, "transfer:t2")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	fresh, err := repo.GetByID(account.ID)
	require.NoError(t, err)
	assert.Zero(t, fresh.WalletBalancePaise)
}

func TestPoolCreditBumpsLifetimeCounter(t *testing.T) {
	db := newTestDB(t)
	repo := NewAccountRepository(db)
	account := newAccount(t, db)

	require.NoError(t, repo.CreditPool(db, account.ID, 50, "txn:1"))
	require.NoError(t, repo.CreditPool(db, account.ID, 99, "txn:2"))
	require.NoError(t, repo.DebitPool(db, account.ID, 100, domain.EntryInvestDebit, "invest:X"))

	fresh, err := repo.GetByID(account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(49), fresh.RoundupPoolPaise)
	assert.Equal(t, int64(149), fresh.TotalRoundupsPaise)

	err = repo.DebitPool(db, account.ID, 50, domain.EntryInvestDebit, "invest:Y")
	assert.ErrorIs(t, err, domain.ErrInsufficientPoolFunds)
}

func TestMutationRejectsNonPositiveAmounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewAccountRepository(db)
	account := newAccount(t, db)

	assert.ErrorIs(t, repo.CreditWallet(db, account.ID, 0, domain.EntryDepositCredit, ""), domain.ErrInvalidAmount)
	assert.ErrorIs(t, repo.DebitWallet(db, account.ID, -5, domain.EntryTransferDebit, ""), domain.ErrInvalidAmount)
	assert.ErrorIs(t, repo.CreditPool(db, account.ID, 0, ""), domain.ErrInvalidAmount)
	assert.ErrorIs(t, repo.DebitPool(db, account.ID, -1, domain.EntryInvestDebit, ""), domain.ErrInvalidAmount)
}

func TestConservationCheck(t *testing.T) {
	db := newTestDB(t)
	repo := NewAccountRepository(db)
	account := newAccount(t, db)

	require.NoError(t, repo.CreditWallet(db, account.ID, 5000, domain.EntryDepositCredit, "deposit:o1"))
	require.NoError(t, repo.CreditPool(db, account.ID, 75, "txn:1"))
	require.NoError(t, repo.DebitWallet(db, account.ID, 2000, domain.EntryInvestDebit, "invest:A"))

	ok, err := repo.CheckConservation(account.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// A balance change that bypasses the journal is caught.
	require.NoError(t, db.Model(&models.Account{}).Where("id = ?", account.ID).
		Update("wallet_balance_paise", gorm.Expr("wallet_balance_paise + 1")).Error)
	ok, err = repo.CheckConservation(account.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecentEntriesNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewAccountRepository(db)
	account := newAccount(t, db)

	require.NoError(t, repo.CreditWallet(db, account.ID, 100, domain.EntryDepositCredit, "deposit:a"))
	require.NoError(t, repo.CreditWallet(db, account.ID, 200, domain.EntryDepositCredit, "deposit:b"))
	require.NoError(t, repo.CreditWallet(db, account.ID, 300, domain.EntryDepositCredit, "deposit:c"))

	entries, err := repo.RecentEntries(account.ID, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "deposit:c", entries[0].Reference)
	assert.Equal(t, "deposit:b", entries[1].Reference)
}
