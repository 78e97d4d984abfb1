package service

import (
	"testing"

	"roundvest/internal/database"
	"roundvest/internal/domain"
	"roundvest/internal/models"
	"roundvest/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database. The pool is pinned to one
// connection so the memory database survives for the whole test.
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

func newTestAccount(t *testing.T, db *gorm.DB, email, riskProfile string) *models.Account {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", RiskProfile: riskProfile}
	require.NoError(t, db.Create(user).Error)
	account := &models.Account{UserID: user.ID, Currency: "INR"}
	require.NoError(t, db.Create(account).Error)
	return account
}

func newTestOption(t *testing.T, db *gorm.DB, symbol, assetType, riskLevel string, pricePaise int64) *models.PortfolioOption {
	t.Helper()
	option := &models.PortfolioOption{
		Name:              symbol,
		Symbol:            symbol,
		AssetType:         assetType,
		RiskLevel:         riskLevel,
		CurrentPricePaise: pricePaise,
	}
	require.NoError(t, db.Create(option).Error)
	return option
}

// creditWallet funds the wallet directly through the guarded repository path
// so the journal stays consistent.
func creditWallet(t *testing.T, db *gorm.DB, accountID uint, amountPaise int64) {
	t.Helper()
	accounts := repository.NewAccountRepository(db)
	require.NoError(t, accounts.CreditWallet(db, accountID, amountPaise, domain.EntryDepositCredit, "test:fund"))
}

func reloadAccount(t *testing.T, db *gorm.DB, accountID uint) *models.Account {
	t.Helper()
	var a models.Account
	require.NoError(t, db.First(&a, accountID).Error)
	return &a
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
