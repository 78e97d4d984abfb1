package repository

import (
	"roundvest/internal/domain"
	"roundvest/internal/models"

	"gorm.io/gorm"
)

// AccountRepository owns the two balances and their journal. All mutations
// are single guarded UPDATEs (compare-and-swap on the balance column) so a
// balance can never be driven negative and concurrent mutations of the same
// account cannot lose updates. Each mutation appends a LedgerEntry in the
// same transaction.
//
// Mutating methods take the transaction handle explicitly; services compose
// them inside db.Transaction so multi-step operations commit or roll back as
// one unit.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(tx *gorm.DB, a *models.Account) error {
	return tx.Create(a).Error
}

func (r *AccountRepository) GetByID(id uint) (*models.Account, error) {
	var a models.Account
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) GetByUserID(userID uint) (*models.Account, error) {
	var a models.Account
	if err := r.db.Where("user_id = ?", userID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// CreditWallet adds to the wallet balance and journals the credit.
func (r *AccountRepository) CreditWallet(tx *gorm.DB, accountID uint, amountPaise int64, kind, reference string) error {
	if amountPaise <= 0 {
		return domain.ErrInvalidAmount
	}
	res := tx.Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("wallet_balance_paise", gorm.Expr("wallet_balance_paise + ?", amountPaise))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.journal(tx, accountID, kind, domain.BalanceWallet, amountPaise, reference)
}

// DebitWallet subtracts from the wallet balance, guarded so the balance can
// never go below zero. Returns ErrInsufficientFunds when the guard fails.
func (r *AccountRepository) DebitWallet(tx *gorm.DB, accountID uint, amountPaise int64, kind, reference string) error {
	if amountPaise <= 0 {
		return domain.ErrInvalidAmount
	}
	res := tx.Model(&models.Account{}).
		Where("id = ? AND wallet_balance_paise >= ?", accountID, amountPaise).
		Update("wallet_balance_paise", gorm.Expr("wallet_balance_paise - ?", amountPaise))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientFunds
	}
	return r.journal(tx, accountID, kind, domain.BalanceWallet, -amountPaise, reference)
}

// CreditPool adds a round-up to the pool and bumps the lifetime counter. The
// counter is monotonic; DebitPool never touches it.
func (r *AccountRepository) CreditPool(tx *gorm.DB, accountID uint, amountPaise int64, reference string) error {
	if amountPaise <= 0 {
		return domain.ErrInvalidAmount
	}
	res := tx.Model(&models.Account{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"roundup_pool_paise":   gorm.Expr("roundup_pool_paise + ?", amountPaise),
			"total_roundups_paise": gorm.Expr("total_roundups_paise + ?", amountPaise),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.journal(tx, accountID, domain.EntryRoundupCredit, domain.BalancePool, amountPaise, reference)
}

// DebitPool subtracts from the pool balance with the same non-negative
// guard. Returns ErrInsufficientPoolFunds when the pool cannot cover it.
func (r *AccountRepository) DebitPool(tx *gorm.DB, accountID uint, amountPaise int64, kind, reference string) error {
	if amountPaise <= 0 {
		return domain.ErrInvalidAmount
	}
	res := tx.Model(&models.Account{}).
		Where("id = ? AND roundup_pool_paise >= ?", accountID, amountPaise).
		Update("roundup_pool_paise", gorm.Expr("roundup_pool_paise - ?", amountPaise))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientPoolFunds
	}
	return r.journal(tx, accountID, kind, domain.BalancePool, -amountPaise, reference)
}

func (r *AccountRepository) journal(tx *gorm.DB, accountID uint, kind, balance string, amountPaise int64, reference string) error {
	return tx.Create(&models.LedgerEntry{
		AccountID:   accountID,
		Kind:        kind,
		Balance:     balance,
		AmountPaise: amountPaise,
		Reference:   reference,
	}).Error
}

// SumEntries totals journal amounts for one entry kind and balance. Used to
// attribute invested money to its funding source.
func (r *AccountRepository) SumEntries(accountID uint, kind, balance string) (int64, error) {
	var total int64
	err := r.db.Model(&models.LedgerEntry{}).
		Where("account_id = ? AND kind = ? AND balance = ?", accountID, kind, balance).
		Select("COALESCE(SUM(amount_paise), 0)").
		Scan(&total).Error
	return total, err
}

// CheckConservation verifies that each balance equals the sum of its journal
// entries. Any divergence means a mutation escaped the journal.
func (r *AccountRepository) CheckConservation(accountID uint) (bool, error) {
	a, err := r.GetByID(accountID)
	if err != nil {
		return false, err
	}
	var walletSum, poolSum int64
	if err := r.db.Model(&models.LedgerEntry{}).
		Where("account_id = ? AND balance = ?", accountID, domain.BalanceWallet).
		Select("COALESCE(SUM(amount_paise), 0)").Scan(&walletSum).Error; err != nil {
		return false, err
	}
	if err := r.db.Model(&models.LedgerEntry{}).
		Where("account_id = ? AND balance = ?", accountID, domain.BalancePool).
		Select("COALESCE(SUM(amount_paise), 0)").Scan(&poolSum).Error; err != nil {
		return false, err
	}
	return a.WalletBalancePaise == walletSum && a.RoundupPoolPaise == poolSum, nil
}

func (r *AccountRepository) RecentEntries(accountID uint, limit int) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := r.db.Where("account_id = ?", accountID).
		Order("id DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
