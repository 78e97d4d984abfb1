package repository

import (
	"roundvest/internal/models"

	"gorm.io/gorm"
)

type TransferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Create(tx *gorm.DB, t *models.Transfer) error {
	return tx.Create(t).Error
}

func (r *TransferRepository) SetRoundupInvested(id uint, amountPaise int64) error {
	return r.db.Model(&models.Transfer{}).
		Where("id = ?", id).
		Update("roundup_invested_paise", amountPaise).Error
}

func (r *TransferRepository) ListByAccount(accountID uint) ([]models.Transfer, error) {
	var transfers []models.Transfer
	err := r.db.Where("account_id = ?", accountID).
		Order("created_at DESC").Find(&transfers).Error
	return transfers, err
}
