package repository

import (
	"roundvest/internal/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(tx *gorm.DB, t *models.Transaction) error {
	return tx.Create(t).Error
}

func (r *TransactionRepository) GetForAccount(tx *gorm.DB, id, accountID uint) (*models.Transaction, error) {
	var t models.Transaction
	err := tx.Where("id = ? AND account_id = ?", id, accountID).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) Delete(tx *gorm.DB, t *models.Transaction) error {
	return tx.Delete(t).Error
}

func (r *TransactionRepository) ListByAccount(accountID uint) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.Where("account_id = ?", accountID).
		Order("created_at DESC").Find(&txns).Error
	return txns, err
}

func (r *TransactionRepository) CountByAccount(accountID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Transaction{}).
		Where("account_id = ?", accountID).Count(&count).Error
	return count, err
}
