package repository

import (
	"roundvest/internal/domain"
	"roundvest/internal/models"

	"gorm.io/gorm"
)

type DepositRepository struct {
	db *gorm.DB
}

func NewDepositRepository(db *gorm.DB) *DepositRepository {
	return &DepositRepository{db: db}
}

func (r *DepositRepository) Create(d *models.Deposit) error {
	return r.db.Create(d).Error
}

func (r *DepositRepository) GetByOrderID(tx *gorm.DB, orderID string) (*models.Deposit, error) {
	var d models.Deposit
	if err := tx.Where("gateway_order_id = ?", orderID).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// MarkSuccess flips a pending deposit to success. The guarded update makes
// settlement idempotent: a second verification of the same order affects no
// rows and reports ErrConcurrentModification instead of double-crediting.
func (r *DepositRepository) MarkSuccess(tx *gorm.DB, id uint, paymentID, method string) error {
	res := tx.Model(&models.Deposit{}).
		Where("id = ? AND status = ?", id, domain.StatusPending).
		Updates(map[string]interface{}{
			"status":     domain.StatusSuccess,
			"payment_id": paymentID,
			"method":     method,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrConcurrentModification
	}
	return nil
}

func (r *DepositRepository) MarkFailed(id uint) error {
	return r.db.Model(&models.Deposit{}).
		Where("id = ? AND status = ?", id, domain.StatusPending).
		Update("status", domain.StatusFailed).Error
}

func (r *DepositRepository) ListByAccount(accountID uint, limit int) ([]models.Deposit, error) {
	var deposits []models.Deposit
	q := r.db.Where("account_id = ?", accountID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&deposits).Error
	return deposits, err
}
