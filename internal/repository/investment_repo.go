package repository

import (
	"errors"

	"roundvest/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvestmentRepository struct {
	db *gorm.DB
}

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// Upsert folds a buy into the (account, option) position, creating it on the
// first buy.
func (r *InvestmentRepository) Upsert(tx *gorm.DB, accountID, optionID uint, units decimal.Decimal, amountPaise int64, reference string) (*models.Investment, error) {
	var inv models.Investment
	err := tx.Where("account_id = ? AND portfolio_option_id = ?", accountID, optionID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		inv = models.Investment{
			AccountID:           accountID,
			PortfolioOptionID:   optionID,
			Units:               units,
			AmountInvestedPaise: amountPaise,
			Reference:           reference,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return nil, err
		}
		return &inv, nil
	}
	if err != nil {
		return nil, err
	}
	inv.Units = inv.Units.Add(units)
	inv.AmountInvestedPaise += amountPaise
	inv.Reference = reference
	if err := tx.Save(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvestmentRepository) GetForAccount(tx *gorm.DB, accountID, optionID uint) (*models.Investment, error) {
	var inv models.Investment
	err := tx.Preload("PortfolioOption").
		Where("account_id = ? AND portfolio_option_id = ?", accountID, optionID).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvestmentRepository) Delete(tx *gorm.DB, inv *models.Investment) error {
	return tx.Delete(inv).Error
}

func (r *InvestmentRepository) ListByAccount(accountID uint) ([]models.Investment, error) {
	var investments []models.Investment
	err := r.db.Preload("PortfolioOption").
		Where("account_id = ?", accountID).
		Order("created_at DESC").Find(&investments).Error
	return investments, err
}

func (r *InvestmentRepository) TotalInvested(accountID uint) (int64, error) {
	var total int64
	err := r.db.Model(&models.Investment{}).
		Where("account_id = ?", accountID).
		Select("COALESCE(SUM(amount_invested_paise), 0)").
		Scan(&total).Error
	return total, err
}
