package repository

import (
	"errors"

	"roundvest/internal/domain"
	"roundvest/internal/models"

	"gorm.io/gorm"
)

// PortfolioRepository covers the option catalog and per-account selections.
type PortfolioRepository struct {
	db *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

func (r *PortfolioRepository) ListOptions() ([]models.PortfolioOption, error) {
	var options []models.PortfolioOption
	err := r.db.Order("id").Find(&options).Error
	return options, err
}

func (r *PortfolioRepository) ListOptionsTx(tx *gorm.DB) ([]models.PortfolioOption, error) {
	var options []models.PortfolioOption
	err := tx.Order("id").Find(&options).Error
	return options, err
}

func (r *PortfolioRepository) GetOption(tx *gorm.DB, id uint) (*models.PortfolioOption, error) {
	var o models.PortfolioOption
	if err := tx.First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnknownOption
		}
		return nil, err
	}
	return &o, nil
}

func (r *PortfolioRepository) CountOptions(tx *gorm.DB, ids []uint) (int64, error) {
	var count int64
	err := tx.Model(&models.PortfolioOption{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// UpdatePrice sets a new price for one option.
func (r *PortfolioRepository) UpdatePrice(tx *gorm.DB, optionID uint, pricePaise int64) error {
	res := tx.Model(&models.PortfolioOption{}).
		Where("id = ?", optionID).
		Update("current_price_paise", pricePaise)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUnknownOption
	}
	return nil
}

func (r *PortfolioRepository) ListSelections(tx *gorm.DB, accountID uint) ([]models.PortfolioSelection, error) {
	var selections []models.PortfolioSelection
	err := tx.Preload("PortfolioOption").
		Where("account_id = ?", accountID).
		Order("id").Find(&selections).Error
	return selections, err
}

func (r *PortfolioRepository) CreateSelection(tx *gorm.DB, s *models.PortfolioSelection) error {
	return tx.Create(s).Error
}

// ReplaceUserSelections swaps the user-chosen set while leaving
// auto-recommended rows in place.
func (r *PortfolioRepository) ReplaceUserSelections(tx *gorm.DB, accountID uint, optionIDs []uint) error {
	if err := tx.Where("account_id = ? AND is_auto_recommended = ?", accountID, false).
		Delete(&models.PortfolioSelection{}).Error; err != nil {
		return err
	}
	for _, id := range optionIDs {
		// Skip ids already present as auto-recommended to keep the
		// (account, option) pair unique.
		var existing int64
		if err := tx.Model(&models.PortfolioSelection{}).
			Where("account_id = ? AND portfolio_option_id = ?", accountID, id).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			continue
		}
		if err := tx.Create(&models.PortfolioSelection{
			AccountID:         accountID,
			PortfolioOptionID: id,
			IsAutoRecommended: false,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *PortfolioRepository) RemoveSelection(tx *gorm.DB, accountID, optionID uint) error {
	res := tx.Where("account_id = ? AND portfolio_option_id = ?", accountID, optionID).
		Delete(&models.PortfolioSelection{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUnknownOption
	}
	return nil
}

func (r *PortfolioRepository) CountSelections(accountID uint, autoRecommended bool) (int64, error) {
	var count int64
	err := r.db.Model(&models.PortfolioSelection{}).
		Where("account_id = ? AND is_auto_recommended = ?", accountID, autoRecommended).
		Count(&count).Error
	return count, err
}
