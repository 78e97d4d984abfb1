package models

import (
	"time"
)

// PortfolioOption is a catalog entry. CurrentPricePaise changes only through
// the price refresh path.
type PortfolioOption struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:128;not null" json:"name"`
	Symbol            string    `gorm:"size:32;not null;uniqueIndex" json:"symbol"`
	AssetType         string    `gorm:"size:10;not null;index" json:"asset_type"` // stock | crypto | etf
	RiskLevel         string    `gorm:"size:10;not null;index" json:"risk_level"` // low | medium | high
	Description       string    `gorm:"size:255" json:"description"`
	CurrentPricePaise int64     `gorm:"not null;default:0" json:"current_price_paise"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (PortfolioOption) TableName() string {
	return "portfolio_options"
}

// PortfolioSelection marks one option as part of an account's allocation set.
type PortfolioSelection struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	AccountID          uint      `gorm:"not null;index:idx_selection_account_option,unique" json:"account_id"`
	PortfolioOptionID  uint      `gorm:"not null;index:idx_selection_account_option,unique" json:"portfolio_option_id"`
	IsAutoRecommended  bool      `gorm:"not null;default:false" json:"is_auto_recommended"`
	CreatedAt          time.Time `json:"created_at"`

	Account         Account         `gorm:"foreignKey:AccountID" json:"-"`
	PortfolioOption PortfolioOption `gorm:"foreignKey:PortfolioOptionID" json:"portfolio_option"`
}

func (PortfolioSelection) TableName() string {
	return "portfolio_selections"
}
