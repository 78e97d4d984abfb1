package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment is one position: the account's cumulative holding in one option.
// Repeated buys increase Units and AmountInvestedPaise; a full exit deletes
// the row. One row per (account, option).
type Investment struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	AccountID           uint            `gorm:"not null;index:idx_position_account_option,unique" json:"account_id"`
	PortfolioOptionID   uint            `gorm:"not null;index:idx_position_account_option,unique" json:"portfolio_option_id"`
	Units               decimal.Decimal `gorm:"type:decimal(24,8);not null" json:"units"`
	AmountInvestedPaise int64           `gorm:"not null" json:"amount_invested_paise"`
	Reference           string          `gorm:"size:128" json:"reference"` // reference of the most recent buy
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`

	Account         Account         `gorm:"foreignKey:AccountID" json:"-"`
	PortfolioOption PortfolioOption `gorm:"foreignKey:PortfolioOptionID" json:"portfolio_option"`
}

func (Investment) TableName() string {
	return "investments"
}
