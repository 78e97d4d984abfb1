package models

import (
	"time"
)

// Transaction is a recorded spend. RoundupAmountPaise is derived at creation
// and immutable; deleting the transaction reverses its pool credit first.
type Transaction struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	AccountID          uint      `gorm:"not null;index" json:"account_id"`
	AmountPaise        int64     `gorm:"not null" json:"amount_paise"`
	RoundupAmountPaise int64     `gorm:"not null" json:"roundup_amount_paise"`
	RoundingUnitPaise  int64     `gorm:"not null" json:"rounding_unit_paise"`
	Description        string    `gorm:"size:255" json:"description"`
	CreatedAt          time.Time `json:"created_at"`

	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}
