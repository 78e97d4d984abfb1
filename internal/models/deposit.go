package models

import (
	"time"
)

// Deposit is an external wallet top-up. It stays pending until the gateway
// settlement is verified; the wallet is credited only on the pending→success
// transition.
type Deposit struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AccountID      uint      `gorm:"not null;index" json:"account_id"`
	AmountPaise    int64     `gorm:"not null" json:"amount_paise"`
	Method         string    `gorm:"size:20;not null;default:'upi'" json:"method"`
	GatewayOrderID string    `gorm:"size:64;uniqueIndex" json:"gateway_order_id"`
	PaymentID      string    `gorm:"size:64" json:"payment_id"`
	Status         string    `gorm:"size:10;not null;index" json:"status"` // pending | success | failed
	Description    string    `gorm:"size:255" json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

func (Deposit) TableName() string {
	return "deposits"
}
