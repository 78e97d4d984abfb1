package models

import (
	"time"
)

// Transfer is an outgoing payment from the wallet. Settlement is simulated,
// so status is success as soon as the debit commits.
type Transfer struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	AccountID            uint      `gorm:"not null;index" json:"account_id"`
	RecipientUPI         string    `gorm:"size:128" json:"recipient_upi,omitempty"`
	RecipientMobile      string    `gorm:"size:20" json:"recipient_mobile,omitempty"`
	RecipientName        string    `gorm:"size:128" json:"recipient_name"`
	AmountPaise          int64     `gorm:"not null" json:"amount_paise"`
	RoundupInvestedPaise int64     `gorm:"not null;default:0" json:"roundup_invested_paise"`
	Status               string    `gorm:"size:10;not null" json:"status"` // pending | success | failed
	TransactionRef       string    `gorm:"size:64;uniqueIndex" json:"transaction_ref"`
	Description          string    `gorm:"size:255" json:"description"`
	CreatedAt            time.Time `json:"created_at"`

	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

func (Transfer) TableName() string {
	return "transfers"
}
