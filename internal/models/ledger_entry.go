package models

import (
	"time"
)

// LedgerEntry is the append-only journal behind the account balances.
// AmountPaise is signed: positive for credits, negative for debits. Balance
// names which balance the entry applies to (wallet or pool), so each balance
// always equals the sum of its entries.
type LedgerEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AccountID   uint      `gorm:"not null;index" json:"account_id"`
	Kind        string    `gorm:"size:30;not null;index" json:"kind"`
	Balance     string    `gorm:"size:10;not null" json:"balance"` // wallet | pool
	AmountPaise int64     `gorm:"not null" json:"amount_paise"`
	Reference   string    `gorm:"size:128" json:"reference"` // e.g. txn:12, transfer:TXN..., deposit:order_...
	CreatedAt   time.Time `json:"created_at"`

	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
