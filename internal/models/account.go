package models

import (
	"time"
)

// Account holds the spendable balances for one user. Balances are paise and
// are only ever changed through guarded updates in AccountRepository, paired
// with a LedgerEntry in the same transaction.
//
// TotalRoundupsPaise is a monotonic counter of every round-up ever credited;
// it feeds milestone evaluation and is never decremented, not even when a
// transaction's round-up is reversed.
type Account struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	WalletBalancePaise int64     `gorm:"not null;default:0" json:"wallet_balance_paise"`
	RoundupPoolPaise   int64     `gorm:"not null;default:0" json:"roundup_pool_paise"`
	TotalRoundupsPaise int64     `gorm:"not null;default:0" json:"total_roundups_paise"`
	Currency           string    `gorm:"size:3;not null;default:'INR'" json:"currency"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Account) TableName() string {
	return "accounts"
}
