package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	RiskProfile  string         `gorm:"size:10;not null;default:'medium'" json:"risk_profile"` // low | medium | high
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Account *Account `gorm:"foreignKey:UserID" json:"account,omitempty"`
}

func (User) TableName() string {
	return "users"
}
