package models

import (
	"time"
)

// Milestone is a static threshold against the account's lifetime round-up
// total.
type Milestone struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"size:64;not null" json:"name"`
	Description    string `gorm:"size:255" json:"description"`
	ThresholdPaise int64  `gorm:"not null" json:"threshold_paise"`
	BadgeIcon      string `gorm:"size:16" json:"badge_icon"`
}

func (Milestone) TableName() string {
	return "milestones"
}

// AccountMilestone records an achievement. Rows are never deleted; once
// achieved a milestone stays achieved even if later activity would no longer
// qualify.
type AccountMilestone struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AccountID   uint      `gorm:"not null;index:idx_account_milestone,unique" json:"account_id"`
	MilestoneID uint      `gorm:"not null;index:idx_account_milestone,unique" json:"milestone_id"`
	AchievedAt  time.Time `json:"achieved_at"`

	Account   Account   `gorm:"foreignKey:AccountID" json:"-"`
	Milestone Milestone `gorm:"foreignKey:MilestoneID" json:"-"`
}

func (AccountMilestone) TableName() string {
	return "account_milestones"
}
