package repository

import (
	"time"

	"roundvest/internal/models"

	"gorm.io/gorm"
)

type MilestoneRepository struct {
	db *gorm.DB
}

func NewMilestoneRepository(db *gorm.DB) *MilestoneRepository {
	return &MilestoneRepository{db: db}
}

func (r *MilestoneRepository) ListAll() ([]models.Milestone, error) {
	var milestones []models.Milestone
	err := r.db.Order("threshold_paise").Find(&milestones).Error
	return milestones, err
}

// ReachedUnachieved returns milestones at or below total that the account
// has not yet achieved.
func (r *MilestoneRepository) ReachedUnachieved(tx *gorm.DB, accountID uint, totalPaise int64) ([]models.Milestone, error) {
	var milestones []models.Milestone
	err := tx.Where("threshold_paise <= ?", totalPaise).
		Where("id NOT IN (?)", tx.Model(&models.AccountMilestone{}).
			Select("milestone_id").Where("account_id = ?", accountID)).
		Find(&milestones).Error
	return milestones, err
}

func (r *MilestoneRepository) MarkAchieved(tx *gorm.DB, accountID, milestoneID uint, at time.Time) error {
	return tx.Create(&models.AccountMilestone{
		AccountID:   accountID,
		MilestoneID: milestoneID,
		AchievedAt:  at,
	}).Error
}

func (r *MilestoneRepository) AchievedByAccount(accountID uint) (map[uint]time.Time, error) {
	var rows []models.AccountMilestone
	if err := r.db.Where("account_id = ?", accountID).Find(&rows).Error; err != nil {
		return nil, err
	}
	achieved := make(map[uint]time.Time, len(rows))
	for _, row := range rows {
		achieved[row.MilestoneID] = row.AchievedAt
	}
	return achieved, nil
}
