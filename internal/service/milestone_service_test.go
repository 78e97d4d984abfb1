package service

import (
	"testing"

	"roundvest/internal/domain"
	"roundvest/internal/models"
	"roundvest/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedMilestones(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []models.Milestone{
		{Name: "First Rupee", ThresholdPaise: 100},
		{Name: "Ten Rupees", ThresholdPaise: 1000},
		{Name: "Hundred Rupees", ThresholdPaise: 10000},
	}
	require.NoError(t, db.Create(&rows).Error)
}

func TestMilestoneEvaluateMarksReachedThresholds(t *testing.T) {
	db := newTestDB(t)
	seedMilestones(t, db)
	svc, _ := newRoundupStack(db)
	milestones := NewMilestoneService(repository.NewMilestoneRepository(db), repository.NewAccountRepository(db), testLogger())
	account := newTestAccount(t, db, "milestone@example.com", domain.RiskMedium)

	// 60p round-up: below every threshold.
	_, err := svc.Create(account.ID, 40, 100, "")
	require.NoError(t, err)
	statuses, err := milestones.Overview(account.ID)
	require.NoError(t, err)
	for _, st := range statuses {
		assert.False(t, st.Achieved, st.Name)
	}

	// Another 99p lifts the lifetime total to 159p, past the first threshold.
	_, err = svc.Create(account.ID, 1, 100, "")
	require.NoError(t, err)
	statuses, err = milestones.Overview(account.ID)
	require.NoError(t, err)
	assert.True(t, statuses[0].Achieved)
	require.NotNil(t, statuses[0].AchievedAt)
	assert.False(t, statuses[1].Achieved)
	assert.False(t, statuses[2].Achieved)
}

func TestMilestoneAchievementIsPermanent(t *testing.T) {
	db := newTestDB(t)
	seedMilestones(t, db)
	svc, _ := newRoundupStack(db)
	milestones := NewMilestoneService(repository.NewMilestoneRepository(db), repository.NewAccountRepository(db), testLogger())
	account := newTestAccount(t, db, "milestone@example.com", domain.RiskMedium)

	txn, err := svc.Create(account.ID, 23450, 100, "")
	require.NoError(t, err)

	statuses, err := milestones.Overview(account.ID)
	require.NoError(t, err)
	assert.True(t, statuses[0].Achieved)

	// Reversing the round-up does not undo the achievement.
	require.NoError(t, svc.Delete(account.ID, txn.ID))
	statuses, err = milestones.Overview(account.ID)
	require.NoError(t, err)
	assert.True(t, statuses[0].Achieved)
}

func TestMilestoneEvaluateIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedMilestones(t, db)
	svc, _ := newRoundupStack(db)
	account := newTestAccount(t, db, "milestone@example.com", domain.RiskMedium)

	_, err := svc.Create(account.ID, 23450, 100, "")
	require.NoError(t, err)
	_, err = svc.Create(account.ID, 23450, 100, "")
	require.NoError(t, err)

	var achievements int64
	require.NoError(t, db.Model(&models.AccountMilestone{}).
		Where("account_id = ?", account.ID).Count(&achievements).Error)
	assert.Equal(t, int64(1), achievements)
}
