package service

import (
	"time"

	"roundvest/internal/models"
	"roundvest/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type MilestoneService struct {
	milestones *repository.MilestoneRepository
	accounts   *repository.AccountRepository
	log        zerolog.Logger
}

func NewMilestoneService(milestones *repository.MilestoneRepository, accounts *repository.AccountRepository, log zerolog.Logger) *MilestoneService {
	return &MilestoneService{
		milestones: milestones,
		accounts:   accounts,
		log:        log.With().Str("component", "milestones").Logger(),
	}
}

// Evaluate marks every milestone whose threshold the account's lifetime
// round-up total has reached. Runs inside the caller's transaction so
// achievement commits atomically with the credit that triggered it.
// Achievements are permanent: the counter is monotonic and rows are never
// removed.
func (s *MilestoneService) Evaluate(tx *gorm.DB, accountID uint) error {
	var a models.Account
	if err := tx.First(&a, accountID).Error; err != nil {
		return err
	}
	reached, err := s.milestones.ReachedUnachieved(tx, accountID, a.TotalRoundupsPaise)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, m := range reached {
		if err := s.milestones.MarkAchieved(tx, accountID, m.ID, now); err != nil {
			return err
		}
		s.log.Info().Uint("account_id", accountID).Str("milestone", m.Name).Msg("milestone achieved")
	}
	return nil
}

type MilestoneStatus struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	ThresholdPaise int64      `json:"threshold_paise"`
	BadgeIcon      string     `json:"badge_icon"`
	Achieved       bool       `json:"achieved"`
	AchievedAt     *time.Time `json:"achieved_at,omitempty"`
}

// Overview lists the full milestone ladder with the account's achievement
// state.
func (s *MilestoneService) Overview(accountID uint) ([]MilestoneStatus, error) {
	all, err := s.milestones.ListAll()
	if err != nil {
		return nil, err
	}
	achieved, err := s.milestones.AchievedByAccount(accountID)
	if err != nil {
		return nil, err
	}
	statuses := make([]MilestoneStatus, 0, len(all))
	for _, m := range all {
		st := MilestoneStatus{
			ID:             m.ID,
			Name:           m.Name,
			Description:    m.Description,
			ThresholdPaise: m.ThresholdPaise,
			BadgeIcon:      m.BadgeIcon,
		}
		if at, ok := achieved[m.ID]; ok {
			st.Achieved = true
			t := at
			st.AchievedAt = &t
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}
