package service

import (
	"fmt"

	"roundvest/internal/domain"
	"roundvest/internal/models"
	"roundvest/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// RoundupAmount returns the round-up for a spend, in [0, unit). Exact
// multiples of the unit round up to themselves, so their round-up is zero.
func RoundupAmount(amountPaise, unitPaise int64) int64 {
	rem := amountPaise % unitPaise
	if rem == 0 {
		return 0
	}
	return unitPaise - rem
}

type RoundupService struct {
	db           *gorm.DB
	accounts     *repository.AccountRepository
	transactions *repository.TransactionRepository
	milestones   *MilestoneService
	log          zerolog.Logger
}

func NewRoundupService(db *gorm.DB, accounts *repository.AccountRepository, transactions *repository.TransactionRepository, milestones *MilestoneService, log zerolog.Logger) *RoundupService {
	return &RoundupService{
		db:           db,
		accounts:     accounts,
		transactions: transactions,
		milestones:   milestones,
		log:          log.With().Str("component", "roundup").Logger(),
	}
}

// Create records a spend, credits its round-up to the pool and evaluates
// milestones, all in one transaction. A zero round-up (exact multiple) skips
// the pool credit but still records the spend.
func (s *RoundupService) Create(accountID uint, amountPaise, unitPaise int64, description string) (*models.Transaction, error) {
	if amountPaise <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !domain.ValidRoundingUnit(unitPaise) {
		return nil, domain.ErrInvalidAmount
	}
	roundup := RoundupAmount(amountPaise, unitPaise)

	txn := &models.Transaction{
		AccountID:          accountID,
		AmountPaise:        amountPaise,
		RoundupAmountPaise: roundup,
		RoundingUnitPaise:  unitPaise,
		Description:        description,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.transactions.Create(tx, txn); err != nil {
			return err
		}
		if roundup > 0 {
			if err := s.accounts.CreditPool(tx, accountID, roundup, fmt.Sprintf("txn:%d", txn.ID)); err != nil {
				return err
			}
		}
		return s.milestones.Evaluate(tx, accountID)
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug().Uint("account_id", accountID).Int64("roundup_paise", roundup).Msg("transaction recorded")
	return txn, nil
}

// Delete removes a transaction and reverses its round-up credit. When the
// pool can no longer cover the reversal (the round-up was already invested),
// the deletion is rejected with ErrInsufficientPoolFunds and nothing changes.
func (s *RoundupService) Delete(accountID, txnID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		txn, err := s.transactions.GetForAccount(tx, txnID, accountID)
		if err != nil {
			return err
		}
		if txn.RoundupAmountPaise > 0 {
			ref := fmt.Sprintf("txn:%d", txn.ID)
			if err := s.accounts.DebitPool(tx, accountID, txn.RoundupAmountPaise, domain.EntryRoundupReversal, ref); err != nil {
				return err
			}
		}
		return s.transactions.Delete(tx, txn)
	})
}

func (s *RoundupService) List(accountID uint) ([]models.Transaction, error) {
	return s.transactions.ListByAccount(accountID)
}
