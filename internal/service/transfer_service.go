package service

import (
	"fmt"
	"strings"

	"roundvest/internal/domain"
	"roundvest/internal/models"
	"roundvest/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type TransferService struct {
	db          *gorm.DB
	accounts    *repository.AccountRepository
	transfers   *repository.TransferRepository
	investments *InvestmentService
	log         zerolog.Logger
}

func NewTransferService(db *gorm.DB, accounts *repository.AccountRepository, transfers *repository.TransferRepository, investments *InvestmentService, log zerolog.Logger) *TransferService {
	return &TransferService{
		db:          db,
		accounts:    accounts,
		transfers:   transfers,
		investments: investments,
		log:         log.With().Str("component", "transfer").Logger(),
	}
}

type TransferRequest struct {
	RecipientUPI         string
	RecipientMobile      string
	RecipientName        string
	AmountPaise          int64
	RoundupToInvestPaise int64
	Description          string
}

// TransferResult carries the committed transfer plus the outcome of the
// optional investment leg. The two are not one atomic unit: the transfer
// stands even when the investment fails, and the failure is reported in
// InvestmentError.
type TransferResult struct {
	Transfer        *models.Transfer `json:"transfer"`
	Investment      *InvestResult    `json:"investment,omitempty"`
	InvestmentError string           `json:"investment_error,omitempty"`
}

// Transfer debits the wallet and records the outgoing payment. Settlement is
// simulated, so the record commits as success. An attached round-up amount
// is then invested from the remaining wallet balance as a second,
// independently validated operation.
func (s *TransferService) Transfer(accountID uint, req TransferRequest) (*TransferResult, error) {
	if req.AmountPaise <= 0 || req.RoundupToInvestPaise < 0 {
		return nil, domain.ErrInvalidAmount
	}
	if req.RecipientUPI == "" && req.RecipientMobile == "" {
		return nil, fmt.Errorf("%w: recipient upi or mobile required", domain.ErrInvalidAmount)
	}

	ref := "TXN" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:10]
	transfer := &models.Transfer{
		AccountID:       accountID,
		RecipientUPI:    req.RecipientUPI,
		RecipientMobile: req.RecipientMobile,
		RecipientName:   req.RecipientName,
		AmountPaise:     req.AmountPaise,
		Status:          domain.StatusSuccess,
		TransactionRef:  ref,
		Description:     req.Description,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.accounts.DebitWallet(tx, accountID, req.AmountPaise, domain.EntryTransferDebit, "transfer:"+ref); err != nil {
			return err
		}
		return s.transfers.Create(tx, transfer)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("account_id", accountID).Str("ref", ref).Int64("amount_paise", req.AmountPaise).Msg("transfer committed")

	result := &TransferResult{Transfer: transfer}
	if req.RoundupToInvestPaise > 0 {
		inv, invErr := s.investments.Invest(accountID, req.RoundupToInvestPaise, domain.SourceWallet)
		if invErr != nil {
			result.InvestmentError = invErr.Error()
			s.log.Warn().Uint("account_id", accountID).Str("ref", ref).Err(invErr).Msg("transfer investment leg failed")
		} else {
			result.Investment = inv
			transfer.RoundupInvestedPaise = req.RoundupToInvestPaise
			if err := s.transfers.SetRoundupInvested(transfer.ID, req.RoundupToInvestPaise); err != nil {
				return result, err
			}
		}
	}
	return result, nil
}

func (s *TransferService) List(accountID uint) ([]models.Transfer, error) {
	return s.transfers.ListByAccount(accountID)
}
