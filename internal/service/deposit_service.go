package service

import (
	"context"
	"encoding/json"
	"errors"

	"roundvest/internal/domain"
	"roundvest/internal/models"
	"roundvest/internal/repository"
	"roundvest/pkg/payment"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// DepositService runs the wallet top-up lifecycle against the payment
// gateway collaborator. The wallet is credited only on a verified
// pending→success settlement; verification failures and timeouts never touch
// a balance.
type DepositService struct {
	db       *gorm.DB
	accounts *repository.AccountRepository
	deposits *repository.DepositRepository
	gateway  payment.Gateway
	log      zerolog.Logger
}

func NewDepositService(db *gorm.DB, accounts *repository.AccountRepository, deposits *repository.DepositRepository, gateway payment.Gateway, log zerolog.Logger) *DepositService {
	return &DepositService{
		db:       db,
		accounts: accounts,
		deposits: deposits,
		gateway:  gateway,
		log:      log.With().Str("component", "deposit").Logger(),
	}
}

// CreateOrder opens a gateway order and records the deposit as pending. An
// abandoned order simply stays pending; nothing is credited until
// VerifySettlement succeeds.
func (s *DepositService) CreateOrder(ctx context.Context, accountID uint, amountPaise int64, description string) (*models.Deposit, *payment.Order, error) {
	if amountPaise <= 0 {
		return nil, nil, domain.ErrInvalidAmount
	}
	order, err := s.gateway.CreateOrder(ctx, amountPaise, "INR", description)
	if err != nil {
		return nil, nil, err
	}
	deposit := &models.Deposit{
		AccountID:      accountID,
		AmountPaise:    amountPaise,
		Method:         domain.MethodUPI,
		GatewayOrderID: order.ID,
		Status:         domain.StatusPending,
		Description:    description,
	}
	if err := s.deposits.Create(deposit); err != nil {
		return nil, nil, err
	}
	return deposit, order, nil
}

// VerifySettlement checks the gateway signature and, on the first successful
// verification, flips the deposit to success and credits the wallet in one
// transaction. Re-verifying a settled order returns the deposit unchanged,
// so retries are safe.
func (s *DepositService) VerifySettlement(ctx context.Context, orderID, paymentID, signature string) (*models.Deposit, error) {
	deposit, err := s.deposits.GetByOrderID(s.db, orderID)
	if err != nil {
		return nil, err
	}
	if deposit.Status == domain.StatusSuccess {
		return deposit, nil
	}
	if !s.gateway.VerifySignature(orderID, paymentID, signature) {
		_ = s.deposits.MarkFailed(deposit.ID)
		s.log.Warn().Str("order_id", orderID).Msg("settlement signature rejected")
		return nil, domain.ErrSettlementVerificationFailed
	}

	method := domain.MethodUPI
	if p, ferr := s.gateway.FetchPayment(ctx, paymentID); ferr == nil && p.Method != "" {
		method = p.Method
	}
	return s.settle(deposit, paymentID, method)
}

// settle flips the deposit to success and credits the wallet in one
// transaction. Losing the guarded update race means a concurrent settlement
// already credited, so the fresh row is returned instead of an error.
func (s *DepositService) settle(deposit *models.Deposit, paymentID, method string) (*models.Deposit, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.deposits.MarkSuccess(tx, deposit.ID, paymentID, method); err != nil {
			return err
		}
		return s.accounts.CreditWallet(tx, deposit.AccountID, deposit.AmountPaise, domain.EntryDepositCredit, "deposit:"+deposit.GatewayOrderID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConcurrentModification) {
			return s.deposits.GetByOrderID(s.db, deposit.GatewayOrderID)
		}
		return nil, err
	}
	s.log.Info().Str("order_id", deposit.GatewayOrderID).Uint("account_id", deposit.AccountID).
		Int64("amount_paise", deposit.AmountPaise).Msg("deposit settled")
	return s.deposits.GetByOrderID(s.db, deposit.GatewayOrderID)
}

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		OrderID   string `json:"order_id"`
		PaymentID string `json:"payment_id"`
		Method    string `json:"method"`
	} `json:"payload"`
}

// HandleWebhook settles a deposit from a gateway event delivery. The body
// HMAC stands in for the checkout signature as the authenticity gate. Events
// other than payment.captured are acknowledged and dropped; redeliveries of a
// settled order are no-ops.
func (s *DepositService) HandleWebhook(body []byte, signature string) (*models.Deposit, error) {
	if !s.gateway.VerifyWebhook(body, signature) {
		s.log.Warn().Msg("webhook signature rejected")
		return nil, domain.ErrSettlementVerificationFailed
	}
	var ev webhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, err
	}
	if ev.Event != "payment.captured" {
		return nil, nil
	}
	deposit, err := s.deposits.GetByOrderID(s.db, ev.Payload.OrderID)
	if err != nil {
		return nil, err
	}
	if deposit.Status == domain.StatusSuccess {
		return deposit, nil
	}
	method := ev.Payload.Method
	if method == "" {
		method = domain.MethodUPI
	}
	return s.settle(deposit, ev.Payload.PaymentID, method)
}

func (s *DepositService) List(accountID uint, limit int) ([]models.Deposit, error) {
	return s.deposits.ListByAccount(accountID, limit)
}
