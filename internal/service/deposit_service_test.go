package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"roundvest/internal/domain"
	"roundvest/internal/repository"
	"roundvest/pkg/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testKeySecret     = "test-key-secret"
	testWebhookSecret = "test-webhook-secret"
)

func newDepositStack(db *gorm.DB) *DepositService {
	accounts := repository.NewAccountRepository(db)
	deposits := repository.NewDepositRepository(db)
	gateway := payment.NewSandboxGateway(testKeySecret, testWebhookSecret)
	return NewDepositService(db, accounts, deposits, gateway, testLogger())
}

func TestDepositSettlementCreditsWalletOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newDepositStack(db)
	account := newTestAccount(t, db, "deposit@example.com", domain.RiskMedium)
	ctx := context.Background()

	deposit, order, err := svc.CreateOrder(ctx, account.ID, 50000, "top-up")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, deposit.Status)
	assert.Equal(t, int64(50000), order.AmountPaise)

	// Nothing is credited while the order is pending.
	fresh := reloadAccount(t, db, account.ID)
	assert.Zero(t, fresh.WalletBalancePaise)

	signature := payment.Sign(order.ID, "pay_abc123", testKeySecret)
	settled, err := svc.VerifySettlement(ctx, order.ID, "pay_abc123", signature)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, settled.Status)
	assert.Equal(t, "pay_abc123", settled.PaymentID)

	fresh = reloadAccount(t, db, account.ID)
	assert.Equal(t, int64(50000), fresh.WalletBalancePaise)

	// Retrying the same settlement is a no-op.
	settled, err = svc.VerifySettlement(ctx, order.ID, "pay_abc123", signature)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, settled.Status)
	fresh = reloadAccount(t, db, account.ID)
	assert.Equal(t, int64(50000), fresh.WalletBalancePaise)
}

func TestDepositSettlementBadSignature(t *testing.T) {
	db := newTestDB(t)
	svc := newDepositStack(db)
	account := newTestAccount(t, db, "deposit@example.com", domain.RiskMedium)
	ctx := context.Background()

	_, order, err := svc.CreateOrder(ctx, account.ID, 50000, "")
	require.NoError(t, err)

	_, err = svc.VerifySettlement(ctx, order.ID, "pay_abc123", "forged")
	assert.ErrorIs(t, err, domain.ErrSettlementVerificationFailed)

	deposits, err := svc.List(account.ID, 10)
	require.NoError(t, err)
	require.Len(t, deposits, 1)
	assert.Equal(t, domain.StatusFailed, deposits[0].Status)

	fresh := reloadAccount(t, db, account.ID)
	assert.Zero(t, fresh.WalletBalancePaise)
}

func TestDepositCreateOrderValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newDepositStack(db)
	account := newTestAccount(t, db, "deposit@example.com", domain.RiskMedium)

	_, _, err := svc.CreateOrder(context.Background(), account.ID, 0, "")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func signWebhook(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestDepositWebhookSettles(t *testing.T) {
	db := newTestDB(t)
	svc := newDepositStack(db)
	account := newTestAccount(t, db, "deposit@example.com", domain.RiskMedium)
	ctx := context.Background()

	_, order, err := svc.CreateOrder(ctx, account.ID, 25000, "")
	require.NoError(t, err)

	body := []byte(fmt.Sprintf(`{"event":"payment.captured","payload":{"order_id":%q,"payment_id":"pay_hook1","method":"card"}}`, order.ID))
	deposit, err := svc.HandleWebhook(body, signWebhook(body, testWebhookSecret))
	require.NoError(t, err)
	require.NotNil(t, deposit)
	assert.Equal(t, domain.StatusSuccess, deposit.Status)
	assert.Equal(t, domain.MethodCard, deposit.Method)

	fresh := reloadAccount(t, db, account.ID)
	assert.Equal(t, int64(25000), fresh.WalletBalancePaise)

	// Redelivery of the same event credits nothing further.
	deposit, err = svc.HandleWebhook(body, signWebhook(body, testWebhookSecret))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, deposit.Status)
	fresh = reloadAccount(t, db, account.ID)
	assert.Equal(t, int64(25000), fresh.WalletBalancePaise)
}

func TestDepositWebhookRejectsBadSignatureAndOtherEvents(t *testing.T) {
	db := newTestDB(t)
	svc := newDepositStack(db)
	account := newTestAccount(t, db, "deposit@example.com", domain.RiskMedium)
	ctx := context.Background()

	_, order, err := svc.CreateOrder(ctx, account.ID, 25000, "")
	require.NoError(t, err)

	body := []byte(fmt.Sprintf(`{"event":"payment.captured","payload":{"order_id":%q,"payment_id":"pay_hook1"}}`, order.ID))
	_, err = svc.HandleWebhook(body, "forged")
	assert.ErrorIs(t, err, domain.ErrSettlementVerificationFailed)

	other := []byte(`{"event":"payment.failed","payload":{}}`)
	deposit, err := svc.HandleWebhook(other, signWebhook(other, testWebhookSecret))
	require.NoError(t, err)
	assert.Nil(t, deposit)

	fresh := reloadAccount(t, db, account.ID)
	assert.Zero(t, fresh.WalletBalancePaise)
}
