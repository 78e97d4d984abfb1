package payment

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// SandboxGateway is an offline gateway for development and tests. Orders and
// payments live in memory; signature verification is real and runs against
// the configured secret, so the settlement path is exercised end to end.
type SandboxGateway struct {
	KeySecret     string
	WebhookSecret string

	mu     sync.Mutex
	orders map[string]*Order
}

func NewSandboxGateway(keySecret, webhookSecret string) *SandboxGateway {
	return &SandboxGateway{
		KeySecret:     keySecret,
		WebhookSecret: webhookSecret,
		orders:        make(map[string]*Order),
	}
}

func (g *SandboxGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*Order, error) {
	order := &Order{
		ID:          "order_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:14],
		AmountPaise: amountPaise,
		Currency:    currency,
	}
	g.mu.Lock()
	g.orders[order.ID] = order
	g.mu.Unlock()
	return order, nil
}

func (g *SandboxGateway) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	if !strings.HasPrefix(paymentID, "pay_") {
		return nil, fmt.Errorf("sandbox: unknown payment %s", paymentID)
	}
	return &Payment{ID: paymentID, AmountPaise: 0, Method: "upi", Status: "captured"}, nil
}

func (g *SandboxGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return verify(orderID, paymentID, signature, g.KeySecret)
}

func (g *SandboxGateway) VerifyWebhook(body []byte, signature string) bool {
	return verifyWebhook(body, signature, g.WebhookSecret)
}
