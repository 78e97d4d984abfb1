package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Order is an opaque gateway order awaiting settlement.
type Order struct {
	ID          string
	AmountPaise int64
	Currency    string
}

// Payment is the gateway's record of a captured payment.
type Payment struct {
	ID          string
	OrderID     string
	AmountPaise int64
	Method      string // upi | card | netbanking | wallet
	Status      string
}

// Gateway is the payment collaborator contract: order creation plus
// authoritative settlement verification. Verification is the sole gate for
// crediting a wallet.
type Gateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*Order, error)
	FetchPayment(ctx context.Context, paymentID string) (*Payment, error)
	VerifySignature(orderID, paymentID, signature string) bool
	VerifyWebhook(body []byte, signature string) bool
}

// Sign computes the settlement signature over "orderID|paymentID" the way
// the gateway does. Exposed so the sandbox gateway and tests can produce
// valid signatures.
func Sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func verify(orderID, paymentID, signature, secret string) bool {
	expected := Sign(orderID, paymentID, secret)
	return hmac.Equal([]byte(signature), []byte(expected))
}

func verifyWebhook(body []byte, signature, secret string) bool {
	if secret == "" {
		return true
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
