package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RazorpayGateway talks to the Razorpay Orders/Payments API with basic auth.
// All calls are bounded by the client timeout; a timed-out order creation
// leaves no local state and a timed-out verification leaves the deposit
// pending for later reconciliation.
type RazorpayGateway struct {
	BaseURL       string
	KeyID         string
	KeySecret     string
	WebhookSecret string
	client        *http.Client
}

func NewRazorpayGateway(baseURL, keyID, keySecret, webhookSecret string, timeout time.Duration) *RazorpayGateway {
	if baseURL == "" {
		baseURL = "https://api.razorpay.com/v1"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RazorpayGateway{
		BaseURL:       baseURL,
		KeyID:         keyID,
		KeySecret:     keySecret,
		WebhookSecret: webhookSecret,
		client:        &http.Client{Timeout: timeout},
	}
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*Order, error) {
	body := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	bodyBytes, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/orders", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.KeyID, g.KeySecret)
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway order: %d %s", resp.StatusCode, string(respBody))
	}
	var out struct {
		ID       string `json:"id"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, err
	}
	return &Order{ID: out.ID, AmountPaise: out.Amount, Currency: out.Currency}, nil
}

func (g *RazorpayGateway) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(g.KeyID, g.KeySecret)
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway payment: %d %s", resp.StatusCode, string(respBody))
	}
	var out struct {
		ID      string `json:"id"`
		OrderID string `json:"order_id"`
		Amount  int64  `json:"amount"`
		Method  string `json:"method"`
		Status  string `json:"status"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, err
	}
	return &Payment{
		ID:          out.ID,
		OrderID:     out.OrderID,
		AmountPaise: out.Amount,
		Method:      out.Method,
		Status:      out.Status,
	}, nil
}

func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return verify(orderID, paymentID, signature, g.KeySecret)
}

func (g *RazorpayGateway) VerifyWebhook(body []byte, signature string) bool {
	return verifyWebhook(body, signature, g.WebhookSecret)
}
