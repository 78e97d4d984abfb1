package handler

import (
	"io"
	"net/http"

	"roundvest/internal/service"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	depositSvc *service.DepositService
}

func NewWebhookHandler(depositSvc *service.DepositService) *WebhookHandler {
	return &WebhookHandler{depositSvc: depositSvc}
}

// Payment receives gateway event deliveries. The raw body is needed for HMAC
// verification, so it is read before any JSON decoding happens.
func (h *WebhookHandler) Payment(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	signature := c.GetHeader("X-Webhook-Signature")
	deposit, err := h.depositSvc.HandleWebhook(body, signature)
	if err != nil {
		respondError(c, err)
		return
	}
	if deposit == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "deposit_status": deposit.Status})
}
