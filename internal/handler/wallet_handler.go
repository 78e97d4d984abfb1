package handler

import (
	"net/http"
	"strconv"

	"roundvest/internal/middleware"
	"roundvest/internal/repository"
	"roundvest/internal/service"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	accounts   *repository.AccountRepository
	depositSvc *service.DepositService
}

func NewWalletHandler(accounts *repository.AccountRepository, depositSvc *service.DepositService) *WalletHandler {
	return &WalletHandler{accounts: accounts, depositSvc: depositSvc}
}

func (h *WalletHandler) Balance(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	account, err := h.accounts.GetByID(accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	deposits, err := h.depositSvc.List(accountID, 5)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"wallet_balance_paise": account.WalletBalancePaise,
		"roundup_pool_paise":   account.RoundupPoolPaise,
		"total_roundups_paise": account.TotalRoundupsPaise,
		"currency":             account.Currency,
		"recent_deposits":      deposits,
	})
}

func (h *WalletHandler) Deposits(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	deposits, err := h.depositSvc.List(accountID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deposits)
}

func (h *WalletHandler) CreateOrder(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	var req struct {
		AmountPaise int64  `json:"amount_paise" binding:"required,min=100"`
		Description string `json:"description" binding:"max=255"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	deposit, order, err := h.depositSvc.CreateOrder(c.Request.Context(), accountID, req.AmountPaise, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"deposit": deposit, "order": order})
}

func (h *WalletHandler) VerifySettlement(c *gin.Context) {
	var req struct {
		OrderID   string `json:"order_id" binding:"required"`
		PaymentID string `json:"payment_id" binding:"required"`
		Signature string `json:"signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	deposit, err := h.depositSvc.VerifySettlement(c.Request.Context(), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deposit)
}
