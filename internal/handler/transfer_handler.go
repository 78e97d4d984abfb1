package handler

import (
	"net/http"

	"roundvest/internal/middleware"
	"roundvest/internal/service"

	"github.com/gin-gonic/gin"
)

type TransferHandler struct {
	transferSvc *service.TransferService
}

func NewTransferHandler(transferSvc *service.TransferService) *TransferHandler {
	return &TransferHandler{transferSvc: transferSvc}
}

func (h *TransferHandler) Create(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	var req struct {
		RecipientUPI         string `json:"recipient_upi"`
		RecipientMobile      string `json:"recipient_mobile"`
		RecipientName        string `json:"recipient_name" binding:"max=100"`
		AmountPaise          int64  `json:"amount_paise" binding:"required,min=1"`
		RoundupToInvestPaise int64  `json:"roundup_to_invest_paise" binding:"min=0"`
		Description          string `json:"description" binding:"max=255"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.transferSvc.Transfer(accountID, service.TransferRequest{
		RecipientUPI:         req.RecipientUPI,
		RecipientMobile:      req.RecipientMobile,
		RecipientName:        req.RecipientName,
		AmountPaise:          req.AmountPaise,
		RoundupToInvestPaise: req.RoundupToInvestPaise,
		Description:          req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *TransferHandler) List(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	transfers, err := h.transferSvc.List(accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transfers)
}
