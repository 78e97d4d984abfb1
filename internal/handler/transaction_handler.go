package handler

import (
	"net/http"
	"strconv"

	"roundvest/internal/middleware"
	"roundvest/internal/service"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	roundupSvc *service.RoundupService
}

func NewTransactionHandler(roundupSvc *service.RoundupService) *TransactionHandler {
	return &TransactionHandler{roundupSvc: roundupSvc}
}

// Create records a spend and credits its round-up to the pool.
func (h *TransactionHandler) Create(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	var req struct {
		AmountPaise       int64  `json:"amount_paise" binding:"required,min=1"`
		RoundingUnitPaise int64  `json:"rounding_unit_paise" binding:"required,oneof=100 1000"`
		Description       string `json:"description" binding:"max=255"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	txn, err := h.roundupSvc.Create(accountID, req.AmountPaise, req.RoundingUnitPaise, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

func (h *TransactionHandler) List(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	txns, err := h.roundupSvc.List(accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

// Delete removes a transaction, reversing its round-up first. Rejected with
// 409 when the pool can no longer cover the reversal.
func (h *TransactionHandler) Delete(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}
	if err := h.roundupSvc.Delete(accountID, uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
