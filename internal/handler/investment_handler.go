package handler

import (
	"net/http"
	"strconv"

	"roundvest/internal/middleware"
	"roundvest/internal/service"

	"github.com/gin-gonic/gin"
)

type InvestmentHandler struct {
	investmentSvc *service.InvestmentService
	portfolioSvc  *service.PortfolioService
}

func NewInvestmentHandler(investmentSvc *service.InvestmentService, portfolioSvc *service.PortfolioService) *InvestmentHandler {
	return &InvestmentHandler{investmentSvc: investmentSvc, portfolioSvc: portfolioSvc}
}

func (h *InvestmentHandler) Invest(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	var req struct {
		AmountPaise int64  `json:"amount_paise" binding:"required,min=1"`
		Source      string `json:"source" binding:"required,oneof=roundups wallet"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.investmentSvc.Invest(accountID, req.AmountPaise, req.Source)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *InvestmentHandler) Valuations(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	valuations, err := h.portfolioSvc.Valuations(accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	var invested, current int64
	for _, v := range valuations {
		invested += v.AmountInvestedPaise
		current += v.CurrentValuePaise
	}
	c.JSON(http.StatusOK, gin.H{
		"positions":                 valuations,
		"total_invested_paise":      invested,
		"total_current_value_paise": current,
		"total_profit_loss_paise":   current - invested,
	})
}

func (h *InvestmentHandler) Exit(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	optionID, err := strconv.ParseUint(c.Param("option_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid option id"})
		return
	}
	result, err := h.portfolioSvc.Exit(accountID, uint(optionID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *InvestmentHandler) Sources(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	breakdown, err := h.investmentSvc.Sources(accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}
