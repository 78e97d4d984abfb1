package handler

import (
	"net/http"
	"strconv"

	"roundvest/internal/middleware"
	"roundvest/internal/service"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	portfolioSvc *service.PortfolioService
}

func NewPortfolioHandler(portfolioSvc *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioSvc: portfolioSvc}
}

func (h *PortfolioHandler) Options(c *gin.Context) {
	options, err := h.portfolioSvc.Options()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

// Select replaces the user-chosen allocation set. An empty list falls back
// to auto-recommendation by risk profile.
func (h *PortfolioHandler) Select(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	var req struct {
		PortfolioOptionIDs []uint `json:"portfolio_option_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	selections, err := h.portfolioSvc.Select(accountID, req.PortfolioOptionIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, selections)
}

func (h *PortfolioHandler) Selections(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	selections, err := h.portfolioSvc.Selections(accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, selections)
}

func (h *PortfolioHandler) RemoveSelection(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	optionID, err := strconv.ParseUint(c.Param("option_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid option id"})
		return
	}
	if err := h.portfolioSvc.RemoveSelection(accountID, uint(optionID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
