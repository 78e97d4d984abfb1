package handler

import (
	"net/http"

	"roundvest/internal/service"

	"github.com/gin-gonic/gin"
)

type PriceHandler struct {
	priceSvc *service.PriceService
}

func NewPriceHandler(priceSvc *service.PriceService) *PriceHandler {
	return &PriceHandler{priceSvc: priceSvc}
}

// Refresh triggers an immediate price tick outside the cron schedule.
func (h *PriceHandler) Refresh(c *gin.Context) {
	updates, err := h.priceSvc.Refresh()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": len(updates), "prices": updates})
}
