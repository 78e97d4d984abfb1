package handler

import (
	"net/http"

	"roundvest/internal/middleware"
	"roundvest/internal/service"

	"github.com/gin-gonic/gin"
)

type MilestoneHandler struct {
	milestoneSvc *service.MilestoneService
}

func NewMilestoneHandler(milestoneSvc *service.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestoneSvc: milestoneSvc}
}

func (h *MilestoneHandler) Overview(c *gin.Context) {
	accountID := middleware.GetAccountID(c)
	milestones, err := h.milestoneSvc.Overview(accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, milestones)
}
