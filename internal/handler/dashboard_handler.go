package handler

import (
	"net/http"

	"roundvest/internal/middleware"
	"roundvest/internal/repository"
	"roundvest/internal/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler aggregates the figures the home screen shows in one call.
type DashboardHandler struct {
	accounts     *repository.AccountRepository
	transactions *repository.TransactionRepository
	portfolios   *repository.PortfolioRepository
	portfolioSvc *service.PortfolioService
	milestoneSvc *service.MilestoneService
}

func NewDashboardHandler(
	accounts *repository.AccountRepository,
	transactions *repository.TransactionRepository,
	portfolios *repository.PortfolioRepository,
	portfolioSvc *service.PortfolioService,
	milestoneSvc *service.MilestoneService,
) *DashboardHandler {
	return &DashboardHandler{
		accounts:     accounts,
		transactions: transactions,
		portfolios:   portfolios,
		portfolioSvc: portfolioSvc,
		milestoneSvc: milestoneSvc,
	}
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	accountID := middleware.GetAccountID(c)

	account, err := h.accounts.GetByID(accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	txnCount, err := h.transactions.CountByAccount(accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	userSelections, err := h.portfolios.CountSelections(accountID, false)
	if err != nil {
		respondError(c, err)
		return
	}
	autoSelections, err := h.portfolios.CountSelections(accountID, true)
	if err != nil {
		respondError(c, err)
		return
	}
	valuations, err := h.portfolioSvc.Valuations(accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	milestones, err := h.milestoneSvc.Overview(accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	var invested, current int64
	allocation := map[string]int64{}
	for _, v := range valuations {
		invested += v.AmountInvestedPaise
		current += v.CurrentValuePaise
		allocation[v.AssetType] += v.CurrentValuePaise
	}
	achieved := 0
	for _, m := range milestones {
		if m.Achieved {
			achieved++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"wallet_balance_paise":      account.WalletBalancePaise,
		"roundup_pool_paise":        account.RoundupPoolPaise,
		"total_roundups_paise":      account.TotalRoundupsPaise,
		"transaction_count":         txnCount,
		"selection_count":           userSelections + autoSelections,
		"auto_selection_count":      autoSelections,
		"total_invested_paise":      invested,
		"total_current_value_paise": current,
		"total_profit_loss_paise":   current - invested,
		"allocation_by_asset_type":  allocation,
		"milestones_achieved":       achieved,
		"milestones_total":          len(milestones),
	})
}
