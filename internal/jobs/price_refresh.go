package jobs

import "roundvest/internal/service"

// PriceRefreshJob walks every portfolio option's price and broadcasts the
// tick to connected clients.
type PriceRefreshJob struct {
	prices *service.PriceService
}

func NewPriceRefreshJob(prices *service.PriceService) *PriceRefreshJob {
	return &PriceRefreshJob{prices: prices}
}

func (j *PriceRefreshJob) Name() string { return "price-refresh" }

func (j *PriceRefreshJob) Run() error {
	_, err := j.prices.Refresh()
	return err
}
