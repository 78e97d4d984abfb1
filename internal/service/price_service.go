package service

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"roundvest/internal/repository"
	"roundvest/internal/ws"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type PriceUpdate struct {
	PortfolioOptionID uint    `json:"portfolio_option_id"`
	Symbol            string  `json:"symbol"`
	OldPricePaise     int64   `json:"old_price_paise"`
	NewPricePaise     int64   `json:"new_price_paise"`
	ChangePct         float64 `json:"change_pct"`
}

// PriceService walks option prices randomly within a configured band, the
// stand-in for an external feed. Refreshes are serialized by the mutex so
// revaluation always sees a consistent snapshot.
type PriceService struct {
	db         *gorm.DB
	portfolios *repository.PortfolioRepository
	hub        *ws.PriceHub
	maxWalkBps int

	mu  sync.Mutex
	rng *rand.Rand
	log zerolog.Logger
}

func NewPriceService(db *gorm.DB, portfolios *repository.PortfolioRepository, hub *ws.PriceHub, maxWalkBps int, log zerolog.Logger) *PriceService {
	if maxWalkBps <= 0 {
		maxWalkBps = 300
	}
	return &PriceService{
		db:         db,
		portfolios: portfolios,
		hub:        hub,
		maxWalkBps: maxWalkBps,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		log:        log.With().Str("component", "prices").Logger(),
	}
}

// Refresh applies one random-walk step to every option and broadcasts the
// new snapshot to ticker subscribers.
func (s *PriceService) Refresh() ([]PriceUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updates []PriceUpdate
	err := s.db.Transaction(func(tx *gorm.DB) error {
		options, err := s.portfolios.ListOptionsTx(tx)
		if err != nil {
			return err
		}
		updates = make([]PriceUpdate, 0, len(options))
		for _, o := range options {
			step := (s.rng.Float64()*2 - 1) * float64(s.maxWalkBps) / 10000
			newPrice := int64(math.Round(float64(o.CurrentPricePaise) * (1 + step)))
			if newPrice < 1 {
				newPrice = 1
			}
			if err := s.portfolios.UpdatePrice(tx, o.ID, newPrice); err != nil {
				return err
			}
			updates = append(updates, PriceUpdate{
				PortfolioOptionID: o.ID,
				Symbol:            o.Symbol,
				OldPricePaise:     o.CurrentPricePaise,
				NewPricePaise:     newPrice,
				ChangePct:         step * 100,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.hub != nil {
		s.hub.Broadcast(map[string]interface{}{"type": "prices", "updates": updates})
	}
	s.log.Debug().Int("options", len(updates)).Msg("prices refreshed")
	return updates, nil
}
