package service

import (
	"errors"
	"fmt"
	"time"

	"roundvest/internal/domain"
	"roundvest/internal/models"
	"roundvest/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PortfolioService struct {
	db          *gorm.DB
	accounts    *repository.AccountRepository
	portfolios  *repository.PortfolioRepository
	investments *repository.InvestmentRepository
	autoCount   int
	log         zerolog.Logger
}

func NewPortfolioService(db *gorm.DB, accounts *repository.AccountRepository, portfolios *repository.PortfolioRepository, investments *repository.InvestmentRepository, autoCount int, log zerolog.Logger) *PortfolioService {
	if autoCount <= 0 {
		autoCount = 3
	}
	return &PortfolioService{
		db:          db,
		accounts:    accounts,
		portfolios:  portfolios,
		investments: investments,
		autoCount:   autoCount,
		log:         log.With().Str("component", "portfolio").Logger(),
	}
}

func (s *PortfolioService) Options() ([]models.PortfolioOption, error) {
	return s.portfolios.ListOptions()
}

// Select replaces the account's user-chosen set. Auto-recommended rows stay
// in place; an empty set falls back to auto-recommendation.
func (s *PortfolioService) Select(accountID uint, optionIDs []uint) ([]models.PortfolioSelection, error) {
	var selections []models.PortfolioSelection
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(optionIDs) > 0 {
			count, err := s.portfolios.CountOptions(tx, optionIDs)
			if err != nil {
				return err
			}
			if count != int64(len(optionIDs)) {
				return domain.ErrUnknownOption
			}
			if err := s.portfolios.ReplaceUserSelections(tx, accountID, optionIDs); err != nil {
				return err
			}
		}
		var err error
		selections, err = s.EnsureSelections(tx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return selections, nil
}

// Selections returns the allocation set, auto-recommending when empty.
func (s *PortfolioService) Selections(accountID uint) ([]models.PortfolioSelection, error) {
	var selections []models.PortfolioSelection
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		selections, err = s.EnsureSelections(tx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return selections, nil
}

func (s *PortfolioService) RemoveSelection(accountID, optionID uint) error {
	return s.portfolios.RemoveSelection(s.db, accountID, optionID)
}

// EnsureSelections returns the account's allocation set, auto-selecting a
// basket matched to the user's risk profile when the set is empty.
func (s *PortfolioService) EnsureSelections(tx *gorm.DB, accountID uint) ([]models.PortfolioSelection, error) {
	selections, err := s.portfolios.ListSelections(tx, accountID)
	if err != nil {
		return nil, err
	}
	if len(selections) > 0 {
		return selections, nil
	}

	var account models.Account
	if err := tx.First(&account, accountID).Error; err != nil {
		return nil, err
	}
	var user models.User
	if err := tx.First(&user, account.UserID).Error; err != nil {
		return nil, err
	}
	options, err := s.portfolios.ListOptionsTx(tx)
	if err != nil {
		return nil, err
	}
	for _, o := range autoRecommend(user.RiskProfile, options, s.autoCount) {
		if err := s.portfolios.CreateSelection(tx, &models.PortfolioSelection{
			AccountID:         accountID,
			PortfolioOptionID: o.ID,
			IsAutoRecommended: true,
		}); err != nil {
			return nil, err
		}
	}
	return s.portfolios.ListSelections(tx, accountID)
}

// autoRecommend picks options matching the risk profile first, then fills
// from the rest of the catalog in order.
func autoRecommend(riskProfile string, options []models.PortfolioOption, count int) []models.PortfolioOption {
	picked := make([]models.PortfolioOption, 0, count)
	for _, o := range options {
		if o.RiskLevel == riskProfile {
			picked = append(picked, o)
			if len(picked) == count {
				return picked
			}
		}
	}
	for _, o := range options {
		if o.RiskLevel != riskProfile {
			picked = append(picked, o)
			if len(picked) == count {
				return picked
			}
		}
	}
	return picked
}

// Valuation is one position revalued at the current price snapshot.
type Valuation struct {
	PortfolioOptionID   uint            `json:"portfolio_option_id"`
	Name                string          `json:"name"`
	Symbol              string          `json:"symbol"`
	AssetType           string          `json:"asset_type"`
	Units               decimal.Decimal `json:"units"`
	AmountInvestedPaise int64           `json:"amount_invested_paise"`
	CurrentPricePaise   int64           `json:"current_price_paise"`
	CurrentValuePaise   int64           `json:"current_value_paise"`
	ProfitLossPaise     int64           `json:"profit_loss_paise"`
	ProfitLossPct       float64         `json:"profit_loss_percentage"`
	FirstInvestedAt     time.Time       `json:"first_invested_at"`
}

// Valuations revalues every position against current prices. Read-only and
// deterministic for a given price snapshot.
func (s *PortfolioService) Valuations(accountID uint) ([]Valuation, error) {
	investments, err := s.investments.ListByAccount(accountID)
	if err != nil {
		return nil, err
	}
	valuations := make([]Valuation, 0, len(investments))
	for _, inv := range investments {
		value := positionValue(inv.Units, inv.PortfolioOption.CurrentPricePaise)
		pl := value - inv.AmountInvestedPaise
		var pct float64
		if inv.AmountInvestedPaise > 0 {
			pct = float64(pl) / float64(inv.AmountInvestedPaise) * 100
		}
		valuations = append(valuations, Valuation{
			PortfolioOptionID:   inv.PortfolioOptionID,
			Name:                inv.PortfolioOption.Name,
			Symbol:              inv.PortfolioOption.Symbol,
			AssetType:           inv.PortfolioOption.AssetType,
			Units:               inv.Units,
			AmountInvestedPaise: inv.AmountInvestedPaise,
			CurrentPricePaise:   inv.PortfolioOption.CurrentPricePaise,
			CurrentValuePaise:   value,
			ProfitLossPaise:     pl,
			ProfitLossPct:       pct,
			FirstInvestedAt:     inv.CreatedAt,
		})
	}
	return valuations, nil
}

type ExitResult struct {
	PortfolioOptionID   uint  `json:"portfolio_option_id"`
	AmountInvestedPaise int64 `json:"amount_invested_paise"`
	CurrentValuePaise   int64 `json:"current_value_paise"`
	ProfitLossPaise     int64 `json:"profit_loss_paise"`
	CreditedPaise       int64 `json:"credited_paise"`
}

// Exit closes the position fully: the wallet is credited with the value at
// the latest price and the position row is removed, atomically.
func (s *PortfolioService) Exit(accountID, optionID uint) (*ExitResult, error) {
	var result ExitResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		inv, err := s.investments.GetForAccount(tx, accountID, optionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUnknownOption
			}
			return err
		}
		price := inv.PortfolioOption.CurrentPricePaise
		if price <= 0 {
			return domain.ErrStalePrice
		}
		value := positionValue(inv.Units, price)
		result = ExitResult{
			PortfolioOptionID:   optionID,
			AmountInvestedPaise: inv.AmountInvestedPaise,
			CurrentValuePaise:   value,
			ProfitLossPaise:     value - inv.AmountInvestedPaise,
			CreditedPaise:       value,
		}
		if value > 0 {
			ref := fmt.Sprintf("exit:%d", optionID)
			if err := s.accounts.CreditWallet(tx, accountID, value, domain.EntryExitCredit, ref); err != nil {
				return err
			}
		}
		return s.investments.Delete(tx, inv)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("account_id", accountID).Uint("option_id", optionID).
		Int64("credited_paise", result.CreditedPaise).Int64("profit_loss_paise", result.ProfitLossPaise).
		Msg("position exited")
	return &result, nil
}

func positionValue(units decimal.Decimal, pricePaise int64) int64 {
	return units.Mul(decimal.NewFromInt(pricePaise)).Round(0).IntPart()
}
