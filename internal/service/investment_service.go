package service

import (
	"errors"
	"strings"

	"roundvest/internal/domain"
	"roundvest/internal/models"
	"roundvest/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvestmentService struct {
	db          *gorm.DB
	accounts    *repository.AccountRepository
	investments *repository.InvestmentRepository
	portfolio   *PortfolioService
	log         zerolog.Logger
}

func NewInvestmentService(db *gorm.DB, accounts *repository.AccountRepository, investments *repository.InvestmentRepository, portfolio *PortfolioService, log zerolog.Logger) *InvestmentService {
	return &InvestmentService{
		db:          db,
		accounts:    accounts,
		investments: investments,
		portfolio:   portfolio,
		log:         log.With().Str("component", "invest").Logger(),
	}
}

type InvestResult struct {
	Reference   string              `json:"reference"`
	AmountPaise int64               `json:"amount_paise"`
	Source      string              `json:"source"`
	Positions   []models.Investment `json:"positions"`
}

// Invest debits the chosen source and distributes the amount across the
// account's allocation set, upserting one position per option. The debit and
// every position change commit as one transaction.
func (s *InvestmentService) Invest(accountID uint, amountPaise int64, source string) (*InvestResult, error) {
	if amountPaise <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if source != domain.SourceRoundups && source != domain.SourceWallet {
		return nil, domain.ErrInvalidAmount
	}

	ref := strings.ToUpper(source) + "_" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10])
	result := &InvestResult{Reference: ref, AmountPaise: amountPaise, Source: source}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.debitSource(tx, accountID, amountPaise, source, ref); err != nil {
			return err
		}
		selections, err := s.portfolio.EnsureSelections(tx, accountID)
		if err != nil {
			return err
		}
		if len(selections) == 0 {
			return domain.ErrUnknownOption
		}
		allocations := allocate(amountPaise, len(selections))
		for i, sel := range selections {
			price := sel.PortfolioOption.CurrentPricePaise
			if price <= 0 {
				return domain.ErrStalePrice
			}
			units := decimal.NewFromInt(allocations[i]).DivRound(decimal.NewFromInt(price), 8)
			inv, err := s.investments.Upsert(tx, accountID, sel.PortfolioOptionID, units, allocations[i], ref)
			if err != nil {
				return err
			}
			inv.PortfolioOption = sel.PortfolioOption
			result.Positions = append(result.Positions, *inv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("account_id", accountID).Str("source", source).
		Int64("amount_paise", amountPaise).Int("options", len(result.Positions)).
		Msg("investment executed")
	return result, nil
}

func (s *InvestmentService) debitSource(tx *gorm.DB, accountID uint, amountPaise int64, source, ref string) error {
	reference := "invest:" + ref
	if source == domain.SourceWallet {
		return s.accounts.DebitWallet(tx, accountID, amountPaise, domain.EntryInvestDebit, reference)
	}
	err := s.accounts.DebitPool(tx, accountID, amountPaise, domain.EntryInvestDebit, reference)
	if errors.Is(err, domain.ErrInsufficientPoolFunds) {
		// For investing the pool is just another funding source.
		return domain.ErrInsufficientFunds
	}
	return err
}

// allocate splits the amount into equal shares; the remainder goes to the
// last share so the sum is exactly the amount.
func allocate(totalPaise int64, n int) []int64 {
	base := totalPaise / int64(n)
	shares := make([]int64, n)
	for i := range shares {
		shares[i] = base
	}
	shares[n-1] = totalPaise - base*int64(n-1)
	return shares
}

// Sources reports invested money by funding source, derived from the
// journal, alongside what remains available.
type SourcesBreakdown struct {
	FromRoundupsPaise  int64 `json:"from_roundups_paise"`
	FromWalletPaise    int64 `json:"from_wallet_paise"`
	TotalInvestedPaise int64 `json:"total_invested_paise"`
	RoundupPoolPaise   int64 `json:"roundup_pool_paise"`
	WalletBalancePaise int64 `json:"wallet_balance_paise"`
	TotalRoundupsPaise int64 `json:"total_roundups_paise"`
}

func (s *InvestmentService) Sources(accountID uint) (*SourcesBreakdown, error) {
	account, err := s.accounts.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	fromPool, err := s.accounts.SumEntries(accountID, domain.EntryInvestDebit, domain.BalancePool)
	if err != nil {
		return nil, err
	}
	fromWallet, err := s.accounts.SumEntries(accountID, domain.EntryInvestDebit, domain.BalanceWallet)
	if err != nil {
		return nil, err
	}
	// Journal debits are negative; flip the sign for reporting.
	return &SourcesBreakdown{
		FromRoundupsPaise:  -fromPool,
		FromWalletPaise:    -fromWallet,
		TotalInvestedPaise: -fromPool - fromWallet,
		RoundupPoolPaise:   account.RoundupPoolPaise,
		WalletBalancePaise: account.WalletBalancePaise,
		TotalRoundupsPaise: account.TotalRoundupsPaise,
	}, nil
}
