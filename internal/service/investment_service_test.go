package service

import (
	"testing"

	"roundvest/internal/domain"
	"roundvest/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInvestStack(db *gorm.DB) (*InvestmentService, *PortfolioService, *repository.AccountRepository) {
	accounts := repository.NewAccountRepository(db)
	portfolios := repository.NewPortfolioRepository(db)
	investments := repository.NewInvestmentRepository(db)
	portfolioSvc := NewPortfolioService(db, accounts, portfolios, investments, 3, testLogger())
	investSvc := NewInvestmentService(db, accounts, investments, portfolioSvc, testLogger())
	return investSvc, portfolioSvc, accounts
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		n     int
		want  []int64
	}{
		{name: "even split", total: 10000, n: 2, want: []int64{5000, 5000}},
		{name: "remainder to last", total: 10001, n: 2, want: []int64{5000, 5001}},
		{name: "three way", total: 100, n: 3, want: []int64{33, 33, 34}},
		{name: "single option", total: 77, n: 1, want: []int64{77}},
		{name: "amount below option count", total: 2, n: 3, want: []int64{0, 0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := allocate(tt.total, tt.n)
			assert.Equal(t, tt.want, got)
			var sum int64
			for _, s := range got {
				sum += s
			}
			assert.Equal(t, tt.total, sum)
		})
	}
}

func TestInvestFromWalletSplitsAcrossSelections(t *testing.T) {
	db := newTestDB(t)
	investSvc, portfolioSvc, accounts := newInvestStack(db)
	account := newTestAccount(t, db, "invest@example.com", domain.RiskMedium)
	creditWallet(t, db, account.ID, 10000)

	cheap := newTestOption(t, db, "CHEAP", domain.AssetStock, domain.RiskMedium, 1000)
	dear := newTestOption(t, db, "DEAR", domain.AssetETF, domain.RiskMedium, 2500)
	_, err := portfolioSvc.Select(account.ID, []uint{cheap.ID, dear.ID})
	require.NoError(t, err)

	result, err := investSvc.Invest(account.ID, 10000, domain.SourceWallet)
	require.NoError(t, err)
	require.Len(t, result.Positions, 2)
	assert.Equal(t, domain.SourceWallet, result.Source)
	assert.NotEmpty(t, result.Reference)

	// 10000p split evenly: 5000p buys 5 units at 1000p, 2 units at 2500p.
	assert.Equal(t, int64(5000), result.Positions[0].AmountInvestedPaise)
	assert.True(t, result.Positions[0].Units.Equal(decimal.NewFromInt(5)), result.Positions[0].Units.String())
	assert.Equal(t, int64(5000), result.Positions[1].AmountInvestedPaise)
	assert.True(t, result.Positions[1].Units.Equal(decimal.NewFromInt(2)), result.Positions[1].Units.String())

	fresh := reloadAccount(t, db, account.ID)
	assert.Zero(t, fresh.WalletBalancePaise)

	ok, err := accounts.CheckConservation(account.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInvestInsufficientWallet(t *testing.T) {
	db := newTestDB(t)
	investSvc, portfolioSvc, _ := newInvestStack(db)
	account := newTestAccount(t, db, "invest@example.com", domain.RiskMedium)
	creditWallet(t, db, account.ID, 500)

	option := newTestOption(t, db, "ONLY", domain.AssetStock, domain.RiskMedium, 1000)
	_, err := portfolioSvc.Select(account.ID, []uint{option.ID})
	require.NoError(t, err)

	_, err = investSvc.Invest(account.ID, 10000, domain.SourceWallet)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	fresh := reloadAccount(t, db, account.ID)
	assert.Equal(t, int64(500), fresh.WalletBalancePaise)
}

func TestInvestFromRoundupPool(t *testing.T) {
	db := newTestDB(t)
	investSvc, portfolioSvc, accounts := newInvestStack(db)
	account := newTestAccount(t, db, "invest@example.com", domain.RiskMedium)

	require.NoError(t, accounts.CreditPool(db, account.ID, 600, "txn:1"))

	option := newTestOption(t, db, "ONLY", domain.AssetStock, domain.RiskMedium, 100)
	_, err := portfolioSvc.Select(account.ID, []uint{option.ID})
	require.NoError(t, err)

	result, err := investSvc.Invest(account.ID, 600, domain.SourceRoundups)
	require.NoError(t, err)
	require.Len(t, result.Positions, 1)
	assert.True(t, result.Positions[0].Units.Equal(decimal.NewFromInt(6)))

	fresh := reloadAccount(t, db, account.ID)
	assert.Zero(t, fresh.RoundupPoolPaise)
	// Lifetime round-up total is untouched by investing.
	assert.Equal(t, int64(600), fresh.TotalRoundupsPaise)

	// An empty pool reports as insufficient funds like any other source.
	_, err = investSvc.Invest(account.ID, 1, domain.SourceRoundups)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestInvestStalePriceRollsBack(t *testing.T) {
	db := newTestDB(t)
	investSvc, portfolioSvc, _ := newInvestStack(db)
	account := newTestAccount(t, db, "invest@example.com", domain.RiskMedium)
	creditWallet(t, db, account.ID, 10000)

	good := newTestOption(t, db, "GOOD", domain.AssetStock, domain.RiskMedium, 1000)
	stale := newTestOption(t, db, "STALE", domain.AssetCrypto, domain.RiskHigh, 0)
	_, err := portfolioSvc.Select(account.ID, []uint{good.ID, stale.ID})
	require.NoError(t, err)

	_, err = investSvc.Invest(account.ID, 10000, domain.SourceWallet)
	assert.ErrorIs(t, err, domain.ErrStalePrice)

	// The whole buy rolled back, including the wallet debit.
	fresh := reloadAccount(t, db, account.ID)
	assert.Equal(t, int64(10000), fresh.WalletBalancePaise)
	investments, err := repository.NewInvestmentRepository(db).ListByAccount(account.ID)
	require.NoError(t, err)
	assert.Empty(t, investments)
}

func TestInvestValidation(t *testing.T) {
	db := newTestDB(t)
	investSvc, _, _ := newInvestStack(db)
	account := newTestAccount(t, db, "invest@example.com", domain.RiskMedium)

	_, err := investSvc.Invest(account.ID, 0, domain.SourceWallet)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = investSvc.Invest(account.ID, 100, "credit_card")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestInvestAccumulatesPosition(t *testing.T) {
	db := newTestDB(t)
	investSvc, portfolioSvc, _ := newInvestStack(db)
	account := newTestAccount(t, db, "invest@example.com", domain.RiskMedium)
	creditWallet(t, db, account.ID, 20000)

	option := newTestOption(t, db, "ONLY", domain.AssetStock, domain.RiskMedium, 1000)
	_, err := portfolioSvc.Select(account.ID, []uint{option.ID})
	require.NoError(t, err)

	_, err = investSvc.Invest(account.ID, 5000, domain.SourceWallet)
	require.NoError(t, err)
	_, err = investSvc.Invest(account.ID, 3000, domain.SourceWallet)
	require.NoError(t, err)

	investments, err := repository.NewInvestmentRepository(db).ListByAccount(account.ID)
	require.NoError(t, err)
	require.Len(t, investments, 1)
	assert.Equal(t, int64(8000), investments[0].AmountInvestedPaise)
	assert.True(t, investments[0].Units.Equal(decimal.NewFromInt(8)), investments[0].Units.String())
}

func TestInvestSourcesBreakdown(t *testing.T) {
	db := newTestDB(t)
	investSvc, portfolioSvc, accounts := newInvestStack(db)
	account := newTestAccount(t, db, "invest@example.com", domain.RiskMedium)
	creditWallet(t, db, account.ID, 10000)
	require.NoError(t, accounts.CreditPool(db, account.ID, 700, "txn:1"))

	option := newTestOption(t, db, "ONLY", domain.AssetStock, domain.RiskMedium, 100)
	_, err := portfolioSvc.Select(account.ID, []uint{option.ID})
	require.NoError(t, err)

	_, err = investSvc.Invest(account.ID, 4000, domain.SourceWallet)
	require.NoError(t, err)
	_, err = investSvc.Invest(account.ID, 700, domain.SourceRoundups)
	require.NoError(t, err)

	breakdown, err := investSvc.Sources(account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(700), breakdown.FromRoundupsPaise)
	assert.Equal(t, int64(4000), breakdown.FromWalletPaise)
	assert.Equal(t, int64(4700), breakdown.TotalInvestedPaise)
	assert.Equal(t, int64(6000), breakdown.WalletBalancePaise)
	assert.Zero(t, breakdown.RoundupPoolPaise)
	assert.Equal(t, int64(700), breakdown.TotalRoundupsPaise)
}
