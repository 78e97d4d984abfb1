package database

import (
	"roundvest/config"
	"roundvest/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.LedgerEntry{},
		&models.Transaction{},
		&models.PortfolioOption{},
		&models.PortfolioSelection{},
		&models.Investment{},
		&models.Deposit{},
		&models.Transfer{},
		&models.Milestone{},
		&models.AccountMilestone{},
	)
}

// Seed inserts the option catalog and the milestone ladder on first run.
func Seed(db *gorm.DB) error {
	var optionCount int64
	if err := db.Model(&models.PortfolioOption{}).Count(&optionCount).Error; err != nil {
		return err
	}
	if optionCount == 0 {
		if err := db.Create(defaultOptions()).Error; err != nil {
			return err
		}
	}

	var milestoneCount int64
	if err := db.Model(&models.Milestone{}).Count(&milestoneCount).Error; err != nil {
		return err
	}
	if milestoneCount == 0 {
		if err := db.Create(defaultMilestones()).Error; err != nil {
			return err
		}
	}
	return nil
}

func defaultOptions() []models.PortfolioOption {
	return []models.PortfolioOption{
		// Blue chip stocks
		{Name: "Reliance Industries", Symbol: "RELIANCE", AssetType: "stock", RiskLevel: "low", Description: "Conglomerate - oil, retail, telecom", CurrentPricePaise: 245050},
		{Name: "Infosys", Symbol: "INFY", AssetType: "stock", RiskLevel: "low", Description: "Global IT services and consulting", CurrentPricePaise: 145075},
		{Name: "HDFC Bank", Symbol: "HDFCBANK", AssetType: "stock", RiskLevel: "low", Description: "India's largest private bank", CurrentPricePaise: 165030},
		{Name: "TCS", Symbol: "TCS", AssetType: "stock", RiskLevel: "low", Description: "Tata Consultancy Services", CurrentPricePaise: 365080},
		// Mid caps
		{Name: "Asian Paints", Symbol: "ASIANPAINT", AssetType: "stock", RiskLevel: "medium", Description: "Leading paint manufacturer", CurrentPricePaise: 295040},
		{Name: "Bajaj Finance", Symbol: "BAJFINANCE", AssetType: "stock", RiskLevel: "medium", Description: "Consumer finance NBFC", CurrentPricePaise: 685090},
		{Name: "Titan Company", Symbol: "TITAN", AssetType: "stock", RiskLevel: "medium", Description: "Jewelry and watches", CurrentPricePaise: 334075},
		{Name: "HCL Technologies", Symbol: "HCLTECH", AssetType: "stock", RiskLevel: "medium", Description: "IT services and products", CurrentPricePaise: 152030},
		// Growth stocks
		{Name: "Zomato", Symbol: "ZOMATO", AssetType: "stock", RiskLevel: "high", Description: "Food delivery and dining", CurrentPricePaise: 14580},
		{Name: "Paytm", Symbol: "PAYTM", AssetType: "stock", RiskLevel: "high", Description: "Digital payments platform", CurrentPricePaise: 89020},
		{Name: "Adani Green Energy", Symbol: "ADANIGREEN", AssetType: "stock", RiskLevel: "high", Description: "Renewable energy", CurrentPricePaise: 112040},
		// Crypto
		{Name: "Bitcoin", Symbol: "BTC", AssetType: "crypto", RiskLevel: "high", Description: "Leading cryptocurrency", CurrentPricePaise: 450000000},
		{Name: "Ethereum", Symbol: "ETH", AssetType: "crypto", RiskLevel: "high", Description: "Smart contract platform", CurrentPricePaise: 28000000},
		{Name: "Solana", Symbol: "SOL", AssetType: "crypto", RiskLevel: "high", Description: "High-throughput blockchain", CurrentPricePaise: 1250000},
		{Name: "Cardano", Symbol: "ADA", AssetType: "crypto", RiskLevel: "high", Description: "Proof-of-stake blockchain", CurrentPricePaise: 4550},
		// ETFs and funds
		{Name: "Nifty 50 ETF", Symbol: "NIFTYBEES", AssetType: "etf", RiskLevel: "low", Description: "Tracks the Nifty 50 index", CurrentPricePaise: 22560},
		{Name: "Gold ETF", Symbol: "GOLDBEES", AssetType: "etf", RiskLevel: "low", Description: "Gold price tracking ETF", CurrentPricePaise: 5840},
		{Name: "Bank Nifty ETF", Symbol: "BANKBEES", AssetType: "etf", RiskLevel: "medium", Description: "Banking sector index fund", CurrentPricePaise: 42530},
		{Name: "IT Sector ETF", Symbol: "ITBEES", AssetType: "etf", RiskLevel: "medium", Description: "IT sector focused fund", CurrentPricePaise: 28590},
		{Name: "Liquid Fund", Symbol: "LIQUIDBEES", AssetType: "etf", RiskLevel: "low", Description: "Short-term debt fund", CurrentPricePaise: 100050},
	}
}

func defaultMilestones() []models.Milestone {
	return []models.Milestone{
		{Name: "First Steps", Description: "Made your first round-up!", ThresholdPaise: 100, BadgeIcon: "🎯"},
		{Name: "Penny Saver", Description: "Saved ₹10 in round-ups", ThresholdPaise: 1000, BadgeIcon: "💰"},
		{Name: "Growing Wealth", Description: "Saved ₹100 in round-ups", ThresholdPaise: 10000, BadgeIcon: "📈"},
		{Name: "Investment Pro", Description: "Saved ₹500 in round-ups", ThresholdPaise: 50000, BadgeIcon: "🏆"},
		{Name: "Wealth Builder", Description: "Saved ₹1000 in round-ups", ThresholdPaise: 100000, BadgeIcon: "💎"},
	}
}
