package router

import (
	"time"

	"roundvest/config"
	"roundvest/internal/handler"
	"roundvest/internal/middleware"
	"roundvest/internal/repository"
	"roundvest/internal/service"
	"roundvest/internal/ws"
	"roundvest/pkg/payment"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers onto a gin engine. The
// price service is returned so the cron scheduler can drive refreshes.
func Setup(cfg *config.Config, db *gorm.DB, gateway payment.Gateway, hub *ws.PriceHub, log zerolog.Logger) (*gin.Engine, *service.PriceService) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db)
	depositRepo := repository.NewDepositRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	milestoneRepo := repository.NewMilestoneRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg, db, userRepo, accountRepo)
	milestoneSvc := service.NewMilestoneService(milestoneRepo, accountRepo, log)
	roundupSvc := service.NewRoundupService(db, accountRepo, txnRepo, milestoneSvc, log)
	portfolioSvc := service.NewPortfolioService(db, accountRepo, portfolioRepo, investmentRepo, cfg.Invest.AutoRecommendCount, log)
	investmentSvc := service.NewInvestmentService(db, accountRepo, investmentRepo, portfolioSvc, log)
	depositSvc := service.NewDepositService(db, accountRepo, depositRepo, gateway, log)
	transferSvc := service.NewTransferService(db, accountRepo, transferRepo, investmentSvc, log)
	priceSvc := service.NewPriceService(db, portfolioRepo, hub, cfg.Prices.MaxWalkBps, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	txnHandler := handler.NewTransactionHandler(roundupSvc)
	portfolioHandler := handler.NewPortfolioHandler(portfolioSvc)
	investmentHandler := handler.NewInvestmentHandler(investmentSvc, portfolioSvc)
	walletHandler := handler.NewWalletHandler(accountRepo, depositSvc)
	transferHandler := handler.NewTransferHandler(transferSvc)
	milestoneHandler := handler.NewMilestoneHandler(milestoneSvc)
	dashboardHandler := handler.NewDashboardHandler(accountRepo, txnRepo, portfolioRepo, portfolioSvc, milestoneSvc)
	priceHandler := handler.NewPriceHandler(priceSvc)
	webhookHandler := handler.NewWebhookHandler(depositSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		txns := api.Group("/transactions")
		txns.Use(authMw)
		{
			txns.POST("", txnHandler.Create)
			txns.GET("", txnHandler.List)
			txns.DELETE("/:id", txnHandler.Delete)
		}

		portfolio := api.Group("/portfolio")
		portfolio.Use(authMw)
		{
			portfolio.GET("/options", portfolioHandler.Options)
			portfolio.POST("/selection", portfolioHandler.Select)
			portfolio.GET("/selection", portfolioHandler.Selections)
			portfolio.DELETE("/selection/:option_id", portfolioHandler.RemoveSelection)
		}

		investments := api.Group("/investments")
		investments.Use(authMw)
		{
			investments.POST("", investmentHandler.Invest)
			investments.GET("", investmentHandler.Valuations)
			investments.GET("/sources", investmentHandler.Sources)
			investments.POST("/:option_id/exit", investmentHandler.Exit)
		}

		wallet := api.Group("/wallet")
		wallet.Use(authMw)
		{
			wallet.GET("", walletHandler.Balance)
			wallet.GET("/deposits", walletHandler.Deposits)
			wallet.POST("/orders", walletHandler.CreateOrder)
			wallet.POST("/verify", walletHandler.VerifySettlement)
		}

		transfers := api.Group("/transfers")
		transfers.Use(authMw)
		{
			transfers.POST("", transferHandler.Create)
			transfers.GET("", transferHandler.List)
		}

		api.GET("/dashboard", authMw, dashboardHandler.Overview)
		api.GET("/milestones", authMw, milestoneHandler.Overview)
		api.POST("/prices/refresh", authMw, priceHandler.Refresh)

		api.POST("/webhooks/payment", webhookHandler.Payment)
	}

	r.GET("/ws/prices", hub.Serve())

	return r, priceSvc
}
