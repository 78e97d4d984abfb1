package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roundvest/config"
	"roundvest/internal/database"
	"roundvest/internal/jobs"
	"roundvest/internal/router"
	"roundvest/internal/ws"
	"roundvest/pkg/payment"

	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}
	if err := database.Seed(db); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	var gateway payment.Gateway
	if cfg.Gateway.Sandbox {
		gateway = payment.NewSandboxGateway(cfg.Gateway.KeySecret, cfg.Gateway.WebhookSecret)
		log.Warn().Msg("payment gateway running in sandbox mode")
	} else {
		gateway = payment.NewRazorpayGateway(cfg.Gateway.BaseURL, cfg.Gateway.KeyID, cfg.Gateway.KeySecret, cfg.Gateway.WebhookSecret, cfg.Gateway.Timeout)
	}

	hub := ws.NewPriceHub(log)
	engine, priceSvc := router.Setup(cfg, db, gateway, hub, log)

	scheduler := jobs.New(log)
	if err := scheduler.AddJob(cfg.Prices.RefreshSchedule, jobs.NewPriceRefreshJob(priceSvc)); err != nil {
		log.Fatal().Err(err).Msg("price refresh job registration failed")
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	scheduler.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
