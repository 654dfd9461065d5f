package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crypto-blackjack/config"
	"crypto-blackjack/internal/adapter/feed"
	httpHandler "crypto-blackjack/internal/adapter/http/handler"
	"crypto-blackjack/internal/adapter/notify"
	"crypto-blackjack/internal/core/domain"
	"crypto-blackjack/internal/core/ports"
	"crypto-blackjack/internal/service"
	"crypto-blackjack/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Crypto Blackjack")

	asset, err := domain.ParseAsset(cfg.Game.DefaultAsset)
	if err != nil {
		log.Fatal().Err(err).Str("asset", cfg.Game.DefaultAsset).Msg("Unknown default asset")
	}

	// Notification sink shared by ledger and game engine
	recorder := notify.NewRecorder(cfg.Prices.Notifications, log)

	// Price feed with background polling
	priceFeed := feed.NewCoinGecko(cfg.Prices.BaseURL, cfg.Prices.FetchTimeout, log)
	priceSvc := service.NewPriceService(priceFeed, cfg.Prices.PollInterval, log)

	ctx, stopPolling := context.WithCancel(context.Background())
	defer stopPolling()
	go priceSvc.Run(ctx)

	// Core services
	ledgerSvc := service.NewLedgerService(cfg.Game.WagerMultiplier, priceSvc, recorder, log)
	gameSvc := service.NewGameService(
		service.GameConfig{
			Decks:          cfg.Game.Decks,
			ReshuffleBelow: cfg.Game.ReshuffleBelow,
			DealerDelay:    cfg.Game.DealerDelay,
			HistoryLimit:   cfg.Game.HistoryLimit,
		},
		asset,
		rand.New(rand.NewSource(time.Now().UnixNano())),
		ledgerSvc,
		recorder,
		service.TimerScheduler{},
		log,
	)
	reportingSvc := service.NewReportingService(gameSvc, ledgerSvc, priceSvc, cfg.Game.WagerMultiplier)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		GameSvc:        gameSvc,
		LedgerSvc:      ledgerSvc,
		ReportingSvc:   reportingSvc,
		PriceSvc:       priceSvc,
		Notifications:  recorder,
		HealthCheckers: []ports.HealthChecker{priceSvc},
		DefaultBet:     cfg.Game.DefaultBet,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	stopPolling()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
