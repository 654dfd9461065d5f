package handler

import (
	"crypto-blackjack/internal/adapter/http/middleware"
	"crypto-blackjack/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	GameSvc        ports.GameService
	LedgerSvc      ports.LedgerService
	ReportingSvc   ports.ReportingService
	PriceSvc       ports.PriceService
	Notifications  NotificationSource
	HealthCheckers []ports.HealthChecker
	DefaultBet     float64
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 16)) // 64 KB request body limit

	// Health check (reports the price feed among dependencies)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// API v1 routes
	v1 := r.Group("/api/v1")

	gameHandler := NewGameHandler(deps.GameSvc, deps.DefaultBet)
	game := v1.Group("/game")
	{
		game.GET("", gameHandler.GetState)
		game.POST("/deal", gameHandler.Deal)
		game.POST("/hit", gameHandler.Hit)
		game.POST("/stand", gameHandler.Stand)
		game.POST("/double", gameHandler.Double)
	}

	sessionHandler := NewSessionHandler(deps.GameSvc, deps.ReportingSvc)
	session := v1.Group("/session")
	{
		session.PUT("/asset", sessionHandler.SelectAsset)
		session.GET("/stats", sessionHandler.GetStats)
	}

	walletHandler := NewWalletHandler(deps.LedgerSvc)
	wallet := v1.Group("/wallet")
	{
		wallet.GET("", walletHandler.GetWallet)
		wallet.GET("/address", walletHandler.GetAddress)
		wallet.POST("/deposit", walletHandler.Deposit)
		wallet.POST("/withdraw", walletHandler.Withdraw)
	}

	feedHandler := NewFeedHandler(deps.PriceSvc, deps.Notifications)
	v1.GET("/prices", feedHandler.GetPrices)
	v1.GET("/notifications", feedHandler.GetNotifications)

	return r
}
