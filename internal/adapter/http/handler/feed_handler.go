package handler

import (
	"crypto-blackjack/internal/core/domain"
	"crypto-blackjack/internal/core/ports"
	"crypto-blackjack/pkg/response"

	"github.com/gin-gonic/gin"
)

// NotificationSource exposes recent notifications for display.
type NotificationSource interface {
	Recent() []domain.Notification
}

// FeedHandler handles read-only feed endpoints: price quotes and the
// notification stream.
type FeedHandler struct {
	priceSvc      ports.PriceService
	notifications NotificationSource
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(priceSvc ports.PriceService, notifications NotificationSource) *FeedHandler {
	return &FeedHandler{
		priceSvc:      priceSvc,
		notifications: notifications,
	}
}

// GetPrices handles GET /api/v1/prices.
func (h *FeedHandler) GetPrices(c *gin.Context) {
	quotes := h.priceSvc.Prices()
	out := make(map[string]float64, len(quotes))
	for asset, usd := range quotes {
		out[asset.String()] = usd
	}
	response.OK(c, out)
}

// GetNotifications handles GET /api/v1/notifications. Entries come
// back newest first.
func (h *FeedHandler) GetNotifications(c *gin.Context) {
	response.OK(c, h.notifications.Recent())
}
