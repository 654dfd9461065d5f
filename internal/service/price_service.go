package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"crypto-blackjack/internal/core/domain"
	"crypto-blackjack/internal/core/ports"

	"github.com/rs/zerolog"
)

// fallbackPrices seed the service so conversions work before the first
// successful fetch.
var fallbackPrices = map[domain.Asset]float64{
	domain.BTC: 97000,
	domain.LTC: 88,
	domain.ETH: 3600,
	domain.SOL: 210,
}

// PriceServiceImpl implements ports.PriceService. It polls the feed on
// a fixed interval and keeps the last known quotes when a fetch fails;
// feed errors never reach game logic.
type PriceServiceImpl struct {
	mu        sync.RWMutex
	prices    map[domain.Asset]float64
	lastErr   error
	fetchedAt time.Time

	feed     ports.PriceFeed
	interval time.Duration
	log      zerolog.Logger
}

// NewPriceService creates a price service seeded with fallback quotes.
func NewPriceService(feed ports.PriceFeed, interval time.Duration, log zerolog.Logger) *PriceServiceImpl {
	prices := make(map[domain.Asset]float64, len(fallbackPrices))
	for a, p := range fallbackPrices {
		prices[a] = p
	}
	return &PriceServiceImpl{
		prices:   prices,
		feed:     feed,
		interval: interval,
		log:      log,
	}
}

// Run implements ports.PriceService. It fetches once immediately, then
// on every tick until ctx is cancelled.
func (s *PriceServiceImpl) Run(ctx context.Context) {
	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// Refresh fetches once. Exposed for tests and for the composition root
// to prime quotes before serving.
func (s *PriceServiceImpl) Refresh(ctx context.Context) {
	s.refresh(ctx)
}

func (s *PriceServiceImpl) refresh(ctx context.Context) {
	quotes, err := s.feed.Fetch(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		s.log.Warn().Err(err).Msg("price fetch failed, keeping last known quotes")
		return
	}

	s.mu.Lock()
	for _, a := range domain.Assets {
		if p, ok := quotes[a]; ok && p > 0 {
			s.prices[a] = p
		}
	}
	s.lastErr = nil
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	s.log.Debug().Msg("prices refreshed")
}

// Prices implements ports.PriceService.
func (s *PriceServiceImpl) Prices() map[domain.Asset]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[domain.Asset]float64, len(s.prices))
	for a, p := range s.prices {
		out[a] = p
	}
	return out
}

// Price implements ports.PriceService.
func (s *PriceServiceImpl) Price(asset domain.Asset) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prices[asset]
}

// Name implements ports.HealthChecker.
func (s *PriceServiceImpl) Name() string {
	return "price_feed"
}

// Healthy implements ports.HealthChecker. The service itself always
// serves quotes; it reports degraded when the last fetch failed.
func (s *PriceServiceImpl) Healthy(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastErr != nil {
		return fmt.Errorf("last fetch failed: %w", s.lastErr)
	}
	return nil
}
