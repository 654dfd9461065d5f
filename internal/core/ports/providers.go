package ports

import (
	"context"
	"time"

	"crypto-blackjack/internal/core/domain"
)

// PriceFeed supplies USD quotes for the supported assets. Implemented
// by the CoinGecko adapter; substitutable in tests.
type PriceFeed interface {
	Fetch(ctx context.Context) (map[domain.Asset]float64, error)
}

// Notifier receives user-facing notifications: validation failures,
// deposit/withdrawal confirmations and deal outcomes. Implementations
// must not block the caller.
type Notifier interface {
	Notify(n domain.Notification)
}

// Scheduler defers a continuation by a fixed delay. The dealer's
// automated turn runs through it so presentation pacing stays out of
// the state machine; tests substitute a synchronous implementation.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}
