package ports

import (
	"context"

	"crypto-blackjack/internal/core/domain"
)

// --- Service Ports (Business Logic) ---

// LedgerService owns per-asset balances and the wager-requirement gate.
// Every mutating call either succeeds fully or leaves state untouched.
type LedgerService interface {
	// Deposit credits the balance and the deposited total.
	Deposit(asset domain.Asset, amount float64) (domain.Entry, error)
	// Withdraw debits the balance once the rollover gate is open and
	// resets deposited/wagered to zero. destination must be non-empty.
	Withdraw(asset domain.Asset, amount float64, destination string) (domain.Entry, error)
	// PlaceBet debits the stake at round start; the funds stay at risk
	// until settlement.
	PlaceBet(asset domain.Asset, amount float64) error
	// Settle credits the payout of a finished round and counts the
	// tracked bet toward the wagered total.
	Settle(asset domain.Asset, bet, payout float64) domain.Entry
	Entry(asset domain.Asset) domain.Entry
	Entries() []domain.Entry
}

// GameService drives a blackjack round from bet placement to
// settlement. All methods are safe for concurrent use; actions invalid
// for the current round state are rejected without mutating anything.
type GameService interface {
	Deal(bet float64) (GameSnapshot, error)
	Hit() (GameSnapshot, error)
	Stand() (GameSnapshot, error)
	Double() (GameSnapshot, error)
	// SelectAsset switches the active asset between rounds and clears
	// the visible round history.
	SelectAsset(asset domain.Asset) error
	Snapshot() GameSnapshot
	History() []domain.Round
}

// GameSnapshot is a point-in-time view of the round for presentation.
// Dealer always carries the full hand; DealerRevealed tells the
// presentation layer whether the hole card may be shown.
type GameSnapshot struct {
	Asset          domain.Asset      `json:"asset"`
	State          domain.RoundState `json:"state"`
	Player         domain.Hand       `json:"player"`
	Dealer         domain.Hand       `json:"dealer"`
	PlayerValue    int               `json:"player_value"`
	DealerValue    int               `json:"dealer_value"`
	DealerRevealed bool              `json:"dealer_revealed"`
	Bet            float64           `json:"bet"`
	CanDouble      bool              `json:"can_double"`
	Message        string            `json:"message"`
	ShoeRemaining  int               `json:"shoe_remaining"`
}

// PriceService exposes the latest USD quotes for the supported assets.
type PriceService interface {
	Prices() map[domain.Asset]float64
	Price(asset domain.Asset) float64
	// Run polls the feed until ctx is cancelled. Fetch failures keep
	// the last known quotes.
	Run(ctx context.Context)
}

// ReportingService aggregates session statistics for display.
type ReportingService interface {
	Stats() SessionStats
}

// SessionStats summarises the active asset's history and wager-gate
// progress. ProfitSeries is in USD, oldest round first, sized for the
// profit chart.
type SessionStats struct {
	Asset          domain.Asset           `json:"asset"`
	Rounds         int                    `json:"rounds"`
	Outcomes       map[domain.Outcome]int `json:"outcomes"`
	NetProfit      float64                `json:"net_profit"`
	NetProfitUSD   float64                `json:"net_profit_usd"`
	ProfitSeries   []float64              `json:"profit_series"`
	Balance        float64                `json:"balance"`
	Deposited      float64                `json:"deposited"`
	Wagered        float64                `json:"wagered"`
	RequiredWager  float64                `json:"required_wager"`
	RemainingWager float64                `json:"remaining_wager"`
}
