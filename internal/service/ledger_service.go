package service

import (
	"fmt"
	"math"
	"sync"
	"time"

	"crypto-blackjack/internal/core/domain"
	"crypto-blackjack/internal/core/ports"
	"crypto-blackjack/pkg/apperror"

	"github.com/rs/zerolog"
)

// LedgerServiceImpl implements ports.LedgerService. Balances live in
// memory for the lifetime of the process; there is no persistence and
// no real custody behind them.
type LedgerServiceImpl struct {
	mu         sync.Mutex
	entries    map[domain.Asset]*domain.Entry
	multiplier float64
	prices     ports.PriceService
	notifier   ports.Notifier
	log        zerolog.Logger
}

// NewLedgerService creates a ledger with a zeroed entry per supported
// asset. multiplier is the rollover multiple deposits must be wagered
// before withdrawal.
func NewLedgerService(multiplier float64, prices ports.PriceService, notifier ports.Notifier, log zerolog.Logger) *LedgerServiceImpl {
	entries := make(map[domain.Asset]*domain.Entry, len(domain.Assets))
	for _, a := range domain.Assets {
		entries[a] = &domain.Entry{Asset: a}
	}
	return &LedgerServiceImpl{
		entries:    entries,
		multiplier: multiplier,
		prices:     prices,
		notifier:   notifier,
		log:        log,
	}
}

// Deposit implements ports.LedgerService.
func (s *LedgerServiceImpl) Deposit(asset domain.Asset, amount float64) (domain.Entry, error) {
	if !validAmount(amount) {
		err := apperror.ErrInvalidAmount()
		s.notify("Invalid Amount", "Please enter a valid deposit amount.", domain.SeverityError)
		return domain.Entry{}, err
	}

	s.mu.Lock()
	e := s.entries[asset]
	e.Balance += amount
	e.Deposited += amount
	snapshot := *e
	s.mu.Unlock()

	s.log.Info().Str("asset", asset.String()).Float64("amount", amount).Msg("deposit recorded")
	s.notify("Deposit Successful", fmt.Sprintf("Added %v %s to your balance.", amount, asset), domain.SeveritySuccess)
	return snapshot, nil
}

// Withdraw implements ports.LedgerService. Checks run in the order the
// user sees them: amount shape, destination, rollover gate, balance.
// A successful withdrawal consumes the wager requirement outright:
// deposited and wagered reset to zero regardless of the amount taken.
func (s *LedgerServiceImpl) Withdraw(asset domain.Asset, amount float64, destination string) (domain.Entry, error) {
	if !validAmount(amount) {
		s.notify("Invalid Amount", "Please enter a valid withdrawal amount.", domain.SeverityError)
		return domain.Entry{}, apperror.ErrInvalidAmount()
	}
	if destination == "" {
		s.notify("Address Required", "Please enter a withdrawal address.", domain.SeverityError)
		return domain.Entry{}, apperror.ErrMissingAddress()
	}

	s.mu.Lock()
	e := s.entries[asset]

	if !e.WagerRequirementMet(s.multiplier) {
		remaining := e.RemainingWager(s.multiplier)
		s.mu.Unlock()
		remainingUSD := remaining * s.prices.Price(asset)
		err := apperror.ErrWagerRequirementNotMet(remaining, asset.String(), remainingUSD)
		s.notify("Wager Requirement Not Met", err.Message, domain.SeverityError)
		return domain.Entry{}, err
	}

	if amount > e.Balance {
		s.mu.Unlock()
		err := apperror.ErrInsufficientFunds(asset.String())
		s.notify("Insufficient Balance", err.Message, domain.SeverityError)
		return domain.Entry{}, err
	}

	e.Balance -= amount
	e.Deposited = 0
	e.Wagered = 0
	snapshot := *e
	s.mu.Unlock()

	s.log.Info().Str("asset", asset.String()).Float64("amount", amount).Msg("withdrawal recorded")
	s.notify("Withdrawal Successful", fmt.Sprintf("Sent %v %s to %s...", amount, asset, truncateAddress(destination)), domain.SeveritySuccess)
	return snapshot, nil
}

// PlaceBet implements ports.LedgerService. The caller reports the
// rejection; rejected bets leave the entry untouched.
func (s *LedgerServiceImpl) PlaceBet(asset domain.Asset, amount float64) error {
	if !validAmount(amount) {
		return apperror.ErrInvalidBet()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entries[asset]
	if amount > e.Balance {
		return apperror.ErrInsufficientBalance()
	}
	e.Balance -= amount
	return nil
}

// Settle implements ports.LedgerService.
func (s *LedgerServiceImpl) Settle(asset domain.Asset, bet, payout float64) domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entries[asset]
	e.Balance += payout
	e.Wagered += bet
	return *e
}

// Entry implements ports.LedgerService.
func (s *LedgerServiceImpl) Entry(asset domain.Asset) domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.entries[asset]
}

// Entries implements ports.LedgerService, in the fixed asset order.
func (s *LedgerServiceImpl) Entries() []domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Entry, 0, len(domain.Assets))
	for _, a := range domain.Assets {
		out = append(out, *s.entries[a])
	}
	return out
}

// Multiplier returns the configured rollover multiple.
func (s *LedgerServiceImpl) Multiplier() float64 {
	return s.multiplier
}

func (s *LedgerServiceImpl) notify(title, description string, severity domain.Severity) {
	s.notifier.Notify(domain.Notification{
		Title:       title,
		Description: description,
		Severity:    severity,
		At:          time.Now(),
	})
}

func validAmount(amount float64) bool {
	return amount > 0 && !math.IsNaN(amount) && !math.IsInf(amount, 0)
}

func truncateAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:10]
}
