package service

import (
	"crypto-blackjack/internal/core/domain"
	"crypto-blackjack/internal/core/ports"
)

// reportingService implements ports.ReportingService over the live
// game session and ledger.
type reportingService struct {
	game       *GameServiceImpl
	ledger     ports.LedgerService
	prices     ports.PriceService
	multiplier float64
}

// NewReportingService creates a reporting service for the session.
func NewReportingService(game *GameServiceImpl, ledger ports.LedgerService, prices ports.PriceService, multiplier float64) ports.ReportingService {
	return &reportingService{
		game:       game,
		ledger:     ledger,
		prices:     prices,
		multiplier: multiplier,
	}
}

// Stats aggregates the visible round history and the active asset's
// wager-gate progress. The profit series runs oldest round first so it
// charts left to right.
func (s *reportingService) Stats() ports.SessionStats {
	asset := s.game.Asset()
	history := s.game.History()
	entry := s.ledger.Entry(asset)
	price := s.prices.Price(asset)

	outcomes := make(map[domain.Outcome]int, 4)
	net := 0.0
	series := make([]float64, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		r := history[i]
		outcomes[r.Outcome]++
		net += r.Net
		series = append(series, r.Net*price)
	}

	return ports.SessionStats{
		Asset:          asset,
		Rounds:         len(history),
		Outcomes:       outcomes,
		NetProfit:      net,
		NetProfitUSD:   net * price,
		ProfitSeries:   series,
		Balance:        entry.Balance,
		Deposited:      entry.Deposited,
		Wagered:        entry.Wagered,
		RequiredWager:  entry.RequiredWager(s.multiplier),
		RemainingWager: entry.RemainingWager(s.multiplier),
	}
}
