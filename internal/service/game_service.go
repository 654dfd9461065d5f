package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"crypto-blackjack/internal/core/domain"
	"crypto-blackjack/internal/core/ports"
	"crypto-blackjack/pkg/apperror"

	"github.com/rs/zerolog"
)

// dealerStand is the value at which the dealer stops drawing. The
// dealer stands on every 17, soft included.
const dealerStand = 17

// GameConfig holds the round-engine policy parameters.
type GameConfig struct {
	Decks          int           // decks per shoe
	ReshuffleBelow int           // rebuild the shoe at round start below this many cards
	DealerDelay    time.Duration // pacing delay before the dealer's automated turn
	HistoryLimit   int           // rounds kept for display, newest first
}

// GameServiceImpl implements ports.GameService: a single session
// owning the shoe, both hands and the round state machine. One mutex
// keeps the single-writer discipline; no action valid for another
// state can interleave, and the dealer continuation re-checks state
// when it fires.
type GameServiceImpl struct {
	mu sync.Mutex

	cfg   GameConfig
	asset domain.Asset
	shoe  *domain.Shoe
	rng   *rand.Rand

	player         domain.Hand
	dealer         domain.Hand
	bet            float64
	state          domain.RoundState
	dealerRevealed bool
	canDouble      bool
	message        string
	history        []domain.Round

	ledger   ports.LedgerService
	notifier ports.Notifier
	sched    ports.Scheduler
	log      zerolog.Logger
}

// NewGameService creates a session playing the given asset. rng drives
// every shuffle and is the only randomness the engine consumes.
func NewGameService(
	cfg GameConfig,
	asset domain.Asset,
	rng *rand.Rand,
	ledger ports.LedgerService,
	notifier ports.Notifier,
	sched ports.Scheduler,
	log zerolog.Logger,
) *GameServiceImpl {
	return &GameServiceImpl{
		cfg:      cfg,
		asset:    asset,
		rng:      rng,
		state:    domain.StateIdle,
		ledger:   ledger,
		notifier: notifier,
		sched:    sched,
		log:      log,
	}
}

// Deal implements ports.GameService. The stake is debited up front and
// stays at risk for the duration of the round.
func (s *GameServiceImpl) Deal(bet float64) (ports.GameSnapshot, error) {
	s.mu.Lock()

	if !s.state.AcceptsDeal() {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, apperror.ErrRoundInProgress()
	}

	if err := s.ledger.PlaceBet(s.asset, bet); err != nil {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.notifyError(err)
		return snap, err
	}

	if s.shoe.NeedsRebuild(s.cfg.ReshuffleBelow) {
		s.shoe = domain.NewShoe(s.cfg.Decks, s.rng)
		s.log.Debug().Int("cards", s.shoe.Remaining()).Msg("shoe rebuilt")
	}

	s.bet = bet
	s.player = domain.Hand{s.drawLocked(), s.drawLocked()}
	s.dealer = domain.Hand{s.drawLocked(), s.drawLocked()}
	s.dealerRevealed = false
	s.canDouble = true
	s.message = ""
	s.state = domain.StatePlaying

	// Naturals resolve before any player action.
	if s.player.IsBlackjack() {
		s.dealerRevealed = true
		if s.dealer.Value() == domain.BlackjackTarget {
			s.settleLocked(domain.OutcomePush)
		} else {
			s.settleLocked(domain.OutcomeBlackjack)
		}
	}

	snap := s.snapshotLocked()
	s.mu.Unlock()
	return snap, nil
}

// Hit implements ports.GameService. Hitting permanently disables the
// double-down option for the round.
func (s *GameServiceImpl) Hit() (ports.GameSnapshot, error) {
	s.mu.Lock()

	if s.state != domain.StatePlaying {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, apperror.ErrActionNotAllowed("Hit")
	}

	s.player = s.player.Add(s.drawLocked())
	s.canDouble = false

	if s.player.IsBust() {
		s.dealerRevealed = true
		s.settleLocked(domain.OutcomeLose)
	}

	snap := s.snapshotLocked()
	s.mu.Unlock()
	return snap, nil
}

// Stand implements ports.GameService. The dealer's turn runs as a
// deferred continuation; no mutating action is accepted in between.
func (s *GameServiceImpl) Stand() (ports.GameSnapshot, error) {
	s.mu.Lock()

	if s.state != domain.StatePlaying {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, apperror.ErrActionNotAllowed("Stand")
	}

	s.state = domain.StateDealer
	s.dealerRevealed = true
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.sched.AfterFunc(s.cfg.DealerDelay, s.dealerTurn)
	return snap, nil
}

// Double implements ports.GameService: available only before the first
// hit and only when the balance covers a second stake. Draws exactly
// one card, then the dealer plays.
func (s *GameServiceImpl) Double() (ports.GameSnapshot, error) {
	s.mu.Lock()

	if s.state != domain.StatePlaying {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, apperror.ErrActionNotAllowed("Double")
	}
	if !s.canDouble {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, apperror.ErrDoubleUnavailable()
	}

	if err := s.ledger.PlaceBet(s.asset, s.bet); err != nil {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		doubleErr := apperror.ErrCannotCoverDouble()
		s.notifyError(doubleErr)
		return snap, doubleErr
	}

	s.bet *= 2
	s.canDouble = false
	s.player = s.player.Add(s.drawLocked())

	if s.player.IsBust() {
		s.dealerRevealed = true
		s.settleLocked(domain.OutcomeLose)
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil
	}

	s.state = domain.StateDealer
	s.dealerRevealed = true
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.sched.AfterFunc(s.cfg.DealerDelay, s.dealerTurn)
	return snap, nil
}

// SelectAsset implements ports.GameService. Switching is rejected
// mid-round. The visible history is a single buffer, so it clears on
// every switch.
func (s *GameServiceImpl) SelectAsset(asset domain.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == domain.StatePlaying || s.state == domain.StateDealer {
		return apperror.ErrRoundInProgress()
	}
	if asset == s.asset {
		return nil
	}

	s.asset = asset
	s.history = nil
	s.message = ""
	return nil
}

// Snapshot implements ports.GameService.
func (s *GameServiceImpl) Snapshot() ports.GameSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// History implements ports.GameService, newest round first.
func (s *GameServiceImpl) History() []domain.Round {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Round, len(s.history))
	copy(out, s.history)
	return out
}

// Asset returns the active asset.
func (s *GameServiceImpl) Asset() domain.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asset
}

// dealerTurn draws for the dealer while under 17, then resolves.
// Scheduled by Stand/Double; re-checks state so a stale timer is a
// no-op.
func (s *GameServiceImpl) dealerTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.StateDealer {
		return
	}

	for s.dealer.Value() < dealerStand {
		s.dealer = s.dealer.Add(s.drawLocked())
	}

	playerValue := s.player.Value()
	dealerValue := s.dealer.Value()

	switch {
	case dealerValue > domain.BlackjackTarget || playerValue > dealerValue:
		s.settleLocked(domain.OutcomeWin)
	case playerValue == dealerValue:
		s.settleLocked(domain.OutcomePush)
	default:
		s.settleLocked(domain.OutcomeLose)
	}
}

// drawLocked deals the next card. The round-start rebuild policy keeps
// the shoe deep enough for any single round; rebuild anyway rather
// than deal a zero card.
func (s *GameServiceImpl) drawLocked() domain.Card {
	c, ok := s.shoe.Draw()
	if !ok {
		s.shoe = domain.NewShoe(s.cfg.Decks, s.rng)
		c, _ = s.shoe.Draw()
	}
	return c
}

// settleLocked applies the terminal transition: credit the payout,
// count the stake toward the wager requirement, record the round and
// finish.
func (s *GameServiceImpl) settleLocked(outcome domain.Outcome) {
	payout := outcome.Payout(s.bet)
	entry := s.ledger.Settle(s.asset, s.bet, payout)
	net := payout - s.bet

	rounds := make([]domain.Round, 0, len(s.history)+1)
	rounds = append(rounds, domain.Round{Outcome: outcome, Net: net})
	rounds = append(rounds, s.history...)
	if len(rounds) > s.cfg.HistoryLimit {
		rounds = rounds[:s.cfg.HistoryLimit]
	}
	s.history = rounds

	s.message = outcome.Message()
	s.state = domain.StateFinished

	s.log.Info().
		Str("asset", s.asset.String()).
		Str("outcome", string(outcome)).
		Float64("bet", s.bet).
		Float64("payout", payout).
		Float64("balance", entry.Balance).
		Msg("round settled")

	severity := domain.SeverityInfo
	if outcome == domain.OutcomeWin || outcome == domain.OutcomeBlackjack {
		severity = domain.SeveritySuccess
	}
	s.notifier.Notify(domain.Notification{
		Title:       outcome.Message(),
		Description: fmt.Sprintf("Net %+.8f %s", net, s.asset),
		Severity:    severity,
		At:          time.Now(),
	})
}

func (s *GameServiceImpl) snapshotLocked() ports.GameSnapshot {
	player := make(domain.Hand, len(s.player))
	copy(player, s.player)
	dealer := make(domain.Hand, len(s.dealer))
	copy(dealer, s.dealer)

	remaining := 0
	if s.shoe != nil {
		remaining = s.shoe.Remaining()
	}

	return ports.GameSnapshot{
		Asset:          s.asset,
		State:          s.state,
		Player:         player,
		Dealer:         dealer,
		PlayerValue:    player.Value(),
		DealerValue:    dealer.Value(),
		DealerRevealed: s.dealerRevealed,
		Bet:            s.bet,
		CanDouble:      s.canDouble,
		Message:        s.message,
		ShoeRemaining:  remaining,
	}
}

func (s *GameServiceImpl) notifyError(err error) {
	title := "Action Rejected"
	description := err.Error()
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		description = appErr.Message
		switch appErr.Code {
		case "BET_001", "BET_006":
			title = "Insufficient Balance"
		case "BET_002":
			title = "Invalid Bet"
		}
	}
	s.notifier.Notify(domain.Notification{
		Title:       title,
		Description: description,
		Severity:    domain.SeverityError,
		At:          time.Now(),
	})
}
