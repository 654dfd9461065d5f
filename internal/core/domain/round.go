package domain

// Outcome is the terminal result of a round.
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeLose      Outcome = "lose"
	OutcomePush      Outcome = "push"
	OutcomeBlackjack Outcome = "blackjack"
)

// Payout returns the total amount returned to the player for a given
// stake: nothing on a loss, the stake back on a push, 2x on a win and
// 2.5x on a natural blackjack (3:2 profit).
func (o Outcome) Payout(bet float64) float64 {
	switch o {
	case OutcomeBlackjack:
		return bet * 2.5
	case OutcomeWin:
		return bet * 2
	case OutcomePush:
		return bet
	default:
		return 0
	}
}

// Message returns the display message announcing the outcome.
func (o Outcome) Message() string {
	switch o {
	case OutcomeBlackjack:
		return "Blackjack! You Win!"
	case OutcomeWin:
		return "You Win!"
	case OutcomePush:
		return "Push - Tie Game"
	default:
		return "Dealer Wins"
	}
}

// Round records one settled hand: its outcome and the signed profit or
// loss in asset units.
type Round struct {
	Outcome Outcome `json:"outcome"`
	Net     float64 `json:"net"`
}

// RoundState is the phase of the round state machine.
type RoundState string

const (
	StateIdle     RoundState = "idle"
	StatePlaying  RoundState = "playing"  // player's turn
	StateDealer   RoundState = "dealer"   // automated dealer turn pending
	StateFinished RoundState = "finished" // settled, awaiting next deal
)

// AcceptsDeal reports whether a new round may start from this state.
func (s RoundState) AcceptsDeal() bool {
	return s == StateIdle || s == StateFinished
}
