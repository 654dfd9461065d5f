package domain

// BlackjackTarget is the hand value a blackjack hand aims for.
const BlackjackTarget = 21

// Hand is the ordered sequence of cards held by the player or the
// dealer during a round.
type Hand []Card

// Add appends a card to the hand and returns the new hand.
func (h Hand) Add(c Card) Hand {
	return append(h, c)
}

// Value computes the best blackjack value of the hand. Aces count 11
// until the total exceeds 21, then each is softened to 1 in turn. The
// result is the best value <= 21 when achievable, otherwise the fully
// softened total (a bust).
func (h Hand) Value() int {
	value := 0
	aces := 0
	for _, c := range h {
		value += c.BaseValue()
		if c.IsAce() {
			aces++
		}
	}
	for value > BlackjackTarget && aces > 0 {
		value -= 10
		aces--
	}
	return value
}

// IsSoft reports whether the hand contains an ace still counted as 11.
func (h Hand) IsSoft() bool {
	value := 0
	aces := 0
	for _, c := range h {
		value += c.BaseValue()
		if c.IsAce() {
			aces++
		}
	}
	for value > BlackjackTarget && aces > 0 {
		value -= 10
		aces--
	}
	return aces > 0
}

// IsBust reports whether the hand value exceeds 21.
func (h Hand) IsBust() bool {
	return h.Value() > BlackjackTarget
}

// IsBlackjack reports whether the hand is a natural: exactly two cards
// totalling 21 (an ace plus a ten-value card).
func (h Hand) IsBlackjack() bool {
	return len(h) == 2 && h.Value() == BlackjackTarget
}
