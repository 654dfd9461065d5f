package domain

import "math/rand"

// DeckSize is the number of cards in one standard deck.
const DeckSize = 52

// Shoe is the combined, shuffled set of decks cards are dealt from.
// It is consumed from the end as a stack and is owned by a single game
// session; it is not safe for concurrent use on its own.
type Shoe struct {
	cards []Card
}

// NewShoe builds a shoe of decks standard 52-card decks and shuffles it
// with a Fisher-Yates permutation driven by rng. Injecting the random
// source keeps shuffles reproducible in tests.
func NewShoe(decks int, rng *rand.Rand) *Shoe {
	cards := make([]Card, 0, decks*DeckSize)
	for d := 0; d < decks; d++ {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				cards = append(cards, NewCard(suit, rank))
			}
		}
	}
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Shoe{cards: cards}
}

// NewShoeFromCards builds an unshuffled shoe from an explicit
// sequence. The last card is the top of the stack. Used to reproduce
// specific layouts.
func NewShoeFromCards(cards []Card) *Shoe {
	s := &Shoe{cards: make([]Card, len(cards))}
	copy(s.cards, cards)
	return s
}

// Draw removes and returns the top card of the shoe. ok is false when
// the shoe is empty; callers replenish at round start, never mid-round.
func (s *Shoe) Draw() (Card, bool) {
	if len(s.cards) == 0 {
		return Card{}, false
	}
	c := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return c, true
}

// Remaining returns the number of undealt cards.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// NeedsRebuild reports whether fewer than threshold cards remain. The
// threshold is an explicit policy parameter standing in for a real cut
// card; it is checked at round start only.
func (s *Shoe) NeedsRebuild(threshold int) bool {
	return s == nil || len(s.cards) < threshold
}
