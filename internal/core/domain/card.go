package domain

import "github.com/google/uuid"

// Suit is one of the four French card suits.
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

// Suits lists all suits in deck-construction order.
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Rank is a card rank: A, 2-10, J, Q, K.
type Rank string

const (
	Ace   Rank = "A"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

// Ranks lists all ranks in deck-construction order.
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// rankValues maps each rank to its base blackjack value. Aces count 11
// here; softening to 1 happens during hand evaluation.
var rankValues = map[Rank]int{
	Ace: 11, Two: 2, Three: 3, Four: 4, Five: 5, Six: 6, Seven: 7,
	Eight: 8, Nine: 9, Ten: 10, Jack: 10, Queen: 10, King: 10,
}

// Card is an immutable playing card. ID is a stable identifier for
// presentation keys only; game logic never inspects it.
type Card struct {
	Suit Suit   `json:"suit"`
	Rank Rank   `json:"rank"`
	ID   string `json:"id"`
}

// NewCard creates a card with a fresh unique ID.
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank, ID: uuid.NewString()}
}

// BaseValue returns the card's value before any ace softening.
func (c Card) BaseValue() int {
	return rankValues[c.Rank]
}

// IsAce reports whether the card is an ace.
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

func (c Card) String() string {
	return string(c.Rank) + string(c.Suit)
}
