package service

import (
	"context"
	"sync"
	"time"

	"crypto-blackjack/internal/core/domain"
)

// fakeNotifier records every notification it receives.
type fakeNotifier struct {
	mu    sync.Mutex
	notes []domain.Notification
}

func (f *fakeNotifier) Notify(n domain.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = append(f.notes, n)
}

func (f *fakeNotifier) all() []domain.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Notification, len(f.notes))
	copy(out, f.notes)
	return out
}

func (f *fakeNotifier) last() (domain.Notification, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.notes) == 0 {
		return domain.Notification{}, false
	}
	return f.notes[len(f.notes)-1], true
}

// fakePrices serves fixed quotes.
type fakePrices struct {
	quotes map[domain.Asset]float64
}

func (f fakePrices) Prices() map[domain.Asset]float64 {
	out := make(map[domain.Asset]float64, len(f.quotes))
	for a, p := range f.quotes {
		out[a] = p
	}
	return out
}

func (f fakePrices) Price(asset domain.Asset) float64 {
	return f.quotes[asset]
}

func (f fakePrices) Run(_ context.Context) {}

// stubFeed returns canned quotes or a canned error.
type stubFeed struct {
	mu     sync.Mutex
	quotes map[domain.Asset]float64
	err    error
	calls  int
}

func (s *stubFeed) Fetch(_ context.Context) (map[domain.Asset]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.quotes, nil
}

func (s *stubFeed) set(quotes map[domain.Asset]float64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes = quotes
	s.err = err
}

// capturedScheduler holds continuations until the test releases them.
type capturedScheduler struct {
	pending []func()
}

func (c *capturedScheduler) AfterFunc(_ time.Duration, fn func()) {
	c.pending = append(c.pending, fn)
}

func (c *capturedScheduler) fire() {
	for _, fn := range c.pending {
		fn()
	}
	c.pending = nil
}

// riggedShoe builds a shoe dealing the listed ranks in order (all
// spades). The first listed rank is the first card dealt.
func riggedShoe(ranks ...domain.Rank) *domain.Shoe {
	cards := make([]domain.Card, len(ranks))
	for i, r := range ranks {
		cards[len(ranks)-1-i] = domain.NewCard(domain.Spades, r)
	}
	return domain.NewShoeFromCards(cards)
}
