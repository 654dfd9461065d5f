package dto

import (
	"crypto-blackjack/internal/core/domain"
	"crypto-blackjack/internal/core/ports"
)

// DealRequest is the request body for starting a round. A zero bet
// falls back to the configured default stake.
type DealRequest struct {
	Bet float64 `json:"bet"`
}

// SelectAssetRequest switches the session's active asset.
type SelectAssetRequest struct {
	Asset string `json:"asset" binding:"required"`
}

// DepositRequest is the request body for a simulated deposit.
// Amount validation lives in the ledger so rejections reach the
// notification sink with a specific reason.
type DepositRequest struct {
	Asset  string  `json:"asset" binding:"required"`
	Amount float64 `json:"amount"`
}

// WithdrawRequest is the request body for a withdrawal.
type WithdrawRequest struct {
	Asset   string  `json:"asset" binding:"required"`
	Amount  float64 `json:"amount"`
	Address string  `json:"address"`
}

// CardResponse is one rendered card. A hidden card exposes only its ID
// so the presentation layer can keep a stable key for the face-down
// dealer hole card.
type CardResponse struct {
	Suit   string `json:"suit,omitempty"`
	Rank   string `json:"rank,omitempty"`
	ID     string `json:"id"`
	Hidden bool   `json:"hidden,omitempty"`
}

// RoundResponse is one settled round in the history list.
type RoundResponse struct {
	Outcome string  `json:"outcome"`
	Net     float64 `json:"net"`
}

// GameStateResponse is the full round snapshot for the presentation
// layer. DealerValue is nil while the hole card is face down.
type GameStateResponse struct {
	Asset          string          `json:"asset"`
	State          string          `json:"state"`
	Player         []CardResponse  `json:"player"`
	PlayerValue    int             `json:"player_value"`
	Dealer         []CardResponse  `json:"dealer"`
	DealerValue    *int            `json:"dealer_value,omitempty"`
	DealerRevealed bool            `json:"dealer_revealed"`
	Bet            float64         `json:"bet"`
	CanDouble      bool            `json:"can_double"`
	Message        string          `json:"message,omitempty"`
	ShoeRemaining  int             `json:"shoe_remaining"`
	History        []RoundResponse `json:"history"`
}

// EntryResponse is one asset's ledger entry.
type EntryResponse struct {
	Asset     string  `json:"asset"`
	Balance   float64 `json:"balance"`
	Deposited float64 `json:"deposited"`
	Wagered   float64 `json:"wagered"`
}

// WalletResponse lists every asset's entry.
type WalletResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// AddressResponse carries the demo deposit address for an asset.
type AddressResponse struct {
	Asset   string `json:"asset"`
	Address string `json:"address"`
}

// ToGameStateResponse converts a snapshot plus history, masking the
// dealer hole card while unrevealed. Masking is presentation-only: the
// card participates in hand values as soon as the hand is revealed.
func ToGameStateResponse(snap ports.GameSnapshot, history []domain.Round) GameStateResponse {
	resp := GameStateResponse{
		Asset:          snap.Asset.String(),
		State:          string(snap.State),
		Player:         toCards(snap.Player, -1),
		PlayerValue:    snap.PlayerValue,
		DealerRevealed: snap.DealerRevealed,
		Bet:            snap.Bet,
		CanDouble:      snap.CanDouble,
		Message:        snap.Message,
		ShoeRemaining:  snap.ShoeRemaining,
		History:        make([]RoundResponse, 0, len(history)),
	}

	hiddenIdx := -1
	if !snap.DealerRevealed && len(snap.Dealer) > 1 {
		hiddenIdx = 1
	}
	resp.Dealer = toCards(snap.Dealer, hiddenIdx)
	if snap.DealerRevealed {
		v := snap.DealerValue
		resp.DealerValue = &v
	}

	for _, r := range history {
		resp.History = append(resp.History, RoundResponse{Outcome: string(r.Outcome), Net: r.Net})
	}
	return resp
}

// ToWalletResponse converts ledger entries.
func ToWalletResponse(entries []domain.Entry) WalletResponse {
	resp := WalletResponse{Entries: make([]EntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, EntryResponse{
			Asset:     e.Asset.String(),
			Balance:   e.Balance,
			Deposited: e.Deposited,
			Wagered:   e.Wagered,
		})
	}
	return resp
}

func toCards(hand domain.Hand, hiddenIdx int) []CardResponse {
	out := make([]CardResponse, 0, len(hand))
	for i, c := range hand {
		if i == hiddenIdx {
			out = append(out, CardResponse{ID: c.ID, Hidden: true})
			continue
		}
		out = append(out, CardResponse{Suit: string(c.Suit), Rank: string(c.Rank), ID: c.ID})
	}
	return out
}
