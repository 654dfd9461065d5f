package domain

// Entry tracks one asset's balance alongside the running totals that
// feed the wager-requirement gate. Deposited and Wagered only grow
// until a successful withdrawal resets both to zero.
type Entry struct {
	Asset     Asset   `json:"asset"`
	Balance   float64 `json:"balance"`
	Deposited float64 `json:"deposited"`
	Wagered   float64 `json:"wagered"`
}

// RequiredWager returns the total amount that must be wagered before a
// withdrawal is permitted, at the given rollover multiplier.
func (e Entry) RequiredWager(multiplier float64) float64 {
	return e.Deposited * multiplier
}

// RemainingWager returns how much wagering is still outstanding, never
// negative.
func (e Entry) RemainingWager(multiplier float64) float64 {
	remaining := e.RequiredWager(multiplier) - e.Wagered
	if remaining < 0 {
		return 0
	}
	return remaining
}

// WagerRequirementMet reports whether the rollover gate is open.
func (e Entry) WagerRequirementMet(multiplier float64) bool {
	return e.RemainingWager(multiplier) <= 0
}
