package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses. Every
// validation failure in the engine is one of these: recoverable,
// state-preserving and carrying a user-facing reason.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Round & Bet (BET) ----

func ErrInsufficientBalance() *AppError {
	return New("BET_001", "You don't have enough balance for this bet", http.StatusPaymentRequired)
}

func ErrInvalidBet() *AppError {
	return New("BET_002", "Invalid bet amount", http.StatusBadRequest)
}

func ErrRoundInProgress() *AppError {
	return New("BET_003", "A round is already in progress", http.StatusConflict)
}

func ErrActionNotAllowed(action string) *AppError {
	return New("BET_004", fmt.Sprintf("%s is not available right now", action), http.StatusConflict)
}

func ErrDoubleUnavailable() *AppError {
	return New("BET_005", "Double down is only available before hitting", http.StatusConflict)
}

func ErrCannotCoverDouble() *AppError {
	return New("BET_006", "You don't have enough balance to double down", http.StatusPaymentRequired)
}

// ---- Wallet & Ledger (WAL) ----

func ErrInvalidAmount() *AppError {
	return New("WAL_001", "Please enter a valid amount", http.StatusBadRequest)
}

func ErrMissingAddress() *AppError {
	return New("WAL_002", "Please enter a withdrawal address", http.StatusBadRequest)
}

func ErrInsufficientFunds(asset string) *AppError {
	return New("WAL_003", fmt.Sprintf("You don't have enough %s to withdraw", asset), http.StatusPaymentRequired)
}

// ErrWagerRequirementNotMet reports the precise outstanding wager in
// asset units and USD.
func ErrWagerRequirementNotMet(remaining float64, asset string, remainingUSD float64) *AppError {
	return New("WAL_004",
		fmt.Sprintf("You need to wager %.6f %s more (%.2f USD) before withdrawing", remaining, asset, remainingUSD),
		http.StatusUnprocessableEntity)
}

func ErrUnknownAsset(ticker string) *AppError {
	return New("WAL_005", fmt.Sprintf("Unsupported asset %q", ticker), http.StatusBadRequest)
}

// ---- System (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request-shape validation error.
func Validation(message string) *AppError {
	return New("WAL_001", message, http.StatusBadRequest)
}
