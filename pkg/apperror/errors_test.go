package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	e := New("BET_002", "Invalid bet amount", http.StatusBadRequest)
	assert.Equal(t, "[BET_002] Invalid bet amount", e.Error())

	wrapped := Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, errors.New("boom"))
	assert.Equal(t, "[SYS_001] Internal server error: boom", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("feed down")
	e := InternalError(inner)
	assert.ErrorIs(t, e, inner)

	outer := fmt.Errorf("handler: %w", e)
	var appErr *AppError
	require.True(t, errors.As(outer, &appErr))
	assert.Equal(t, "SYS_001", appErr.Code)
}

func TestConstructors_CodesAndStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"insufficient balance", ErrInsufficientBalance(), "BET_001", http.StatusPaymentRequired},
		{"invalid bet", ErrInvalidBet(), "BET_002", http.StatusBadRequest},
		{"round in progress", ErrRoundInProgress(), "BET_003", http.StatusConflict},
		{"action not allowed", ErrActionNotAllowed("Hit"), "BET_004", http.StatusConflict},
		{"double unavailable", ErrDoubleUnavailable(), "BET_005", http.StatusConflict},
		{"cannot cover double", ErrCannotCoverDouble(), "BET_006", http.StatusPaymentRequired},
		{"invalid amount", ErrInvalidAmount(), "WAL_001", http.StatusBadRequest},
		{"missing address", ErrMissingAddress(), "WAL_002", http.StatusBadRequest},
		{"insufficient funds", ErrInsufficientFunds("BTC"), "WAL_003", http.StatusPaymentRequired},
		{"wager requirement", ErrWagerRequirementNotMet(49.9, "BTC", 4840300), "WAL_004", http.StatusUnprocessableEntity},
		{"unknown asset", ErrUnknownAsset("DOGE"), "WAL_005", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestErrWagerRequirementNotMet_Message(t *testing.T) {
	e := ErrWagerRequirementNotMet(49.9, "BTC", 4840300.00)
	assert.Contains(t, e.Message, "49.900000 BTC")
	assert.Contains(t, e.Message, "4840300.00 USD")
}

func TestErrActionNotAllowed_NamesAction(t *testing.T) {
	assert.Contains(t, ErrActionNotAllowed("Stand").Message, "Stand")
}
