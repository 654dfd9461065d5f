package handler

import (
	"crypto-blackjack/internal/adapter/http/dto"
	"crypto-blackjack/internal/core/ports"
	"crypto-blackjack/pkg/apperror"
	"crypto-blackjack/pkg/response"

	"github.com/gin-gonic/gin"
)

// GameHandler handles round-play endpoints.
type GameHandler struct {
	gameSvc    ports.GameService
	defaultBet float64
}

// NewGameHandler creates a new GameHandler. defaultBet is the stake
// used when a deal request omits the bet.
func NewGameHandler(gameSvc ports.GameService, defaultBet float64) *GameHandler {
	return &GameHandler{
		gameSvc:    gameSvc,
		defaultBet: defaultBet,
	}
}

// Deal handles POST /api/v1/game/deal.
func (h *GameHandler) Deal(c *gin.Context) {
	var req dto.DealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	bet := req.Bet
	if bet == 0 {
		bet = h.defaultBet
	}

	snap, err := h.gameSvc.Deal(bet)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToGameStateResponse(snap, h.gameSvc.History()))
}

// Hit handles POST /api/v1/game/hit.
func (h *GameHandler) Hit(c *gin.Context) {
	snap, err := h.gameSvc.Hit()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToGameStateResponse(snap, h.gameSvc.History()))
}

// Stand handles POST /api/v1/game/stand.
func (h *GameHandler) Stand(c *gin.Context) {
	snap, err := h.gameSvc.Stand()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToGameStateResponse(snap, h.gameSvc.History()))
}

// Double handles POST /api/v1/game/double.
func (h *GameHandler) Double(c *gin.Context) {
	snap, err := h.gameSvc.Double()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToGameStateResponse(snap, h.gameSvc.History()))
}

// GetState handles GET /api/v1/game.
func (h *GameHandler) GetState(c *gin.Context) {
	response.OK(c, dto.ToGameStateResponse(h.gameSvc.Snapshot(), h.gameSvc.History()))
}
