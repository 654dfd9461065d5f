package handler

import (
	"crypto-blackjack/internal/adapter/http/dto"
	"crypto-blackjack/internal/core/domain"
	"crypto-blackjack/internal/core/ports"
	"crypto-blackjack/pkg/apperror"
	"crypto-blackjack/pkg/response"

	"github.com/gin-gonic/gin"
)

// SessionHandler handles session-level endpoints: asset selection and
// aggregated statistics.
type SessionHandler struct {
	gameSvc      ports.GameService
	reportingSvc ports.ReportingService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(gameSvc ports.GameService, reportingSvc ports.ReportingService) *SessionHandler {
	return &SessionHandler{
		gameSvc:      gameSvc,
		reportingSvc: reportingSvc,
	}
}

// SelectAsset handles PUT /api/v1/session/asset.
func (h *SessionHandler) SelectAsset(c *gin.Context) {
	var req dto.SelectAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	asset, err := domain.ParseAsset(req.Asset)
	if err != nil {
		response.Error(c, apperror.ErrUnknownAsset(req.Asset))
		return
	}

	if err := h.gameSvc.SelectAsset(asset); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToGameStateResponse(h.gameSvc.Snapshot(), h.gameSvc.History()))
}

// GetStats handles GET /api/v1/session/stats.
func (h *SessionHandler) GetStats(c *gin.Context) {
	response.OK(c, h.reportingSvc.Stats())
}
