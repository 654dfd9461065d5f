package handler

import (
	"crypto-blackjack/internal/adapter/http/dto"
	"crypto-blackjack/internal/core/domain"
	"crypto-blackjack/internal/core/ports"
	"crypto-blackjack/pkg/apperror"
	"crypto-blackjack/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet-related endpoints.
type WalletHandler struct {
	ledgerSvc ports.LedgerService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledgerSvc ports.LedgerService) *WalletHandler {
	return &WalletHandler{ledgerSvc: ledgerSvc}
}

// Deposit handles POST /api/v1/wallet/deposit.
func (h *WalletHandler) Deposit(c *gin.Context) {
	var req dto.DepositRequest
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

	entry, err := h.ledgerSvc.Deposit(asset, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.EntryResponse{
		Asset:     entry.Asset.String(),
		Balance:   entry.Balance,
		Deposited: entry.Deposited,
		Wagered:   entry.Wagered,
	})
}

// Withdraw handles POST /api/v1/wallet/withdraw.
func (h *WalletHandler) Withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
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

	entry, err := h.ledgerSvc.Withdraw(asset, req.Amount, req.Address)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.EntryResponse{
		Asset:     entry.Asset.String(),
		Balance:   entry.Balance,
		Deposited: entry.Deposited,
		Wagered:   entry.Wagered,
	})
}

// GetWallet handles GET /api/v1/wallet.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	response.OK(c, dto.ToWalletResponse(h.ledgerSvc.Entries()))
}

// GetAddress handles GET /api/v1/wallet/address. The asset is passed
// as a query parameter, e.g. ?asset=BTC.
func (h *WalletHandler) GetAddress(c *gin.Context) {
	ticker := c.Query("asset")
	asset, err := domain.ParseAsset(ticker)
	if err != nil {
		response.Error(c, apperror.ErrUnknownAsset(ticker))
		return
	}

	response.OK(c, dto.AddressResponse{
		Asset:   asset.String(),
		Address: asset.DepositAddress(),
	})
}
