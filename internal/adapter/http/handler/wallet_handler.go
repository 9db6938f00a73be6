package handler

import (
	"wallet-engine/internal/adapter/http/dto"
	"wallet-engine/internal/adapter/http/middleware"
	"wallet-engine/internal/core/domain"
	"wallet-engine/internal/core/ports"
	"wallet-engine/pkg/apperror"
	"wallet-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet-related endpoints.
type WalletHandler struct {
	engine ports.TransactionEngine
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(engine ports.TransactionEngine) *WalletHandler {
	return &WalletHandler{engine: engine}
}

// Create handles POST /api/v1/wallets.
func (h *WalletHandler) Create(c *gin.Context) {
	var req dto.CreateWalletRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := parseUUID(c, "userId", req.UserID)
	if !ok {
		return
	}

	wallet, err := h.engine.CreateWallet(c.Request.Context(), userID, domain.Currency(req.Currency))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewWalletResponse(wallet))
}

// CreateForMe handles POST /api/v1/wallets/me.
func (h *WalletHandler) CreateForMe(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	if id == nil {
		response.Error(c, apperror.ErrUnauthenticated())
		return
	}
	var req dto.CreateWalletForMeRequest
	if !bindJSON(c, &req) {
		return
	}

	wallet, err := h.engine.CreateWallet(c.Request.Context(), id.UserID, domain.Currency(req.Currency))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewWalletResponse(wallet))
}

// ListMine handles GET /api/v1/wallets/me.
func (h *WalletHandler) ListMine(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	if id == nil {
		response.Error(c, apperror.ErrUnauthenticated())
		return
	}

	wallets, err := h.engine.ListWalletsByUser(c.Request.Context(), id.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewWalletListResponse(wallets))
}

// ListByUser handles GET /api/v1/wallets/user/:userId.
func (h *WalletHandler) ListByUser(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	wallets, err := h.engine.ListWalletsByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewWalletListResponse(wallets))
}

// Get handles GET /api/v1/wallets/:id.
func (h *WalletHandler) Get(c *gin.Context) {
	walletID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	wallet, err := h.engine.GetWallet(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewWalletResponse(wallet))
}

// Deposit handles POST /api/v1/wallets/:id/deposit.
func (h *WalletHandler) Deposit(c *gin.Context) {
	cmd, ok := h.mutationCommand(c)
	if !ok {
		return
	}

	entry, err := h.engine.Deposit(c.Request.Context(), cmd)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewTransactionResponse(entry))
}

// Withdraw handles POST /api/v1/wallets/:id/withdraw.
func (h *WalletHandler) Withdraw(c *gin.Context) {
	cmd, ok := h.mutationCommand(c)
	if !ok {
		return
	}

	entry, err := h.engine.Withdraw(c.Request.Context(), cmd)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewTransactionResponse(entry))
}

// Transfer handles POST /api/v1/wallets/transfer.
func (h *WalletHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if !bindJSON(c, &req) {
		return
	}
	from, ok := parseUUID(c, "fromWalletId", req.FromWalletID)
	if !ok {
		return
	}
	to, ok := parseUUID(c, "toWalletId", req.ToWalletID)
	if !ok {
		return
	}

	result, err := h.engine.Transfer(c.Request.Context(), ports.TransferCommand{
		FromWalletID:   from,
		ToWalletID:     to,
		Amount:         req.AmountMinorUnits,
		IdempotencyKey: req.IdempotencyKey,
		Description:    req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewTransferResponse(result))
}

// History handles GET /api/v1/wallets/:id/transactions?page&size.
func (h *WalletHandler) History(c *gin.Context) {
	walletID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	page, err := h.engine.GetTransactionHistory(c.Request.Context(), walletID, queryInt(c, "page", 0), queryInt(c, "size", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewHistoryResponse(page))
}

func (h *WalletHandler) mutationCommand(c *gin.Context) (ports.MutationCommand, bool) {
	walletID, ok := uuidParam(c, "id")
	if !ok {
		return ports.MutationCommand{}, false
	}
	var req dto.MutationRequest
	if !bindJSON(c, &req) {
		return ports.MutationCommand{}, false
	}
	return ports.MutationCommand{
		WalletID:       walletID,
		Amount:         req.AmountMinorUnits,
		IdempotencyKey: req.IdempotencyKey,
		Description:    req.Description,
	}, true
}
