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

// PaymentHandler handles deposits and withdrawals routed through providers.
// Declined payments are reported in the body with success=false and status 200.
type PaymentHandler struct {
	router ports.PaymentRouter
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(router ports.PaymentRouter) *PaymentHandler {
	return &PaymentHandler{router: router}
}

// Deposit handles POST /api/v1/payments/deposit.
func (h *PaymentHandler) Deposit(c *gin.Context) {
	var req dto.RoutedDepositRequest
	if !bindJSON(c, &req) {
		return
	}
	walletID, ok := parseUUID(c, "walletId", req.WalletID)
	if !ok {
		return
	}

	deposit := domain.DepositRequest{
		WalletID:           walletID,
		Amount:             req.AmountMinorUnits,
		Currency:           domain.Currency(req.Currency),
		PaymentMethodToken: req.PaymentMethodToken,
		Description:        req.Description,
		IdempotencyKey:     req.IdempotencyKey,
	}
	if id := middleware.IdentityFrom(c); id != nil {
		deposit.UserID = id.UserID
	}

	result, err := h.router.RouteDeposit(c.Request.Context(), deposit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Withdrawal handles POST /api/v1/payments/withdrawal.
func (h *PaymentHandler) Withdrawal(c *gin.Context) {
	var req dto.RoutedWithdrawalRequest
	if !bindJSON(c, &req) {
		return
	}
	walletID, ok := parseUUID(c, "walletId", req.WalletID)
	if !ok {
		return
	}

	withdrawal := domain.WithdrawalRequest{
		WalletID:         walletID,
		Amount:           req.AmountMinorUnits,
		Currency:         domain.Currency(req.Currency),
		DestinationToken: req.DestinationToken,
		Description:      req.Description,
		IdempotencyKey:   req.IdempotencyKey,
	}
	if id := middleware.IdentityFrom(c); id != nil {
		withdrawal.UserID = id.UserID
	}

	result, err := h.router.RouteWithdrawal(c.Request.Context(), withdrawal)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Providers handles GET /api/v1/payments/providers?currency=.
func (h *PaymentHandler) Providers(c *gin.Context) {
	raw := c.Query("currency")
	if raw == "" {
		response.OK(c, dto.NewProviderList(h.router.Providers()))
		return
	}
	currency := domain.Currency(raw)
	if !currency.IsValid() {
		response.Error(c, apperror.ValidationFields(map[string]string{"currency": "must be one of USD, EUR, UZS"}))
		return
	}
	response.OK(c, dto.NewProviderList(h.router.ProvidersForCurrency(currency)))
}
