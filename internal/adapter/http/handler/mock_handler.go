package handler

import (
	"strings"

	"wallet-engine/internal/adapter/http/dto"
	"wallet-engine/internal/core/domain"
	"wallet-engine/internal/core/ports"
	"wallet-engine/pkg/apperror"
	"wallet-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MockHandler simulates provider traffic for local testing. Mounted only when
// mock.enabled is set.
type MockHandler struct {
	engine     ports.TransactionEngine
	router     ports.PaymentRouter
	settlement ports.SettlementHandler
	log        zerolog.Logger
}

// NewMockHandler creates a new MockHandler.
func NewMockHandler(engine ports.TransactionEngine, router ports.PaymentRouter, settlement ports.SettlementHandler, log zerolog.Logger) *MockHandler {
	return &MockHandler{engine: engine, router: router, settlement: settlement, log: log}
}

// Deposit handles POST /api/v1/mock/:provider/deposit.
func (h *MockHandler) Deposit(c *gin.Context) {
	provider, err := h.router.Provider(c.Param("provider"))
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.MockDepositRequest
	if !bindJSON(c, &req) {
		return
	}
	walletID, ok := parseUUID(c, "walletId", req.WalletID)
	if !ok {
		return
	}

	wallet, err := h.engine.GetWallet(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !supportsCurrency(provider, wallet.Currency) {
		response.Error(c, apperror.ErrUnsupportedCurrency(string(wallet.Currency)))
		return
	}

	token := req.Token
	if token == "" {
		token = "valid_" + strings.ToLower(provider.Name()) + "_token"
	}
	key := req.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	h.log.Info().
		Str("provider", provider.Name()).
		Str("wallet_id", walletID.String()).
		Int64("amount", req.AmountMinorUnits).
		Msg("mock deposit")

	result, err := h.router.RouteDeposit(c.Request.Context(), domain.DepositRequest{
		WalletID:           walletID,
		Amount:             req.AmountMinorUnits,
		Currency:           wallet.Currency,
		PaymentMethodToken: token,
		Description:        "Mock " + provider.Name() + " deposit",
		IdempotencyKey:     key,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Webhook handles POST /api/v1/mock/:provider/webhook. It drives the
// settlement handler directly, bypassing signature checks.
func (h *MockHandler) Webhook(c *gin.Context) {
	provider, err := h.router.Provider(c.Param("provider"))
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.MockWebhookRequest
	if !bindJSON(c, &req) {
		return
	}

	status := req.Status
	if status == "" {
		status = "SUCCESS"
	}
	externalID := strings.ToLower(provider.Name()) + "_payout_" + uuid.NewString()[:8]
	ctx := c.Request.Context()

	h.log.Info().
		Str("provider", provider.Name()).
		Str("withdrawal_id", req.WithdrawalID).
		Str("status", status).
		Msg("mock payout webhook")

	switch status {
	case "SUCCESS":
		err = h.settlement.HandlePayoutSuccess(ctx, req.WithdrawalID, externalID)
	case "FAILED":
		reason := req.ErrorMessage
		if reason == "" {
			reason = "Payment provider declined"
		}
		err = h.settlement.HandlePayoutFailure(ctx, req.WithdrawalID, reason)
	case "PROCESSING":
		err = h.settlement.HandlePayoutProcessing(ctx, req.WithdrawalID)
	case "CANCELLED":
		err = h.settlement.HandlePayoutCancelled(ctx, req.WithdrawalID, "User cancelled")
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"received":     true,
		"withdrawalId": req.WithdrawalID,
		"status":       status,
		"externalId":   externalID,
	})
}

func supportsCurrency(p ports.PaymentProvider, currency domain.Currency) bool {
	for _, c := range p.SupportedCurrencies() {
		if c == currency {
			return true
		}
	}
	return false
}
