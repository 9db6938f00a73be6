package handler

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"wallet-engine/internal/core/ports"
	"wallet-engine/pkg/apperror"
	"wallet-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// webhookReplayWindow is how long a delivery is remembered by the guard.
const webhookReplayWindow = 10 * time.Minute

// WebhookHandler receives signed provider callbacks.
type WebhookHandler struct {
	router     ports.PaymentRouter
	settlement ports.SettlementHandler
	guard      ports.WebhookGuard // nil = no replay filtering
	log        zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(router ports.PaymentRouter, settlement ports.SettlementHandler, guard ports.WebhookGuard, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{router: router, settlement: settlement, guard: guard, log: log}
}

// Receive handles POST /api/v1/webhooks/:provider.
// Pipeline: verify signature -> replay guard -> normalize -> settle.
func (h *WebhookHandler) Receive(c *gin.Context) {
	provider, err := h.router.Provider(c.Param("provider"))
	if err != nil {
		response.Error(c, err)
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, apperror.ErrPayloadTooLarge(tooLarge.Limit))
			return
		}
		response.Error(c, apperror.Validation("cannot read request body"))
		return
	}

	signature := c.GetHeader(provider.SignatureHeader())
	if signature == "" || !provider.VerifyWebhookSignature(signature, payload) {
		h.log.Warn().Str("provider", provider.Name()).Str("client_ip", c.ClientIP()).Msg("webhook signature rejected")
		response.Error(c, apperror.ErrInvalidWebhookSignature())
		return
	}

	ctx := c.Request.Context()
	deliveryID := deliveryHash(payload)
	if h.guard != nil {
		first, err := h.guard.FirstSeen(ctx, provider.Name(), deliveryID, webhookReplayWindow)
		switch {
		case err != nil:
			h.log.Warn().Err(err).Str("provider", provider.Name()).Msg("webhook guard unavailable, processing anyway (degraded mode)")
		case !first:
			h.log.Info().Str("provider", provider.Name()).Str("delivery_id", deliveryID).Msg("duplicate webhook delivery ignored")
			response.OK(c, gin.H{"received": true, "duplicate": true})
			return
		}
	}

	event, err := provider.NormalizeWebhook(payload)
	if err != nil {
		h.forget(c, provider.Name(), deliveryID)
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.settlement.HandleEvent(ctx, event); err != nil {
		// Let the provider's retry reach settlement again.
		h.forget(c, provider.Name(), deliveryID)
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"received": true,
		"type":     event.Type,
		"provider": event.Provider,
	})
}

func (h *WebhookHandler) forget(c *gin.Context, provider, deliveryID string) {
	if h.guard == nil {
		return
	}
	if err := h.guard.Forget(c.Request.Context(), provider, deliveryID); err != nil {
		h.log.Warn().Err(err).Str("provider", provider).Msg("failed to clear webhook guard entry")
	}
}

// deliveryHash identifies a delivery by its exact payload.
func deliveryHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
