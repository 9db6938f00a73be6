package ports

import (
	"context"

	"wallet-engine/internal/core/domain"
)

// PaymentProvider is the capability set every gateway adapter exposes.
type PaymentProvider interface {
	Name() string
	SupportedCurrencies() []domain.Currency
	ProcessDeposit(ctx context.Context, req domain.DepositRequest) (*domain.PaymentResult, error)
	ProcessWithdrawal(ctx context.Context, req domain.WithdrawalRequest) (*domain.PayoutResult, error)
	VerifyWebhookSignature(signature string, payload []byte) bool
	NormalizeWebhook(payload []byte) (*domain.WebhookEvent, error)
	// SignatureHeader names the HTTP header carrying the webhook signature.
	SignatureHeader() string
}
