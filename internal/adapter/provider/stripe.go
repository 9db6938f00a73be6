package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"wallet-engine/internal/core/domain"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/webhook"
)

const (
	stripeMinDeposit = 50
	stripeMinPayout  = 100
)

var stripeDeclines = []tokenFailure{
	{"fail", CodeCardDeclined, "Your card was declined"},
	{"expired", CodeExpiredCard, "Your card has expired"},
	{"fraud", CodeFraudSuspected, "Payment blocked by Radar"},
}

var stripeEventTypes = map[string]domain.WebhookEventType{
	"payout.paid":                   domain.WebhookPayoutSuccess,
	"payout.failed":                 domain.WebhookPayoutFailed,
	"payout.canceled":               domain.WebhookPayoutCancelled,
	"payout.updated":                domain.WebhookPayoutProcessing,
	"payout.created":                domain.WebhookPayoutProcessing,
	"payment_intent.succeeded":      domain.WebhookPaymentSuccess,
	"payment_intent.payment_failed": domain.WebhookPaymentFailed,
	"payment_intent.processing":     domain.WebhookPaymentPending,
	"charge.refunded":               domain.WebhookRefundSuccess,
	"charge.dispute.created":        domain.WebhookDisputeOpened,
	"charge.dispute.closed":         domain.WebhookDisputeClosed,
}

// Stripe implements ports.PaymentProvider for Stripe (USD, EUR).
type Stripe struct {
	webhookSecret string
	tolerance     time.Duration
}

// NewStripe creates a Stripe adapter. tolerance bounds the age of a signed
// webhook; zero falls back to the library default.
func NewStripe(webhookSecret string, tolerance time.Duration) *Stripe {
	if tolerance <= 0 {
		tolerance = webhook.DefaultTolerance
	}
	return &Stripe{webhookSecret: webhookSecret, tolerance: tolerance}
}

func (s *Stripe) Name() string { return NameStripe }

func (s *Stripe) SupportedCurrencies() []domain.Currency {
	return []domain.Currency{domain.CurrencyUSD, domain.CurrencyEUR}
}

func (s *Stripe) SignatureHeader() string { return "Stripe-Signature" }

// ProcessDeposit confirms a PaymentIntent against a PaymentMethod token (pm_...).
func (s *Stripe) ProcessDeposit(ctx context.Context, req domain.DepositRequest) (*domain.PaymentResult, error) {
	if msg := ctxFailure(ctx); msg != "" {
		return domain.FailedPayment(NameStripe, CodeTimeout, msg), nil
	}
	if !supports(s.SupportedCurrencies(), req.Currency) {
		return domain.FailedPayment(NameStripe, CodeUnsupportedCurrency, fmt.Sprintf("Stripe does not support %s", req.Currency)), nil
	}
	if req.Amount < stripeMinDeposit {
		return domain.FailedPayment(NameStripe, CodeMinAmount, fmt.Sprintf("Amount must be at least %d", stripeMinDeposit)), nil
	}
	if !strings.HasPrefix(req.PaymentMethodToken, "pm_") {
		return domain.FailedPayment(NameStripe, CodeInvalidToken, "Payment method must be a Stripe PaymentMethod id"), nil
	}
	if f := matchFailure(req.PaymentMethodToken, stripeDeclines); f != nil {
		return domain.FailedPayment(NameStripe, f.code, f.message), nil
	}

	return &domain.PaymentResult{
		Success:       true,
		TransactionID: "pi_" + randomHex(24),
		Amount:        req.Amount,
		Provider:      NameStripe,
		Status:        domain.PaymentStatusCompleted,
	}, nil
}

// ProcessWithdrawal creates a payout to a bank account (ba_...) or card (card_...).
func (s *Stripe) ProcessWithdrawal(ctx context.Context, req domain.WithdrawalRequest) (*domain.PayoutResult, error) {
	if msg := ctxFailure(ctx); msg != "" {
		return domain.FailedPayout(NameStripe, CodeTimeout, msg), nil
	}
	if !supports(s.SupportedCurrencies(), req.Currency) {
		return domain.FailedPayout(NameStripe, CodeUnsupportedCurrency, fmt.Sprintf("Stripe does not support %s", req.Currency)), nil
	}
	if req.Amount < stripeMinPayout {
		return domain.FailedPayout(NameStripe, CodeMinAmount, fmt.Sprintf("Payout must be at least %d", stripeMinPayout)), nil
	}
	if !strings.HasPrefix(req.DestinationToken, "ba_") && !strings.HasPrefix(req.DestinationToken, "card_") {
		return domain.FailedPayout(NameStripe, CodeInvalidDestination, "Destination must be a bank account or card id"), nil
	}
	if strings.Contains(strings.ToLower(req.DestinationToken), "fail") {
		return domain.FailedPayout(NameStripe, CodePayoutRejected, "Payout rejected by Stripe"), nil
	}

	return &domain.PayoutResult{
		Success:          true,
		PayoutID:         "po_" + randomHex(24),
		EstimatedArrival: "2-3 business days",
		Provider:         NameStripe,
		Status:           domain.PayoutStatusProcessing,
		Amount:           req.Amount,
		WithdrawalID:     req.WithdrawalID,
	}, nil
}

// VerifyWebhookSignature validates the Stripe-Signature header, including the
// timestamp tolerance.
func (s *Stripe) VerifyWebhookSignature(signature string, payload []byte) bool {
	if s.webhookSecret == "" || signature == "" {
		return false
	}
	return webhook.ValidatePayloadWithTolerance(payload, signature, s.webhookSecret, s.tolerance) == nil
}

// stripeObject holds the fields shared by payouts, intents, charges and disputes.
type stripeObject struct {
	ID             string            `json:"id"`
	Amount         int64             `json:"amount"`
	Status         string            `json:"status"`
	FailureCode    string            `json:"failure_code"`
	FailureMessage string            `json:"failure_message"`
	Metadata       map[string]string `json:"metadata"`
}

// NormalizeWebhook converts a Stripe event. Our withdrawal id travels in
// metadata.withdrawal_id; deposits carry metadata.wallet_id.
func (s *Stripe) NormalizeWebhook(payload []byte) (*domain.WebhookEvent, error) {
	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("decode stripe event: %w", err)
	}
	if event.Data == nil {
		return nil, fmt.Errorf("stripe event %s has no data", event.ID)
	}

	var obj stripeObject
	if err := json.Unmarshal(event.Data.Raw, &obj); err != nil {
		return nil, fmt.Errorf("decode stripe %s object: %w", event.Type, err)
	}

	eventType, ok := stripeEventTypes[event.Type]
	if !ok {
		eventType = domain.WebhookUnknown
	}
	// payout.updated only settles once the status is terminal.
	if event.Type == "payout.updated" {
		switch stripe.PayoutStatus(obj.Status) {
		case stripe.PayoutStatusPaid:
			eventType = domain.WebhookPayoutSuccess
		case stripe.PayoutStatusFailed:
			eventType = domain.WebhookPayoutFailed
		case stripe.PayoutStatusCanceled:
			eventType = domain.WebhookPayoutCancelled
		}
	}

	internalID := obj.Metadata["withdrawal_id"]
	if internalID == "" {
		internalID = obj.Metadata["wallet_id"]
	}

	ts := time.Now().UTC()
	if event.Created > 0 {
		ts = time.Unix(event.Created, 0).UTC()
	}

	return &domain.WebhookEvent{
		Type:         eventType,
		ExternalID:   obj.ID,
		InternalID:   internalID,
		Status:       obj.Status,
		Amount:       obj.Amount,
		ErrorCode:    obj.FailureCode,
		ErrorMessage: obj.FailureMessage,
		Timestamp:    ts,
		Provider:     NameStripe,
	}, nil
}
