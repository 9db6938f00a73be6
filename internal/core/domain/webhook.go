package domain

import (
	"time"
)

// WebhookEventType is the provider-neutral classification of a callback.
type WebhookEventType string

const (
	WebhookPaymentSuccess   WebhookEventType = "PAYMENT_SUCCESS"
	WebhookPaymentFailed    WebhookEventType = "PAYMENT_FAILED"
	WebhookPaymentPending   WebhookEventType = "PAYMENT_PENDING"
	WebhookPayoutSuccess    WebhookEventType = "PAYOUT_SUCCESS"
	WebhookPayoutFailed     WebhookEventType = "PAYOUT_FAILED"
	WebhookPayoutProcessing WebhookEventType = "PAYOUT_PROCESSING"
	WebhookPayoutCancelled  WebhookEventType = "PAYOUT_CANCELLED"
	WebhookRefundSuccess    WebhookEventType = "REFUND_SUCCESS"
	WebhookRefundFailed     WebhookEventType = "REFUND_FAILED"
	WebhookChargeback       WebhookEventType = "CHARGEBACK"
	WebhookDisputeOpened    WebhookEventType = "DISPUTE_OPENED"
	WebhookDisputeClosed    WebhookEventType = "DISPUTE_CLOSED"
	WebhookUnknown          WebhookEventType = "UNKNOWN"
)

// IsPayout returns true for events the settlement handler acts on.
func (t WebhookEventType) IsPayout() bool {
	switch t {
	case WebhookPayoutSuccess, WebhookPayoutFailed, WebhookPayoutProcessing, WebhookPayoutCancelled:
		return true
	}
	return false
}

// WebhookEvent is a provider callback normalized to a common shape.
type WebhookEvent struct {
	Type         WebhookEventType `json:"type"`
	ExternalID   string           `json:"external_id"`
	InternalID   string           `json:"internal_id"` // withdrawal id for payouts
	Status       string           `json:"status"`
	Amount       int64            `json:"amount"`
	ErrorCode    string           `json:"error_code,omitempty"`
	ErrorMessage string           `json:"error_message,omitempty"`
	Timestamp    time.Time        `json:"timestamp"`
	Provider     string           `json:"provider"`
}

// ProcessedWebhook marks a settlement outcome as applied. Its key is unique.
type ProcessedWebhook struct {
	Key          string    `json:"key"`
	WithdrawalID string    `json:"withdrawal_id"`
	Outcome      string    `json:"outcome"` // SUCCESS or FAILURE
	ExternalID   string    `json:"external_id,omitempty"`
	ProcessedAt  time.Time `json:"processed_at"`
}

const (
	SettlementOutcomeSuccess = "SUCCESS"
	SettlementOutcomeFailure = "FAILURE"
)
