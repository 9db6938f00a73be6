package domain

import (
	"strings"

	"github.com/google/uuid"
)

// MaxIdempotencyKeyLen bounds client-supplied keys, matching the column width.
const MaxIdempotencyKeyLen = 255

// ValidIdempotencyKey reports whether key is non-blank and fits the column.
func ValidIdempotencyKey(key string) bool {
	return strings.TrimSpace(key) != "" && len(key) <= MaxIdempotencyKeyLen
}

// TransferDebitKey derives the ledger key of a transfer's source entry.
func TransferDebitKey(key string) string {
	return key + "-debit"
}

// TransferCreditKey derives the ledger key of a transfer's destination entry.
func TransferCreditKey(key string) string {
	return key + "-credit"
}

// WithdrawalKey derives the ledger key of a routed withdrawal's debit.
func WithdrawalKey(withdrawalID string) string {
	return withdrawalID + "-withdrawal"
}

// RefundKey derives the ledger key of a withdrawal refund.
func RefundKey(withdrawalID string) string {
	return withdrawalID + "-refund"
}

// PayoutSuccessMarker is the processed-webhook key for a settled payout.
func PayoutSuccessMarker(withdrawalID string) string {
	return "payout_success_" + withdrawalID
}

// PayoutFailureMarker is the processed-webhook key for a refunded payout.
func PayoutFailureMarker(withdrawalID string) string {
	return "payout_failure_" + withdrawalID
}

// NewWithdrawalID generates an id for a withdrawal that the caller did not name.
func NewWithdrawalID() string {
	return uuid.NewString()
}
