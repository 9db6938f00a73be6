// Package provider holds the payment gateway adapters. Each one simulates the
// gateway's charge and payout calls and verifies its real webhook signature.
package provider

import (
	"context"
	"strings"

	"wallet-engine/internal/core/domain"

	"github.com/google/uuid"
)

// Provider names used in preference lists and webhook routes.
const (
	NamePayme  = "PAYME"
	NameClick  = "CLICK"
	NameStripe = "STRIPE"
)

// Error codes reported by the simulated gateways.
const (
	CodeUnsupportedCurrency = "UNSUPPORTED_CURRENCY"
	CodeMinAmount           = "MIN_AMOUNT"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodeInvalidDestination  = "INVALID_DESTINATION"
	CodeCardDeclined        = "CARD_DECLINED"
	CodeExpiredCard         = "EXPIRED_CARD"
	CodeFraudSuspected      = "FRAUD_SUSPECTED"
	CodePaymentRejected     = "PAYMENT_REJECTED"
	CodeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	CodePayoutRejected      = "PAYOUT_REJECTED"
	CodeTimeout             = "TIMEOUT"
)

// randomHex returns n lowercase hex characters (n <= 32).
func randomHex(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

// tokenFailure maps magic substrings in a test token to a gateway decline.
type tokenFailure struct {
	marker  string
	code    string
	message string
}

func matchFailure(token string, rules []tokenFailure) *tokenFailure {
	lower := strings.ToLower(token)
	for i := range rules {
		if strings.Contains(lower, rules[i].marker) {
			return &rules[i]
		}
	}
	return nil
}

func supports(currencies []domain.Currency, c domain.Currency) bool {
	for _, s := range currencies {
		if s == c {
			return true
		}
	}
	return false
}

// ctxFailure reports a cancelled or expired context as a gateway timeout.
func ctxFailure(ctx context.Context) string {
	if err := ctx.Err(); err != nil {
		return err.Error()
	}
	return ""
}
