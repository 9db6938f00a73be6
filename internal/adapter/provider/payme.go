package provider

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"wallet-engine/internal/core/domain"
)

const (
	paymeMinDeposit = 100
	paymeMinPayout  = 100000
)

var paymeDeclines = []tokenFailure{
	{"fail", CodeCardDeclined, "Card was declined by issuer"},
	{"expired", CodeExpiredCard, "Card has expired"},
	{"fraud", CodeFraudSuspected, "Transaction flagged by fraud screening"},
}

// Payme implements ports.PaymentProvider for the Payme gateway (UZS).
type Payme struct {
	secretKey string
}

// NewPayme creates a Payme adapter. secretKey signs webhooks.
func NewPayme(secretKey string) *Payme {
	return &Payme{secretKey: secretKey}
}

func (p *Payme) Name() string { return NamePayme }

func (p *Payme) SupportedCurrencies() []domain.Currency {
	return []domain.Currency{domain.CurrencyUZS}
}

func (p *Payme) SignatureHeader() string { return "X-Signature" }

// ProcessDeposit charges a card token. Tokens containing "pending" are accepted
// but left PENDING until a PerformTransaction callback arrives.
func (p *Payme) ProcessDeposit(ctx context.Context, req domain.DepositRequest) (*domain.PaymentResult, error) {
	if msg := ctxFailure(ctx); msg != "" {
		return domain.FailedPayment(NamePayme, CodeTimeout, msg), nil
	}
	if !supports(p.SupportedCurrencies(), req.Currency) {
		return domain.FailedPayment(NamePayme, CodeUnsupportedCurrency, fmt.Sprintf("Payme does not support %s", req.Currency)), nil
	}
	if req.Amount < paymeMinDeposit {
		return domain.FailedPayment(NamePayme, CodeMinAmount, fmt.Sprintf("Minimum deposit is %d", paymeMinDeposit)), nil
	}
	if strings.TrimSpace(req.PaymentMethodToken) == "" {
		return domain.FailedPayment(NamePayme, CodeInvalidToken, "Payment method token is required"), nil
	}
	if f := matchFailure(req.PaymentMethodToken, paymeDeclines); f != nil {
		return domain.FailedPayment(NamePayme, f.code, f.message), nil
	}

	status := domain.PaymentStatusCompleted
	if strings.Contains(strings.ToLower(req.PaymentMethodToken), "pending") {
		status = domain.PaymentStatusPending
	}
	return &domain.PaymentResult{
		Success:       true,
		TransactionID: "payme_" + randomHex(8),
		Amount:        req.Amount,
		Provider:      NamePayme,
		Status:        status,
	}, nil
}

// ProcessWithdrawal submits a payout to a card. Destinations containing
// "fail" are rejected.
func (p *Payme) ProcessWithdrawal(ctx context.Context, req domain.WithdrawalRequest) (*domain.PayoutResult, error) {
	if msg := ctxFailure(ctx); msg != "" {
		return domain.FailedPayout(NamePayme, CodeTimeout, msg), nil
	}
	if !supports(p.SupportedCurrencies(), req.Currency) {
		return domain.FailedPayout(NamePayme, CodeUnsupportedCurrency, fmt.Sprintf("Payme does not support %s", req.Currency)), nil
	}
	if req.Amount < paymeMinPayout {
		return domain.FailedPayout(NamePayme, CodeMinAmount, fmt.Sprintf("Minimum payout is %d", paymeMinPayout)), nil
	}
	if strings.TrimSpace(req.DestinationToken) == "" {
		return domain.FailedPayout(NamePayme, CodeInvalidDestination, "Destination card is required"), nil
	}
	if strings.Contains(strings.ToLower(req.DestinationToken), "fail") {
		return domain.FailedPayout(NamePayme, CodePayoutRejected, "Payout rejected by Payme"), nil
	}

	return &domain.PayoutResult{
		Success:          true,
		PayoutID:         "payme_payout_" + randomHex(8),
		EstimatedArrival: "1-2 business days",
		Provider:         NamePayme,
		Status:           domain.PayoutStatusProcessing,
		Amount:           req.Amount,
		WithdrawalID:     req.WithdrawalID,
	}, nil
}

// VerifyWebhookSignature checks a Base64 HMAC-SHA256 of the raw body.
func (p *Payme) VerifyWebhookSignature(signature string, payload []byte) bool {
	if p.secretKey == "" || signature == "" {
		return false
	}
	return hmac.Equal([]byte(signature), []byte(SignPayme(p.secretKey, payload)))
}

// SignPayme computes the signature Payme sends in X-Signature.
func SignPayme(secretKey string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

type paymeWebhook struct {
	Method string `json:"method"`
	Params struct {
		ID      string `json:"id"`
		Amount  int64  `json:"amount"`
		Time    int64  `json:"time"` // unix millis
		Reason  string `json:"reason"`
		Account struct {
			WithdrawalID string `json:"withdrawal_id"`
			WalletID     string `json:"wallet_id"`
		} `json:"account"`
	} `json:"params"`
}

var paymeMethods = map[string]domain.WebhookEventType{
	"PerformTransaction": domain.WebhookPaymentSuccess,
	"CancelTransaction":  domain.WebhookPaymentFailed,
	"PayoutCompleted":    domain.WebhookPayoutSuccess,
	"PayoutFailed":       domain.WebhookPayoutFailed,
	"PayoutCancelled":    domain.WebhookPayoutCancelled,
	"PayoutProcessing":   domain.WebhookPayoutProcessing,
}

// NormalizeWebhook converts a Payme JSON-RPC style callback.
func (p *Payme) NormalizeWebhook(payload []byte) (*domain.WebhookEvent, error) {
	var wh paymeWebhook
	if err := json.Unmarshal(payload, &wh); err != nil {
		return nil, fmt.Errorf("decode payme webhook: %w", err)
	}

	eventType, ok := paymeMethods[wh.Method]
	if !ok {
		eventType = domain.WebhookUnknown
	}

	internalID := wh.Params.Account.WithdrawalID
	if internalID == "" {
		internalID = wh.Params.Account.WalletID
	}

	ts := time.Now().UTC()
	if wh.Params.Time > 0 {
		ts = time.UnixMilli(wh.Params.Time).UTC()
	}

	return &domain.WebhookEvent{
		Type:         eventType,
		ExternalID:   wh.Params.ID,
		InternalID:   internalID,
		Status:       wh.Method,
		Amount:       wh.Params.Amount,
		ErrorMessage: wh.Params.Reason,
		Timestamp:    ts,
		Provider:     NamePayme,
	}, nil
}
