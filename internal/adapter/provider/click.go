package provider

import (
	"context"
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wallet-engine/internal/core/domain"
)

const (
	clickMinDeposit = 100
	clickMinPayout  = 100000
)

// Click action codes carried in callbacks.
const (
	clickActionPrepare          = 0
	clickActionComplete         = 1
	clickActionPayout           = 2
	clickActionPayoutProcessing = 3
)

// clickErrorCancelled is the error code Click uses for a cancelled operation.
const clickErrorCancelled = -9

var clickDeclines = []tokenFailure{
	{"fail", CodePaymentRejected, "Payment rejected by Click"},
	{"insufficient", CodeInsufficientFunds, "Insufficient funds on card"},
}

// Click implements ports.PaymentProvider for the Click gateway (UZS).
type Click struct {
	secretKey string
}

// NewClick creates a Click adapter.
func NewClick(secretKey string) *Click {
	return &Click{secretKey: secretKey}
}

func (c *Click) Name() string { return NameClick }

func (c *Click) SupportedCurrencies() []domain.Currency {
	return []domain.Currency{domain.CurrencyUZS}
}

func (c *Click) SignatureHeader() string { return "X-Click-Signature" }

func (c *Click) ProcessDeposit(ctx context.Context, req domain.DepositRequest) (*domain.PaymentResult, error) {
	if msg := ctxFailure(ctx); msg != "" {
		return domain.FailedPayment(NameClick, CodeTimeout, msg), nil
	}
	if !supports(c.SupportedCurrencies(), req.Currency) {
		return domain.FailedPayment(NameClick, CodeUnsupportedCurrency, fmt.Sprintf("Click does not support %s", req.Currency)), nil
	}
	if req.Amount < clickMinDeposit {
		return domain.FailedPayment(NameClick, CodeMinAmount, fmt.Sprintf("Minimum deposit is %d", clickMinDeposit)), nil
	}
	if strings.TrimSpace(req.PaymentMethodToken) == "" {
		return domain.FailedPayment(NameClick, CodeInvalidToken, "Payment method token is required"), nil
	}
	if f := matchFailure(req.PaymentMethodToken, clickDeclines); f != nil {
		return domain.FailedPayment(NameClick, f.code, f.message), nil
	}

	return &domain.PaymentResult{
		Success:       true,
		TransactionID: "click_" + randomHex(8),
		Amount:        req.Amount,
		Provider:      NameClick,
		Status:        domain.PaymentStatusCompleted,
	}, nil
}

func (c *Click) ProcessWithdrawal(ctx context.Context, req domain.WithdrawalRequest) (*domain.PayoutResult, error) {
	if msg := ctxFailure(ctx); msg != "" {
		return domain.FailedPayout(NameClick, CodeTimeout, msg), nil
	}
	if !supports(c.SupportedCurrencies(), req.Currency) {
		return domain.FailedPayout(NameClick, CodeUnsupportedCurrency, fmt.Sprintf("Click does not support %s", req.Currency)), nil
	}
	if req.Amount < clickMinPayout {
		return domain.FailedPayout(NameClick, CodeMinAmount, fmt.Sprintf("Minimum payout is %d", clickMinPayout)), nil
	}
	if strings.TrimSpace(req.DestinationToken) == "" {
		return domain.FailedPayout(NameClick, CodeInvalidDestination, "Destination card is required"), nil
	}
	if strings.Contains(strings.ToLower(req.DestinationToken), "fail") {
		return domain.FailedPayout(NameClick, CodePayoutRejected, "Payout rejected by Click"), nil
	}

	return &domain.PayoutResult{
		Success:          true,
		PayoutID:         "click_payout_" + randomHex(8),
		EstimatedArrival: "1-3 business days",
		Provider:         NameClick,
		Status:           domain.PayoutStatusProcessing,
		Amount:           req.Amount,
		WithdrawalID:     req.WithdrawalID,
	}, nil
}

// VerifyWebhookSignature checks hex MD5(payload + secret), ignoring case.
func (c *Click) VerifyWebhookSignature(signature string, payload []byte) bool {
	if c.secretKey == "" || signature == "" {
		return false
	}
	expected := SignClick(c.secretKey, payload)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(signature))) == 1
}

// SignClick computes the signature Click sends in X-Click-Signature.
func SignClick(secretKey string, payload []byte) string {
	sum := md5.Sum(append(append([]byte{}, payload...), secretKey...))
	return hex.EncodeToString(sum[:])
}

type clickWebhook struct {
	ClickTransID    json.Number `json:"click_trans_id"`
	MerchantTransID string      `json:"merchant_trans_id"`
	Action          int         `json:"action"`
	Error           int         `json:"error"`
	ErrorNote       string      `json:"error_note"`
	Amount          int64       `json:"amount"`
	SignTime        string      `json:"sign_time"`
}

// NormalizeWebhook converts a Click callback. merchant_trans_id carries our
// withdrawal id for payouts and the wallet id for deposits.
func (c *Click) NormalizeWebhook(payload []byte) (*domain.WebhookEvent, error) {
	var wh clickWebhook
	if err := json.Unmarshal(payload, &wh); err != nil {
		return nil, fmt.Errorf("decode click webhook: %w", err)
	}

	event := &domain.WebhookEvent{
		Type:       clickEventType(wh.Action, wh.Error),
		ExternalID: wh.ClickTransID.String(),
		InternalID: wh.MerchantTransID,
		Status:     strconv.Itoa(wh.Error),
		Amount:     wh.Amount,
		Timestamp:  time.Now().UTC(),
		Provider:   NameClick,
	}
	if wh.Error != 0 {
		event.ErrorCode = strconv.Itoa(wh.Error)
		event.ErrorMessage = wh.ErrorNote
	}
	if ts, err := time.Parse("2006-01-02 15:04:05", wh.SignTime); err == nil {
		event.Timestamp = ts.UTC()
	}
	return event, nil
}

func clickEventType(action, code int) domain.WebhookEventType {
	switch action {
	case clickActionPrepare:
		if code != 0 {
			return domain.WebhookPaymentFailed
		}
		return domain.WebhookPaymentPending
	case clickActionComplete:
		if code != 0 {
			return domain.WebhookPaymentFailed
		}
		return domain.WebhookPaymentSuccess
	case clickActionPayout:
		switch {
		case code == 0:
			return domain.WebhookPayoutSuccess
		case code == clickErrorCancelled:
			return domain.WebhookPayoutCancelled
		default:
			return domain.WebhookPayoutFailed
		}
	case clickActionPayoutProcessing:
		return domain.WebhookPayoutProcessing
	}
	return domain.WebhookUnknown
}
