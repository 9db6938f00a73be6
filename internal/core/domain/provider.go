package domain

import "github.com/google/uuid"

// ProviderRouter is the provider name used on results produced by routing itself.
const ProviderRouter = "ROUTER"

// Provider-neutral error codes set on failed results.
const (
	CodeCurrencyMismatch   = "CURRENCY_MISMATCH"
	CodeInsufficientFunds  = "INSUFFICIENT_FUNDS"
	CodeProviderError      = "PROVIDER_ERROR"
	CodeNoProvider         = "NO_PROVIDER"
	CodeAllProvidersFail   = "ALL_PROVIDERS_FAILED"
	CodeWalletNotActive    = "WALLET_NOT_ACTIVE"
	CodeWithdrawalRefunded = "WITHDRAWAL_REFUNDED"
)

// PaymentStatus is the outcome of a deposit at a provider.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// PayoutStatus is the outcome of a withdrawal submission at a provider.
type PayoutStatus string

const (
	PayoutStatusProcessing PayoutStatus = "PROCESSING"
	PayoutStatusPending    PayoutStatus = "PENDING"
	PayoutStatusFailed     PayoutStatus = "FAILED"
)

// DepositRequest asks a provider to charge a payment method into a wallet.
type DepositRequest struct {
	WalletID           uuid.UUID `json:"wallet_id"`
	Amount             int64     `json:"amount"`
	Currency           Currency  `json:"currency"`
	PaymentMethodToken string    `json:"payment_method_token"`
	Description        string    `json:"description"`
	IdempotencyKey     string    `json:"idempotency_key"`
	UserID             uuid.UUID `json:"user_id"`
}

// WithdrawalRequest asks a provider to pay out from a wallet.
type WithdrawalRequest struct {
	WalletID         uuid.UUID `json:"wallet_id"`
	Amount           int64     `json:"amount"`
	Currency         Currency  `json:"currency"`
	DestinationToken string    `json:"destination_token"`
	Description      string    `json:"description"`
	IdempotencyKey   string    `json:"idempotency_key"`
	UserID           uuid.UUID `json:"user_id"`
	WithdrawalID     string    `json:"withdrawal_id"`
}

// PaymentResult is a provider's answer to a deposit.
type PaymentResult struct {
	Success       bool          `json:"success"`
	TransactionID string        `json:"transaction_id,omitempty"`
	Amount        int64         `json:"amount"`
	ErrorCode     string        `json:"error_code,omitempty"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	Provider      string        `json:"provider"`
	Status        PaymentStatus `json:"status"`
}

// FailedPayment builds an unsuccessful PaymentResult.
func FailedPayment(provider, code, message string) *PaymentResult {
	return &PaymentResult{
		Provider:     provider,
		ErrorCode:    code,
		ErrorMessage: message,
		Status:       PaymentStatusFailed,
	}
}

// PayoutResult is a provider's answer to a withdrawal.
type PayoutResult struct {
	Success          bool         `json:"success"`
	PayoutID         string       `json:"payout_id,omitempty"`
	EstimatedArrival string       `json:"estimated_arrival,omitempty"`
	ErrorCode        string       `json:"error_code,omitempty"`
	ErrorMessage     string       `json:"error_message,omitempty"`
	Provider         string       `json:"provider"`
	Status           PayoutStatus `json:"status"`
	Amount           int64        `json:"amount"`
	WithdrawalID     string       `json:"withdrawal_id,omitempty"`
}

// FailedPayout builds an unsuccessful PayoutResult.
func FailedPayout(provider, code, message string) *PayoutResult {
	return &PayoutResult{
		Provider:     provider,
		ErrorCode:    code,
		ErrorMessage: message,
		Status:       PayoutStatusFailed,
	}
}
