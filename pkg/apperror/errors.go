package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string            `json:"error_code"`
	Message    string            `json:"message"`
	HTTPStatus int               `json:"-"`
	Details    map[string]string `json:"details,omitempty"`
	Err        error             `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails returns a copy of the error carrying extra client-visible fields.
func (e *AppError) WithDetails(details map[string]string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet business rules (WAL) ----

func ErrWalletNotFound() *AppError {
	return New("WAL_001", "Wallet not found", http.StatusNotFound)
}

func ErrWalletNotActive(status string) *AppError {
	return New("WAL_002", fmt.Sprintf("Wallet is %s", status), http.StatusUnprocessableEntity)
}

func ErrDuplicateWallet() *AppError {
	return New("WAL_003", "Wallet already exists for this user and currency", http.StatusConflict)
}

func ErrCurrencyMismatch() *AppError {
	return New("WAL_004", "Wallets have different currencies", http.StatusUnprocessableEntity)
}

func ErrInsufficientFunds() *AppError {
	return New("WAL_005", "Insufficient balance in wallet", http.StatusConflict)
}

func ErrInvalidAmount() *AppError {
	return New("WAL_006", "Amount must be a positive number of minor units", http.StatusBadRequest)
}

func ErrSameWallet() *AppError {
	return New("WAL_007", "Cannot transfer to the same wallet", http.StatusBadRequest)
}

func ErrConcurrentUpdate() *AppError {
	return New("WAL_008", "Wallet was modified concurrently, retry the request", http.StatusConflict)
}

func ErrIdempotencyKeyReused() *AppError {
	return New("WAL_009", "Idempotency key was already used for a different request", http.StatusUnprocessableEntity)
}

// ErrNotFound is used for non-wallet resources (ledger entries, withdrawals).
func ErrNotFound(entity string) *AppError {
	return New("RES_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Access control (AUTH) ----

func ErrUnauthorizedAccess() *AppError {
	return New("AUTH_001", "Access to this wallet is denied", http.StatusForbidden)
}

func ErrUnauthenticated() *AppError {
	return New("AUTH_002", "Authentication required", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Payment providers (PRV) ----

// ErrPaymentProvider carries the provider-supplied error code in Details.
func ErrPaymentProvider(providerCode, message string) *AppError {
	return New("PRV_001", message, http.StatusBadGateway).WithDetails(map[string]string{
		"provider_code": providerCode,
	})
}

func ErrUnsupportedCurrency(currency string) *AppError {
	return New("PRV_002", fmt.Sprintf("No payment provider configured for currency %s", currency), http.StatusBadRequest)
}

func ErrUnknownProvider(name string) *AppError {
	return New("PRV_003", fmt.Sprintf("Unknown payment provider %s", name), http.StatusNotFound)
}

func ErrInvalidWebhookSignature() *AppError {
	return New("PRV_004", "Invalid webhook signature", http.StatusUnauthorized)
}

// ---- Reconciliation (REC) ----

func ErrReconciliationRunning() *AppError {
	return New("REC_001", "Reconciliation run already in progress", http.StatusConflict)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrLockTimeout(err error) *AppError {
	return Wrap("SYS_002", "Lock acquisition timeout", http.StatusServiceUnavailable, err)
}

// ---- Validation (VAL) ----

// Validation returns a VAL_001 validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrPayloadTooLarge(limit int64) *AppError {
	return New("VAL_002", fmt.Sprintf("Request body exceeds %d bytes", limit), http.StatusRequestEntityTooLarge)
}

// ValidationFields returns a VAL_001 error listing the offending fields.
func ValidationFields(fields map[string]string) *AppError {
	return Validation("Invalid request parameters").WithDetails(fields)
}
