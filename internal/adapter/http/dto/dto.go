package dto

import (
	"time"

	"wallet-engine/internal/core/domain"
	"wallet-engine/internal/core/ports"
)

// CreateWalletRequest is the request body for POST /wallets.
type CreateWalletRequest struct {
	UserID   string `json:"userId" binding:"required,uuid"`
	Currency string `json:"currency" binding:"required,currency"`
}

// CreateWalletForMeRequest is the request body for POST /wallets/me.
type CreateWalletForMeRequest struct {
	Currency string `json:"currency" binding:"required,currency"`
}

// MutationRequest is the request body for deposit and withdraw.
type MutationRequest struct {
	AmountMinorUnits int64  `json:"amountMinorUnits" binding:"required,gt=0"`
	IdempotencyKey   string `json:"idempotencyKey" binding:"required,idem_key"`
	Description      string `json:"description" binding:"max=255"`
}

// TransferRequest is the request body for POST /wallets/transfer.
type TransferRequest struct {
	FromWalletID     string `json:"fromWalletId" binding:"required,uuid"`
	ToWalletID       string `json:"toWalletId" binding:"required,uuid"`
	AmountMinorUnits int64  `json:"amountMinorUnits" binding:"required,gt=0"`
	IdempotencyKey   string `json:"idempotencyKey" binding:"required,idem_key"`
	Description      string `json:"description" binding:"max=255"`
}

// RoutedDepositRequest is the request body for POST /payments/deposit.
type RoutedDepositRequest struct {
	WalletID           string `json:"walletId" binding:"required,uuid"`
	AmountMinorUnits   int64  `json:"amountMinorUnits" binding:"required,gt=0"`
	Currency           string `json:"currency" binding:"required,currency"`
	PaymentMethodToken string `json:"paymentMethodToken" binding:"required,max=255"`
	IdempotencyKey     string `json:"idempotencyKey" binding:"omitempty,idem_key"`
	Description        string `json:"description" binding:"max=255"`
}

// RoutedWithdrawalRequest is the request body for POST /payments/withdrawal.
type RoutedWithdrawalRequest struct {
	WalletID         string `json:"walletId" binding:"required,uuid"`
	AmountMinorUnits int64  `json:"amountMinorUnits" binding:"required,gt=0"`
	Currency         string `json:"currency" binding:"required,currency"`
	DestinationToken string `json:"destinationToken" binding:"required,max=255"`
	IdempotencyKey   string `json:"idempotencyKey" binding:"omitempty,idem_key"`
	Description      string `json:"description" binding:"max=255"`
}

// MockDepositRequest drives a simulated provider deposit.
type MockDepositRequest struct {
	WalletID         string `json:"walletId" binding:"required,uuid"`
	AmountMinorUnits int64  `json:"amountMinorUnits" binding:"required,gt=0"`
	Token            string `json:"token"`
	IdempotencyKey   string `json:"idempotencyKey" binding:"omitempty,idem_key"`
}

// MockWebhookRequest drives a simulated payout callback.
type MockWebhookRequest struct {
	WithdrawalID string `json:"withdrawalId" binding:"required,idem_key"`
	Status       string `json:"status" binding:"omitempty,oneof=SUCCESS FAILED PROCESSING CANCELLED"`
	ErrorMessage string `json:"errorMessage" binding:"max=255"`
}

// WalletResponse is the public view of a wallet.
type WalletResponse struct {
	ID                string `json:"id"`
	UserID            string `json:"userId"`
	Currency          string `json:"currency"`
	BalanceMinorUnits int64  `json:"balanceMinorUnits"`
	Status            string `json:"status"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

// TransactionResponse is the result of a single-wallet mutation.
type TransactionResponse struct {
	TransactionID          string `json:"transactionId"`
	WalletID               string `json:"walletId"`
	Type                   string `json:"type"`
	TransactionType        string `json:"transactionType"`
	AmountMinorUnits       int64  `json:"amountMinorUnits"`
	BalanceAfterMinorUnits int64  `json:"balanceAfterMinorUnits"`
	IdempotencyKey         string `json:"idempotencyKey"`
}

// TransferResponse is the result of a transfer.
type TransferResponse struct {
	TransactionID    string `json:"transactionId"`
	FromWalletID     string `json:"fromWalletId"`
	ToWalletID       string `json:"toWalletId"`
	AmountMinorUnits int64  `json:"amountMinorUnits"`
	Status           string `json:"status"`
}

// LedgerEntryResponse is one history item.
type LedgerEntryResponse struct {
	ID                     string `json:"id"`
	TransactionID          string `json:"transactionId"`
	EntryType              string `json:"entryType"`
	TransactionType        string `json:"transactionType"`
	AmountMinorUnits       int64  `json:"amountMinorUnits"`
	BalanceAfterMinorUnits int64  `json:"balanceAfterMinorUnits"`
	Description            string `json:"description"`
	CreatedAt              string `json:"createdAt"`
}

// HistoryResponse wraps a page of ledger entries.
type HistoryResponse struct {
	Items      []LedgerEntryResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// ProviderResponse describes a registered payment provider.
type ProviderResponse struct {
	Name       string   `json:"name"`
	Currencies []string `json:"currencies"`
}

// AuditListResponse wraps a page of reconciliation audit records.
type AuditListResponse struct {
	Items    []domain.ReconciliationAudit `json:"items"`
	Total    int64                        `json:"total"`
	Page     int                          `json:"page"`
	PageSize int                          `json:"page_size"`
}

// NewWalletResponse converts a wallet to its public view.
func NewWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		ID:                w.ID.String(),
		UserID:            w.UserID.String(),
		Currency:          string(w.Currency),
		BalanceMinorUnits: w.Balance,
		Status:            string(w.Status),
		CreatedAt:         w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         w.UpdatedAt.Format(time.RFC3339),
	}
}

// NewWalletListResponse converts a list of wallets.
func NewWalletListResponse(ws []domain.Wallet) []WalletResponse {
	out := make([]WalletResponse, 0, len(ws))
	for i := range ws {
		out = append(out, NewWalletResponse(&ws[i]))
	}
	return out
}

// NewTransactionResponse converts a ledger entry to a mutation result.
func NewTransactionResponse(e *domain.LedgerEntry) TransactionResponse {
	return TransactionResponse{
		TransactionID:          e.TransactionID.String(),
		WalletID:               e.WalletID.String(),
		Type:                   string(e.EntryType),
		TransactionType:        string(e.TransactionType),
		AmountMinorUnits:       e.Amount,
		BalanceAfterMinorUnits: e.BalanceAfter,
		IdempotencyKey:         e.IdempotencyKey,
	}
}

// NewTransferResponse converts a transfer result.
func NewTransferResponse(r *domain.TransferResult) TransferResponse {
	return TransferResponse{
		TransactionID:    r.TransactionID.String(),
		FromWalletID:     r.FromWalletID.String(),
		ToWalletID:       r.ToWalletID.String(),
		AmountMinorUnits: r.Amount,
		Status:           "COMPLETED",
	}
}

// NewHistoryResponse converts a ledger page.
func NewHistoryResponse(p *ports.LedgerPage) HistoryResponse {
	items := make([]LedgerEntryResponse, 0, len(p.Entries))
	for _, e := range p.Entries {
		items = append(items, LedgerEntryResponse{
			ID:                     e.ID.String(),
			TransactionID:          e.TransactionID.String(),
			EntryType:              string(e.EntryType),
			TransactionType:        string(e.TransactionType),
			AmountMinorUnits:       e.Amount,
			BalanceAfterMinorUnits: e.BalanceAfter,
			Description:            e.Description,
			CreatedAt:              e.CreatedAt.Format(time.RFC3339),
		})
	}
	return HistoryResponse{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   p.Size,
		TotalPages: p.TotalPages,
	}
}

// NewProviderList converts registered providers.
func NewProviderList(providers []ports.PaymentProvider) []ProviderResponse {
	out := make([]ProviderResponse, 0, len(providers))
	for _, p := range providers {
		currencies := make([]string, 0, len(p.SupportedCurrencies()))
		for _, c := range p.SupportedCurrencies() {
			currencies = append(currencies, string(c))
		}
		out = append(out, ProviderResponse{Name: p.Name(), Currencies: currencies})
	}
	return out
}
