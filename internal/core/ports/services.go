package ports

import (
	"context"
	"time"

	"wallet-engine/internal/core/domain"

	"github.com/google/uuid"
)

// SignatureService handles HMAC-SHA256 signing and verification.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
}

// TokenService validates identity tokens issued by the authentication service.
type TokenService interface {
	Generate(identity *domain.Identity) (string, time.Time, error)
	Validate(tokenString string) (*domain.Identity, error)
}

// IdempotencyCache is the Redis-layer idempotency check (fast path).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached value or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// WebhookGuard rejects provider callbacks delivered more than once in a window.
type WebhookGuard interface {
	// FirstSeen atomically records the delivery. Returns false if it was already seen.
	FirstSeen(ctx context.Context, provider string, deliveryID string, ttl time.Duration) (bool, error)
	// Forget drops a recorded delivery so a redelivery is processed again.
	Forget(ctx context.Context, provider string, deliveryID string) error
}

// AuditService records audit entries without blocking the caller.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// --- Service Ports (Business Logic) ---

// TransactionEngine performs atomic, idempotent balance mutations.
type TransactionEngine interface {
	CreateWallet(ctx context.Context, userID uuid.UUID, currency domain.Currency) (*domain.Wallet, error)
	GetWallet(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	ListWalletsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Wallet, error)
	Deposit(ctx context.Context, cmd MutationCommand) (*domain.LedgerEntry, error)
	Withdraw(ctx context.Context, cmd MutationCommand) (*domain.LedgerEntry, error)
	// Refund credits a wallet like Deposit but records the entry as a REFUND.
	Refund(ctx context.Context, cmd MutationCommand) (*domain.LedgerEntry, error)
	Transfer(ctx context.Context, cmd TransferCommand) (*domain.TransferResult, error)
	// FindEntry returns the entry stored under an idempotency key, or nil.
	FindEntry(ctx context.Context, key string) (*domain.LedgerEntry, error)
	GetTransactionHistory(ctx context.Context, walletID uuid.UUID, page, size int) (*LedgerPage, error)
	ReconcileBalance(ctx context.Context, walletID uuid.UUID) (*domain.BalanceCheck, error)
	Freeze(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error)
	Unfreeze(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error)
}

// MutationCommand is the input of single-wallet balance operations.
type MutationCommand struct {
	WalletID       uuid.UUID
	Amount         int64
	IdempotencyKey string
	Description    string
}

// TransferCommand is the input of a wallet-to-wallet transfer.
type TransferCommand struct {
	FromWalletID   uuid.UUID
	ToWalletID     uuid.UUID
	Amount         int64
	IdempotencyKey string
	Description    string
}

// LedgerPage is one page of a wallet's history, newest first.
type LedgerPage struct {
	Entries    []domain.LedgerEntry
	Page       int
	Size       int
	Total      int64
	TotalPages int
}

// PaymentRouter moves money through external providers with fallback.
type PaymentRouter interface {
	RouteDeposit(ctx context.Context, req domain.DepositRequest) (*domain.PaymentResult, error)
	RouteWithdrawal(ctx context.Context, req domain.WithdrawalRequest) (*domain.PayoutResult, error)
	SelectProvider(currency domain.Currency) (PaymentProvider, error)
	AlternativeProvider(currency domain.Currency, exclude string) PaymentProvider
	Provider(name string) (PaymentProvider, error)
	Providers() []PaymentProvider
	ProvidersForCurrency(currency domain.Currency) []PaymentProvider
	IsCurrencySupported(currency domain.Currency) bool
}

// SettlementHandler finalizes or refunds reserved withdrawals.
type SettlementHandler interface {
	HandleEvent(ctx context.Context, event *domain.WebhookEvent) error
	HandlePayoutSuccess(ctx context.Context, withdrawalID, externalID string) error
	HandlePayoutFailure(ctx context.Context, withdrawalID, reason string) error
	HandlePayoutCancelled(ctx context.Context, withdrawalID, reason string) error
	HandlePayoutProcessing(ctx context.Context, withdrawalID string) error
}

// Reconciler compares stored balances with ledger sums.
type Reconciler interface {
	RunManual(ctx context.Context) (*domain.ReconciliationReport, error)
	RunScheduled()
	ListAudits(ctx context.Context, status *domain.AuditStatus, page, size int) ([]domain.ReconciliationAudit, int64, error)
}

// WalletEvent describes a committed ledger entry for downstream collaborators.
type WalletEvent struct {
	Wallet       *domain.Wallet
	Entry        *domain.LedgerEntry
	Counterparty *uuid.UUID
	// RecipientEmail is the owner's address when the caller is the owner.
	RecipientEmail string
}

// LedgerReplicator forwards committed entries to the ledger service. Best-effort.
type LedgerReplicator interface {
	Replicate(event WalletEvent)
}

// Notifier tells the notification service about balance changes. Best-effort.
type Notifier interface {
	Notify(event WalletEvent)
}
