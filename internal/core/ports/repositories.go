package ports

import (
	"context"

	"wallet-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx are used inside transaction blocks for pessimistic locking.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByUserAndCurrency(ctx context.Context, userID uuid.UUID, currency domain.Currency) (*domain.Wallet, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Wallet, error)
	// ListIDs returns up to limit wallet ids greater than afterID, ascending.
	ListIDs(ctx context.Context, afterID uuid.UUID, limit int) ([]uuid.UUID, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	// Update persists balance and status if the stored version still equals
	// wallet.Version, then increments wallet.Version.
	Update(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error
}

// LedgerRepository defines persistence for the append-only ledger.
type LedgerRepository interface {
	Create(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.LedgerEntry, error)
	ListByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]domain.LedgerEntry, error)
	// ListByWallet returns one page of entries, newest first, plus the total count.
	ListByWallet(ctx context.Context, walletID uuid.UUID, page, size int) ([]domain.LedgerEntry, int64, error)
	// SumByWallet returns credits minus debits for the wallet.
	SumByWallet(ctx context.Context, walletID uuid.UUID) (int64, error)
}

// ReconciliationRepository persists mismatch records produced by the auditor.
type ReconciliationRepository interface {
	Create(ctx context.Context, audit *domain.ReconciliationAudit) error
	List(ctx context.Context, status *domain.AuditStatus, page, size int) ([]domain.ReconciliationAudit, int64, error)
}

// ProcessedWebhookRepository stores durable settlement markers.
type ProcessedWebhookRepository interface {
	Exists(ctx context.Context, key string) (bool, error)
	// Insert records the marker. It returns false if the key already existed.
	Insert(ctx context.Context, marker *domain.ProcessedWebhook) (bool, error)
}

// AuditRepository defines persistence for request audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
