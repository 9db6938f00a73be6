package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const ledgerColumnList = `id, wallet_id, entry_type, transaction_type, amount, balance_after,
		transaction_id, idempotency_key, description, created_at`

// LedgerRepo implements ports.LedgerRepository. Entries are only ever inserted.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// Create appends an entry within a database transaction. A reused idempotency
// key yields domain.ErrDuplicateIdempotencyKey.
func (r *LedgerRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (` + ledgerColumnList + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := tx.Exec(ctx, query,
		e.ID, e.WalletID, e.EntryType, e.TransactionType, e.Amount, e.BalanceAfter,
		e.TransactionID, e.IdempotencyKey, e.Description, e.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateIdempotencyKey
		}
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// GetByIdempotencyKey fetches the entry written under key, or nil.
func (r *LedgerRepo) GetByIdempotencyKey(ctx context.Context, key string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumnList + ` FROM ledger_entries WHERE idempotency_key = $1`

	e := &domain.LedgerEntry{}
	err := scanLedgerEntry(r.pool.QueryRow(ctx, query, key), e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry by key: %w", err)
	}
	return e, nil
}

// ListByTransactionID returns every entry sharing a transaction id.
func (r *LedgerRepo) ListByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumnList + ` FROM ledger_entries WHERE transaction_id = $1 ORDER BY created_at, id`

	return r.queryEntries(ctx, query, transactionID)
}

// ListByWallet fetches one page of a wallet's history, newest first.
func (r *LedgerRepo) ListByWallet(ctx context.Context, walletID uuid.UUID, page, size int) ([]domain.LedgerEntry, int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_entries WHERE wallet_id = $1`, walletID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count ledger entries: %w", err)
	}

	query := `SELECT ` + ledgerColumnList + ` FROM ledger_entries WHERE wallet_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`

	entries, err := r.queryEntries(ctx, query, walletID, size, page*size)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// SumByWallet returns credits minus debits for the wallet.
func (r *LedgerRepo) SumByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	query := `SELECT COALESCE(SUM(CASE WHEN entry_type = 'CREDIT' THEN amount ELSE -amount END), 0)
		FROM ledger_entries WHERE wallet_id = $1`

	var sum int64
	if err := r.pool.QueryRow(ctx, query, walletID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum ledger entries: %w", err)
	}
	return sum, nil
}

func (r *LedgerRepo) queryEntries(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		e := domain.LedgerEntry{}
		if err := scanLedgerEntry(rows, &e); err != nil {
			return nil, fmt.Errorf("scan ledger entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entry rows: %w", err)
	}
	return entries, nil
}

func scanLedgerEntry(row pgx.Row, e *domain.LedgerEntry) error {
	return row.Scan(
		&e.ID, &e.WalletID, &e.EntryType, &e.TransactionType, &e.Amount, &e.BalanceAfter,
		&e.TransactionID, &e.IdempotencyKey, &e.Description, &e.CreatedAt,
	)
}
