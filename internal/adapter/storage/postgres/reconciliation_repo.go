package postgres

import (
	"context"
	"fmt"

	"wallet-engine/internal/core/domain"
)

// ReconciliationRepo implements ports.ReconciliationRepository.
type ReconciliationRepo struct {
	pool Pool
}

// NewReconciliationRepo creates a new ReconciliationRepo.
func NewReconciliationRepo(pool Pool) *ReconciliationRepo {
	return &ReconciliationRepo{pool: pool}
}

// Create inserts a mismatch record.
func (r *ReconciliationRepo) Create(ctx context.Context, a *domain.ReconciliationAudit) error {
	query := `INSERT INTO reconciliation_audits
		(id, wallet_id, wallet_balance, ledger_balance, difference, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.WalletID, a.WalletBalance, a.LedgerBalance,
		a.Difference, a.Status, a.Notes, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reconciliation audit: %w", err)
	}
	return nil
}

// List returns audit records newest first, optionally filtered by status.
func (r *ReconciliationRepo) List(ctx context.Context, status *domain.AuditStatus, page, size int) ([]domain.ReconciliationAudit, int64, error) {
	where := ""
	args := []any{}
	if status != nil {
		where = "WHERE status = $1"
		args = append(args, *status)
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM reconciliation_audits %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reconciliation audits: %w", err)
	}

	dataQuery := fmt.Sprintf(`SELECT id, wallet_id, wallet_balance, ledger_balance, difference, status, notes, created_at
		FROM reconciliation_audits %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, size, page*size)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reconciliation audits: %w", err)
	}
	defer rows.Close()

	audits := []domain.ReconciliationAudit{}
	for rows.Next() {
		a := domain.ReconciliationAudit{}
		if err := rows.Scan(
			&a.ID, &a.WalletID, &a.WalletBalance, &a.LedgerBalance,
			&a.Difference, &a.Status, &a.Notes, &a.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan reconciliation audit row: %w", err)
		}
		audits = append(audits, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reconciliation audit rows: %w", err)
	}
	return audits, total, nil
}
