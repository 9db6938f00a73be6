package postgres

import (
	"context"
	"fmt"

	"wallet-engine/internal/core/domain"
)

// ProcessedWebhookRepo implements ports.ProcessedWebhookRepository.
// The primary key on key makes each settlement outcome apply at most once.
type ProcessedWebhookRepo struct {
	pool Pool
}

// NewProcessedWebhookRepo creates a new ProcessedWebhookRepo.
func NewProcessedWebhookRepo(pool Pool) *ProcessedWebhookRepo {
	return &ProcessedWebhookRepo{pool: pool}
}

// Exists reports whether a marker with key was recorded.
func (r *ProcessedWebhookRepo) Exists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM processed_webhooks WHERE key = $1)`, key).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check processed webhook: %w", err)
	}
	return exists, nil
}

// Insert records the marker; false means another delivery got there first.
func (r *ProcessedWebhookRepo) Insert(ctx context.Context, m *domain.ProcessedWebhook) (bool, error) {
	query := `INSERT INTO processed_webhooks (key, withdrawal_id, outcome, external_id, processed_at)
		VALUES ($1, $2, $3, $4, $5) ON CONFLICT (key) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query, m.Key, m.WithdrawalID, m.Outcome, m.ExternalID, m.ProcessedAt)
	if err != nil {
		return false, fmt.Errorf("insert processed webhook: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
