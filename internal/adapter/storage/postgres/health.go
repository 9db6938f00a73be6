package postgres

import (
	"context"
	"fmt"
	"time"
)

const healthTimeout = 2 * time.Second

// ledgerTables must exist before the service can take writes.
var ledgerTables = []string{"wallets", "ledger_entries", "processed_webhooks"}

// HealthCheck reports PostgreSQL as healthy once it answers and the ledger
// schema has been migrated.
type HealthCheck struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	if err := h.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}

	var missing []string
	err := h.pool.QueryRow(ctx,
		`SELECT COALESCE(array_agg(t), '{}') FROM unnest($1::text[]) AS t WHERE to_regclass('public.' || t) IS NULL`,
		ledgerTables,
	).Scan(&missing)
	if err != nil {
		return fmt.Errorf("postgres schema check: %w", err)
	}
	if len(missing) > 0 {
		return fmt.Errorf("postgres schema not migrated, missing %v", missing)
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "postgresql"
}
