package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wallet-engine/internal/core/domain"
	"wallet-engine/internal/core/ports"
	"wallet-engine/pkg/apperror"
	"wallet-engine/pkg/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultReconcileBatch = 500
	scheduledRunTimeout   = time.Hour
)

// ReconciliationAuditor implements ports.Reconciler. It reads without locks,
// so a wallet mutated mid-scan may show as a transient mismatch.
type ReconciliationAuditor struct {
	walletRepo ports.WalletRepository
	ledgerRepo ports.LedgerRepository
	auditRepo  ports.ReconciliationRepository
	batchSize  int
	running    sync.Mutex
	log        zerolog.Logger
}

// NewReconciliationAuditor creates an auditor that pages through wallets
// batchSize at a time.
func NewReconciliationAuditor(
	walletRepo ports.WalletRepository,
	ledgerRepo ports.LedgerRepository,
	auditRepo ports.ReconciliationRepository,
	batchSize int,
	log zerolog.Logger,
) *ReconciliationAuditor {
	if batchSize <= 0 {
		batchSize = defaultReconcileBatch
	}
	return &ReconciliationAuditor{
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
		auditRepo:  auditRepo,
		batchSize:  batchSize,
		log:        logger.WithComponent(log, "reconciliation"),
	}
}

// RunManual audits every wallet and returns the report. Only one run may be
// in progress at a time.
func (a *ReconciliationAuditor) RunManual(ctx context.Context) (*domain.ReconciliationReport, error) {
	if !a.running.TryLock() {
		return nil, apperror.ErrReconciliationRunning()
	}
	defer a.running.Unlock()

	report, err := a.run(ctx, domain.TriggerManual)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return report, nil
}

// RunScheduled is the cron entry point. Mismatches raise an alert log line.
func (a *ReconciliationAuditor) RunScheduled() {
	if !a.running.TryLock() {
		a.log.Warn().Msg("reconciliation already running, skipping scheduled run")
		return
	}
	defer a.running.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), scheduledRunTimeout)
	defer cancel()

	report, err := a.run(ctx, domain.TriggerScheduled)
	if err != nil {
		a.log.Error().Err(err).Msg("scheduled reconciliation aborted")
		return
	}
	if report.MismatchCount > 0 {
		a.log.Error().
			Str("alert", "RECONCILIATION_MISMATCH").
			Int("mismatch_count", report.MismatchCount).
			Int("total_wallets", report.TotalWallets).
			Msg("balance mismatches detected")
	}
}

// ListAudits pages through recorded mismatches, optionally by status.
func (a *ReconciliationAuditor) ListAudits(ctx context.Context, status *domain.AuditStatus, page, size int) ([]domain.ReconciliationAudit, int64, error) {
	if page < 0 {
		page = 0
	}
	switch {
	case size <= 0:
		size = defaultPageSize
	case size > maxPageSize:
		size = maxPageSize
	}
	audits, total, err := a.auditRepo.List(ctx, status, page, size)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list reconciliation audits: %w", err))
	}
	return audits, total, nil
}

// run walks wallets in id order. Per-wallet failures are counted and the walk
// continues; only a failure to list wallets aborts the run.
func (a *ReconciliationAuditor) run(ctx context.Context, trigger domain.ReconciliationTrigger) (*domain.ReconciliationReport, error) {
	started := time.Now()
	report := &domain.ReconciliationReport{
		StartedAt: started.UTC(),
		Trigger:   trigger,
	}
	a.log.Info().Str("trigger", string(trigger)).Int("batch_size", a.batchSize).Msg("reconciliation started")

	after := uuid.Nil
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("reconciliation interrupted after %d wallets: %w", report.TotalWallets, err)
		}

		ids, err := a.walletRepo.ListIDs(ctx, after, a.batchSize)
		if err != nil {
			return nil, fmt.Errorf("list wallet ids after %s: %w", after, err)
		}
		for _, id := range ids {
			report.TotalWallets++
			matched, err := a.checkWallet(ctx, id, trigger)
			switch {
			case err != nil:
				report.ErrorCount++
				a.log.Error().Err(err).Str("wallet_id", id.String()).Msg("failed to reconcile wallet")
			case matched:
				report.MatchedCount++
			default:
				report.MismatchCount++
			}
		}
		if len(ids) < a.batchSize {
			break
		}
		after = ids[len(ids)-1]
	}

	report.DurationMs = time.Since(started).Milliseconds()
	report.AllReconciled = report.MismatchCount == 0 && report.ErrorCount == 0

	a.log.Info().
		Str("trigger", string(trigger)).
		Int("total_wallets", report.TotalWallets).
		Int("matched", report.MatchedCount).
		Int("mismatched", report.MismatchCount).
		Int("errors", report.ErrorCount).
		Int64("duration_ms", report.DurationMs).
		Msg("reconciliation finished")
	return report, nil
}

func (a *ReconciliationAuditor) checkWallet(ctx context.Context, id uuid.UUID, trigger domain.ReconciliationTrigger) (bool, error) {
	wallet, err := a.walletRepo.GetByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("load wallet: %w", err)
	}
	if wallet == nil {
		return false, fmt.Errorf("wallet %s disappeared during scan", id)
	}

	ledgerBalance, err := a.ledgerRepo.SumByWallet(ctx, id)
	if err != nil {
		return false, fmt.Errorf("sum ledger: %w", err)
	}
	if wallet.Balance == ledgerBalance {
		return true, nil
	}

	audit := domain.NewReconciliationAudit(id, wallet.Balance, ledgerBalance, trigger)
	a.log.Warn().
		Str("wallet_id", id.String()).
		Int64("wallet_balance", wallet.Balance).
		Int64("ledger_balance", ledgerBalance).
		Int64("difference", audit.Difference).
		Msg("balance mismatch detected")

	if err := a.auditRepo.Create(ctx, audit); err != nil {
		return false, fmt.Errorf("record mismatch: %w", err)
	}
	return false, nil
}
