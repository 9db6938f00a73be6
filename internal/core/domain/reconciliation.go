package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditStatus tracks investigation of a detected balance mismatch.
type AuditStatus string

const (
	AuditStatusDetected      AuditStatus = "DETECTED"
	AuditStatusInvestigating AuditStatus = "INVESTIGATING"
	AuditStatusResolved      AuditStatus = "RESOLVED"
	AuditStatusFalsePositive AuditStatus = "FALSE_POSITIVE"
)

// ReconciliationTrigger says what started a reconciliation run.
type ReconciliationTrigger string

const (
	TriggerScheduled ReconciliationTrigger = "SCHEDULED"
	TriggerManual    ReconciliationTrigger = "MANUAL"
)

// ReconciliationAudit records a wallet whose balance disagreed with its ledger.
type ReconciliationAudit struct {
	ID            uuid.UUID   `json:"id"`
	WalletID      uuid.UUID   `json:"wallet_id"`
	WalletBalance int64       `json:"wallet_balance"`
	LedgerBalance int64       `json:"ledger_balance"`
	Difference    int64       `json:"difference"` // wallet - ledger
	Status        AuditStatus `json:"status"`
	Notes         string      `json:"notes"`
	CreatedAt     time.Time   `json:"created_at"`
}

// NewReconciliationAudit builds a DETECTED record for a mismatch.
func NewReconciliationAudit(walletID uuid.UUID, walletBalance, ledgerBalance int64, trigger ReconciliationTrigger) *ReconciliationAudit {
	notes := "Automated detection during scheduled reconciliation"
	if trigger == TriggerManual {
		notes = "Automated detection during manual reconciliation"
	}
	return &ReconciliationAudit{
		ID:            uuid.New(),
		WalletID:      walletID,
		WalletBalance: walletBalance,
		LedgerBalance: ledgerBalance,
		Difference:    walletBalance - ledgerBalance,
		Status:        AuditStatusDetected,
		Notes:         notes,
		CreatedAt:     time.Now().UTC(),
	}
}

// ReconciliationReport summarizes one full pass over all wallets.
type ReconciliationReport struct {
	TotalWallets  int                   `json:"total_wallets"`
	MatchedCount  int                   `json:"matched_count"`
	MismatchCount int                   `json:"mismatch_count"`
	ErrorCount    int                   `json:"error_count"`
	DurationMs    int64                 `json:"duration_ms"`
	AllReconciled bool                  `json:"all_reconciled"`
	StartedAt     time.Time             `json:"started_at"`
	Trigger       ReconciliationTrigger `json:"trigger"`
}
