package service

import (
	"context"
	"errors"
	"testing"

	"wallet-engine/internal/core/domain"
	"wallet-engine/internal/core/ports"
	"wallet-engine/internal/core/ports/mocks"
	"wallet-engine/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReconciliationAuditor_DetectsDrift(t *testing.T) {
	engine, store := newMemEngine(t)
	auditor := NewReconciliationAuditor(store.Wallets(), store.Ledger(), store.Reconciliations(), 2, newTestLogger())
	ctx := context.Background()

	var wallets []*domain.Wallet
	for i := 0; i < 5; i++ {
		w := mustWallet(t, engine, domain.CurrencyUSD)
		_, err := engine.Deposit(ctx, ports.MutationCommand{WalletID: w.ID, Amount: 1000, IdempotencyKey: "seed-" + w.ID.String()})
		require.NoError(t, err)
		wallets = append(wallets, w)
	}

	report, err := auditor.RunManual(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, report.TotalWallets)
	assert.Equal(t, 5, report.MatchedCount)
	assert.True(t, report.AllReconciled)
	assert.Equal(t, domain.TriggerManual, report.Trigger)
	assert.Empty(t, store.Audits())

	drifted := wallets[3]
	store.SetBalance(drifted.ID, 1500)

	report, err = auditor.RunManual(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, report.TotalWallets)
	assert.Equal(t, 4, report.MatchedCount)
	assert.Equal(t, 1, report.MismatchCount)
	assert.False(t, report.AllReconciled)

	audits := store.Audits()
	require.Len(t, audits, 1)
	assert.Equal(t, drifted.ID, audits[0].WalletID)
	assert.Equal(t, int64(1500), audits[0].WalletBalance)
	assert.Equal(t, int64(1000), audits[0].LedgerBalance)
	assert.Equal(t, int64(500), audits[0].Difference)
	assert.Equal(t, domain.AuditStatusDetected, audits[0].Status)

	// The auditor only reports; the balance is left as found.
	got, err := engine.GetWallet(ctx, drifted.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), got.Balance)

	status := domain.AuditStatusDetected
	listed, total, err := auditor.ListAudits(ctx, &status, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, listed, 1)
}

func TestReconciliationAuditor_ScheduledRunRecordsTrigger(t *testing.T) {
	_, store := newMemEngine(t)
	auditor := NewReconciliationAuditor(store.Wallets(), store.Ledger(), store.Reconciliations(), 0, newTestLogger())

	w := domain.NewWallet(uuid.New(), domain.CurrencyEUR)
	require.NoError(t, store.Wallets().Create(context.Background(), w))
	store.SetBalance(w.ID, 42)

	auditor.RunScheduled()

	audits := store.Audits()
	require.Len(t, audits, 1)
	assert.Contains(t, audits[0].Notes, "scheduled")
}

func TestReconciliationAuditor_RejectsOverlappingRuns(t *testing.T) {
	_, store := newMemEngine(t)
	auditor := NewReconciliationAuditor(store.Wallets(), store.Ledger(), store.Reconciliations(), 0, newTestLogger())

	auditor.running.Lock()
	_, err := auditor.RunManual(context.Background())
	assertAppError(t, err, "REC_001")

	// A scheduled run is skipped rather than queued.
	auditor.RunScheduled()
	auditor.running.Unlock()

	_, err = auditor.RunManual(context.Background())
	require.NoError(t, err)
}

func TestReconciliationAuditor_PerWalletErrorsAreCounted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	walletRepo := mocks.NewMockWalletRepository(ctrl)
	ledgerRepo := mocks.NewMockLedgerRepository(ctrl)
	auditRepo := mocks.NewMockReconciliationRepository(ctrl)
	auditor := NewReconciliationAuditor(walletRepo, ledgerRepo, auditRepo, 10, newTestLogger())

	ok, broken := uuid.New(), uuid.New()
	walletRepo.EXPECT().ListIDs(gomock.Any(), uuid.Nil, 10).Return([]uuid.UUID{ok, broken}, nil)
	walletRepo.EXPECT().GetByID(gomock.Any(), ok).Return(&domain.Wallet{ID: ok, Balance: 10}, nil)
	walletRepo.EXPECT().GetByID(gomock.Any(), broken).Return(&domain.Wallet{ID: broken, Balance: 10}, nil)
	ledgerRepo.EXPECT().SumByWallet(gomock.Any(), ok).Return(int64(10), nil)
	ledgerRepo.EXPECT().SumByWallet(gomock.Any(), broken).Return(int64(0), errors.New("statement timeout"))

	report, err := auditor.RunManual(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalWallets)
	assert.Equal(t, 1, report.MatchedCount)
	assert.Equal(t, 1, report.ErrorCount)
	assert.False(t, report.AllReconciled)
}

func TestReconciliationAuditor_ListFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	walletRepo := mocks.NewMockWalletRepository(ctrl)
	auditor := NewReconciliationAuditor(walletRepo, nil, nil, 10, newTestLogger())
	walletRepo.EXPECT().ListIDs(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := auditor.RunManual(context.Background())
	assertAppError(t, err, "SYS_001")
}

func TestReconciliationAuditor_PagesThroughAllWallets(t *testing.T) {
	_, store := newMemEngine(t)
	for i := 0; i < 7; i++ {
		require.NoError(t, store.Wallets().Create(context.Background(), domain.NewWallet(uuid.New(), domain.CurrencyUSD)))
	}
	var _ ports.Reconciler = (*ReconciliationAuditor)(nil)

	auditor := NewReconciliationAuditor(store.Wallets(), store.Ledger(), testutil.NewMemStore().Reconciliations(), 3, newTestLogger())
	report, err := auditor.RunManual(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, report.TotalWallets)
	assert.True(t, report.AllReconciled)
}
