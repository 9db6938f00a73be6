package service

import (
	"context"
	"testing"
	"time"

	"wallet-engine/internal/adapter/provider"
	"wallet-engine/internal/core/domain"
	"wallet-engine/internal/core/ports"
	"wallet-engine/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flow struct {
	store      *testutil.MemStore
	engine     *WalletService
	router     *PaymentRouter
	settlement *SettlementService
	auditor    *ReconciliationAuditor
}

func newFlow(t *testing.T) *flow {
	t.Helper()
	engine, store := newMemEngine(t)
	router, err := NewPaymentRouter(engine, []ports.PaymentProvider{
		provider.NewPayme("payme-secret"),
		provider.NewClick("click-secret"),
		provider.NewStripe("whsec_test", 0),
	}, map[string][]string{"UZS": {"PAYME", "CLICK"}}, time.Second, newTestLogger())
	require.NoError(t, err)

	return &flow{
		store:      store,
		engine:     engine,
		router:     router,
		settlement: NewSettlementService(engine, store.Markers(), nil, newTestLogger()),
		auditor:    NewReconciliationAuditor(store.Wallets(), store.Ledger(), store.Reconciliations(), 100, newTestLogger()),
	}
}

func (f *flow) balance(t *testing.T, w *domain.Wallet) int64 {
	t.Helper()
	got, err := f.engine.GetWallet(context.Background(), w.ID)
	require.NoError(t, err)
	return got.Balance
}

func TestFlow_StripeDepositCredits(t *testing.T) {
	f := newFlow(t)
	w := mustWallet(t, f.engine, domain.CurrencyUSD)

	res, err := f.router.RouteDeposit(context.Background(), domain.DepositRequest{
		WalletID: w.ID, Amount: 2500, Currency: domain.CurrencyUSD, PaymentMethodToken: "pm_card_visa", IdempotencyKey: "dep-1",
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, provider.NameStripe, res.Provider)
	assert.Equal(t, int64(2500), f.balance(t, w))

	entries := f.store.EntriesFor(w.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, "Deposit via STRIPE - Ref: "+res.TransactionID, entries[0].Description)
}

func TestFlow_DepositFallsBackToClick(t *testing.T) {
	f := newFlow(t)
	w := mustWallet(t, f.engine, domain.CurrencyUZS)

	// Payme declines "fraud" tokens, Click does not.
	res, err := f.router.RouteDeposit(context.Background(), domain.DepositRequest{
		WalletID: w.ID, Amount: 100000, Currency: domain.CurrencyUZS, PaymentMethodToken: "tok_fraud_check",
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, provider.NameClick, res.Provider)
	assert.Equal(t, int64(100000), f.balance(t, w))
}

func TestFlow_PendingDepositLeavesBalance(t *testing.T) {
	f := newFlow(t)
	w := mustWallet(t, f.engine, domain.CurrencyUZS)

	res, err := f.router.RouteDeposit(context.Background(), domain.DepositRequest{
		WalletID: w.ID, Amount: 100000, Currency: domain.CurrencyUZS, PaymentMethodToken: "tok_pending",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, res.Status)
	assert.Equal(t, int64(0), f.balance(t, w))
}

func TestFlow_WithdrawalSettledAfterPayoutFailure(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()
	w := mustWallet(t, f.engine, domain.CurrencyUZS)
	_, err := f.engine.Deposit(ctx, ports.MutationCommand{WalletID: w.ID, Amount: 500000, IdempotencyKey: "seed"})
	require.NoError(t, err)

	res, err := f.router.RouteWithdrawal(ctx, domain.WithdrawalRequest{
		WalletID: w.ID, Amount: 200000, Currency: domain.CurrencyUZS, DestinationToken: "8600123412341234", IdempotencyKey: "wd-1",
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, "wd-1", res.WithdrawalID)
	assert.Equal(t, int64(300000), f.balance(t, w))

	// A retried request returns the same reservation without a second debit.
	again, err := f.router.RouteWithdrawal(ctx, domain.WithdrawalRequest{
		WalletID: w.ID, Amount: 200000, Currency: domain.CurrencyUZS, DestinationToken: "8600123412341234", IdempotencyKey: "wd-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PayoutStatusPending, again.Status)
	assert.Equal(t, int64(300000), f.balance(t, w))

	event := &domain.WebhookEvent{Type: domain.WebhookPayoutFailed, InternalID: "wd-1", ErrorMessage: "card blocked", Provider: provider.NamePayme}
	require.NoError(t, f.settlement.HandleEvent(ctx, event))
	assert.Equal(t, int64(500000), f.balance(t, w))

	// Duplicate deliveries change nothing.
	require.NoError(t, f.settlement.HandleEvent(ctx, event))
	require.NoError(t, f.settlement.HandlePayoutCancelled(ctx, "wd-1", "late"))
	assert.Equal(t, int64(500000), f.balance(t, w))

	entries := f.store.EntriesFor(w.ID)
	require.Len(t, entries, 3)
	refund := entries[2]
	assert.Equal(t, domain.TransactionTypeRefund, refund.TransactionType)
	assert.Equal(t, "wd-1-refund", refund.IdempotencyKey)
	assert.Equal(t, "Refund: Payout failed - card blocked", refund.Description)

	report, err := f.auditor.RunManual(ctx)
	require.NoError(t, err)
	assert.True(t, report.AllReconciled)
}

func TestFlow_WithdrawalSuccessKeepsDebit(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()
	w := mustWallet(t, f.engine, domain.CurrencyUSD)
	_, err := f.engine.Deposit(ctx, ports.MutationCommand{WalletID: w.ID, Amount: 10000, IdempotencyKey: "seed"})
	require.NoError(t, err)

	res, err := f.router.RouteWithdrawal(ctx, domain.WithdrawalRequest{
		WalletID: w.ID, Amount: 4000, Currency: domain.CurrencyUSD, DestinationToken: "ba_123",
	})
	require.NoError(t, err)
	require.True(t, res.Success)

	require.NoError(t, f.settlement.HandlePayoutSuccess(ctx, res.WithdrawalID, res.PayoutID))
	require.NoError(t, f.settlement.HandlePayoutSuccess(ctx, res.WithdrawalID, res.PayoutID))
	assert.Equal(t, int64(6000), f.balance(t, w))
	assert.Len(t, f.store.EntriesFor(w.ID), 2)
}

func TestFlow_AllProvidersRejectWithdrawal(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()
	w := mustWallet(t, f.engine, domain.CurrencyUZS)
	_, err := f.engine.Deposit(ctx, ports.MutationCommand{WalletID: w.ID, Amount: 500000, IdempotencyKey: "seed"})
	require.NoError(t, err)

	res, err := f.router.RouteWithdrawal(ctx, domain.WithdrawalRequest{
		WalletID: w.ID, Amount: 200000, Currency: domain.CurrencyUZS, DestinationToken: "card_fail", WithdrawalID: "wd-x",
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, provider.NameClick, res.Provider)
	assert.Equal(t, int64(500000), f.balance(t, w))

	entries := f.store.EntriesFor(w.ID)
	require.Len(t, entries, 3)
	assert.Equal(t, "wd-x-withdrawal", entries[1].IdempotencyKey)
	assert.Equal(t, "wd-x-refund", entries[2].IdempotencyKey)

	// A later failure webhook for the same withdrawal finds the refund already applied.
	require.NoError(t, f.settlement.HandlePayoutFailure(ctx, "wd-x", "late"))
	assert.Equal(t, int64(500000), f.balance(t, w))
}

func TestFlow_WithdrawalRetries(t *testing.T) {
	const okCard, rejectedCard = "8600123412341234", "card_fail"

	tests := []struct {
		name        string
		firstToken  string
		retryOther  bool
		retryAmount int64
		wantErr     string
		wantSuccess bool
		wantStatus  domain.PayoutStatus
		wantCode    string
		wantBalance int64
		wantEntries int
	}{
		{
			name:        "in flight payout stays pending",
			firstToken:  okCard,
			retryAmount: 200000,
			wantSuccess: true,
			wantStatus:  domain.PayoutStatusPending,
			wantBalance: 300000,
			wantEntries: 2,
		},
		{
			name:        "refunded payout reports failure",
			firstToken:  rejectedCard,
			retryAmount: 200000,
			wantStatus:  domain.PayoutStatusFailed,
			wantCode:    domain.CodeWithdrawalRefunded,
			wantBalance: 500000,
			wantEntries: 3,
		},
		{
			name:        "key reused by another wallet",
			firstToken:  okCard,
			retryOther:  true,
			retryAmount: 300000,
			wantErr:     "WAL_009",
			wantBalance: 500000,
			wantEntries: 1,
		},
		{
			name:        "key reused with another amount",
			firstToken:  okCard,
			retryAmount: 100000,
			wantErr:     "WAL_009",
			wantBalance: 300000,
			wantEntries: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFlow(t)
			ctx := context.Background()
			first := mustWallet(t, f.engine, domain.CurrencyUZS)
			other := mustWallet(t, f.engine, domain.CurrencyUZS)
			for _, w := range []*domain.Wallet{first, other} {
				_, err := f.engine.Deposit(ctx, ports.MutationCommand{WalletID: w.ID, Amount: 500000, IdempotencyKey: "seed-" + w.ID.String()})
				require.NoError(t, err)
			}

			_, err := f.router.RouteWithdrawal(ctx, domain.WithdrawalRequest{
				WalletID: first.ID, Amount: 200000, Currency: domain.CurrencyUZS, DestinationToken: tt.firstToken, IdempotencyKey: "wd-r",
			})
			require.NoError(t, err)

			target := first
			if tt.retryOther {
				target = other
			}
			res, err := f.router.RouteWithdrawal(ctx, domain.WithdrawalRequest{
				WalletID: target.ID, Amount: tt.retryAmount, Currency: domain.CurrencyUZS, DestinationToken: okCard, IdempotencyKey: "wd-r",
			})
			if tt.wantErr != "" {
				assertAppError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantSuccess, res.Success)
				assert.Equal(t, tt.wantStatus, res.Status)
				assert.Equal(t, tt.wantCode, res.ErrorCode)
				assert.Equal(t, "wd-r", res.WithdrawalID)
				assert.Equal(t, int64(200000), res.Amount)
			}

			assert.Equal(t, tt.wantBalance, f.balance(t, target))
			assert.Len(t, f.store.EntriesFor(target.ID), tt.wantEntries)
		})
	}
}
