package domain

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWallet(t *testing.T) {
	userID := uuid.New()
	w := NewWallet(userID, CurrencyUZS)

	assert.NotEqual(t, uuid.Nil, w.ID)
	assert.Equal(t, userID, w.UserID)
	assert.Equal(t, int64(0), w.Balance)
	assert.Equal(t, WalletStatusActive, w.Status)
	assert.Equal(t, int64(0), w.Version)
}

func TestWallet_Credit(t *testing.T) {
	tests := []struct {
		name    string
		status  WalletStatus
		amount  int64
		wantErr error
		want    int64
	}{
		{"active credit", WalletStatusActive, 500, nil, 1500},
		{"zero amount", WalletStatusActive, 0, ErrInvalidAmount, 1000},
		{"negative amount", WalletStatusActive, -1, ErrInvalidAmount, 1000},
		{"frozen", WalletStatusFrozen, 500, ErrWalletNotActive, 1000},
		{"closed", WalletStatusClosed, 500, ErrWalletNotActive, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &Wallet{Balance: 1000, Status: tt.status}
			err := w.Credit(tt.amount)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.want, w.Balance)
		})
	}
}

func TestWallet_Debit(t *testing.T) {
	tests := []struct {
		name    string
		status  WalletStatus
		amount  int64
		wantErr error
		want    int64
	}{
		{"partial", WalletStatusActive, 400, nil, 600},
		{"exact balance", WalletStatusActive, 1000, nil, 0},
		{"overdraw", WalletStatusActive, 1001, ErrInsufficientFunds, 1000},
		{"zero amount", WalletStatusActive, 0, ErrInvalidAmount, 1000},
		{"frozen", WalletStatusFrozen, 10, ErrWalletNotActive, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &Wallet{Balance: 1000, Status: tt.status}
			err := w.Debit(tt.amount)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.want, w.Balance)
		})
	}
}

func TestCurrency_IsValid(t *testing.T) {
	for _, c := range SupportedCurrencies {
		assert.True(t, c.IsValid(), c)
	}
	assert.False(t, Currency("GBP").IsValid())
	assert.False(t, Currency("usd").IsValid())
}

func TestLedgerEntry_SignedAmount(t *testing.T) {
	debit := &LedgerEntry{EntryType: EntryTypeDebit, Amount: 300}
	credit := &LedgerEntry{EntryType: EntryTypeCredit, Amount: 300}
	assert.Equal(t, int64(-300), debit.SignedAmount())
	assert.Equal(t, int64(300), credit.SignedAmount())
}

func TestKeyDerivation(t *testing.T) {
	assert.Equal(t, "k1-debit", TransferDebitKey("k1"))
	assert.Equal(t, "k1-credit", TransferCreditKey("k1"))
	assert.Equal(t, "w-9-withdrawal", WithdrawalKey("w-9"))
	assert.Equal(t, "w-9-refund", RefundKey("w-9"))
	assert.Equal(t, "payout_success_w-9", PayoutSuccessMarker("w-9"))
	assert.Equal(t, "payout_failure_w-9", PayoutFailureMarker("w-9"))
}

func TestValidIdempotencyKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"normal", "order-123", true},
		{"empty", "", false},
		{"whitespace", "   ", false},
		{"max length", strings.Repeat("a", 255), true},
		{"too long", strings.Repeat("a", 256), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidIdempotencyKey(tt.key))
		})
	}
}

func TestIdentity_Access(t *testing.T) {
	owner := uuid.New()

	user := &Identity{UserID: owner, Roles: []string{"USER"}}
	assert.True(t, user.CanAccess(owner))
	assert.False(t, user.CanAccess(uuid.New()))
	assert.False(t, user.IsAdmin())

	admin := &Identity{UserID: uuid.New(), Roles: []string{"user", " admin "}}
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.CanAccess(owner))
}

func TestIdentityContext(t *testing.T) {
	assert.Nil(t, IdentityFromContext(context.Background()))

	id := &Identity{UserID: uuid.New(), Email: "a@b.c"}
	ctx := WithIdentity(context.Background(), id)
	assert.Same(t, id, IdentityFromContext(ctx))
}

func TestWebhookEventType_IsPayout(t *testing.T) {
	assert.True(t, WebhookPayoutFailed.IsPayout())
	assert.True(t, WebhookPayoutCancelled.IsPayout())
	assert.False(t, WebhookPaymentSuccess.IsPayout())
	assert.False(t, WebhookChargeback.IsPayout())
}

func TestNewReconciliationAudit(t *testing.T) {
	walletID := uuid.New()
	a := NewReconciliationAudit(walletID, 1500, 1000, TriggerScheduled)

	assert.Equal(t, walletID, a.WalletID)
	assert.Equal(t, int64(500), a.Difference)
	assert.Equal(t, AuditStatusDetected, a.Status)
	assert.Contains(t, a.Notes, "scheduled")

	manual := NewReconciliationAudit(walletID, 0, 200, TriggerManual)
	assert.Equal(t, int64(-200), manual.Difference)
	assert.Contains(t, manual.Notes, "manual")
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		minor    int64
		currency Currency
		want     string
	}{
		{150050, CurrencyUSD, "$1500.50"},
		{5, CurrencyEUR, "€0.05"},
		{10000000, CurrencyUZS, "UZS 100000.00"},
		{0, CurrencyUSD, "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, FormatAmount(tt.minor, tt.currency))
		})
	}
}

func TestFailedResults(t *testing.T) {
	p := FailedPayment(ProviderRouter, CodeCurrencyMismatch, "mismatch")
	assert.False(t, p.Success)
	assert.Equal(t, PaymentStatusFailed, p.Status)

	po := FailedPayout("PAYME", "MIN_AMOUNT", "too small")
	assert.False(t, po.Success)
	assert.Equal(t, PayoutStatusFailed, po.Status)
}
