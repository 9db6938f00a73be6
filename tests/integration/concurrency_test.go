package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"wallet-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentWithdrawals_NoOverspend fires more withdrawals than the
// balance can cover. Row locking must let exactly balance/amount succeed.
func TestConcurrentWithdrawals_NoOverspend(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := app.token(t, uuid.New())
	walletID := app.createWallet(t, token, "UZS")
	status, env := app.call(t, http.MethodPost, "/api/v1/wallets/"+walletID+"/deposit", token,
		map[string]interface{}{"amountMinorUnits": 5000, "idempotencyKey": "seed"})
	require.Equal(t, http.StatusOK, status, env.Message)

	const concurrency = 100
	const amount = int64(100)

	var wg sync.WaitGroup
	var successCount, rejectedCount atomic.Int64
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			code, env := app.call(t, http.MethodPost, "/api/v1/wallets/"+walletID+"/withdraw", token,
				map[string]interface{}{"amountMinorUnits": amount, "idempotencyKey": fmt.Sprintf("wd-%d", idx)})
			switch {
			case code == http.StatusOK:
				successCount.Add(1)
			case code == http.StatusConflict && env.ErrorCode == "WAL_005":
				rejectedCount.Add(1)
			default:
				t.Errorf("unexpected response %d %s", code, env.ErrorCode)
			}
		}(i)
	}
	wg.Wait()

	t.Logf("Concurrent withdrawals: %d succeeded, %d rejected", successCount.Load(), rejectedCount.Load())
	assert.Equal(t, int64(50), successCount.Load())
	assert.Equal(t, int64(50), rejectedCount.Load())
	assert.Equal(t, int64(0), app.balance(t, token, walletID))

	id := uuid.MustParse(walletID)
	assert.Len(t, app.store.EntriesFor(id), 51)
}

// TestConcurrentTransfers_OppositeDirections moves money both ways between two
// wallets at once. Lock ordering must prevent deadlock and conserve the total.
func TestConcurrentTransfers_OppositeDirections(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	// One user owning both wallets would need two currencies, so use an admin.
	admin := app.token(t, uuid.New(), domain.RoleAdmin)
	alice, bob := app.token(t, uuid.New()), app.token(t, uuid.New())
	a := app.createWallet(t, alice, "EUR")
	b := app.createWallet(t, bob, "EUR")
	for _, w := range []string{a, b} {
		status, env := app.call(t, http.MethodPost, "/api/v1/wallets/"+w+"/deposit", admin,
			map[string]interface{}{"amountMinorUnits": 10000, "idempotencyKey": "seed-" + w})
		require.Equal(t, http.StatusOK, status, env.Message)
	}

	const perDirection = 40
	var wg sync.WaitGroup
	var failures atomic.Int64
	send := func(from, to, key string) {
		defer wg.Done()
		code, _ := app.call(t, http.MethodPost, "/api/v1/wallets/transfer", admin, map[string]interface{}{
			"fromWalletId": from, "toWalletId": to, "amountMinorUnits": 50, "idempotencyKey": key,
		})
		if code != http.StatusOK {
			failures.Add(1)
		}
	}
	for i := 0; i < perDirection; i++ {
		wg.Add(2)
		go send(a, b, fmt.Sprintf("ab-%d", i))
		go send(b, a, fmt.Sprintf("ba-%d", i))
	}
	wg.Wait()

	assert.Zero(t, failures.Load())
	balA, balB := app.balance(t, admin, a), app.balance(t, admin, b)
	assert.Equal(t, int64(20000), balA+balB)
	assert.Equal(t, int64(10000), balA)

	status, env := app.call(t, http.MethodPost, "/api/v1/admin/reconcile", admin, nil)
	require.Equal(t, http.StatusOK, status)
	var report domain.ReconciliationReport
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.True(t, report.AllReconciled)
}

// TestConcurrentReplays_SingleEffect sends the same idempotency key from many
// clients at once. Exactly one ledger entry may result.
func TestConcurrentReplays_SingleEffect(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := app.token(t, uuid.New())
	walletID := app.createWallet(t, token, "USD")

	const concurrency = 30
	var wg sync.WaitGroup
	txIDs := make(chan string, concurrency)
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, env := app.call(t, http.MethodPost, "/api/v1/wallets/"+walletID+"/deposit", token,
				map[string]interface{}{"amountMinorUnits": 700, "idempotencyKey": "same-key"})
			if !assert.Equal(t, http.StatusOK, code, env.ErrorCode) {
				return
			}
			var tx struct {
				TransactionID string `json:"transactionId"`
			}
			if assert.NoError(t, json.Unmarshal(env.Data, &tx)) {
				txIDs <- tx.TransactionID
			}
		}()
	}
	wg.Wait()
	close(txIDs)

	seen := map[string]bool{}
	for id := range txIDs {
		seen[id] = true
	}
	assert.Len(t, seen, 1)
	assert.Equal(t, int64(700), app.balance(t, token, walletID))
	assert.Len(t, app.store.EntriesFor(uuid.MustParse(walletID)), 1)
}
