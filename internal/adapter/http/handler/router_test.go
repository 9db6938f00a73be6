package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"wallet-engine/internal/adapter/provider"
	redisStore "wallet-engine/internal/adapter/storage/redis"
	"wallet-engine/internal/core/domain"
	"wallet-engine/internal/core/ports"
	"wallet-engine/internal/service"
	"wallet-engine/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPaymeSecret = "payme-secret"

type stack struct {
	store *testutil.MemStore
	http  *gin.Engine
	user  uuid.UUID
}

// newStack wires the real services over the in-memory store and miniredis.
func newStack(t *testing.T, mockEnabled bool) *stack {
	t.Helper()
	log := zerolog.Nop()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := testutil.NewMemStore()
	engine := service.NewWalletService(store.Wallets(), store.Ledger(), redisStore.NewIdempotencyCache(client), store, nil, nil, log)
	router, err := service.NewPaymentRouter(engine, []ports.PaymentProvider{
		provider.NewPayme(testPaymeSecret),
		provider.NewClick("click-secret"),
		provider.NewStripe("whsec_test", 0),
	}, map[string][]string{"UZS": {provider.NamePayme, provider.NameClick}}, time.Second, log)
	require.NoError(t, err)

	r := SetupRouter(RouterDeps{
		Engine:         engine,
		PaymentRouter:  router,
		Settlement:     service.NewSettlementService(engine, store.Markers(), redisStore.NewIdempotencyCache(client), log),
		Reconciler:     service.NewReconciliationAuditor(store.Wallets(), store.Ledger(), store.Reconciliations(), 100, log),
		WebhookGuard:   redisStore.NewWebhookGuard(client),
		RateLimitStore: redisStore.NewRateLimitStore(client),
		HealthCheckers: []ports.HealthChecker{redisStore.NewHealthCheck(client)},
		MockEnabled:    mockEnabled,
		Logger:         log,
	})
	return &stack{store: store, http: r, user: uuid.New()}
}

func (s *stack) do(t *testing.T, method, path string, body interface{}) map[string]interface{} {
	t.Helper()
	w := doJSON(s.http, method, path, body, asUser(s.user, "USER"))
	return decodeBody(t, w)
}

func (s *stack) createWallet(t *testing.T, currency string) string {
	t.Helper()
	w := doJSON(s.http, http.MethodPost, "/api/v1/wallets/me", map[string]string{"currency": currency}, asUser(s.user, "USER"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData(t, w)["id"].(string)
}

func (s *stack) balance(t *testing.T, walletID string) int64 {
	t.Helper()
	w := doJSON(s.http, http.MethodGet, "/api/v1/wallets/"+walletID, nil, asUser(s.user, "USER"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return int64(decodeData(t, w)["balanceMinorUnits"].(float64))
}

func TestStack_WalletLifecycle(t *testing.T) {
	s := newStack(t, false)
	walletID := s.createWallet(t, "USD")

	// Second USD wallet for the same user is rejected.
	resp := s.do(t, http.MethodPost, "/api/v1/wallets/me", map[string]string{"currency": "USD"})
	assert.Equal(t, "WAL_003", resp["error_code"])

	deposit := map[string]interface{}{"amountMinorUnits": 10000, "idempotencyKey": "dep-1"}
	w := doJSON(s.http, http.MethodPost, "/api/v1/wallets/"+walletID+"/deposit", deposit, asUser(s.user, "USER"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decodeData(t, w)
	assert.Equal(t, float64(10000), first["balanceAfterMinorUnits"])

	// Replay returns the original transaction and moves no money.
	w = doJSON(s.http, http.MethodPost, "/api/v1/wallets/"+walletID+"/deposit", deposit, asUser(s.user, "USER"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first["transactionId"], decodeData(t, w)["transactionId"])
	assert.Equal(t, int64(10000), s.balance(t, walletID))

	// Same key, different amount.
	w = doJSON(s.http, http.MethodPost, "/api/v1/wallets/"+walletID+"/deposit",
		map[string]interface{}{"amountMinorUnits": 1, "idempotencyKey": "dep-1"}, asUser(s.user, "USER"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "WAL_009", decodeBody(t, w)["error_code"])

	w = doJSON(s.http, http.MethodPost, "/api/v1/wallets/"+walletID+"/withdraw",
		map[string]interface{}{"amountMinorUnits": 20000, "idempotencyKey": "wd-big"}, asUser(s.user, "USER"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "WAL_005", decodeBody(t, w)["error_code"])

	w = doJSON(s.http, http.MethodPost, "/api/v1/wallets/"+walletID+"/withdraw",
		map[string]interface{}{"amountMinorUnits": 2500, "idempotencyKey": "wd-1"}, asUser(s.user, "USER"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DEBIT", decodeData(t, w)["type"])
	assert.Equal(t, int64(7500), s.balance(t, walletID))

	w = doJSON(s.http, http.MethodGet, "/api/v1/wallets/"+walletID+"/transactions", nil, asUser(s.user, "USER"))
	require.Equal(t, http.StatusOK, w.Code)
	history := decodeData(t, w)
	assert.Equal(t, float64(2), history["total"])
	items := history["items"].([]interface{})
	assert.Equal(t, "WITHDRAWAL", items[0].(map[string]interface{})["transactionType"])
}

func TestStack_Transfer(t *testing.T) {
	s := newStack(t, false)
	from := s.createWallet(t, "EUR")
	s.do(t, http.MethodPost, "/api/v1/wallets/"+from+"/deposit", map[string]interface{}{"amountMinorUnits": 5000, "idempotencyKey": "seed"})

	other := uuid.New()
	w := doJSON(s.http, http.MethodPost, "/api/v1/wallets/me", map[string]string{"currency": "EUR"}, asUser(other, "USER"))
	require.Equal(t, http.StatusCreated, w.Code)
	to := decodeData(t, w)["id"].(string)

	transfer := map[string]interface{}{
		"fromWalletId": from, "toWalletId": to, "amountMinorUnits": 1200, "idempotencyKey": "tr-1",
	}
	w = doJSON(s.http, http.MethodPost, "/api/v1/wallets/transfer", transfer, asUser(s.user, "USER"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "COMPLETED", decodeData(t, w)["status"])
	assert.Equal(t, int64(3800), s.balance(t, from))

	// The recipient cannot read someone else's wallet.
	w = doJSON(s.http, http.MethodGet, "/api/v1/wallets/"+from, nil, asUser(other, "USER"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Self transfer.
	transfer["toWalletId"] = from
	transfer["idempotencyKey"] = "tr-2"
	w = doJSON(s.http, http.MethodPost, "/api/v1/wallets/transfer", transfer, asUser(s.user, "USER"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "WAL_007", decodeBody(t, w)["error_code"])

	w = doJSON(s.http, http.MethodGet, "/api/v1/wallets/"+uuid.NewString(), nil, asUser(s.user, "USER"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStack_AdminFreezeAndReconcile(t *testing.T) {
	s := newStack(t, false)
	walletID := s.createWallet(t, "USD")
	admin := asUser(uuid.New(), "ADMIN")

	w := doJSON(s.http, http.MethodPost, "/api/v1/admin/wallets/"+walletID+"/freeze", nil, asUser(s.user, "USER"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(s.http, http.MethodPost, "/api/v1/admin/wallets/"+walletID+"/freeze", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(s.http, http.MethodPost, "/api/v1/wallets/"+walletID+"/deposit",
		map[string]interface{}{"amountMinorUnits": 100, "idempotencyKey": "frozen-1"}, asUser(s.user, "USER"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "WAL_002", decodeBody(t, w)["error_code"])

	w = doJSON(s.http, http.MethodPost, "/api/v1/admin/wallets/"+walletID+"/unfreeze", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)

	s.do(t, http.MethodPost, "/api/v1/wallets/"+walletID+"/deposit", map[string]interface{}{"amountMinorUnits": 100, "idempotencyKey": "frozen-1"})

	w = doJSON(s.http, http.MethodPost, "/api/v1/admin/reconcile", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["all_reconciled"])

	// Corrupt the stored balance behind the ledger's back.
	id := uuid.MustParse(walletID)
	s.store.SetBalance(id, 999)

	w = doJSON(s.http, http.MethodGet, "/api/v1/admin/wallets/"+walletID+"/reconcile", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	check := decodeData(t, w)
	assert.Equal(t, false, check["matched"])
	assert.Equal(t, float64(100), check["ledger_balance"])

	w = doJSON(s.http, http.MethodPost, "/api/v1/admin/reconcile", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeData(t, w)["mismatch_count"])

	w = doJSON(s.http, http.MethodGet, "/api/v1/admin/reconciliation/audits?status=DETECTED", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeData(t, w)["total"])
}

func TestStack_PayoutFailureWebhookRefunds(t *testing.T) {
	s := newStack(t, false)
	walletID := s.createWallet(t, "UZS")
	s.do(t, http.MethodPost, "/api/v1/wallets/"+walletID+"/deposit", map[string]interface{}{"amountMinorUnits": 500000, "idempotencyKey": "seed"})

	w := doJSON(s.http, http.MethodPost, "/api/v1/payments/withdrawal", map[string]interface{}{
		"walletId":         walletID,
		"amountMinorUnits": 200000,
		"currency":         "UZS",
		"destinationToken": "8600123412341234",
		"idempotencyKey":   "wd-1",
	}, asUser(s.user, "USER"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	payout := decodeData(t, w)
	require.Equal(t, true, payout["success"])
	assert.Equal(t, provider.NamePayme, payout["provider"])
	assert.Equal(t, int64(300000), s.balance(t, walletID))

	payload, err := json.Marshal(map[string]interface{}{
		"method": "PayoutFailed",
		"params": map[string]interface{}{
			"id":      "payme-123",
			"reason":  "card blocked",
			"account": map[string]string{"withdrawal_id": payout["withdrawal_id"].(string)},
		},
	})
	require.NoError(t, err)

	// Forged signature is refused before anything else happens.
	w = doJSON(s.http, http.MethodPost, "/api/v1/webhooks/payme", payload, map[string]string{"X-Signature": "forged"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, int64(300000), s.balance(t, walletID))

	signed := map[string]string{"X-Signature": provider.SignPayme(testPaymeSecret, payload)}
	w = doJSON(s.http, http.MethodPost, "/api/v1/webhooks/payme", payload, signed)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "PAYOUT_FAILED", decodeData(t, w)["type"])
	assert.Equal(t, int64(500000), s.balance(t, walletID))

	w = doJSON(s.http, http.MethodPost, "/api/v1/webhooks/payme", payload, signed)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["duplicate"])
	assert.Equal(t, int64(500000), s.balance(t, walletID))
}

func TestStack_RoutedDepositDeclined(t *testing.T) {
	s := newStack(t, false)
	walletID := s.createWallet(t, "USD")

	w := doJSON(s.http, http.MethodPost, "/api/v1/payments/deposit", map[string]interface{}{
		"walletId":           walletID,
		"amountMinorUnits":   1000,
		"currency":           "EUR",
		"paymentMethodToken": "pm_card_visa",
	}, asUser(s.user, "USER"))
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, false, data["success"])
	assert.Equal(t, domain.ProviderRouter, data["provider"])
	assert.Equal(t, domain.CodeCurrencyMismatch, data["error_code"])
	assert.Equal(t, int64(0), s.balance(t, walletID))
}

func TestStack_MockEndpoints(t *testing.T) {
	s := newStack(t, true)
	walletID := s.createWallet(t, "UZS")

	w := doJSON(s.http, http.MethodPost, "/api/v1/mock/payme/deposit", map[string]interface{}{
		"walletId": walletID, "amountMinorUnits": 70000,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decodeData(t, w)["success"])
	assert.Equal(t, int64(70000), s.balance(t, walletID))

	w = doJSON(s.http, http.MethodPost, "/api/v1/mock/stripe/deposit", map[string]interface{}{
		"walletId": walletID, "amountMinorUnits": 100,
	}, nil)
	assert.Equal(t, "PRV_002", decodeBody(t, w)["error_code"])

	w = doJSON(s.http, http.MethodPost, "/api/v1/mock/nope/deposit", map[string]interface{}{
		"walletId": walletID, "amountMinorUnits": 100,
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStack_HealthAndRateLimitHeaders(t *testing.T) {
	s := newStack(t, false)

	w := doJSON(s.http, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(s.http, http.MethodGet, "/api/v1/wallets/me", nil, asUser(s.user, "USER"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "120", w.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
