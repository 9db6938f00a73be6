package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wallet-engine/internal/core/domain"
	"wallet-engine/internal/core/ports"
	"wallet-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultProviderTimeout = 10 * time.Second

// PaymentRouter implements ports.PaymentRouter. Providers are tried in the
// configured order for the currency until one accepts the request.
type PaymentRouter struct {
	engine      ports.TransactionEngine
	byName      map[string]ports.PaymentProvider
	registered  []ports.PaymentProvider
	preferences map[domain.Currency][]ports.PaymentProvider
	timeout     time.Duration
	log         zerolog.Logger
}

// NewPaymentRouter builds the currency preference table. preferences maps a
// currency code to provider names, primary first; currencies it omits use
// every registered provider that supports them, in registration order.
func NewPaymentRouter(
	engine ports.TransactionEngine,
	providers []ports.PaymentProvider,
	preferences map[string][]string,
	timeout time.Duration,
	log zerolog.Logger,
) (*PaymentRouter, error) {
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	r := &PaymentRouter{
		engine:      engine,
		byName:      make(map[string]ports.PaymentProvider, len(providers)),
		registered:  providers,
		preferences: make(map[domain.Currency][]ports.PaymentProvider),
		timeout:     timeout,
		log:         log,
	}
	for _, p := range providers {
		r.byName[strings.ToUpper(p.Name())] = p
	}

	for cur, names := range preferences {
		currency := domain.Currency(strings.ToUpper(cur))
		for _, name := range names {
			p, ok := r.byName[strings.ToUpper(name)]
			if !ok {
				return nil, fmt.Errorf("preference for %s names unknown provider %q", currency, name)
			}
			if !supportsCurrency(p, currency) {
				return nil, fmt.Errorf("provider %s does not support %s", p.Name(), currency)
			}
			r.preferences[currency] = append(r.preferences[currency], p)
		}
	}
	for _, currency := range domain.SupportedCurrencies {
		if _, ok := r.preferences[currency]; ok {
			continue
		}
		for _, p := range providers {
			if supportsCurrency(p, currency) {
				r.preferences[currency] = append(r.preferences[currency], p)
			}
		}
	}

	for currency, list := range r.preferences {
		names := make([]string, 0, len(list))
		for _, p := range list {
			names = append(names, p.Name())
		}
		log.Info().Str("currency", string(currency)).Strs("providers", names).Msg("payment routing configured")
	}
	return r, nil
}

// SelectProvider returns the primary provider for currency.
func (r *PaymentRouter) SelectProvider(currency domain.Currency) (ports.PaymentProvider, error) {
	list := r.preferences[currency]
	if len(list) == 0 {
		return nil, apperror.ErrUnsupportedCurrency(string(currency))
	}
	return list[0], nil
}

// AlternativeProvider returns the first provider for currency other than
// exclude, or nil when there is none.
func (r *PaymentRouter) AlternativeProvider(currency domain.Currency, exclude string) ports.PaymentProvider {
	for _, p := range r.preferences[currency] {
		if !strings.EqualFold(p.Name(), exclude) {
			return p
		}
	}
	return nil
}

// Provider looks a provider up by name, ignoring case.
func (r *PaymentRouter) Provider(name string) (ports.PaymentProvider, error) {
	p, ok := r.byName[strings.ToUpper(name)]
	if !ok {
		return nil, apperror.ErrUnknownProvider(name)
	}
	return p, nil
}

// Providers returns every registered provider.
func (r *PaymentRouter) Providers() []ports.PaymentProvider {
	out := make([]ports.PaymentProvider, len(r.registered))
	copy(out, r.registered)
	return out
}

// ProvidersForCurrency returns the preference list for currency.
func (r *PaymentRouter) ProvidersForCurrency(currency domain.Currency) []ports.PaymentProvider {
	list := r.preferences[currency]
	out := make([]ports.PaymentProvider, len(list))
	copy(out, list)
	return out
}

func (r *PaymentRouter) IsCurrencySupported(currency domain.Currency) bool {
	return len(r.preferences[currency]) > 0
}

// RouteDeposit charges the payer through the first provider that accepts
// and credits the wallet once the charge is COMPLETED. PENDING charges are
// credited later by a PAYMENT_SUCCESS webhook.
func (r *PaymentRouter) RouteDeposit(ctx context.Context, req domain.DepositRequest) (*domain.PaymentResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	wallet, err := r.engine.GetWallet(ctx, req.WalletID)
	if err != nil {
		return nil, err
	}
	if wallet.Currency != req.Currency {
		return domain.FailedPayment(domain.ProviderRouter, domain.CodeCurrencyMismatch,
			fmt.Sprintf("Wallet currency %s does not match request currency %s", wallet.Currency, req.Currency)), nil
	}
	if !wallet.IsActive() {
		return domain.FailedPayment(domain.ProviderRouter, domain.CodeWalletNotActive,
			fmt.Sprintf("Wallet is %s", wallet.Status)), nil
	}

	candidates := r.preferences[req.Currency]
	if len(candidates) == 0 {
		return domain.FailedPayment(domain.ProviderRouter, domain.CodeNoProvider,
			fmt.Sprintf("No payment provider configured for currency %s", req.Currency)), nil
	}

	var last *domain.PaymentResult
	for i, p := range candidates {
		res := r.callDeposit(ctx, p, req)
		if !res.Success {
			r.log.Warn().
				Str("provider", p.Name()).
				Str("wallet_id", req.WalletID.String()).
				Str("error_code", res.ErrorCode).
				Str("error", res.ErrorMessage).
				Msg("deposit failed at provider, trying next")
			last = res
			continue
		}
		if i > 0 {
			r.log.Info().Str("provider", p.Name()).Msg("deposit succeeded via fallback provider")
		}

		if res.Status != domain.PaymentStatusCompleted {
			r.log.Info().
				Str("provider", p.Name()).
				Str("provider_txn_id", res.TransactionID).
				Str("status", string(res.Status)).
				Msg("deposit accepted but not completed, awaiting webhook")
			return res, nil
		}

		key := req.IdempotencyKey
		if key == "" {
			key = uuid.NewString()
		}
		_, err := r.engine.Deposit(ctx, ports.MutationCommand{
			WalletID:       req.WalletID,
			Amount:         req.Amount,
			IdempotencyKey: key,
			Description:    fmt.Sprintf("Deposit via %s - Ref: %s", res.Provider, res.TransactionID),
		})
		if err != nil {
			r.log.Error().Err(err).
				Str("provider", p.Name()).
				Str("provider_txn_id", res.TransactionID).
				Str("wallet_id", req.WalletID.String()).
				Msg("provider charged but wallet credit failed")
			return nil, err
		}
		return res, nil
	}

	return last, nil
}

// RouteWithdrawal reserves the funds by debiting the wallet, then submits the
// payout. If no provider accepts it the reservation is refunded at once.
func (r *PaymentRouter) RouteWithdrawal(ctx context.Context, req domain.WithdrawalRequest) (*domain.PayoutResult, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	wallet, err := r.engine.GetWallet(ctx, req.WalletID)
	if err != nil {
		return nil, err
	}
	if wallet.Currency != req.Currency {
		return domain.FailedPayout(domain.ProviderRouter, domain.CodeCurrencyMismatch,
			fmt.Sprintf("Wallet currency %s does not match request currency %s", wallet.Currency, req.Currency)), nil
	}
	if !wallet.IsActive() {
		return domain.FailedPayout(domain.ProviderRouter, domain.CodeWalletNotActive,
			fmt.Sprintf("Wallet is %s", wallet.Status)), nil
	}

	candidates := r.preferences[req.Currency]
	if len(candidates) == 0 {
		return domain.FailedPayout(domain.ProviderRouter, domain.CodeNoProvider,
			fmt.Sprintf("No payment provider configured for currency %s", req.Currency)), nil
	}

	// A client key names the withdrawal so a retried request finds its reservation.
	withdrawalID := req.WithdrawalID
	if withdrawalID == "" {
		withdrawalID = req.IdempotencyKey
	}
	if withdrawalID == "" {
		withdrawalID = domain.NewWithdrawalID()
	}
	req.WithdrawalID = withdrawalID
	debitKey := domain.WithdrawalKey(withdrawalID)
	if !domain.ValidIdempotencyKey(domain.RefundKey(withdrawalID)) {
		return nil, apperror.ValidationFields(map[string]string{"withdrawalId": "too long"})
	}

	existing, err := r.engine.FindEntry(ctx, debitKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return r.withdrawalReplay(ctx, existing, req)
	}

	if wallet.Balance < req.Amount {
		return domain.FailedPayout(domain.ProviderRouter, domain.CodeInsufficientFunds,
			fmt.Sprintf("Insufficient balance: available %d, requested %d", wallet.Balance, req.Amount)), nil
	}

	if _, err := r.engine.Withdraw(ctx, ports.MutationCommand{
		WalletID:       req.WalletID,
		Amount:         req.Amount,
		IdempotencyKey: debitKey,
		Description:    "Withdrawal pending - " + req.Description,
	}); err != nil {
		return nil, err
	}
	r.log.Info().
		Str("withdrawal_id", withdrawalID).
		Str("wallet_id", req.WalletID.String()).
		Int64("amount", req.Amount).
		Msg("withdrawal funds reserved")

	var last *domain.PayoutResult
	for i, p := range candidates {
		res := r.callWithdrawal(ctx, p, req)
		if res.Success {
			if i > 0 {
				r.log.Info().Str("provider", p.Name()).Msg("withdrawal accepted by fallback provider")
			}
			res.WithdrawalID = withdrawalID
			return res, nil
		}
		r.log.Warn().
			Str("provider", p.Name()).
			Str("withdrawal_id", withdrawalID).
			Str("error_code", res.ErrorCode).
			Str("error", res.ErrorMessage).
			Msg("withdrawal failed at provider, trying next")
		last = res
	}

	if _, err := r.engine.Refund(ctx, ports.MutationCommand{
		WalletID:       req.WalletID,
		Amount:         req.Amount,
		IdempotencyKey: domain.RefundKey(withdrawalID),
		Description:    "Refund: Withdrawal failed - " + last.ErrorMessage,
	}); err != nil {
		r.log.Error().Err(err).
			Str("withdrawal_id", withdrawalID).
			Str("alert", "WITHDRAWAL_REFUND_FAILED").
			Msg("all providers failed and the reservation could not be refunded")
		return nil, err
	}
	r.log.Warn().Str("withdrawal_id", withdrawalID).Msg("all providers failed, reservation refunded")

	last.WithdrawalID = withdrawalID
	return last, nil
}

// withdrawalReplay answers a retried withdrawal from its reservation. The key
// must belong to the same wallet and amount, and a refunded reservation
// reports the payout as failed.
func (r *PaymentRouter) withdrawalReplay(ctx context.Context, debit *domain.LedgerEntry, req domain.WithdrawalRequest) (*domain.PayoutResult, error) {
	if debit.WalletID != req.WalletID || debit.Amount != req.Amount {
		return nil, apperror.ErrIdempotencyKeyReused()
	}

	refund, err := r.engine.FindEntry(ctx, domain.RefundKey(req.WithdrawalID))
	if err != nil {
		return nil, err
	}
	if refund != nil {
		r.log.Info().Str("withdrawal_id", req.WithdrawalID).Msg("withdrawal already refunded, not resubmitting")
		res := domain.FailedPayout(domain.ProviderRouter, domain.CodeWithdrawalRefunded,
			"Withdrawal failed and the reserved funds were returned to the wallet")
		res.Amount = debit.Amount
		res.WithdrawalID = req.WithdrawalID
		return res, nil
	}

	r.log.Info().Str("withdrawal_id", req.WithdrawalID).Msg("withdrawal already reserved, not resubmitting")
	return &domain.PayoutResult{
		Success:      true,
		Provider:     domain.ProviderRouter,
		Status:       domain.PayoutStatusPending,
		Amount:       debit.Amount,
		WithdrawalID: req.WithdrawalID,
	}, nil
}

func (r *PaymentRouter) callDeposit(ctx context.Context, p ports.PaymentProvider, req domain.DepositRequest) *domain.PaymentResult {
	res, err := withTimeout(ctx, r.timeout, func(ctx context.Context) (*domain.PaymentResult, error) {
		return p.ProcessDeposit(ctx, req)
	})
	if err != nil {
		return domain.FailedPayment(p.Name(), domain.CodeProviderError, err.Error())
	}
	if res == nil {
		return domain.FailedPayment(p.Name(), domain.CodeProviderError, "empty response from provider")
	}
	if res.Provider == "" {
		res.Provider = p.Name()
	}
	return res
}

func (r *PaymentRouter) callWithdrawal(ctx context.Context, p ports.PaymentProvider, req domain.WithdrawalRequest) *domain.PayoutResult {
	res, err := withTimeout(ctx, r.timeout, func(ctx context.Context) (*domain.PayoutResult, error) {
		return p.ProcessWithdrawal(ctx, req)
	})
	if err != nil {
		return domain.FailedPayout(p.Name(), domain.CodeProviderError, err.Error())
	}
	if res == nil {
		return domain.FailedPayout(p.Name(), domain.CodeProviderError, "empty response from provider")
	}
	if res.Provider == "" {
		res.Provider = p.Name()
	}
	return res
}

// withTimeout runs fn with a deadline and stops waiting when it passes, even
// if fn ignores its context.
func withTimeout[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		val T
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := fn(ctx)
		done <- outcome{v, err}
	}()

	select {
	case o := <-done:
		return o.val, o.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("provider call: %w", ctx.Err())
	}
}

func supportsCurrency(p ports.PaymentProvider, currency domain.Currency) bool {
	for _, c := range p.SupportedCurrencies() {
		if c == currency {
			return true
		}
	}
	return false
}
