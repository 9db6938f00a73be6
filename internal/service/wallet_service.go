package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wallet-engine/internal/core/domain"
	"wallet-engine/internal/core/ports"
	"wallet-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const (
	idempotencyTTL = 24 * time.Hour

	defaultPageSize = 20
	maxPageSize     = 100
)

// WalletService implements ports.TransactionEngine. Every balance change runs
// inside one database transaction holding the wallet row lock, and writes the
// wallet and its ledger entry together.
type WalletService struct {
	walletRepo ports.WalletRepository
	ledgerRepo ports.LedgerRepository
	idempCache ports.IdempotencyCache
	transactor ports.DBTransactor
	replicator ports.LedgerReplicator
	notifier   ports.Notifier
	log        zerolog.Logger
}

// NewWalletService creates a new WalletService. idempCache, replicator and
// notifier may be nil.
func NewWalletService(
	walletRepo ports.WalletRepository,
	ledgerRepo ports.LedgerRepository,
	idempCache ports.IdempotencyCache,
	transactor ports.DBTransactor,
	replicator ports.LedgerReplicator,
	notifier ports.Notifier,
	log zerolog.Logger,
) *WalletService {
	return &WalletService{
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
		idempCache: idempCache,
		transactor: transactor,
		replicator: replicator,
		notifier:   notifier,
		log:        log,
	}
}

// CreateWallet opens an ACTIVE, zero-balance wallet for (userID, currency).
func (s *WalletService) CreateWallet(ctx context.Context, userID uuid.UUID, currency domain.Currency) (*domain.Wallet, error) {
	if userID == uuid.Nil {
		return nil, apperror.ValidationFields(map[string]string{"userId": "required"})
	}
	if !currency.IsValid() {
		return nil, apperror.ValidationFields(map[string]string{"currency": "must be one of USD, EUR, UZS"})
	}
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}

	wallet := domain.NewWallet(userID, currency)
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		if errors.Is(err, domain.ErrDuplicateWallet) {
			return nil, apperror.ErrDuplicateWallet()
		}
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("user_id", userID.String()).
		Str("currency", string(currency)).
		Msg("wallet created")
	return wallet, nil
}

// GetWallet returns a wallet the caller is allowed to see.
func (s *WalletService) GetWallet(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	if err := authorize(ctx, wallet.UserID); err != nil {
		return nil, err
	}
	return wallet, nil
}

// ListWalletsByUser returns all wallets of userID.
func (s *WalletService) ListWalletsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Wallet, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}
	wallets, err := s.walletRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list wallets: %w", err))
	}
	return wallets, nil
}

// Deposit credits a wallet. A repeated key returns the original entry.
func (s *WalletService) Deposit(ctx context.Context, cmd ports.MutationCommand) (*domain.LedgerEntry, error) {
	return s.mutate(ctx, cmd, domain.EntryTypeCredit, domain.TransactionTypeDeposit)
}

// Withdraw debits a wallet. Insufficient funds leave the wallet and ledger untouched.
func (s *WalletService) Withdraw(ctx context.Context, cmd ports.MutationCommand) (*domain.LedgerEntry, error) {
	return s.mutate(ctx, cmd, domain.EntryTypeDebit, domain.TransactionTypeWithdrawal)
}

// Refund credits a wallet as the compensation of a failed withdrawal.
func (s *WalletService) Refund(ctx context.Context, cmd ports.MutationCommand) (*domain.LedgerEntry, error) {
	return s.mutate(ctx, cmd, domain.EntryTypeCredit, domain.TransactionTypeRefund)
}

func (s *WalletService) mutate(
	ctx context.Context,
	cmd ports.MutationCommand,
	entryType domain.EntryType,
	txType domain.TransactionType,
) (*domain.LedgerEntry, error) {
	if err := validateMutation(cmd.Amount, cmd.IdempotencyKey); err != nil {
		return nil, err
	}

	// Replays return the stored entry without touching the wallet.
	existing, err := s.findEntry(ctx, cmd.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return replayed(existing, cmd.WalletID)
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.lockWallet(ctx, dbTx, cmd.WalletID)
	if err != nil {
		return nil, err
	}
	if err := authorize(ctx, wallet.UserID); err != nil {
		return nil, err
	}

	if entryType == domain.EntryTypeCredit {
		err = wallet.Credit(cmd.Amount)
	} else {
		err = wallet.Debit(cmd.Amount)
	}
	if err != nil {
		return nil, domainError(err, wallet)
	}

	if err := s.walletRepo.Update(ctx, dbTx, wallet); err != nil {
		return nil, storeError("update wallet", err)
	}

	entry := newLedgerEntry(wallet, entryType, txType, cmd.Amount, uuid.New(), cmd.IdempotencyKey, cmd.Description)
	if err := s.ledgerRepo.Create(ctx, dbTx, entry); err != nil {
		if errors.Is(err, domain.ErrDuplicateIdempotencyKey) {
			// A concurrent request with the same key committed first.
			_ = dbTx.Rollback(ctx)
			return s.readBack(ctx, cmd.IdempotencyKey, cmd.WalletID)
		}
		return nil, apperror.InternalError(fmt.Errorf("append ledger entry: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("entry_id", entry.ID.String()).
		Str("type", string(txType)).
		Int64("amount", cmd.Amount).
		Int64("balance_after", wallet.Balance).
		Str("idempotency_key", cmd.IdempotencyKey).
		Msg("wallet mutation committed")

	s.afterCommit(ctx, wallet, entry, nil)
	return entry, nil
}

// Transfer moves funds between two wallets of the same currency as one
// atomic unit. Rows are locked in ascending id order so opposite transfers
// between the same pair cannot deadlock.
func (s *WalletService) Transfer(ctx context.Context, cmd ports.TransferCommand) (*domain.TransferResult, error) {
	if cmd.FromWalletID == cmd.ToWalletID {
		return nil, apperror.ErrSameWallet()
	}
	if err := validateMutation(cmd.Amount, cmd.IdempotencyKey); err != nil {
		return nil, err
	}

	debitKey := domain.TransferDebitKey(cmd.IdempotencyKey)
	creditKey := domain.TransferCreditKey(cmd.IdempotencyKey)

	existing, err := s.findEntry(ctx, debitKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.transferReplay(ctx, existing, cmd.FromWalletID)
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	firstID, secondID := cmd.FromWalletID, cmd.ToWalletID
	if bytes.Compare(firstID[:], secondID[:]) > 0 {
		firstID, secondID = secondID, firstID
	}
	first, err := s.lockWallet(ctx, dbTx, firstID)
	if err != nil {
		return nil, err
	}
	second, err := s.lockWallet(ctx, dbTx, secondID)
	if err != nil {
		return nil, err
	}

	from, to := first, second
	if from.ID != cmd.FromWalletID {
		from, to = second, first
	}

	if err := authorize(ctx, from.UserID); err != nil {
		return nil, err
	}
	if from.Currency != to.Currency {
		return nil, apperror.ErrCurrencyMismatch()
	}
	if err := from.Debit(cmd.Amount); err != nil {
		return nil, domainError(err, from)
	}
	if err := to.Credit(cmd.Amount); err != nil {
		return nil, domainError(err, to)
	}

	if err := s.walletRepo.Update(ctx, dbTx, from); err != nil {
		return nil, storeError("update source wallet", err)
	}
	if err := s.walletRepo.Update(ctx, dbTx, to); err != nil {
		return nil, storeError("update destination wallet", err)
	}

	txID := uuid.New()
	debit := newLedgerEntry(from, domain.EntryTypeDebit, domain.TransactionTypeTransferOut, cmd.Amount, txID,
		debitKey, transferDescription("Transfer to wallet", to.ID, cmd.Description))
	credit := newLedgerEntry(to, domain.EntryTypeCredit, domain.TransactionTypeTransferIn, cmd.Amount, txID,
		creditKey, transferDescription("Transfer from wallet", from.ID, cmd.Description))

	for _, entry := range []*domain.LedgerEntry{debit, credit} {
		if err := s.ledgerRepo.Create(ctx, dbTx, entry); err != nil {
			if errors.Is(err, domain.ErrDuplicateIdempotencyKey) {
				_ = dbTx.Rollback(ctx)
				winner, err := s.readBack(ctx, debitKey, cmd.FromWalletID)
				if err != nil {
					return nil, err
				}
				return s.transferReplay(ctx, winner, cmd.FromWalletID)
			}
			return nil, apperror.InternalError(fmt.Errorf("append ledger entry: %w", err))
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("transaction_id", txID.String()).
		Str("from_wallet_id", from.ID.String()).
		Str("to_wallet_id", to.ID.String()).
		Int64("amount", cmd.Amount).
		Str("idempotency_key", cmd.IdempotencyKey).
		Msg("transfer committed")

	fromID, toID := from.ID, to.ID
	s.afterCommit(ctx, from, debit, &toID)
	s.afterCommit(ctx, to, credit, &fromID)

	return &domain.TransferResult{
		TransactionID: txID,
		FromWalletID:  from.ID,
		ToWalletID:    to.ID,
		Amount:        cmd.Amount,
		Debit:         debit,
		Credit:        credit,
	}, nil
}

// FindEntry looks up a ledger entry by idempotency key without ownership checks.
func (s *WalletService) FindEntry(ctx context.Context, key string) (*domain.LedgerEntry, error) {
	return s.findEntry(ctx, key)
}

// transferReplay rebuilds a committed transfer from its debit entry.
func (s *WalletService) transferReplay(ctx context.Context, debit *domain.LedgerEntry, fromWalletID uuid.UUID) (*domain.TransferResult, error) {
	if debit.WalletID != fromWalletID {
		return nil, apperror.ErrIdempotencyKeyReused()
	}

	entries, err := s.ledgerRepo.ListByTransactionID(ctx, debit.TransactionID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transfer entries: %w", err))
	}

	result := &domain.TransferResult{
		TransactionID: debit.TransactionID,
		FromWalletID:  debit.WalletID,
		Amount:        debit.Amount,
		Debit:         debit,
	}
	for i := range entries {
		if entries[i].EntryType == domain.EntryTypeCredit {
			result.Credit = &entries[i]
			result.ToWalletID = entries[i].WalletID
		}
	}
	return result, nil
}

// GetTransactionHistory returns a page of ledger entries, newest first.
func (s *WalletService) GetTransactionHistory(ctx context.Context, walletID uuid.UUID, page, size int) (*ports.LedgerPage, error) {
	if _, err := s.GetWallet(ctx, walletID); err != nil {
		return nil, err
	}

	if page < 0 {
		page = 0
	}
	switch {
	case size <= 0:
		size = defaultPageSize
	case size > maxPageSize:
		size = maxPageSize
	}

	entries, total, err := s.ledgerRepo.ListByWallet(ctx, walletID, page, size)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list ledger entries: %w", err))
	}

	return &ports.LedgerPage{
		Entries:    entries,
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: int((total + int64(size) - 1) / int64(size)),
	}, nil
}

// ReconcileBalance compares the stored balance with the ledger sum. Read-only.
func (s *WalletService) ReconcileBalance(ctx context.Context, walletID uuid.UUID) (*domain.BalanceCheck, error) {
	wallet, err := s.GetWallet(ctx, walletID)
	if err != nil {
		return nil, err
	}

	ledgerBalance, err := s.ledgerRepo.SumByWallet(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("sum ledger: %w", err))
	}

	check := &domain.BalanceCheck{
		WalletID:      walletID,
		WalletBalance: wallet.Balance,
		LedgerBalance: ledgerBalance,
		Matched:       wallet.Balance == ledgerBalance,
	}
	if !check.Matched {
		s.log.Warn().
			Str("wallet_id", walletID.String()).
			Int64("wallet_balance", wallet.Balance).
			Int64("ledger_balance", ledgerBalance).
			Msg("balance mismatch")
	}
	return check, nil
}

// Freeze blocks all balance mutations on the wallet.
func (s *WalletService) Freeze(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error) {
	return s.setStatus(ctx, walletID, domain.WalletStatusFrozen)
}

// Unfreeze makes a frozen wallet ACTIVE again.
func (s *WalletService) Unfreeze(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error) {
	return s.setStatus(ctx, walletID, domain.WalletStatusActive)
}

func (s *WalletService) setStatus(ctx context.Context, walletID uuid.UUID, target domain.WalletStatus) (*domain.Wallet, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.lockWallet(ctx, dbTx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.Status == domain.WalletStatusClosed {
		return nil, apperror.ErrWalletNotActive(string(wallet.Status))
	}
	if wallet.Status == target {
		return wallet, nil
	}

	previous := wallet.Status
	wallet.Status = target
	wallet.UpdatedAt = time.Now().UTC()
	if err := s.walletRepo.Update(ctx, dbTx, wallet); err != nil {
		return nil, storeError("update wallet status", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("wallet_id", walletID.String()).
		Str("from", string(previous)).
		Str("to", string(target)).
		Msg("wallet status changed")
	return wallet, nil
}

// lockWallet takes the row lock; a missing wallet is WalletNotFound.
func (s *WalletService) lockWallet(ctx context.Context, dbTx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, id)
	if err != nil {
		return nil, storeError("lock wallet", err)
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	return wallet, nil
}

// findEntry checks Redis first, then the ledger's unique key index.
func (s *WalletService) findEntry(ctx context.Context, key string) (*domain.LedgerEntry, error) {
	if s.idempCache != nil {
		cached, err := s.idempCache.Get(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("redis idempotency check failed, falling through to DB")
		}
		if cached != nil {
			var entry domain.LedgerEntry
			if err := json.Unmarshal(cached, &entry); err == nil {
				return &entry, nil
			}
			s.log.Warn().Str("key", key).Msg("discarding unreadable cached ledger entry")
		}
	}

	entry, err := s.ledgerRepo.GetByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("db idempotency check: %w", err))
	}
	if entry != nil {
		s.cacheEntry(ctx, entry)
	}
	return entry, nil
}

// readBack loads the entry written by the request that won a key race.
func (s *WalletService) readBack(ctx context.Context, key string, walletID uuid.UUID) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.GetByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("read back %s: %w", key, err))
	}
	if entry == nil {
		return nil, apperror.InternalError(fmt.Errorf("idempotency key %s conflicted but no entry found", key))
	}
	s.log.Info().Str("key", key).Msg("concurrent duplicate resolved by read-back")
	return replayed(entry, walletID)
}

func (s *WalletService) cacheEntry(ctx context.Context, entry *domain.LedgerEntry) {
	if s.idempCache == nil {
		return
	}
	data, err := json.Marshal(entry)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to marshal ledger entry for cache")
		return
	}
	if err := s.idempCache.Set(ctx, entry.IdempotencyKey, data, idempotencyTTL); err != nil {
		s.log.Warn().Err(err).Str("key", entry.IdempotencyKey).Msg("failed to cache idempotency entry")
	}
}

// afterCommit runs side effects that must never affect the committed result.
func (s *WalletService) afterCommit(ctx context.Context, wallet *domain.Wallet, entry *domain.LedgerEntry, counterparty *uuid.UUID) {
	s.cacheEntry(ctx, entry)

	w, e := *wallet, *entry
	event := ports.WalletEvent{Wallet: &w, Entry: &e, Counterparty: counterparty}
	if id := domain.IdentityFromContext(ctx); id != nil && id.UserID == wallet.UserID {
		event.RecipientEmail = id.Email
	}
	if s.replicator != nil {
		s.replicator.Replicate(event)
	}
	if s.notifier != nil {
		s.notifier.Notify(event)
	}
}

func newLedgerEntry(
	wallet *domain.Wallet,
	entryType domain.EntryType,
	txType domain.TransactionType,
	amount int64,
	txID uuid.UUID,
	key, description string,
) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:              uuid.New(),
		WalletID:        wallet.ID,
		EntryType:       entryType,
		TransactionType: txType,
		Amount:          amount,
		BalanceAfter:    wallet.Balance,
		TransactionID:   txID,
		IdempotencyKey:  key,
		Description:     description,
		CreatedAt:       time.Now().UTC(),
	}
}

func transferDescription(prefix string, other uuid.UUID, desc string) string {
	if desc == "" {
		return fmt.Sprintf("%s %s", prefix, other)
	}
	return fmt.Sprintf("%s %s: %s", prefix, other, desc)
}

func validateMutation(amount int64, key string) error {
	if amount <= 0 {
		return apperror.ErrInvalidAmount()
	}
	if !domain.ValidIdempotencyKey(key) {
		return apperror.ValidationFields(map[string]string{
			"idempotencyKey": fmt.Sprintf("required, at most %d characters", domain.MaxIdempotencyKeyLen),
		})
	}
	return nil
}

// replayed returns a stored entry, refusing keys reused against another wallet.
func replayed(entry *domain.LedgerEntry, walletID uuid.UUID) (*domain.LedgerEntry, error) {
	if entry.WalletID != walletID {
		return nil, apperror.ErrIdempotencyKeyReused()
	}
	return entry, nil
}

// authorize applies the ownership rule. Calls without an identity are trusted.
func authorize(ctx context.Context, owner uuid.UUID) error {
	id := domain.IdentityFromContext(ctx)
	if id == nil || id.CanAccess(owner) {
		return nil
	}
	return apperror.ErrUnauthorizedAccess()
}

// domainError translates entity rule violations.
func domainError(err error, wallet *domain.Wallet) error {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return apperror.ErrInvalidAmount()
	case errors.Is(err, domain.ErrWalletNotActive):
		return apperror.ErrWalletNotActive(string(wallet.Status))
	case errors.Is(err, domain.ErrInsufficientFunds):
		return apperror.ErrInsufficientFunds()
	}
	return apperror.InternalError(err)
}

// storeError translates repository sentinels raised inside a transaction.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrLockTimeout):
		return apperror.ErrLockTimeout(fmt.Errorf("%s: %w", op, err))
	case errors.Is(err, domain.ErrVersionConflict):
		return apperror.ErrConcurrentUpdate()
	case errors.Is(err, domain.ErrInsufficientFunds):
		return apperror.ErrInsufficientFunds()
	}
	return apperror.InternalError(fmt.Errorf("%s: %w", op, err))
}
