// Package testutil provides an in-memory store that reproduces the database
// semantics the engine relies on: row locks held until commit, buffered
// writes, unique idempotency keys and optimistic version checks.
package testutil

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"wallet-engine/internal/core/domain"
	"wallet-engine/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var errNotMemTx = errors.New("testutil: transaction was not started by this MemStore")

// MemStore holds committed state. Use the accessor methods for the
// individual repository views.
type MemStore struct {
	mu   sync.Mutex
	cond *sync.Cond

	wallets  map[uuid.UUID]domain.Wallet
	entries  []domain.LedgerEntry
	byKey    map[string]int
	reserved map[string]*memTx // keys inserted by open transactions
	audits   []domain.ReconciliationAudit
	markers  map[string]domain.ProcessedWebhook

	locksMu sync.Mutex
	locks   map[uuid.UUID]chan struct{}

	// LockTimeout bounds row lock waits, like SET LOCAL lock_timeout.
	LockTimeout time.Duration
}

// NewMemStore returns an empty store with a five second lock timeout.
func NewMemStore() *MemStore {
	s := &MemStore{
		wallets:     make(map[uuid.UUID]domain.Wallet),
		byKey:       make(map[string]int),
		reserved:    make(map[string]*memTx),
		markers:     make(map[string]domain.ProcessedWebhook),
		locks:       make(map[uuid.UUID]chan struct{}),
		LockTimeout: 5 * time.Second,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

var (
	_ ports.DBTransactor               = (*MemStore)(nil)
	_ ports.WalletRepository           = (*MemWallets)(nil)
	_ ports.LedgerRepository           = (*MemLedger)(nil)
	_ ports.ReconciliationRepository   = (*MemReconciliations)(nil)
	_ ports.ProcessedWebhookRepository = (*MemMarkers)(nil)
)

// Wallets returns the wallet repository view.
func (s *MemStore) Wallets() *MemWallets { return &MemWallets{s: s} }

// Ledger returns the ledger repository view.
func (s *MemStore) Ledger() *MemLedger { return &MemLedger{s: s} }

// Reconciliations returns the reconciliation audit repository view.
func (s *MemStore) Reconciliations() *MemReconciliations { return &MemReconciliations{s: s} }

// Markers returns the processed webhook repository view.
func (s *MemStore) Markers() *MemMarkers { return &MemMarkers{s: s} }

// Begin opens a transaction.
func (s *MemStore) Begin(_ context.Context) (pgx.Tx, error) {
	return &memTx{
		s:      s,
		held:   make(map[uuid.UUID]bool),
		writes: make(map[uuid.UUID]domain.Wallet),
	}, nil
}

// SetBalance overwrites a stored balance without writing a ledger entry.
func (s *MemStore) SetBalance(id uuid.UUID, balance int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.wallets[id]
	w.Balance = balance
	s.wallets[id] = w
}

// SetStatus overwrites a stored status, e.g. to close a wallet.
func (s *MemStore) SetStatus(id uuid.UUID, status domain.WalletStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.wallets[id]
	w.Status = status
	s.wallets[id] = w
}

// EntriesFor returns the committed entries of a wallet in insertion order.
func (s *MemStore) EntriesFor(walletID uuid.UUID) []domain.LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.LedgerEntry
	for _, e := range s.entries {
		if e.WalletID == walletID {
			out = append(out, e)
		}
	}
	return out
}

// EntryCount returns the number of committed ledger entries.
func (s *MemStore) EntryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Audits returns every recorded mismatch.
func (s *MemStore) Audits() []domain.ReconciliationAudit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ReconciliationAudit(nil), s.audits...)
}

func (s *MemStore) lockFor(id uuid.UUID) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	ch, ok := s.locks[id]
	if !ok {
		ch = make(chan struct{}, 1)
		s.locks[id] = ch
	}
	return ch
}

func (s *MemStore) acquire(ctx context.Context, id uuid.UUID) error {
	timer := time.NewTimer(s.LockTimeout)
	defer timer.Stop()
	select {
	case s.lockFor(id) <- struct{}{}:
		return nil
	case <-timer.C:
		return domain.ErrLockTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *MemStore) release(id uuid.UUID) {
	<-s.lockFor(id)
}

// memTx buffers writes until Commit. It embeds pgx.Tx only to satisfy the
// interface; the engine calls nothing beyond Commit and Rollback.
type memTx struct {
	pgx.Tx
	s      *MemStore
	held   map[uuid.UUID]bool
	writes map[uuid.UUID]domain.Wallet
	staged []domain.LedgerEntry
	keys   []string
	done   bool
}

func (t *memTx) Commit(_ context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.s.mu.Lock()
	for id, w := range t.writes {
		t.s.wallets[id] = w
	}
	for _, e := range t.staged {
		t.s.byKey[e.IdempotencyKey] = len(t.s.entries)
		t.s.entries = append(t.s.entries, e)
	}
	t.finishLocked()
	t.s.mu.Unlock()
	t.releaseRows()
	return nil
}

func (t *memTx) Rollback(_ context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.s.mu.Lock()
	t.finishLocked()
	t.s.mu.Unlock()
	t.releaseRows()
	return nil
}

func (t *memTx) finishLocked() {
	for _, k := range t.keys {
		if t.s.reserved[k] == t {
			delete(t.s.reserved, k)
		}
	}
	t.done = true
	t.s.cond.Broadcast()
}

func (t *memTx) releaseRows() {
	for id := range t.held {
		t.s.release(id)
	}
	t.held = nil
}

func asMemTx(tx pgx.Tx) (*memTx, error) {
	mt, ok := tx.(*memTx)
	if !ok || mt.done {
		return nil, errNotMemTx
	}
	return mt, nil
}

// MemWallets implements ports.WalletRepository.
type MemWallets struct{ s *MemStore }

func (r *MemWallets) Create(_ context.Context, wallet *domain.Wallet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.wallets {
		if w.UserID == wallet.UserID && w.Currency == wallet.Currency {
			return domain.ErrDuplicateWallet
		}
	}
	r.s.wallets[wallet.ID] = *wallet
	return nil
}

func (r *MemWallets) GetByID(_ context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.wallets[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *MemWallets) GetByUserAndCurrency(_ context.Context, userID uuid.UUID, currency domain.Currency) (*domain.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.wallets {
		if w.UserID == userID && w.Currency == currency {
			return &w, nil
		}
	}
	return nil, nil
}

func (r *MemWallets) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Wallet
	for _, w := range r.s.wallets {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemWallets) ListIDs(_ context.Context, afterID uuid.UUID, limit int) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	ids := make([]uuid.UUID, 0, len(r.s.wallets))
	for id := range r.s.wallets {
		if bytes.Compare(id[:], afterID[:]) > 0 {
			ids = append(ids, id)
		}
	}
	r.s.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// GetByIDForUpdate blocks until the row lock is free or LockTimeout passes.
func (r *MemWallets) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	mt, err := asMemTx(tx)
	if err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	_, exists := r.s.wallets[id]
	r.s.mu.Unlock()
	if !exists {
		return nil, nil
	}

	if !mt.held[id] {
		if err := r.s.acquire(ctx, id); err != nil {
			return nil, err
		}
		mt.held[id] = true
	}

	if w, ok := mt.writes[id]; ok {
		return &w, nil
	}
	r.s.mu.Lock()
	w := r.s.wallets[id]
	r.s.mu.Unlock()
	return &w, nil
}

func (r *MemWallets) Update(_ context.Context, tx pgx.Tx, wallet *domain.Wallet) error {
	mt, err := asMemTx(tx)
	if err != nil {
		return err
	}

	current, ok := mt.writes[wallet.ID]
	if !ok {
		r.s.mu.Lock()
		current, ok = r.s.wallets[wallet.ID]
		r.s.mu.Unlock()
	}
	if !ok || current.Version != wallet.Version {
		return domain.ErrVersionConflict
	}
	if wallet.Balance < 0 {
		return domain.ErrInsufficientFunds
	}

	next := current
	next.Balance = wallet.Balance
	next.Status = wallet.Status
	next.UpdatedAt = wallet.UpdatedAt
	next.Version++
	mt.writes[wallet.ID] = next
	wallet.Version = next.Version
	return nil
}

// MemLedger implements ports.LedgerRepository.
type MemLedger struct{ s *MemStore }

// Create stages the entry. A key held by another open transaction blocks
// until that transaction ends, as a unique index does.
func (r *MemLedger) Create(_ context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error {
	mt, err := asMemTx(tx)
	if err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for {
		if _, ok := r.s.byKey[entry.IdempotencyKey]; ok {
			return domain.ErrDuplicateIdempotencyKey
		}
		owner, ok := r.s.reserved[entry.IdempotencyKey]
		if !ok {
			break
		}
		if owner == mt {
			return domain.ErrDuplicateIdempotencyKey
		}
		r.s.cond.Wait()
	}
	r.s.reserved[entry.IdempotencyKey] = mt
	mt.keys = append(mt.keys, entry.IdempotencyKey)
	mt.staged = append(mt.staged, *entry)
	return nil
}

func (r *MemLedger) GetByIdempotencyKey(_ context.Context, key string) (*domain.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.byKey[key]
	if !ok {
		return nil, nil
	}
	e := r.s.entries[i]
	return &e, nil
}

func (r *MemLedger) ListByTransactionID(_ context.Context, transactionID uuid.UUID) ([]domain.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.LedgerEntry
	for _, e := range r.s.entries {
		if e.TransactionID == transactionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *MemLedger) ListByWallet(_ context.Context, walletID uuid.UUID, page, size int) ([]domain.LedgerEntry, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []domain.LedgerEntry
	for i := len(r.s.entries) - 1; i >= 0; i-- {
		if r.s.entries[i].WalletID == walletID {
			all = append(all, r.s.entries[i])
		}
	}
	total := int64(len(all))
	start := page * size
	if start >= len(all) {
		return []domain.LedgerEntry{}, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *MemLedger) SumByWallet(_ context.Context, walletID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sum int64
	for i := range r.s.entries {
		if r.s.entries[i].WalletID == walletID {
			sum += r.s.entries[i].SignedAmount()
		}
	}
	return sum, nil
}

// MemReconciliations implements ports.ReconciliationRepository.
type MemReconciliations struct{ s *MemStore }

func (r *MemReconciliations) Create(_ context.Context, audit *domain.ReconciliationAudit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.audits = append(r.s.audits, *audit)
	return nil
}

func (r *MemReconciliations) List(_ context.Context, status *domain.AuditStatus, page, size int) ([]domain.ReconciliationAudit, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []domain.ReconciliationAudit
	for i := len(r.s.audits) - 1; i >= 0; i-- {
		if status == nil || r.s.audits[i].Status == *status {
			matched = append(matched, r.s.audits[i])
		}
	}
	total := int64(len(matched))
	start := page * size
	if start >= len(matched) {
		return []domain.ReconciliationAudit{}, total, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// MemMarkers implements ports.ProcessedWebhookRepository.
type MemMarkers struct{ s *MemStore }

func (r *MemMarkers) Exists(_ context.Context, key string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.markers[key]
	return ok, nil
}

func (r *MemMarkers) Insert(_ context.Context, marker *domain.ProcessedWebhook) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.markers[marker.Key]; ok {
		return false, nil
	}
	r.s.markers[marker.Key] = *marker
	return true, nil
}
