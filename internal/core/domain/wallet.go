package domain

import (
	"time"

	"github.com/google/uuid"
)

// Currency is an ISO 4217 code supported by the engine.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyUZS Currency = "UZS"
)

// SupportedCurrencies lists every currency a wallet may hold.
var SupportedCurrencies = []Currency{CurrencyUSD, CurrencyEUR, CurrencyUZS}

// IsValid reports whether c is one of SupportedCurrencies.
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyUZS:
		return true
	}
	return false
}

// WalletStatus represents the lifecycle state of a wallet.
type WalletStatus string

const (
	WalletStatusActive WalletStatus = "ACTIVE"
	WalletStatusFrozen WalletStatus = "FROZEN"
	WalletStatusClosed WalletStatus = "CLOSED"
)

// Wallet holds a single user's balance in one currency, in minor units.
type Wallet struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"user_id"`
	Currency  Currency     `json:"currency"`
	Balance   int64        `json:"balance"`
	Status    WalletStatus `json:"status"`
	Version   int64        `json:"version"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewWallet returns an ACTIVE wallet with zero balance.
func NewWallet(userID uuid.UUID, currency Currency) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		ID:        uuid.New(),
		UserID:    userID,
		Currency:  currency,
		Status:    WalletStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsActive returns true if the wallet may move money.
func (w *Wallet) IsActive() bool {
	return w.Status == WalletStatusActive
}

// ValidateActive returns ErrWalletNotActive unless the wallet is ACTIVE.
func (w *Wallet) ValidateActive() error {
	if !w.IsActive() {
		return ErrWalletNotActive
	}
	return nil
}

// Credit adds amount to the balance.
func (w *Wallet) Credit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if err := w.ValidateActive(); err != nil {
		return err
	}
	w.Balance += amount
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// Debit subtracts amount from the balance. The balance never goes negative.
func (w *Wallet) Debit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if err := w.ValidateActive(); err != nil {
		return err
	}
	if w.Balance < amount {
		return ErrInsufficientFunds
	}
	w.Balance -= amount
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// OwnedBy reports whether userID owns the wallet.
func (w *Wallet) OwnedBy(userID uuid.UUID) bool {
	return w.UserID == userID
}
