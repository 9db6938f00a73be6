package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntryType is the direction of a ledger entry.
type EntryType string

const (
	EntryTypeDebit  EntryType = "DEBIT"
	EntryTypeCredit EntryType = "CREDIT"
)

// TransactionType classifies the business operation behind a ledger entry.
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal  TransactionType = "WITHDRAWAL"
	TransactionTypeTransferIn  TransactionType = "TRANSFER_IN"
	TransactionTypeTransferOut TransactionType = "TRANSFER_OUT"
	TransactionTypeRefund      TransactionType = "REFUND"
)

// LedgerEntry is an immutable record of a single balance change.
// The sum of CREDIT minus DEBIT amounts for a wallet equals its balance.
type LedgerEntry struct {
	ID              uuid.UUID       `json:"id"`
	WalletID        uuid.UUID       `json:"wallet_id"`
	EntryType       EntryType       `json:"entry_type"`
	TransactionType TransactionType `json:"transaction_type"`
	Amount          int64           `json:"amount"` // minor units, always > 0
	BalanceAfter    int64           `json:"balance_after"`
	TransactionID   uuid.UUID       `json:"transaction_id"`
	IdempotencyKey  string          `json:"idempotency_key"`
	Description     string          `json:"description"`
	CreatedAt       time.Time       `json:"created_at"`
}

// SignedAmount returns the amount with the sign of its effect on the balance.
func (e *LedgerEntry) SignedAmount() int64 {
	if e.EntryType == EntryTypeDebit {
		return -e.Amount
	}
	return e.Amount
}

// TransferResult groups the two entries written by a transfer.
type TransferResult struct {
	TransactionID uuid.UUID    `json:"transaction_id"`
	FromWalletID  uuid.UUID    `json:"from_wallet_id"`
	ToWalletID    uuid.UUID    `json:"to_wallet_id"`
	Amount        int64        `json:"amount"`
	Debit         *LedgerEntry `json:"debit"`
	Credit        *LedgerEntry `json:"credit"`
}

// BalanceCheck compares a wallet's stored balance with its ledger sum.
type BalanceCheck struct {
	WalletID      uuid.UUID `json:"wallet_id"`
	WalletBalance int64     `json:"wallet_balance"`
	LedgerBalance int64     `json:"ledger_balance"`
	Matched       bool      `json:"matched"`
}
