package domain

import "errors"

// Sentinel errors returned by entities and repositories. Services translate
// them into apperror values at the boundary.
var (
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrWalletNotActive         = errors.New("wallet is not active")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrDuplicateWallet         = errors.New("wallet already exists for user and currency")
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already used")
	ErrVersionConflict         = errors.New("wallet version conflict")
	ErrLockTimeout             = errors.New("timed out waiting for row lock")
)
