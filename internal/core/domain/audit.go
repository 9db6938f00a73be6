package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionCreateWallet     AuditAction = "CREATE_WALLET"
	AuditActionDeposit          AuditAction = "DEPOSIT"
	AuditActionWithdraw         AuditAction = "WITHDRAW"
	AuditActionTransfer         AuditAction = "TRANSFER"
	AuditActionFreeze           AuditAction = "FREEZE"
	AuditActionUnfreeze         AuditAction = "UNFREEZE"
	AuditActionReconcile        AuditAction = "RECONCILE"
	AuditActionRoutedDeposit    AuditAction = "ROUTED_DEPOSIT"
	AuditActionRoutedWithdrawal AuditAction = "ROUTED_WITHDRAWAL"
	AuditActionProviderWebhook  AuditAction = "PROVIDER_WEBHOOK"
)

// AuditLog records a single audited request.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	UserID       *uuid.UUID  `json:"user_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
