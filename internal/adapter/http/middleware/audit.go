package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"wallet-engine/internal/core/domain"
	"wallet-engine/internal/core/ports"
	"wallet-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that logs successful write operations.
// Actions are resolved from the matched route template, not the raw path.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only audit successful write operations (status 2xx)
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			return
		}

		action, resourceType := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		var userID *uuid.UUID
		if id := IdentityFrom(c); id != nil {
			uid := id.UserID
			userID = &uid
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"request_id": c.GetString(response.RequestIDKey),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			UserID:       userID,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID(c),
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now(),
		})
	}
}

func resourceID(c *gin.Context) string {
	if id := c.Param("id"); id != "" {
		return id
	}
	return c.Param("provider")
}

func mapRouteToAction(route, method string) (domain.AuditAction, string) {
	if method != http.MethodPost {
		return "", ""
	}
	switch route {
	case "/api/v1/wallets", "/api/v1/wallets/me":
		return domain.AuditActionCreateWallet, "wallet"
	case "/api/v1/wallets/:id/deposit":
		return domain.AuditActionDeposit, "wallet"
	case "/api/v1/wallets/:id/withdraw":
		return domain.AuditActionWithdraw, "wallet"
	case "/api/v1/wallets/transfer":
		return domain.AuditActionTransfer, "wallet"
	case "/api/v1/admin/wallets/:id/freeze":
		return domain.AuditActionFreeze, "wallet"
	case "/api/v1/admin/wallets/:id/unfreeze":
		return domain.AuditActionUnfreeze, "wallet"
	case "/api/v1/admin/reconcile":
		return domain.AuditActionReconcile, "reconciliation"
	case "/api/v1/payments/deposit":
		return domain.AuditActionRoutedDeposit, "payment"
	case "/api/v1/payments/withdrawal":
		return domain.AuditActionRoutedWithdrawal, "payment"
	case "/api/v1/webhooks/:provider":
		return domain.AuditActionProviderWebhook, "provider"
	}
	return "", ""
}
