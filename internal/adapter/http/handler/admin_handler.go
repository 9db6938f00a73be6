package handler

import (
	"wallet-engine/internal/adapter/http/dto"
	"wallet-engine/internal/core/domain"
	"wallet-engine/internal/core/ports"
	"wallet-engine/pkg/apperror"
	"wallet-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes operator actions. Routes are guarded by RequireRole.
type AdminHandler struct {
	engine     ports.TransactionEngine
	reconciler ports.Reconciler
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(engine ports.TransactionEngine, reconciler ports.Reconciler) *AdminHandler {
	return &AdminHandler{engine: engine, reconciler: reconciler}
}

// Freeze handles POST /api/v1/admin/wallets/:id/freeze.
func (h *AdminHandler) Freeze(c *gin.Context) {
	walletID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	wallet, err := h.engine.Freeze(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewWalletResponse(wallet))
}

// Unfreeze handles POST /api/v1/admin/wallets/:id/unfreeze.
func (h *AdminHandler) Unfreeze(c *gin.Context) {
	walletID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	wallet, err := h.engine.Unfreeze(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewWalletResponse(wallet))
}

// ReconcileWallet handles GET /api/v1/admin/wallets/:id/reconcile.
func (h *AdminHandler) ReconcileWallet(c *gin.Context) {
	walletID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	check, err := h.engine.ReconcileBalance(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, check)
}

// Reconcile handles POST /api/v1/admin/reconcile.
func (h *AdminHandler) Reconcile(c *gin.Context) {
	report, err := h.reconciler.RunManual(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// ListAudits handles GET /api/v1/admin/reconciliation/audits?status&page&size.
func (h *AdminHandler) ListAudits(c *gin.Context) {
	var status *domain.AuditStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.AuditStatus(raw)
		switch s {
		case domain.AuditStatusDetected, domain.AuditStatusInvestigating,
			domain.AuditStatusResolved, domain.AuditStatusFalsePositive:
			status = &s
		default:
			response.Error(c, apperror.ValidationFields(map[string]string{"status": "unknown audit status"}))
			return
		}
	}

	page, size := queryInt(c, "page", 0), queryInt(c, "size", 20)
	audits, total, err := h.reconciler.ListAudits(c.Request.Context(), status, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	if audits == nil {
		audits = []domain.ReconciliationAudit{}
	}
	response.OK(c, dto.AuditListResponse{Items: audits, Total: total, Page: page, PageSize: size})
}
