package handler

import (
	"wallet-engine/internal/adapter/http/middleware"
	redisStore "wallet-engine/internal/adapter/storage/redis"
	"wallet-engine/internal/core/domain"
	"wallet-engine/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const defaultMaxBodyBytes = 1 << 20 // 1 MB

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Engine         ports.TransactionEngine
	PaymentRouter  ports.PaymentRouter
	Settlement     ports.SettlementHandler
	Reconciler     ports.Reconciler
	TokenSvc       ports.TokenService         // nil = only gateway headers are trusted
	WebhookGuard   ports.WebhookGuard         // nil = no webhook replay filtering
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	AuditSvc       ports.AuditService         // nil = audit logging disabled
	HealthCheckers []ports.HealthChecker
	OpenAPISpec    []byte
	MaxBodyBytes   int64
	MockEnabled    bool
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	maxBody := deps.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBody))

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}
	r.Use(middleware.Identity(deps.TokenSvc, deps.Logger))

	// Deep health check: PostgreSQL and Redis
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Swagger documentation
	docs := NewDocsHandler(deps.OpenAPISpec)
	swagger := r.Group("/swagger")
	{
		swagger.GET("", docs.UI)
		swagger.GET("/spec", docs.Spec)
	}

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Wallets ---
	walletHandler := NewWalletHandler(deps.Engine)
	read, write := rl(middleware.GroupWalletRead), rl(middleware.GroupWalletWrite)
	wallets := v1.Group("/wallets")
	{
		wallets.POST("", write, walletHandler.Create)
		wallets.POST("/me", write, walletHandler.CreateForMe)
		wallets.GET("/me", read, walletHandler.ListMine)
		wallets.GET("/user/:userId", read, walletHandler.ListByUser)
		wallets.POST("/transfer", write, walletHandler.Transfer)
		wallets.GET("/:id", read, walletHandler.Get)
		wallets.GET("/:id/transactions", read, walletHandler.History)
		wallets.POST("/:id/deposit", write, walletHandler.Deposit)
		wallets.POST("/:id/withdraw", write, walletHandler.Withdraw)
	}

	// --- Provider-routed payments ---
	paymentHandler := NewPaymentHandler(deps.PaymentRouter)
	payments := v1.Group("/payments", rl(middleware.GroupPayments))
	{
		payments.POST("/deposit", paymentHandler.Deposit)
		payments.POST("/withdrawal", paymentHandler.Withdrawal)
		payments.GET("/providers", paymentHandler.Providers)
	}

	// --- Provider callbacks (signature-verified, no identity) ---
	webhookHandler := NewWebhookHandler(deps.PaymentRouter, deps.Settlement, deps.WebhookGuard, deps.Logger)
	v1.POST("/webhooks/:provider", rl(middleware.GroupWebhooks), webhookHandler.Receive)

	// --- Administration ---
	adminHandler := NewAdminHandler(deps.Engine, deps.Reconciler)
	admin := v1.Group("/admin", middleware.RequireRole(domain.RoleAdmin), rl(middleware.GroupAdmin))
	{
		admin.POST("/wallets/:id/freeze", adminHandler.Freeze)
		admin.POST("/wallets/:id/unfreeze", adminHandler.Unfreeze)
		admin.GET("/wallets/:id/reconcile", adminHandler.ReconcileWallet)
		admin.POST("/reconcile", adminHandler.Reconcile)
		admin.GET("/reconciliation/audits", adminHandler.ListAudits)
	}

	// --- Provider simulation harness ---
	if deps.MockEnabled {
		mockHandler := NewMockHandler(deps.Engine, deps.PaymentRouter, deps.Settlement, deps.Logger)
		mock := v1.Group("/mock/:provider")
		{
			mock.POST("/deposit", mockHandler.Deposit)
			mock.POST("/webhook", mockHandler.Webhook)
		}
		deps.Logger.Warn().Msg("provider mock endpoints enabled")
	}

	return r
}
