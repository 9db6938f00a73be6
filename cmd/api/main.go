package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet-engine/config"
	httpHandler "wallet-engine/internal/adapter/http/handler"
	"wallet-engine/internal/adapter/provider"
	pgStorage "wallet-engine/internal/adapter/storage/postgres"
	redisStorage "wallet-engine/internal/adapter/storage/redis"
	"wallet-engine/internal/core/ports"
	"wallet-engine/internal/scheduler"
	"wallet-engine/internal/service"
	"wallet-engine/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Wallet Engine")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	walletRepo := pgStorage.NewWalletRepo(pool)
	ledgerRepo := pgStorage.NewLedgerRepo(pool)
	reconciliationRepo := pgStorage.NewReconciliationRepo(pool)
	markerRepo := pgStorage.NewProcessedWebhookRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)
	transactor := pgStorage.NewTransactor(pool, cfg.Database.LockTimeout)

	// Initialize Redis stores
	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)
	webhookGuard := redisStorage.NewWebhookGuard(rdb)

	// Initialize core services
	sigSvc := service.NewHMACSignatureService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	auditSvc := service.NewAuditService(auditRepo, log)

	// Downstream collaborators (best-effort, after commit)
	replicator := service.NewLedgerReplicator(cfg.Services.Ledger, sigSvc,
		&http.Client{Timeout: cfg.Services.Ledger.Timeout}, log)
	notifier := service.NewNotifier(cfg.Services.Notification, cfg.Wallet.LargeTransactionThreshold, sigSvc,
		&http.Client{Timeout: cfg.Services.Notification.Timeout}, log)

	// Initialize business services
	engine := service.NewWalletService(
		walletRepo,
		ledgerRepo,
		idempotencyCache,
		transactor,
		replicator,
		notifier,
		log,
	)

	providers := []ports.PaymentProvider{
		provider.NewPayme(cfg.Providers.Payme.SecretKey),
		provider.NewClick(cfg.Providers.Click.SecretKey),
		provider.NewStripe(cfg.Providers.Stripe.WebhookSecret, cfg.Providers.Stripe.WebhookTolerance),
	}
	paymentRouter, err := service.NewPaymentRouter(engine, providers, cfg.Providers.PreferenceOrder(), cfg.Providers.Timeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize payment router")
	}
	settlement := service.NewSettlementService(engine, markerRepo, idempotencyCache, log)
	auditor := service.NewReconciliationAuditor(walletRepo, ledgerRepo, reconciliationRepo, cfg.Reconciliation.BatchSize, log)

	// Scheduled reconciliation
	sched := scheduler.New(log)
	if cfg.Reconciliation.Enabled {
		if err := sched.Register("reconciliation", cfg.Reconciliation.Schedule, auditor.RunScheduled); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule reconciliation")
		}
	}
	sched.Start()

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Load OpenAPI spec for Swagger UI
	specBytes, err := os.ReadFile("docs/api/openapi.yaml")
	if err == nil {
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Engine:         engine,
		PaymentRouter:  paymentRouter,
		Settlement:     settlement,
		Reconciler:     auditor,
		TokenSvc:       tokenSvc,
		WebhookGuard:   webhookGuard,
		RateLimitStore: rateLimitStore,
		AuditSvc:       auditSvc,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		OpenAPISpec:    specBytes,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		MockEnabled:    cfg.Mock.Enabled,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	sched.Stop()

	// Drain best-effort deliveries queued by in-flight requests.
	replicator.Wait()
	notifier.Wait()

	log.Info().Msg("Server exited")
}
