package service

import (
	"context"
	"fmt"
	"time"

	"wallet-engine/internal/core/domain"
	"wallet-engine/internal/core/ports"
	"wallet-engine/pkg/apperror"

	"github.com/rs/zerolog"
)

// settlementCacheTTL bounds how long Redis answers duplicate callbacks
// before the database marker is consulted again.
const settlementCacheTTL = 24 * time.Hour

// SettlementService implements ports.SettlementHandler. Each outcome is
// applied at most once per withdrawal, guarded by a durable marker row.
type SettlementService struct {
	engine  ports.TransactionEngine
	markers ports.ProcessedWebhookRepository
	cache   ports.IdempotencyCache
	log     zerolog.Logger
}

// NewSettlementService creates a SettlementService. cache may be nil.
func NewSettlementService(
	engine ports.TransactionEngine,
	markers ports.ProcessedWebhookRepository,
	cache ports.IdempotencyCache,
	log zerolog.Logger,
) *SettlementService {
	return &SettlementService{
		engine:  engine,
		markers: markers,
		cache:   cache,
		log:     log,
	}
}

// HandleEvent dispatches a normalized provider event. Non-payout events are
// acknowledged and ignored.
func (s *SettlementService) HandleEvent(ctx context.Context, event *domain.WebhookEvent) error {
	if event == nil {
		return apperror.Validation("empty webhook event")
	}
	if !event.Type.IsPayout() {
		s.log.Info().
			Str("provider", event.Provider).
			Str("type", string(event.Type)).
			Str("external_id", event.ExternalID).
			Msg("ignoring non-payout webhook event")
		return nil
	}
	if event.InternalID == "" {
		return apperror.ValidationFields(map[string]string{"withdrawalId": "missing from webhook payload"})
	}

	switch event.Type {
	case domain.WebhookPayoutSuccess:
		return s.HandlePayoutSuccess(ctx, event.InternalID, event.ExternalID)
	case domain.WebhookPayoutFailed:
		return s.HandlePayoutFailure(ctx, event.InternalID, failureReason(event))
	case domain.WebhookPayoutCancelled:
		return s.HandlePayoutCancelled(ctx, event.InternalID, failureReason(event))
	default:
		return s.HandlePayoutProcessing(ctx, event.InternalID)
	}
}

// HandlePayoutSuccess records that the provider delivered the funds. The
// balance already reflects the reservation debit.
func (s *SettlementService) HandlePayoutSuccess(ctx context.Context, withdrawalID, externalID string) error {
	marker := domain.PayoutSuccessMarker(withdrawalID)
	seen, err := s.seen(ctx, marker)
	if err != nil {
		return err
	}
	if seen {
		s.log.Debug().Str("withdrawal_id", withdrawalID).Msg("payout success already processed")
		return nil
	}

	original, err := s.findWithdrawal(ctx, withdrawalID)
	if err != nil {
		return err
	}
	if original == nil {
		s.log.Warn().Str("withdrawal_id", withdrawalID).Msg("payout settled but no reservation entry found")
	} else {
		s.log.Info().
			Str("withdrawal_id", withdrawalID).
			Str("external_id", externalID).
			Str("wallet_id", original.WalletID.String()).
			Int64("amount", original.Amount).
			Msg("payout settled")
	}

	return s.mark(ctx, &domain.ProcessedWebhook{
		Key:          marker,
		WithdrawalID: withdrawalID,
		Outcome:      domain.SettlementOutcomeSuccess,
		ExternalID:   externalID,
		ProcessedAt:  time.Now().UTC(),
	})
}

// HandlePayoutFailure refunds the reservation of a payout the provider could
// not deliver. The marker is only written after the refund commits, so a
// failed attempt can be retried by the provider.
func (s *SettlementService) HandlePayoutFailure(ctx context.Context, withdrawalID, reason string) error {
	marker := domain.PayoutFailureMarker(withdrawalID)
	seen, err := s.seen(ctx, marker)
	if err != nil {
		return err
	}
	if seen {
		s.log.Debug().Str("withdrawal_id", withdrawalID).Msg("payout failure already processed")
		return nil
	}

	original, err := s.findWithdrawal(ctx, withdrawalID)
	if err != nil {
		return err
	}
	if original == nil || original.EntryType != domain.EntryTypeDebit {
		s.log.Warn().Str("withdrawal_id", withdrawalID).Msg("payout failed but no reservation debit found")
		return apperror.ErrNotFound("withdrawal")
	}

	refund, err := s.engine.Refund(ctx, ports.MutationCommand{
		WalletID:       original.WalletID,
		Amount:         original.Amount,
		IdempotencyKey: domain.RefundKey(withdrawalID),
		Description:    "Refund: Payout failed - " + reason,
	})
	if err != nil {
		s.log.Error().Err(err).
			Str("withdrawal_id", withdrawalID).
			Str("wallet_id", original.WalletID.String()).
			Msg("payout refund failed")
		return err
	}

	s.log.Info().
		Str("withdrawal_id", withdrawalID).
		Str("wallet_id", original.WalletID.String()).
		Str("refund_entry_id", refund.ID.String()).
		Int64("amount", original.Amount).
		Str("reason", reason).
		Msg("payout failed, reservation refunded")

	return s.mark(ctx, &domain.ProcessedWebhook{
		Key:          marker,
		WithdrawalID: withdrawalID,
		Outcome:      domain.SettlementOutcomeFailure,
		ProcessedAt:  time.Now().UTC(),
	})
}

// HandlePayoutCancelled is a failure with a cancellation reason.
func (s *SettlementService) HandlePayoutCancelled(ctx context.Context, withdrawalID, reason string) error {
	return s.HandlePayoutFailure(ctx, withdrawalID, "Cancelled: "+reason)
}

// HandlePayoutProcessing only logs; the reservation stays in place.
func (s *SettlementService) HandlePayoutProcessing(_ context.Context, withdrawalID string) error {
	s.log.Info().Str("withdrawal_id", withdrawalID).Msg("payout processing at provider")
	return nil
}

// findWithdrawal locates the reservation debit, first under the derived key
// and then under the raw withdrawal id.
func (s *SettlementService) findWithdrawal(ctx context.Context, withdrawalID string) (*domain.LedgerEntry, error) {
	for _, key := range []string{domain.WithdrawalKey(withdrawalID), withdrawalID} {
		entry, err := s.engine.FindEntry(ctx, key)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			return entry, nil
		}
	}
	return nil, nil
}

func (s *SettlementService) seen(ctx context.Context, marker string) (bool, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, settlementCacheKey(marker))
		if err != nil {
			s.log.Warn().Err(err).Str("key", marker).Msg("redis marker check failed, falling through to DB")
		}
		if cached != nil {
			return true, nil
		}
	}

	exists, err := s.markers.Exists(ctx, marker)
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("check settlement marker: %w", err))
	}
	if exists {
		s.remember(ctx, marker)
	}
	return exists, nil
}

func (s *SettlementService) mark(ctx context.Context, marker *domain.ProcessedWebhook) error {
	inserted, err := s.markers.Insert(ctx, marker)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("record settlement marker: %w", err))
	}
	if !inserted {
		s.log.Debug().Str("key", marker.Key).Msg("settlement marker recorded concurrently")
	}
	s.remember(ctx, marker.Key)
	return nil
}

func (s *SettlementService) remember(ctx context.Context, marker string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, settlementCacheKey(marker), []byte("1"), settlementCacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", marker).Msg("failed to cache settlement marker")
	}
}

// settlementCacheKey keeps markers apart from ledger idempotency keys in Redis.
func settlementCacheKey(marker string) string {
	return "settlement:" + marker
}

func failureReason(event *domain.WebhookEvent) string {
	switch {
	case event.ErrorMessage != "":
		return event.ErrorMessage
	case event.ErrorCode != "":
		return event.ErrorCode
	}
	return "no reason given"
}
